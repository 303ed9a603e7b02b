package rest

import (
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seedgarden/blessing-engine/internal/domain"
	"github.com/seedgarden/blessing-engine/internal/eligibility"
	"github.com/seedgarden/blessing-engine/internal/leaderboard"
	"github.com/seedgarden/blessing-engine/internal/merkle"
	"github.com/seedgarden/blessing-engine/internal/snapshot"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetEligibility returns the wallet's remaining blessing quota
	// GET /api/v1/eligibility/:address
	GetEligibility(c *gin.Context)

	// ConfirmBlessing records a confirmed blessing submission for a wallet
	// POST /api/v1/blessings/confirm
	ConfirmBlessing(c *gin.Context)

	// GetProof returns the Merkle membership proof for an address
	// GET /api/v1/proofs/:address
	GetProof(c *gin.Context)

	// GetLeaderboard returns ranked leaderboard entries
	// GET /api/v1/leaderboard?timeframe=<daily|weekly|monthly|yearly|lifetime>&limit=<limit>
	GetLeaderboard(c *gin.Context)

	// GetWalletScore returns a single wallet's leaderboard entry
	// GET /api/v1/leaderboard/:address?timeframe=<timeframe>
	GetWalletScore(c *gin.Context)

	// GetLatestSnapshot returns the currently promoted snapshot
	// GET /api/v1/snapshots/latest
	GetLatestSnapshot(c *gin.Context)

	// TriggerSnapshot builds and promotes a fresh ownership snapshot
	// POST /api/v1/snapshots
	TriggerSnapshot(c *gin.Context)

	// RollbackSnapshot re-promotes the previous snapshot
	// POST /api/v1/snapshots/rollback
	RollbackSnapshot(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	gate        *eligibility.Gate
	leaderboard *leaderboard.Builder
	proofs      *merkle.ProofProvider
	snapshots   snapshot.Provider
	builder     *snapshot.Builder
}

// NewHandler creates a new REST API handler
func NewHandler(gate *eligibility.Gate, lb *leaderboard.Builder, proofs *merkle.ProofProvider, snapshots snapshot.Provider, builder *snapshot.Builder) Handler {
	return &handler{
		gate:        gate,
		leaderboard: lb,
		proofs:      proofs,
		snapshots:   snapshots,
		builder:     builder,
	}
}

// GetEligibility returns the wallet's remaining blessing quota
func (h *handler) GetEligibility(c *gin.Context) {
	address := c.Param("address")
	if !domain.ValidAddress(address) {
		respondBadRequest(c, "Invalid wallet address", address)
		return
	}

	decision := h.gate.CanBless(c.Request.Context(), address)
	c.JSON(http.StatusOK, toEligibilityResponse(decision))
}

// ConfirmBlessing records a confirmed blessing submission for a wallet
func (h *handler) ConfirmBlessing(c *gin.Context) {
	var req ConfirmBlessingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if !domain.ValidAddress(req.WalletAddress) {
		respondBadRequest(c, "Invalid wallet address", req.WalletAddress)
		return
	}

	if err := h.gate.RecordBlessing(c.Request.Context(), req.WalletAddress); err != nil {
		if errors.Is(err, domain.ErrSnapshotUnavailable) {
			respondServiceUnavailable(c, "No ownership snapshot available")
			return
		}
		respondInternalError(c, err, "Failed to record blessing")
		return
	}

	decision := h.gate.CanBless(c.Request.Context(), req.WalletAddress)
	c.JSON(http.StatusOK, toEligibilityResponse(decision))
}

// GetProof returns the Merkle membership proof for an address
func (h *handler) GetProof(c *gin.Context) {
	address := c.Param("address")
	if !domain.ValidAddress(address) {
		respondBadRequest(c, "Invalid wallet address", address)
		return
	}

	tree, snapshotID, err := h.proofs.Tree(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotUnavailable) {
			respondServiceUnavailable(c, "No ownership snapshot available")
			return
		}
		respondInternalError(c, err, "Failed to build ownership proof")
		return
	}

	leaf, proof, err := tree.ProofOf(address)
	if err != nil {
		respondProofNotFound(c, "Address holds no tokens in the current snapshot", address)
		return
	}

	siblings := make([]string, len(proof))
	for i, p := range proof {
		siblings[i] = "0x" + hex.EncodeToString(p[:])
	}

	c.JSON(http.StatusOK, ProofResponse{
		SnapshotID: snapshotID,
		Address:    domain.NormalizeAddress(address),
		Leaf:       "0x" + hex.EncodeToString(leaf[:]),
		Proof:      siblings,
		Root:       "0x" + hex.EncodeToString(tree.Root[:]),
	})
}

// GetLeaderboard returns ranked leaderboard entries
func (h *handler) GetLeaderboard(c *gin.Context) {
	var params LeaderboardQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	timeframe := domain.Timeframe(params.Timeframe)
	if !timeframe.Valid() {
		respondBadRequest(c, "Invalid timeframe", params.Timeframe)
		return
	}

	board, err := h.leaderboard.Build(c.Request.Context(), timeframe)
	if err != nil {
		respondInternalError(c, err, "Failed to build leaderboard")
		return
	}

	entries := board.Entries
	if params.Limit > 0 && len(entries) > params.Limit {
		entries = entries[:params.Limit]
	}

	c.JSON(http.StatusOK, LeaderboardResponse{
		Timeframe: timeframe,
		Entries:   entries,
		Reason:    board.Reason,
	})
}

// GetWalletScore returns a single wallet's leaderboard entry
func (h *handler) GetWalletScore(c *gin.Context) {
	address := c.Param("address")
	if !domain.ValidAddress(address) {
		respondBadRequest(c, "Invalid wallet address", address)
		return
	}

	timeframe := domain.Timeframe(c.DefaultQuery("timeframe", string(domain.TimeframeLifetime)))
	if !timeframe.Valid() {
		respondBadRequest(c, "Invalid timeframe", string(timeframe))
		return
	}

	entry, err := h.leaderboard.WalletScore(c.Request.Context(), address, timeframe)
	if err != nil {
		respondInternalError(c, err, "Failed to compute wallet score")
		return
	}

	c.JSON(http.StatusOK, entry)
}

// GetLatestSnapshot returns the currently promoted snapshot
func (h *handler) GetLatestSnapshot(c *gin.Context) {
	snap, err := h.snapshots.Latest(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotUnavailable) {
			respondNotFound(c, "No snapshot has been promoted yet")
			return
		}
		respondInternalError(c, err, "Failed to load snapshot")
		return
	}

	c.JSON(http.StatusOK, toSnapshotResponse(snap))
}

// TriggerSnapshot builds and promotes a fresh ownership snapshot
func (h *handler) TriggerSnapshot(c *gin.Context) {
	snap, err := h.builder.Build(c.Request.Context(), 0)
	if err != nil {
		respondInternalError(c, err, "Failed to build snapshot")
		return
	}

	h.snapshots.Invalidate()
	c.JSON(http.StatusCreated, toSnapshotResponse(snap))
}

// RollbackSnapshot re-promotes the previous snapshot
func (h *handler) RollbackSnapshot(c *gin.Context) {
	snap, err := h.builder.Rollback(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotUnavailable) {
			respondNotFound(c, "No previous snapshot to roll back to")
			return
		}
		respondInternalError(c, err, "Failed to roll back snapshot")
		return
	}

	h.snapshots.Invalidate()
	c.JSON(http.StatusOK, toSnapshotResponse(snap))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
