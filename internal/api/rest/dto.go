package rest

import (
	"time"

	"github.com/seedgarden/blessing-engine/internal/domain"
)

// EligibilityResponse is the body of GET /eligibility/:address
type EligibilityResponse struct {
	WalletAddress      string    `json:"wallet_address"`
	Eligible           bool      `json:"eligible"`
	Indeterminate      bool      `json:"indeterminate,omitempty"`
	NFTCount           int       `json:"nft_count"`
	MaxBlessings       int       `json:"max_blessings"`
	UsedBlessings      int       `json:"used_blessings"`
	RemainingBlessings int       `json:"remaining_blessings"`
	PeriodEnd          time.Time `json:"period_end"`
	Reason             string    `json:"reason,omitempty"`
}

func toEligibilityResponse(d domain.EligibilityDecision) EligibilityResponse {
	return EligibilityResponse(d)
}

// ConfirmBlessingRequest is the body of POST /blessings/confirm
type ConfirmBlessingRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
}

// ProofResponse is the body of GET /proofs/:address
type ProofResponse struct {
	SnapshotID string   `json:"snapshot_id"`
	Address    string   `json:"address"`
	Leaf       string   `json:"leaf"`
	Proof      []string `json:"proof"`
	Root       string   `json:"root"`
}

// SnapshotResponse is the body of GET /snapshots/latest and POST /snapshots
type SnapshotResponse struct {
	ID              string    `json:"id"`
	ContractAddress string    `json:"contract_address"`
	TotalSupply     uint64    `json:"total_supply"`
	BlockNumber     uint64    `json:"block_number"`
	HolderCount     int       `json:"holder_count"`
	TakenAt         time.Time `json:"taken_at"`
}

func toSnapshotResponse(s *domain.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:              s.ID,
		ContractAddress: s.ContractAddress,
		TotalSupply:     s.TotalSupply,
		BlockNumber:     s.BlockNumber,
		HolderCount:     len(s.Holders),
		TakenAt:         s.TakenAt,
	}
}

// LeaderboardResponse is the body of GET /leaderboard
type LeaderboardResponse struct {
	Timeframe domain.Timeframe          `json:"timeframe"`
	Entries   []domain.LeaderboardEntry `json:"entries"`
	Reason    string                    `json:"reason,omitempty"`
}

// LeaderboardQueryParams holds query parameters for GET /leaderboard
type LeaderboardQueryParams struct {
	Timeframe string `form:"timeframe,default=lifetime"`
	Limit     int    `form:"limit,default=100"`
}
