package store

import (
	"context"

	"github.com/seedgarden/blessing-engine/internal/domain"
)

// Store defines the interface for durable snapshot and rate-limit state
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// SaveSnapshot persists a snapshot artifact without promoting it
	SaveSnapshot(ctx context.Context, snapshot *domain.Snapshot) error
	// PromoteSnapshot flips the "latest" pointer to the given artifact.
	// The artifact must already be fully written.
	PromoteSnapshot(ctx context.Context, id string) error
	// GetLatestSnapshot returns the currently promoted snapshot, or
	// domain.ErrSnapshotUnavailable if none has ever been promoted
	GetLatestSnapshot(ctx context.Context) (*domain.Snapshot, error)
	// GetSnapshot returns a historical snapshot by artifact ID
	GetSnapshot(ctx context.Context, id string) (*domain.Snapshot, error)
	// ListSnapshotIDs returns artifact IDs newest-first
	ListSnapshotIDs(ctx context.Context, limit int) ([]string, error)
	// PruneSnapshots deletes all but the newest keep artifacts, never
	// deleting the promoted one
	PruneSnapshots(ctx context.Context, keep int) error

	// GetBlessingPeriod returns the cached rate-limit state for a wallet,
	// or nil if none exists
	GetBlessingPeriod(ctx context.Context, walletAddress string) (*domain.UserBlessingData, error)
	// SaveBlessingPeriod upserts the cached rate-limit state for a wallet
	SaveBlessingPeriod(ctx context.Context, data *domain.UserBlessingData) error
}
