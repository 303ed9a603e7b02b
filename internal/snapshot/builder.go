package snapshot

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/seedgarden/blessing-engine/internal/adapter"
	"github.com/seedgarden/blessing-engine/internal/domain"
	"github.com/seedgarden/blessing-engine/internal/logger"
	"github.com/seedgarden/blessing-engine/internal/merkle"
	"github.com/seedgarden/blessing-engine/internal/messaging"
	"github.com/seedgarden/blessing-engine/internal/providers/ethereum"
	"github.com/seedgarden/blessing-engine/internal/store"
)

// BuilderConfig holds configuration for the snapshot builder
type BuilderConfig struct {
	// ContractAddress is the reference NFT collection
	ContractAddress string
	// WorkerPoolSize bounds concurrent owner lookups
	WorkerPoolSize int
	// HistoryLimit is how many superseded snapshots to retain for rollback
	HistoryLimit int
}

// Builder enumerates collection ownership and publishes immutable snapshots.
// A build either completes fully or leaves the previously promoted snapshot
// untouched; partial enumeration results are never persisted.
type Builder struct {
	config    BuilderConfig
	client    ethereum.CollectionClient
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock

	// mu serializes builds; concurrent triggers would race on promotion order
	mu sync.Mutex
}

// NewBuilder creates a snapshot builder
func NewBuilder(config BuilderConfig, client ethereum.CollectionClient, st store.Store, publisher messaging.Publisher, clock adapter.Clock) *Builder {
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = 10
	}
	if config.HistoryLimit <= 0 {
		config.HistoryLimit = domain.DEFAULT_SNAPSHOT_HISTORY
	}

	return &Builder{
		config:    config,
		client:    client,
		store:     st,
		publisher: publisher,
		clock:     clock,
	}
}

// Build enumerates ownership at the given block (0 = latest finalized),
// persists the snapshot, promotes it and prunes history. Any owner-lookup
// failure aborts the whole build.
func (b *Builder) Build(ctx context.Context, blockNumber uint64) (*domain.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if blockNumber == 0 {
		finalized, err := b.client.FinalizedBlockNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve finalized block: %w", err)
		}
		blockNumber = finalized
	}

	totalSupply, err := b.client.TotalSupply(ctx, b.config.ContractAddress, blockNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOwnershipLookupFailed, err)
	}

	logger.InfoCtx(ctx, "Building ownership snapshot",
		zap.String("contract", b.config.ContractAddress),
		zap.Uint64("block", blockNumber),
		zap.Uint64("totalSupply", totalSupply))

	owners, err := b.enumerateOwners(ctx, blockNumber, totalSupply)
	if err != nil {
		// Atomic failure: a missing holder downstream is a disenfranchised
		// holder, so nothing is persisted.
		return nil, fmt.Errorf("%w: %v", domain.ErrOwnershipLookupFailed, err)
	}

	now := b.clock.Now()
	id := ulid.MustNewDefault(now).String()
	snap := domain.NewSnapshot(id, b.config.ContractAddress, blockNumber, now, owners)

	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot failed invariant check: %w", err)
	}

	// Write fully, then flip the pointer. Readers never observe a
	// half-written snapshot.
	if err := b.store.SaveSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	if err := b.store.PromoteSnapshot(ctx, snap.ID); err != nil {
		return nil, err
	}

	if err := b.store.PruneSnapshots(ctx, b.config.HistoryLimit); err != nil {
		logger.WarnCtx(ctx, "Failed to prune snapshot history", zap.Error(err))
	}

	b.announce(ctx, snap)

	logger.InfoCtx(ctx, "Snapshot promoted",
		zap.String("snapshotID", snap.ID),
		zap.Uint64("block", snap.BlockNumber),
		zap.Int("holders", len(snap.Holders)))

	return snap, nil
}

// enumerateOwners resolves every token's owner at the snapshot block using a
// bounded worker pool. The first failed lookup fails the whole enumeration.
func (b *Builder) enumerateOwners(ctx context.Context, blockNumber, totalSupply uint64) (map[uint64]string, error) {
	type entry struct {
		tokenID uint64
		owner   string
	}

	results := make([]entry, totalSupply)
	pool := pond.NewPool(b.config.WorkerPoolSize, pond.WithContext(ctx))
	group := pool.NewGroup()

	for i := uint64(0); i < totalSupply; i++ {
		index := i
		group.SubmitErr(func() error {
			tokenID, err := b.client.TokenByIndex(ctx, b.config.ContractAddress, index, blockNumber)
			if err != nil {
				return fmt.Errorf("tokenByIndex(%d): %w", index, err)
			}

			owner, err := b.client.OwnerOf(ctx, b.config.ContractAddress, tokenID, blockNumber)
			if err != nil {
				return fmt.Errorf("ownerOf(%d): %w", tokenID, err)
			}

			results[index] = entry{tokenID: tokenID, owner: owner}
			return nil
		})
	}

	err := group.Wait()
	pool.StopAndWait()
	if err != nil {
		return nil, err
	}

	owners := make(map[uint64]string, totalSupply)
	for _, e := range results {
		owners[e.tokenID] = e.owner
	}
	if uint64(len(owners)) != totalSupply {
		return nil, fmt.Errorf("enumerated %d unique tokens, expected %d", len(owners), totalSupply)
	}

	return owners, nil
}

// Rollback repromotes the artifact that preceded the currently promoted one
func (b *Builder) Rollback(ctx context.Context) (*domain.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	current, err := b.store.GetLatestSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := b.store.ListSnapshotIDs(ctx, b.config.HistoryLimit+1)
	if err != nil {
		return nil, err
	}

	var previous string
	for i, id := range ids {
		if id == current.ID && i+1 < len(ids) {
			previous = ids[i+1]
			break
		}
	}
	if previous == "" {
		return nil, fmt.Errorf("no snapshot predates %s to roll back to", current.ID)
	}

	if err := b.store.PromoteSnapshot(ctx, previous); err != nil {
		return nil, err
	}

	snap, err := b.store.GetSnapshot(ctx, previous)
	if err != nil {
		return nil, err
	}

	logger.WarnCtx(ctx, "Snapshot rolled back",
		zap.String("from", current.ID),
		zap.String("to", previous))

	b.announce(ctx, snap)

	return snap, nil
}

// announce publishes the promotion event; publish failures are logged, not
// fatal, since the snapshot is already durable
func (b *Builder) announce(ctx context.Context, snap *domain.Snapshot) {
	if b.publisher == nil {
		return
	}

	var root string
	if tree, err := merkle.Build(snap); err == nil {
		root = hex.EncodeToString(tree.Root[:])
	}

	event := &messaging.SnapshotPromotedEvent{
		SnapshotID:      snap.ID,
		ContractAddress: snap.ContractAddress,
		BlockNumber:     snap.BlockNumber,
		TotalSupply:     snap.TotalSupply,
		HolderCount:     len(snap.Holders),
		MerkleRoot:      root,
		TakenAt:         snap.TakenAt,
	}
	if err := b.publisher.PublishSnapshotPromoted(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish snapshot promotion", zap.Error(err))
	}
}
