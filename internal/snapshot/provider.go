package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/seedgarden/blessing-engine/internal/adapter"
	"github.com/seedgarden/blessing-engine/internal/domain"
	"github.com/seedgarden/blessing-engine/internal/logger"
	"github.com/seedgarden/blessing-engine/internal/store"
)

// ProviderConfig holds configuration for the cached snapshot provider
type ProviderConfig struct {
	// TTL is how long to serve a cached snapshot before re-reading storage
	TTL time.Duration

	// StaleWindow is how long to keep serving a stale snapshot if the
	// storage read fails. Beyond it, the error propagates.
	StaleWindow time.Duration
}

// Provider provides cached access to the latest promoted snapshot. The
// cached reference is swapped atomically; readers always see a complete
// snapshot, never one being mutated.
//
//go:generate mockgen -source=provider.go -destination=../mocks/snapshot_provider.go -package=mocks -mock_names=Provider=MockSnapshotProvider
type Provider interface {
	// Latest returns the promoted snapshot, potentially from cache
	Latest(ctx context.Context) (*domain.Snapshot, error)
	// Refresh forces a re-read from storage, swapping the cache on success
	Refresh(ctx context.Context) (*domain.Snapshot, error)
	// Invalidate drops the cached reference so the next read hits storage
	Invalidate()
}

type cachedSnapshot struct {
	snap      *domain.Snapshot
	fetchedAt time.Time
}

type provider struct {
	store  store.Store
	config ProviderConfig
	clock  adapter.Clock

	mu     sync.RWMutex
	cached *cachedSnapshot
}

// NewProvider creates a snapshot provider with TTL-based caching
func NewProvider(st store.Store, config ProviderConfig, clock adapter.Clock) Provider {
	return &provider{
		store:  st,
		config: config,
		clock:  clock,
	}
}

// Latest returns the promoted snapshot, using cache if valid
func (p *provider) Latest(ctx context.Context) (*domain.Snapshot, error) {
	p.mu.RLock()
	cached := p.cached
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && now.Sub(cached.fetchedAt) < p.config.TTL {
		return cached.snap, nil
	}

	snap, err := p.store.GetLatestSnapshot(ctx)
	if err != nil {
		// ErrSnapshotUnavailable is an authoritative answer, not a storage
		// failure: the promotion pointer is gone and a stale cache must not
		// resurrect it. Transient failures fall back to the stale snapshot
		// while the cache is within the stale window.
		if err == domain.ErrSnapshotUnavailable {
			return nil, err
		}
		if cached != nil && now.Sub(cached.fetchedAt) < p.config.StaleWindow {
			logger.DebugCtx(ctx, "Serving stale snapshot", zap.String("snapshotID", cached.snap.ID))
			return cached.snap, nil
		}
		return nil, fmt.Errorf("failed to load latest snapshot and no usable cache: %w", err)
	}

	p.swap(snap, now)
	return snap, nil
}

// Refresh forces a re-read from storage, swapping the cache on success
func (p *provider) Refresh(ctx context.Context) (*domain.Snapshot, error) {
	snap, err := p.store.GetLatestSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	p.swap(snap, p.clock.Now())
	return snap, nil
}

// Invalidate drops the cached reference
func (p *provider) Invalidate() {
	p.mu.Lock()
	p.cached = nil
	p.mu.Unlock()
}

func (p *provider) swap(snap *domain.Snapshot, now time.Time) {
	p.mu.Lock()
	p.cached = &cachedSnapshot{snap: snap, fetchedAt: now}
	p.mu.Unlock()
}
