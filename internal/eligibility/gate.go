package eligibility

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"

	"github.com/seedgarden/blessing-engine/internal/adapter"
	"github.com/seedgarden/blessing-engine/internal/domain"
	"github.com/seedgarden/blessing-engine/internal/logger"
	"github.com/seedgarden/blessing-engine/internal/messaging"
	"github.com/seedgarden/blessing-engine/internal/snapshot"
	"github.com/seedgarden/blessing-engine/internal/store"
)

// UsageCounter reads the authoritative per-wallet per-UTC-day blessing
// counter. The local rate-limit cache reconciles against it on every period
// rollover instead of assuming zero usage.
//
//go:generate mockgen -source=gate.go -destination=../mocks/usage_counter.go -package=mocks -mock_names=UsageCounter=MockUsageCounter
type UsageCounter interface {
	DailyBlessingsUsed(ctx context.Context, walletAddress string, dayStart time.Time) (uint64, error)
}

// GateConfig holds configuration for the eligibility gate
type GateConfig struct {
	// BlessingsPerNFT is the daily quota granted per owned token
	BlessingsPerNFT int
}

// Gate decides, per wallet and per UTC-day period, how many blessings
// remain. Reads have no side effects; usage only advances through
// RecordBlessing after the caller confirms a successful submission.
type Gate struct {
	config    GateConfig
	snapshots snapshot.Provider
	counter   UsageCounter
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock

	// locks serializes per-wallet state updates; different wallets never
	// contend
	locks *xsync.Map[string, *sync.Mutex]
}

// NewGate creates an eligibility gate
func NewGate(config GateConfig, snapshots snapshot.Provider, counter UsageCounter, st store.Store, publisher messaging.Publisher, clock adapter.Clock) *Gate {
	if config.BlessingsPerNFT <= 0 {
		config.BlessingsPerNFT = domain.DEFAULT_BLESSINGS_PER_NFT
	}

	return &Gate{
		config:    config,
		snapshots: snapshots,
		counter:   counter,
		store:     st,
		publisher: publisher,
		clock:     clock,
		locks:     xsync.NewMap[string, *sync.Mutex](),
	}
}

func (g *Gate) lockWallet(wallet string) func() {
	mu, _ := g.locks.LoadOrStore(wallet, &sync.Mutex{})
	mu.Lock()
	return mu.Unlock
}

// CanBless returns the wallet's remaining quota for the current period.
// Failures degrade to conservative ineligible decisions with a
// machine-readable reason instead of errors, since this is a read path
// feeding user-facing decisions.
func (g *Gate) CanBless(ctx context.Context, walletAddress string) domain.EligibilityDecision {
	wallet := domain.NormalizeAddress(walletAddress)
	now := g.clock.Now().UTC()
	periodStart := domain.PeriodStart(now)
	periodEnd := periodStart.Add(domain.QUOTA_PERIOD)

	snap, err := g.snapshots.Latest(ctx)
	if err != nil {
		if err != domain.ErrSnapshotUnavailable {
			logger.WarnCtx(ctx, "Snapshot lookup failed during eligibility check",
				zap.String("wallet", wallet), zap.Error(err))
		}
		return domain.EligibilityDecision{
			WalletAddress: wallet,
			Eligible:      false,
			PeriodEnd:     periodEnd,
			Reason:        domain.ReasonSnapshotUnavailable,
		}
	}

	nftCount := snap.NFTCountOf(wallet)
	if nftCount == 0 {
		return domain.EligibilityDecision{
			WalletAddress: wallet,
			Eligible:      false,
			PeriodEnd:     periodEnd,
			Reason:        domain.ReasonNoNFTs,
		}
	}

	unlock := g.lockWallet(wallet)
	defer unlock()

	data, err := g.resolvePeriod(ctx, wallet, nftCount, now)
	if err != nil {
		// The counter could not be read and the cache is not trustworthy
		// for this period. Granting unverified quota is worse than denying.
		return domain.EligibilityDecision{
			WalletAddress: wallet,
			Eligible:      false,
			Indeterminate: true,
			NFTCount:      nftCount,
			PeriodEnd:     periodEnd,
			Reason:        domain.ReasonRateLimitIndeterminate,
		}
	}

	// The counter can report more usage than the current quota allows, for
	// example after the wallet sold tokens mid-day. The decision never shows
	// usage above the maximum; the raw count stays in the cache so a later
	// quota increase does not resurrect spent blessings.
	used := data.UsedBlessings
	if used > data.MaxBlessings {
		used = data.MaxBlessings
	}
	remaining := data.MaxBlessings - used

	decision := domain.EligibilityDecision{
		WalletAddress:      wallet,
		Eligible:           remaining > 0,
		NFTCount:           nftCount,
		MaxBlessings:       data.MaxBlessings,
		UsedBlessings:      used,
		RemainingBlessings: remaining,
		PeriodEnd:          data.PeriodEnd,
	}
	if !decision.Eligible {
		decision.Reason = domain.ReasonAllBlessingsUsed
	}

	return decision
}

// resolvePeriod returns current-period state for the wallet, reconciling
// against the authoritative counter when the cached period has expired or no
// state exists yet. The caller must hold the wallet lock.
func (g *Gate) resolvePeriod(ctx context.Context, wallet string, nftCount int, now time.Time) (*domain.UserBlessingData, error) {
	periodStart := domain.PeriodStart(now)
	maxBlessings := nftCount * g.config.BlessingsPerNFT

	data, err := g.store.GetBlessingPeriod(ctx, wallet)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read blessing period cache",
			zap.String("wallet", wallet), zap.Error(err))
		data = nil
	}

	if data != nil && now.Before(data.PeriodEnd) {
		// Quota may grow mid-period if the wallet gained NFTs in a newer
		// snapshot; consumed blessings are never handed back.
		if data.NFTCount != nftCount {
			data.NFTCount = nftCount
			data.MaxBlessings = maxBlessings
			if err := g.store.SaveBlessingPeriod(ctx, data); err != nil {
				logger.WarnCtx(ctx, "Failed to update blessing period cache",
					zap.String("wallet", wallet), zap.Error(err))
			}
		}
		return data, nil
	}

	// Period expired or first check: the on-chain counter is the source of
	// truth for usage, not a presumed zero.
	used, err := g.counter.DailyBlessingsUsed(ctx, wallet, periodStart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRateLimitIndeterminate, err)
	}

	data = &domain.UserBlessingData{
		WalletAddress: wallet,
		NFTCount:      nftCount,
		MaxBlessings:  maxBlessings,
		UsedBlessings: int(used),
		PeriodStart:   periodStart,
		PeriodEnd:     periodStart.Add(domain.QUOTA_PERIOD),
	}
	if err := g.store.SaveBlessingPeriod(ctx, data); err != nil {
		logger.WarnCtx(ctx, "Failed to save blessing period cache",
			zap.String("wallet", wallet), zap.Error(err))
	}

	return data, nil
}

// RecordBlessing advances the wallet's used count after the submission
// collaborator confirms success. It never pushes usage past the period
// maximum.
func (g *Gate) RecordBlessing(ctx context.Context, walletAddress string) error {
	wallet := domain.NormalizeAddress(walletAddress)
	now := g.clock.Now().UTC()

	snap, err := g.snapshots.Latest(ctx)
	if err != nil {
		return err
	}
	nftCount := snap.NFTCountOf(wallet)
	if nftCount == 0 {
		return fmt.Errorf("wallet %s holds no tokens in the current snapshot", wallet)
	}

	unlock := g.lockWallet(wallet)
	defer unlock()

	data, err := g.resolvePeriod(ctx, wallet, nftCount, now)
	if err != nil {
		return err
	}

	if data.UsedBlessings < data.MaxBlessings {
		data.UsedBlessings++
	}
	if err := g.store.SaveBlessingPeriod(ctx, data); err != nil {
		return err
	}

	if g.publisher != nil {
		event := &messaging.BlessingConfirmedEvent{
			WalletAddress: wallet,
			UsedBlessings: data.UsedBlessings,
			MaxBlessings:  data.MaxBlessings,
			ConfirmedAt:   now,
		}
		if err := g.publisher.PublishBlessingConfirmed(ctx, event); err != nil {
			logger.WarnCtx(ctx, "Failed to publish blessing confirmation", zap.Error(err))
		}
	}

	return nil
}
