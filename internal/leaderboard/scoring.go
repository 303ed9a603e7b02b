package leaderboard

import (
	"math"
	"time"

	"github.com/seedgarden/blessing-engine/internal/adapter"
	"github.com/seedgarden/blessing-engine/internal/domain"
)

// ScoringConfig holds configuration for the scoring engine
type ScoringConfig struct {
	// BlessingsPerNFT is the daily quota granted per owned token, used as the
	// denominator of the efficiency component
	BlessingsPerNFT int

	// AvgTimeToWinner controls the early-bird decay for winning blessings
	AvgTimeToWinner time.Duration
}

// ScoringEngine computes leaderboard scores from a wallet's blessing history
// and its snapshot NFT count
type ScoringEngine struct {
	config ScoringConfig
	clock  adapter.Clock
}

// NewScoringEngine creates a scoring engine
func NewScoringEngine(config ScoringConfig, clock adapter.Clock) *ScoringEngine {
	if config.BlessingsPerNFT <= 0 {
		config.BlessingsPerNFT = domain.DEFAULT_BLESSINGS_PER_NFT
	}
	if config.AvgTimeToWinner <= 0 {
		config.AvgTimeToWinner = domain.DEFAULT_AVG_TIME_TO_WINNER
	}

	return &ScoringEngine{
		config: config,
		clock:  clock,
	}
}

// Score computes the integer score for a wallet within the given timeframe.
// All components operate on the timeframe-filtered events; only the recency
// multiplier always looks at the full 30-day window. A wallet with no
// blessings in the window scores zero no matter how many tokens it holds.
func (e *ScoringEngine) Score(stats domain.WalletStats, timeframe domain.Timeframe) int64 {
	now := e.clock.Now().UTC()
	blessings := filterTimeframe(stats.Blessings, timeframe, now)
	if len(blessings) == 0 {
		return 0
	}

	total := e.sqrtVolume(blessings) +
		e.efficiency(blessings, stats.NFTCount, now) +
		e.winningBonus(blessings) +
		e.accuracy(blessings)

	// Recency keys off the full history so a wallet active this month keeps
	// its multiplier even on a narrow timeframe query.
	if anySince(stats.Blessings, now.Add(-30*24*time.Hour)) {
		total *= 1.3
	}

	return int64(math.Round(total))
}

// sqrtVolume scales raw volume sub-linearly so a 10x blessing count only
// yields about a 3.16x contribution
func (e *ScoringEngine) sqrtVolume(blessings []domain.BlessingEvent) float64 {
	return math.Sqrt(float64(len(blessings))) * 50
}

// efficiency rewards consistent use of the daily quota over the last 7 days,
// capped at 100% of the theoretical maximum
func (e *ScoringEngine) efficiency(blessings []domain.BlessingEvent, nftCount int, now time.Time) float64 {
	if nftCount == 0 {
		return 0
	}

	recentCount := 0
	cutoff := now.Add(-7 * 24 * time.Hour)
	first := blessings[0].Timestamp
	for _, b := range blessings {
		if b.Timestamp.Before(first) {
			first = b.Timestamp
		}
		if !b.Timestamp.Before(cutoff) {
			recentCount++
		}
	}

	daysActive := math.Ceil(now.Sub(first).Hours() / 24)
	if daysActive < 1 {
		daysActive = 1
	} else if daysActive > 7 {
		daysActive = 7
	}

	capacity := float64(nftCount*e.config.BlessingsPerNFT) * daysActive
	return math.Min(1, float64(recentCount)/capacity) * 100
}

// winningBonus grants 50 points per blessing on a seed that went on to win,
// multiplied up to 3x for blessings cast soon after the seed was created
func (e *ScoringEngine) winningBonus(blessings []domain.BlessingEvent) float64 {
	bonus := 0.0
	for _, b := range blessings {
		if !b.WasWinner {
			continue
		}
		bonus += 50 * (1 + e.earlyBirdScore(b)*2.0)
	}
	return bonus
}

// earlyBirdScore decays from 1 toward 0 as the gap between seed creation and
// blessing approaches the configured average time to winner
func (e *ScoringEngine) earlyBirdScore(b domain.BlessingEvent) float64 {
	age := b.Timestamp.Sub(b.SeedCreatedAt)
	if age < 0 {
		age = 0
	}
	return math.Max(0, math.Exp(-2*age.Seconds()/e.config.AvgTimeToWinner.Seconds()))
}

// accuracy rewards hit rate over raw volume
func (e *ScoringEngine) accuracy(blessings []domain.BlessingEvent) float64 {
	winners := 0
	for _, b := range blessings {
		if b.WasWinner {
			winners++
		}
	}
	return float64(winners) / float64(len(blessings)) * 150
}

// filterTimeframe keeps only the events inside the timeframe window ending now
func filterTimeframe(blessings []domain.BlessingEvent, timeframe domain.Timeframe, now time.Time) []domain.BlessingEvent {
	window, bounded := timeframe.Duration()
	if !bounded {
		return blessings
	}

	cutoff := now.Add(-window)
	filtered := make([]domain.BlessingEvent, 0, len(blessings))
	for _, b := range blessings {
		if !b.Timestamp.Before(cutoff) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func anySince(blessings []domain.BlessingEvent, cutoff time.Time) bool {
	for _, b := range blessings {
		if !b.Timestamp.Before(cutoff) {
			return true
		}
	}
	return false
}
