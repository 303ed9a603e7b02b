package leaderboard

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/seedgarden/blessing-engine/internal/blessing"
	"github.com/seedgarden/blessing-engine/internal/domain"
	"github.com/seedgarden/blessing-engine/internal/snapshot"
)

// BuilderConfig holds configuration for the leaderboard builder
type BuilderConfig struct {
	// FromBlock is the seed contract deployment block, the lower bound for
	// event scans
	FromBlock uint64
}

// Builder assembles ranked leaderboard rows from the current ownership
// snapshot and the chain blessing history. Rows are derived per query and
// never persisted.
type Builder struct {
	config    BuilderConfig
	snapshots snapshot.Provider
	events    blessing.EventSource
	scoring   *ScoringEngine
}

// NewBuilder creates a leaderboard builder
func NewBuilder(config BuilderConfig, snapshots snapshot.Provider, events blessing.EventSource, scoring *ScoringEngine) *Builder {
	return &Builder{
		config:    config,
		snapshots: snapshots,
		events:    events,
		scoring:   scoring,
	}
}

// Build returns the leaderboard for the given timeframe, ranked by score
// descending. Wallets scoring zero are dropped. Ties rank the wallet whose
// first blessing came earlier ahead, then fall back to address order so equal
// inputs always produce the same ordering. With no snapshot promoted yet the
// board degrades to an empty result with a reason instead of an error.
func (b *Builder) Build(ctx context.Context, timeframe domain.Timeframe) (*domain.Leaderboard, error) {
	snap, err := b.snapshots.Latest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotUnavailable) {
			return &domain.Leaderboard{
				Timeframe: timeframe,
				Entries:   []domain.LeaderboardEntry{},
				Reason:    domain.ReasonSnapshotUnavailable,
			}, nil
		}
		return nil, err
	}

	events, err := b.events.Events(ctx, b.config.FromBlock, snap.BlockNumber)
	if err != nil {
		return nil, err
	}

	byWallet := make(map[string][]domain.BlessingEvent)
	for _, e := range events {
		addr := domain.NormalizeAddress(e.Blesser)
		byWallet[addr] = append(byWallet[addr], e)
	}

	type row struct {
		entry domain.LeaderboardEntry
		first time.Time
	}

	rows := make([]row, 0, len(byWallet))
	for addr, history := range byWallet {
		stats := domain.WalletStats{
			Address:   addr,
			NFTCount:  snap.NFTCountOf(addr),
			Blessings: history,
		}

		score := b.scoring.Score(stats, timeframe)
		if score == 0 {
			continue
		}

		winners := 0
		for _, e := range history {
			if e.WasWinner {
				winners++
			}
		}

		entry := domain.LeaderboardEntry{
			Address:          addr,
			NFTCount:         stats.NFTCount,
			BlessingCount:    len(history),
			WinningBlessings: winners,
			Score:            score,
			CurationAccuracy: float64(winners) / float64(len(history)),
		}
		if stats.NFTCount > 0 {
			entry.BlessingEfficiency = float64(len(history)) / float64(stats.NFTCount)
		}

		// history is timestamp-ordered by the event source
		rows = append(rows, row{entry: entry, first: history[0].Timestamp})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].entry.Score != rows[j].entry.Score {
			return rows[i].entry.Score > rows[j].entry.Score
		}
		if !rows[i].first.Equal(rows[j].first) {
			return rows[i].first.Before(rows[j].first)
		}
		return rows[i].entry.Address < rows[j].entry.Address
	})

	entries := make([]domain.LeaderboardEntry, len(rows))
	for i, r := range rows {
		r.entry.Rank = i + 1
		entries[i] = r.entry
	}

	return &domain.Leaderboard{Timeframe: timeframe, Entries: entries}, nil
}

// WalletScore computes a single wallet's score for the given timeframe.
// Unranked wallets and degraded boards return a zero-score entry.
func (b *Builder) WalletScore(ctx context.Context, walletAddress string, timeframe domain.Timeframe) (*domain.LeaderboardEntry, error) {
	addr := domain.NormalizeAddress(walletAddress)

	board, err := b.Build(ctx, timeframe)
	if err != nil {
		return nil, err
	}
	if board.Reason != "" {
		return &domain.LeaderboardEntry{Address: addr, Reason: board.Reason}, nil
	}

	for i := range board.Entries {
		if board.Entries[i].Address == addr {
			return &board.Entries[i], nil
		}
	}

	snap, err := b.snapshots.Latest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotUnavailable) {
			return &domain.LeaderboardEntry{Address: addr, Reason: domain.ReasonSnapshotUnavailable}, nil
		}
		return nil, err
	}

	return &domain.LeaderboardEntry{
		Address:  addr,
		NFTCount: snap.NFTCountOf(addr),
	}, nil
}
