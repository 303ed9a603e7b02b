package leaderboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedgarden/blessing-engine/internal/domain"
	"github.com/seedgarden/blessing-engine/internal/leaderboard"
	"github.com/seedgarden/blessing-engine/internal/mocks"
)

type testLeaderboardMocks struct {
	ctrl      *gomock.Controller
	snapshots *mocks.MockSnapshotProvider
	events    *mocks.MockEventSource
	clock     *mocks.MockClock
	builder   *leaderboard.Builder
}

func setupLeaderboardTest(t *testing.T) *testLeaderboardMocks {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	snapshots := mocks.NewMockSnapshotProvider(ctrl)
	events := mocks.NewMockEventSource(ctrl)
	clock := mocks.NewMockClock(ctrl)

	scoring := leaderboard.NewScoringEngine(leaderboard.ScoringConfig{
		BlessingsPerNFT: 1,
		AvgTimeToWinner: 7 * 24 * time.Hour,
	}, clock)

	return &testLeaderboardMocks{
		ctrl:      ctrl,
		snapshots: snapshots,
		events:    events,
		clock:     clock,
		builder:   leaderboard.NewBuilder(leaderboard.BuilderConfig{FromBlock: 100}, snapshots, events, scoring),
	}
}

const (
	walletA = "0x000000000000000000000000000000000000000a"
	walletB = "0x000000000000000000000000000000000000000b"
	walletC = "0x000000000000000000000000000000000000000c"
)

func TestLeaderboard_RanksAndDropsZeroScores(t *testing.T) {
	tm := setupLeaderboardTest(t)
	ctx := context.Background()

	snap := domain.NewSnapshot("01TEST", "0x00000000000000000000000000000000000c0ffe", 900,
		testNow.Add(-time.Hour), map[uint64]string{1: walletA, 2: walletB, 3: walletC})
	tm.snapshots.EXPECT().Latest(ctx).Return(snap, nil)

	history := []domain.BlessingEvent{
		// walletA: two blessings, one winner
		{SeedID: 1, Blesser: walletA, Timestamp: testNow.Add(-2 * time.Hour), SeedCreatedAt: testNow.Add(-3 * time.Hour), WasWinner: true},
		{SeedID: 2, Blesser: walletA, Timestamp: testNow.Add(-1 * time.Hour), SeedCreatedAt: testNow.Add(-2 * time.Hour)},
		// walletB: one blessing, no winners
		{SeedID: 3, Blesser: walletB, Timestamp: testNow.Add(-4 * time.Hour), SeedCreatedAt: testNow.Add(-5 * time.Hour)},
		// walletC: only a blessing far outside the daily window
		{SeedID: 4, Blesser: walletC, Timestamp: testNow.Add(-10 * 24 * time.Hour), SeedCreatedAt: testNow.Add(-11 * 24 * time.Hour)},
	}
	tm.events.EXPECT().Events(ctx, uint64(100), snap.BlockNumber).Return(history, nil)
	tm.clock.EXPECT().Now().Return(testNow).AnyTimes()

	board, err := tm.builder.Build(ctx, domain.TimeframeDaily)
	require.NoError(t, err)
	assert.Empty(t, board.Reason)

	// walletC scored zero in the daily window and is dropped
	entries := board.Entries
	require.Len(t, entries, 2)
	assert.Equal(t, walletA, entries[0].Address)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[0].BlessingCount)
	assert.Equal(t, 1, entries[0].WinningBlessings)
	assert.Equal(t, walletB, entries[1].Address)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Greater(t, entries[0].Score, entries[1].Score)
}

func TestLeaderboard_TieBreakByFirstBlessingThenAddress(t *testing.T) {
	tm := setupLeaderboardTest(t)
	ctx := context.Background()

	snap := domain.NewSnapshot("01TEST", "0x00000000000000000000000000000000000c0ffe", 900,
		testNow.Add(-time.Hour), map[uint64]string{1: walletA, 2: walletB, 3: walletC})
	tm.snapshots.EXPECT().Latest(ctx).Return(snap, nil)

	at := testNow.Add(-2 * time.Hour)
	earlier := testNow.Add(-3 * time.Hour)
	history := []domain.BlessingEvent{
		// walletC blessed first; walletA and walletB are identical
		{SeedID: 1, Blesser: walletC, Timestamp: earlier, SeedCreatedAt: earlier},
		{SeedID: 2, Blesser: walletB, Timestamp: at, SeedCreatedAt: at},
		{SeedID: 3, Blesser: walletA, Timestamp: at, SeedCreatedAt: at},
	}
	tm.events.EXPECT().Events(ctx, uint64(100), snap.BlockNumber).Return(history, nil)
	tm.clock.EXPECT().Now().Return(testNow).AnyTimes()

	board, err := tm.builder.Build(ctx, domain.TimeframeLifetime)
	require.NoError(t, err)
	entries := board.Entries
	require.Len(t, entries, 3)

	// All three scores are equal; walletC wins on the earlier first
	// blessing, then address order decides between walletA and walletB.
	assert.Equal(t, entries[0].Score, entries[1].Score)
	assert.Equal(t, entries[1].Score, entries[2].Score)
	assert.Equal(t, walletC, entries[0].Address)
	assert.Equal(t, walletA, entries[1].Address)
	assert.Equal(t, walletB, entries[2].Address)
}

func TestLeaderboard_DegradesWithoutSnapshot(t *testing.T) {
	tm := setupLeaderboardTest(t)
	ctx := context.Background()

	// Before the first snapshot promotion nobody scores; the read still
	// succeeds with an empty board and a machine-readable reason.
	tm.snapshots.EXPECT().Latest(ctx).Return(nil, domain.ErrSnapshotUnavailable)

	board, err := tm.builder.Build(ctx, domain.TimeframeLifetime)
	require.NoError(t, err)
	assert.Empty(t, board.Entries)
	assert.NotNil(t, board.Entries)
	assert.Equal(t, domain.TimeframeLifetime, board.Timeframe)
	assert.Equal(t, domain.ReasonSnapshotUnavailable, board.Reason)
}

func TestLeaderboard_StorageFailurePropagates(t *testing.T) {
	tm := setupLeaderboardTest(t)
	ctx := context.Background()

	tm.snapshots.EXPECT().Latest(ctx).Return(nil, errors.New("connection refused"))

	board, err := tm.builder.Build(ctx, domain.TimeframeLifetime)
	assert.Nil(t, board)
	assert.Error(t, err)
}

func TestWalletScore_DegradesWithoutSnapshot(t *testing.T) {
	tm := setupLeaderboardTest(t)
	ctx := context.Background()

	tm.snapshots.EXPECT().Latest(ctx).Return(nil, domain.ErrSnapshotUnavailable)

	entry, err := tm.builder.WalletScore(ctx, walletA, domain.TimeframeDaily)
	require.NoError(t, err)
	assert.Equal(t, walletA, entry.Address)
	assert.Equal(t, int64(0), entry.Score)
	assert.Equal(t, 0, entry.NFTCount)
	assert.Equal(t, domain.ReasonSnapshotUnavailable, entry.Reason)
}

func TestWalletScore_UnrankedWallet(t *testing.T) {
	tm := setupLeaderboardTest(t)
	ctx := context.Background()

	snap := domain.NewSnapshot("01TEST", "0x00000000000000000000000000000000000c0ffe", 900,
		testNow.Add(-time.Hour), map[uint64]string{1: walletA})
	tm.snapshots.EXPECT().Latest(ctx).Return(snap, nil).Times(2)
	tm.events.EXPECT().Events(ctx, uint64(100), snap.BlockNumber).Return(nil, nil)

	entry, err := tm.builder.WalletScore(ctx, walletA, domain.TimeframeLifetime)
	require.NoError(t, err)
	assert.Equal(t, walletA, entry.Address)
	assert.Equal(t, 1, entry.NFTCount)
	assert.Equal(t, int64(0), entry.Score)
	assert.Equal(t, 0, entry.Rank)
}
