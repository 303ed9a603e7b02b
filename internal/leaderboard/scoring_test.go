package leaderboard_test

import (
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/seedgarden/blessing-engine/internal/domain"
	"github.com/seedgarden/blessing-engine/internal/leaderboard"
	"github.com/seedgarden/blessing-engine/internal/logger"
	"github.com/seedgarden/blessing-engine/internal/mocks"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newEngine(t *testing.T) (*leaderboard.ScoringEngine, *mocks.MockClock) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	clock := mocks.NewMockClock(ctrl)
	engine := leaderboard.NewScoringEngine(leaderboard.ScoringConfig{
		BlessingsPerNFT: 1,
		AvgTimeToWinner: 7 * 24 * time.Hour,
	}, clock)

	return engine, clock
}

func TestScore_ZeroBlessings(t *testing.T) {
	engine, clock := newEngine(t)

	for _, nftCount := range []int{0, 1, 1000000} {
		clock.EXPECT().Now().Return(testNow)
		score := engine.Score(domain.WalletStats{NFTCount: nftCount}, domain.TimeframeLifetime)
		assert.Equal(t, int64(0), score, "nftCount=%d", nftCount)
	}
}

func TestScore_VolumeAndWinningScenario(t *testing.T) {
	engine, clock := newEngine(t)

	// 100 blessings, all older than 30 days so no recency multiplier and no
	// 7-day efficiency contribution. 10 are winning blessings cast at the
	// moment of seed creation, so each carries the full early-bird bonus.
	base := testNow.Add(-60 * 24 * time.Hour)
	blessings := make([]domain.BlessingEvent, 0, 100)
	for i := 0; i < 100; i++ {
		blessings = append(blessings, domain.BlessingEvent{
			SeedID:        uint64(i),
			Timestamp:     base.Add(time.Duration(i) * time.Minute),
			SeedCreatedAt: base.Add(time.Duration(i) * time.Minute),
			WasWinner:     i < 10,
		})
	}

	clock.EXPECT().Now().Return(testNow)
	score := engine.Score(domain.WalletStats{NFTCount: 5, Blessings: blessings}, domain.TimeframeLifetime)

	// sqrtVolume = sqrt(100)*50 = 500
	// winningBonus = 10 * 50 * (1 + 1*2) = 1500
	// accuracy = (10/100)*150 = 15
	// efficiency = 0 (nothing in the last 7 days)
	assert.Equal(t, int64(2015), score)
}

func TestScore_TimeframeFiltering(t *testing.T) {
	engine, clock := newEngine(t)

	blessings := []domain.BlessingEvent{
		{SeedID: 1, Timestamp: testNow.Add(-2 * time.Hour), SeedCreatedAt: testNow.Add(-3 * time.Hour)},
		{SeedID: 2, Timestamp: testNow.Add(-30 * time.Hour), SeedCreatedAt: testNow.Add(-31 * time.Hour)},
	}
	stats := domain.WalletStats{NFTCount: 1, Blessings: blessings}

	// Daily keeps only the 2-hour-old blessing:
	// sqrtVolume = sqrt(1)*50 = 50
	// efficiency = min(1, 1/(1*1))*100 = 100 (daysActive clamps up to 1)
	// recency multiplier applies (blessings within 30 days)
	clock.EXPECT().Now().Return(testNow)
	daily := engine.Score(stats, domain.TimeframeDaily)
	assert.Equal(t, int64(195), daily)

	// Weekly sees both blessings
	clock.EXPECT().Now().Return(testNow)
	weekly := engine.Score(stats, domain.TimeframeWeekly)
	assert.Greater(t, weekly, daily)
}

func TestScore_RecencyMultiplier(t *testing.T) {
	engine, clock := newEngine(t)

	// One non-winning blessing 10 days ago: outside the 7-day efficiency
	// window but inside the 30-day recency window.
	recent := domain.WalletStats{NFTCount: 1, Blessings: []domain.BlessingEvent{
		{SeedID: 1, Timestamp: testNow.Add(-10 * 24 * time.Hour)},
	}}
	clock.EXPECT().Now().Return(testNow)
	assert.Equal(t, int64(65), engine.Score(recent, domain.TimeframeLifetime)) // 50 * 1.3

	// Same blessing 40 days ago loses the multiplier
	stale := domain.WalletStats{NFTCount: 1, Blessings: []domain.BlessingEvent{
		{SeedID: 1, Timestamp: testNow.Add(-40 * 24 * time.Hour)},
	}}
	clock.EXPECT().Now().Return(testNow)
	assert.Equal(t, int64(50), engine.Score(stale, domain.TimeframeLifetime))
}

func TestScore_EfficiencyCapped(t *testing.T) {
	engine, clock := newEngine(t)

	// Far more blessings than quota capacity in the last 7 days: the
	// efficiency component must cap at 100.
	blessings := make([]domain.BlessingEvent, 0, 20)
	for i := 0; i < 20; i++ {
		blessings = append(blessings, domain.BlessingEvent{
			SeedID:    uint64(i),
			Timestamp: testNow.Add(-time.Duration(i+1) * time.Hour),
		})
	}

	clock.EXPECT().Now().Return(testNow)
	score := engine.Score(domain.WalletStats{NFTCount: 1, Blessings: blessings}, domain.TimeframeLifetime)

	// sqrtVolume = sqrt(20)*50 ~= 223.607, efficiency = 100, recency 1.3:
	// round((223.607 + 100) * 1.3) = 421
	assert.Equal(t, int64(421), score)
}
