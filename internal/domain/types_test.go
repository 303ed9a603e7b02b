package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedgarden/blessing-engine/internal/domain"
)

func TestTimeframe_Duration(t *testing.T) {
	d, bounded := domain.TimeframeDaily.Duration()
	assert.True(t, bounded)
	assert.Equal(t, 24*time.Hour, d)

	d, bounded = domain.TimeframeWeekly.Duration()
	assert.True(t, bounded)
	assert.Equal(t, 7*24*time.Hour, d)

	_, bounded = domain.TimeframeLifetime.Duration()
	assert.False(t, bounded)
}

func TestTimeframe_Valid(t *testing.T) {
	assert.True(t, domain.TimeframeDaily.Valid())
	assert.True(t, domain.TimeframeLifetime.Valid())
	assert.False(t, domain.Timeframe("hourly").Valid())
	assert.False(t, domain.Timeframe("").Valid())
}

func TestPeriodStart_AlignsToUTCMidnight(t *testing.T) {
	at := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), domain.PeriodStart(at))

	// A non-UTC wall time maps to the UTC day it falls in
	est := time.FixedZone("EST", -5*3600)
	at = time.Date(2025, 6, 15, 22, 0, 0, 0, est)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), domain.PeriodStart(at))
}

func TestNewSnapshot_NormalizesAndSorts(t *testing.T) {
	snap := domain.NewSnapshot("01", "0x00000000000000000000000000000000000C0FFE", 900,
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		map[uint64]string{
			9: "0x00000000000000000000000000000000000000AA",
			2: "0x00000000000000000000000000000000000000aa",
			5: "0x00000000000000000000000000000000000000bb",
		})

	require.NoError(t, snap.Validate())
	assert.Equal(t, "0x00000000000000000000000000000000000c0ffe", snap.ContractAddress)
	assert.Equal(t, uint64(3), snap.TotalSupply)

	// Mixed-case owners collapse to one holder with sorted token IDs
	require.Len(t, snap.Holders, 2)
	assert.Equal(t, []uint64{2, 9}, snap.TokenIDsOf("0x00000000000000000000000000000000000000AA"))
	assert.Equal(t, 2, snap.NFTCountOf("0x00000000000000000000000000000000000000aa"))
	assert.Equal(t, 0, snap.NFTCountOf("0x00000000000000000000000000000000000000cc"))
}

func TestSnapshot_ValidateRejectsBadState(t *testing.T) {
	base := domain.NewSnapshot("01", "0x00000000000000000000000000000000000c0ffe", 900,
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		map[uint64]string{1: "0x00000000000000000000000000000000000000aa"})

	empty := *base
	empty.Holders = []domain.Holder{{Address: "0x00000000000000000000000000000000000000aa"}}
	assert.Error(t, empty.Validate())

	uppercase := *base
	uppercase.Holders = []domain.Holder{{Address: "0x00000000000000000000000000000000000000AA", TokenIDs: []uint64{1}}}
	assert.Error(t, uppercase.Validate())

	mismatch := *base
	mismatch.TotalSupply = 7
	assert.Error(t, mismatch.Validate())
}

func TestValidAddress(t *testing.T) {
	assert.True(t, domain.ValidAddress("0x00000000000000000000000000000000000000aa"))
	assert.True(t, domain.ValidAddress("0x00000000000000000000000000000000000000AA"))
	assert.False(t, domain.ValidAddress("0x123"))
	assert.False(t, domain.ValidAddress("not-an-address"))
	assert.False(t, domain.ValidAddress(""))
}
