package blessing_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedgarden/blessing-engine/internal/blessing"
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

const (
	seedContract = "0x00000000000000000000000000000000005eed00"
	blesserOne   = "0x00000000000000000000000000000000000000aa"
	blesserTwo   = "0x00000000000000000000000000000000000000bb"
)

var (
	seedBlessedSig        = crypto.Keccak256Hash([]byte("SeedBlessed(uint256,address,uint256)"))
	seedWinnerSelectedSig = crypto.Keccak256Hash([]byte("SeedWinnerSelected(uint256)"))
)

type testSourceMocks struct {
	ctrl   *gomock.Controller
	client *mocks.MockEthClient
	clock  *mocks.MockClock
	source blessing.EventSource
}

func setupSourceTest(t *testing.T) *testSourceMocks {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	tm := &testSourceMocks{
		ctrl:   ctrl,
		client: mocks.NewMockEthClient(ctrl),
		clock:  mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Unix(gomock.Any(), gomock.Any()).
		DoAndReturn(func(sec, nsec int64) time.Time { return time.Unix(sec, nsec) }).AnyTimes()

	tm.source = blessing.NewChainEventSource(seedContract, tm.client, tm.clock)
	return tm
}

func seedBlessedLog(seedID uint64, blesser string, seedCreatedAt int64, blockNumber uint64) types.Log {
	return types.Log{
		Address: common.HexToAddress(seedContract),
		Topics: []common.Hash{
			seedBlessedSig,
			common.BigToHash(new(big.Int).SetUint64(seedID)),
			common.BytesToHash(common.HexToAddress(blesser).Bytes()),
		},
		Data:        common.BigToHash(big.NewInt(seedCreatedAt)).Bytes(),
		BlockNumber: blockNumber,
	}
}

func seedWinnerLog(seedID uint64, blockNumber uint64) types.Log {
	return types.Log{
		Address: common.HexToAddress(seedContract),
		Topics: []common.Hash{
			seedWinnerSelectedSig,
			common.BigToHash(new(big.Int).SetUint64(seedID)),
		},
		BlockNumber: blockNumber,
	}
}

func header(unixTime uint64) *types.Header {
	return &types.Header{Time: unixTime}
}

func TestEvents_ParsesAndFlagsWinners(t *testing.T) {
	tm := setupSourceTest(t)

	// Block 200 predates block 300; logs arrive out of timestamp order
	logs := []types.Log{
		seedBlessedLog(7, blesserOne, 1700000000, 300),
		seedBlessedLog(3, blesserTwo, 1600000000, 200),
		seedWinnerLog(3, 300),
	}
	tm.client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).Return(logs, nil)
	tm.client.EXPECT().HeaderByNumber(gomock.Any(), big.NewInt(300)).Return(header(1700000500), nil)
	tm.client.EXPECT().HeaderByNumber(gomock.Any(), big.NewInt(200)).Return(header(1600000500), nil)

	events, err := tm.source.Events(context.Background(), 100, 400)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Timestamp order, not log order
	assert.Equal(t, uint64(3), events[0].SeedID)
	assert.Equal(t, blesserTwo, events[0].Blesser)
	assert.True(t, events[0].WasWinner)
	assert.Equal(t, time.Unix(1600000500, 0).UTC(), events[0].Timestamp)
	assert.Equal(t, time.Unix(1600000000, 0).UTC(), events[0].SeedCreatedAt)

	assert.Equal(t, uint64(7), events[1].SeedID)
	assert.Equal(t, blesserOne, events[1].Blesser)
	assert.False(t, events[1].WasWinner)
}

func TestEvents_ResolvesHeaderOncePerBlock(t *testing.T) {
	tm := setupSourceTest(t)

	logs := []types.Log{
		seedBlessedLog(1, blesserOne, 1700000000, 500),
		seedBlessedLog(2, blesserTwo, 1700000100, 500),
	}
	tm.client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).Return(logs, nil)
	tm.client.EXPECT().HeaderByNumber(gomock.Any(), big.NewInt(500)).Return(header(1700000200), nil).Times(1)

	events, err := tm.source.Events(context.Background(), 400, 600)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, events[0].Timestamp, events[1].Timestamp)
}

func TestEvents_SkipsMalformedLogs(t *testing.T) {
	tm := setupSourceTest(t)

	truncated := seedBlessedLog(1, blesserOne, 1700000000, 500)
	truncated.Data = nil

	logs := []types.Log{
		truncated,
		seedBlessedLog(2, blesserTwo, 1700000100, 500),
	}
	tm.client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).Return(logs, nil)
	tm.client.EXPECT().HeaderByNumber(gomock.Any(), big.NewInt(500)).Return(header(1700000200), nil)

	events, err := tm.source.Events(context.Background(), 400, 600)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(2), events[0].SeedID)
}

func TestEvents_RetriesWithSmallerChunks(t *testing.T) {
	tm := setupSourceTest(t)

	gomock.InOrder(
		tm.client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("query returned more than 10000 results")),
		tm.client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
				return []types.Log{seedBlessedLog(1, blesserOne, 1700000000, query.FromBlock.Uint64())}, nil
			}),
	)
	tm.client.EXPECT().HeaderByNumber(gomock.Any(), gomock.Any()).Return(header(1700000200), nil)

	events, err := tm.source.Events(context.Background(), 100, 400)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestEvents_PropagatesHardFailures(t *testing.T) {
	tm := setupSourceTest(t)

	tm.client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	events, err := tm.source.Events(context.Background(), 100, 400)
	assert.Nil(t, events)
	assert.Error(t, err)
}
