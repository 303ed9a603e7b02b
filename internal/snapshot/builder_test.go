package snapshot_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedgarden/blessing-engine/internal/domain"
	"github.com/seedgarden/blessing-engine/internal/logger"
	"github.com/seedgarden/blessing-engine/internal/messaging"
	"github.com/seedgarden/blessing-engine/internal/mocks"
	"github.com/seedgarden/blessing-engine/internal/snapshot"
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
	testContract = "0x00000000000000000000000000000000000c0ffe"
	holderA      = "0x00000000000000000000000000000000000000aa"
	holderB      = "0x00000000000000000000000000000000000000bb"
)

type testBuilderMocks struct {
	ctrl      *gomock.Controller
	client    *mocks.MockCollectionClient
	store     *mocks.MockStore
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	builder   *snapshot.Builder
}

func setupBuilderTest(t *testing.T) *testBuilderMocks {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	tm := &testBuilderMocks{
		ctrl:      ctrl,
		client:    mocks.NewMockCollectionClient(ctrl),
		store:     mocks.NewMockStore(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}
	tm.builder = snapshot.NewBuilder(snapshot.BuilderConfig{
		ContractAddress: testContract,
		WorkerPoolSize:  2,
		HistoryLimit:    3,
	}, tm.client, tm.store, tm.publisher, tm.clock)
	return tm
}

func TestBuild_FullEnumeration(t *testing.T) {
	tm := setupBuilderTest(t)
	ctx := context.Background()
	takenAt := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tm.client.EXPECT().TotalSupply(gomock.Any(), testContract, uint64(900)).Return(uint64(3), nil)
	tm.client.EXPECT().TokenByIndex(gomock.Any(), testContract, uint64(0), uint64(900)).Return(uint64(10), nil)
	tm.client.EXPECT().TokenByIndex(gomock.Any(), testContract, uint64(1), uint64(900)).Return(uint64(11), nil)
	tm.client.EXPECT().TokenByIndex(gomock.Any(), testContract, uint64(2), uint64(900)).Return(uint64(12), nil)
	tm.client.EXPECT().OwnerOf(gomock.Any(), testContract, uint64(10), uint64(900)).Return(holderA, nil)
	tm.client.EXPECT().OwnerOf(gomock.Any(), testContract, uint64(11), uint64(900)).Return(holderA, nil)
	tm.client.EXPECT().OwnerOf(gomock.Any(), testContract, uint64(12), uint64(900)).Return(holderB, nil)
	tm.clock.EXPECT().Now().Return(takenAt)

	var saved *domain.Snapshot
	tm.store.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snap *domain.Snapshot) error {
			saved = snap
			return nil
		})
	tm.store.EXPECT().PromoteSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id string) error {
			require.NotNil(t, saved, "promotion must follow a completed save")
			assert.Equal(t, saved.ID, id)
			return nil
		})
	tm.store.EXPECT().PruneSnapshots(gomock.Any(), 3).Return(nil)

	var published *messaging.SnapshotPromotedEvent
	tm.publisher.EXPECT().PublishSnapshotPromoted(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *messaging.SnapshotPromotedEvent) error {
			published = event
			return nil
		})

	snap, err := tm.builder.Build(ctx, 900)
	require.NoError(t, err)

	assert.Equal(t, uint64(900), snap.BlockNumber)
	assert.Equal(t, uint64(3), snap.TotalSupply)
	assert.Len(t, snap.Holders, 2)
	assert.Equal(t, []uint64{10, 11}, snap.TokenIDsOf(holderA))
	assert.Equal(t, []uint64{12}, snap.TokenIDsOf(holderB))
	assert.Equal(t, takenAt, snap.TakenAt)

	require.NotNil(t, published)
	assert.Equal(t, snap.ID, published.SnapshotID)
	assert.Equal(t, uint64(900), published.BlockNumber)
	assert.Equal(t, 2, published.HolderCount)
	assert.NotEmpty(t, published.MerkleRoot)
}

func TestBuild_ResolvesFinalizedBlock(t *testing.T) {
	tm := setupBuilderTest(t)

	tm.client.EXPECT().FinalizedBlockNumber(gomock.Any()).Return(uint64(777), nil)
	tm.client.EXPECT().TotalSupply(gomock.Any(), testContract, uint64(777)).Return(uint64(1), nil)
	tm.client.EXPECT().TokenByIndex(gomock.Any(), testContract, uint64(0), uint64(777)).Return(uint64(1), nil)
	tm.client.EXPECT().OwnerOf(gomock.Any(), testContract, uint64(1), uint64(777)).Return(holderA, nil)
	tm.clock.EXPECT().Now().Return(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	tm.store.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil)
	tm.store.EXPECT().PromoteSnapshot(gomock.Any(), gomock.Any()).Return(nil)
	tm.store.EXPECT().PruneSnapshots(gomock.Any(), 3).Return(nil)
	tm.publisher.EXPECT().PublishSnapshotPromoted(gomock.Any(), gomock.Any()).Return(nil)

	snap, err := tm.builder.Build(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(777), snap.BlockNumber)
}

func TestBuild_OwnerLookupFailureIsAtomic(t *testing.T) {
	tm := setupBuilderTest(t)

	tm.client.EXPECT().TotalSupply(gomock.Any(), testContract, uint64(900)).Return(uint64(3), nil)
	tm.client.EXPECT().TokenByIndex(gomock.Any(), testContract, gomock.Any(), uint64(900)).
		DoAndReturn(func(_ context.Context, _ string, index, _ uint64) (uint64, error) {
			return index + 10, nil
		}).AnyTimes()
	tm.client.EXPECT().OwnerOf(gomock.Any(), testContract, gomock.Any(), uint64(900)).
		Return("", errors.New("execution reverted")).AnyTimes()

	// No store or publisher expectations: a failed enumeration writes nothing

	snap, err := tm.builder.Build(context.Background(), 900)
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, domain.ErrOwnershipLookupFailed)
}

func TestRollback_RepromotesPredecessor(t *testing.T) {
	tm := setupBuilderTest(t)
	ctx := context.Background()

	current := domain.NewSnapshot("03", testContract, 900,
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), map[uint64]string{1: holderA})
	previous := domain.NewSnapshot("02", testContract, 800,
		time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), map[uint64]string{1: holderA})

	tm.store.EXPECT().GetLatestSnapshot(ctx).Return(current, nil)
	tm.store.EXPECT().ListSnapshotIDs(ctx, 4).Return([]string{"03", "02", "01"}, nil)
	tm.store.EXPECT().PromoteSnapshot(ctx, "02").Return(nil)
	tm.store.EXPECT().GetSnapshot(ctx, "02").Return(previous, nil)
	tm.publisher.EXPECT().PublishSnapshotPromoted(gomock.Any(), gomock.Any()).Return(nil)

	snap, err := tm.builder.Rollback(ctx)
	require.NoError(t, err)
	assert.Equal(t, "02", snap.ID)
	assert.Equal(t, uint64(800), snap.BlockNumber)
}

func TestRollback_NoPredecessor(t *testing.T) {
	tm := setupBuilderTest(t)
	ctx := context.Background()

	current := domain.NewSnapshot("01", testContract, 900,
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), map[uint64]string{1: holderA})

	tm.store.EXPECT().GetLatestSnapshot(ctx).Return(current, nil)
	tm.store.EXPECT().ListSnapshotIDs(ctx, 4).Return([]string{"01"}, nil)

	snap, err := tm.builder.Rollback(ctx)
	assert.Nil(t, snap)
	assert.Error(t, err)
}
