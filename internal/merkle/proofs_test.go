package merkle_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedgarden/blessing-engine/internal/domain"
	"github.com/seedgarden/blessing-engine/internal/merkle"
	"github.com/seedgarden/blessing-engine/internal/mocks"
)

func TestProofProvider_CachesPerSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	ctx := context.Background()

	snapshots := mocks.NewMockSnapshotProvider(ctrl)
	provider := merkle.NewProofProvider(snapshots)

	snap := testSnapshot(t, map[uint64]string{1: holderAddress(0), 2: holderAddress(1)})
	snapshots.EXPECT().Latest(ctx).Return(snap, nil).Times(2)

	first, id, err := provider.Tree(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, id)

	// Same promoted snapshot serves the identical cached tree
	second, _, err := provider.Tree(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestProofProvider_RebuildsOnPromotion(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	ctx := context.Background()

	snapshots := mocks.NewMockSnapshotProvider(ctrl)
	provider := merkle.NewProofProvider(snapshots)

	old := testSnapshot(t, map[uint64]string{1: holderAddress(0)})
	promoted := domain.RestoreSnapshot(&domain.Snapshot{
		ID:              old.ID + "-next",
		ContractAddress: old.ContractAddress,
		TotalSupply:     2,
		BlockNumber:     old.BlockNumber + 1,
		TakenAt:         old.TakenAt,
		Holders: []domain.Holder{
			{Address: holderAddress(0), TokenIDs: []uint64{1, 2}},
		},
	})

	snapshots.EXPECT().Latest(ctx).Return(old, nil)
	snapshots.EXPECT().Latest(ctx).Return(promoted, nil)

	before, _, err := provider.Tree(ctx)
	require.NoError(t, err)

	after, id, err := provider.Tree(ctx)
	require.NoError(t, err)
	assert.Equal(t, promoted.ID, id)
	assert.NotEqual(t, before.Root, after.Root)
}

func TestProofProvider_PropagatesSnapshotError(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	ctx := context.Background()

	snapshots := mocks.NewMockSnapshotProvider(ctrl)
	provider := merkle.NewProofProvider(snapshots)

	snapshots.EXPECT().Latest(ctx).Return(nil, domain.ErrSnapshotUnavailable)

	_, _, _, err := provider.ProofOf(ctx, holderAddress(0))
	assert.ErrorIs(t, err, domain.ErrSnapshotUnavailable)
}
