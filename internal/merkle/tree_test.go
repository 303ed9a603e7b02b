package merkle_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedgarden/blessing-engine/internal/domain"
	"github.com/seedgarden/blessing-engine/internal/merkle"
)

const testContract = "0x00000000000000000000000000000000000c0ffe"

func testSnapshot(t *testing.T, owners map[uint64]string) *domain.Snapshot {
	t.Helper()
	snap := domain.NewSnapshot("01TEST", testContract, 100, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), owners)
	require.NoError(t, snap.Validate())
	return snap
}

func holderAddress(i int) string {
	return fmt.Sprintf("0x%040x", i+1)
}

func TestLeaf_TokenOrderIndependent(t *testing.T) {
	addr := holderAddress(0)

	a := merkle.Leaf(addr, []uint64{1, 5, 9})
	b := merkle.Leaf(addr, []uint64{9, 1, 5})
	assert.Equal(t, a, b)
}

func TestLeaf_BindsTokenSet(t *testing.T) {
	addr := holderAddress(0)

	a := merkle.Leaf(addr, []uint64{1, 5})
	b := merkle.Leaf(addr, []uint64{1, 6})
	c := merkle.Leaf(addr, []uint64{1})
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestBuild_EmptyHolderSet(t *testing.T) {
	snap := &domain.Snapshot{ID: "01TEST", ContractAddress: testContract}

	tree, err := merkle.Build(snap)
	assert.Nil(t, tree)
	assert.ErrorIs(t, err, domain.ErrEmptyHolderSet)

	tree, err = merkle.Build(nil)
	assert.Nil(t, tree)
	assert.ErrorIs(t, err, domain.ErrEmptyHolderSet)
}

func TestBuild_SingleHolder(t *testing.T) {
	addr := holderAddress(0)
	snap := testSnapshot(t, map[uint64]string{1: addr, 2: addr})

	tree, err := merkle.Build(snap)
	require.NoError(t, err)

	leaf, proof, err := tree.ProofOf(addr)
	require.NoError(t, err)
	assert.Empty(t, proof)
	assert.Equal(t, tree.Root, leaf)
	assert.True(t, merkle.VerifyProof(leaf, proof, tree.Root))
}

func TestBuild_EveryProofVerifies(t *testing.T) {
	// Odd counts exercise the carried unpaired node at several depths
	for _, holderCount := range []int{2, 3, 4, 5, 7, 8, 9} {
		t.Run(fmt.Sprintf("%d_holders", holderCount), func(t *testing.T) {
			owners := make(map[uint64]string)
			tokenID := uint64(0)
			for i := 0; i < holderCount; i++ {
				// Give holders uneven token counts
				for n := 0; n <= i%3; n++ {
					owners[tokenID] = holderAddress(i)
					tokenID++
				}
			}

			tree, err := merkle.Build(testSnapshot(t, owners))
			require.NoError(t, err)
			require.Len(t, tree.Leaves, holderCount)

			for i := 0; i < holderCount; i++ {
				leaf, proof, err := tree.ProofOf(holderAddress(i))
				require.NoError(t, err)
				assert.True(t, merkle.VerifyProof(leaf, proof, tree.Root),
					"proof for holder %d must reconstruct the root", i)
			}
		})
	}
}

func TestBuild_OrderIndependent(t *testing.T) {
	holders := []domain.Holder{
		{Address: holderAddress(0), TokenIDs: []uint64{1}},
		{Address: holderAddress(1), TokenIDs: []uint64{2, 3}},
		{Address: holderAddress(2), TokenIDs: []uint64{4}},
	}
	reversed := []domain.Holder{holders[2], holders[1], holders[0]}

	forward := domain.RestoreSnapshot(&domain.Snapshot{
		ID: "01A", ContractAddress: testContract, TotalSupply: 4, Holders: holders,
	})
	backward := domain.RestoreSnapshot(&domain.Snapshot{
		ID: "01B", ContractAddress: testContract, TotalSupply: 4, Holders: reversed,
	})

	treeA, err := merkle.Build(forward)
	require.NoError(t, err)
	treeB, err := merkle.Build(backward)
	require.NoError(t, err)

	assert.Equal(t, treeA.Root, treeB.Root)
}

func TestVerifyProof_RejectsTampering(t *testing.T) {
	owners := map[uint64]string{
		1: holderAddress(0),
		2: holderAddress(1),
		3: holderAddress(2),
	}
	tree, err := merkle.Build(testSnapshot(t, owners))
	require.NoError(t, err)

	leaf, proof, err := tree.ProofOf(holderAddress(1))
	require.NoError(t, err)

	// Tampered leaf fails
	badLeaf := leaf
	badLeaf[0] ^= 0xff
	assert.False(t, merkle.VerifyProof(badLeaf, proof, tree.Root))

	// Tampered sibling fails
	require.NotEmpty(t, proof)
	badProof := make([][32]byte, len(proof))
	copy(badProof, proof)
	badProof[0][31] ^= 0x01
	assert.False(t, merkle.VerifyProof(leaf, badProof, tree.Root))

	// Proof for one holder does not verify another holder's leaf
	otherLeaf, _, err := tree.ProofOf(holderAddress(0))
	require.NoError(t, err)
	assert.False(t, merkle.VerifyProof(otherLeaf, proof, tree.Root))
}

func TestProofOf_UnknownAddress(t *testing.T) {
	tree, err := merkle.Build(testSnapshot(t, map[uint64]string{1: holderAddress(0)}))
	require.NoError(t, err)

	_, _, err = tree.ProofOf(holderAddress(9))
	assert.ErrorIs(t, err, domain.ErrProofNotFound)
}
