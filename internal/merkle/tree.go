// Package merkle builds ownership commitments over snapshots. The scheme
// matches an OpenZeppelin-style on-chain verifier: leaves bind an address to
// its exact token-ID set, sibling pairs hash in sorted order so proofs need
// no left/right flags, and an unpaired node is carried to the next level
// unchanged.
package merkle

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/seedgarden/blessing-engine/internal/domain"
)

// Leaf computes the leaf hash for a holder: keccak256 over the 20-byte
// address followed by each owned token ID as a 32-byte big-endian word,
// sorted ascending. Binding the full token set prevents a holder from
// claiming token IDs it did not own at snapshot time.
func Leaf(address string, tokenIDs []uint64) [32]byte {
	sorted := make([]uint64, len(tokenIDs))
	copy(sorted, tokenIDs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	preimage := make([]byte, 0, common.AddressLength+32*len(sorted))
	preimage = append(preimage, common.HexToAddress(address).Bytes()...)
	for _, tokenID := range sorted {
		var word [32]byte
		binary.BigEndian.PutUint64(word[24:], tokenID)
		preimage = append(preimage, word[:]...)
	}

	var leaf [32]byte
	copy(leaf[:], crypto.Keccak256(preimage))
	return leaf
}

// hashPair hashes two nodes in canonical (sorted) order so the scheme is
// commutative
func hashPair(a, b [32]byte) [32]byte {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}

	var node [32]byte
	copy(node[:], crypto.Keccak256(a[:], b[:]))
	return node
}

// Build derives the Merkle tree for a snapshot. The same snapshot always
// yields the same root regardless of holder insertion order: holders are
// sorted by address before leaf assignment. Building from an empty holder
// set fails with ErrEmptyHolderSet, and every generated proof is verified
// against the root before the tree is returned.
func Build(snapshot *domain.Snapshot) (*domain.MerkleTree, error) {
	if snapshot == nil || len(snapshot.Holders) == 0 {
		return nil, domain.ErrEmptyHolderSet
	}

	holders := make([]domain.Holder, len(snapshot.Holders))
	copy(holders, snapshot.Holders)
	sort.Slice(holders, func(i, j int) bool { return holders[i].Address < holders[j].Address })

	leaves := make(map[string][32]byte, len(holders))
	level := make([][32]byte, len(holders))
	for i, holder := range holders {
		leaf := Leaf(holder.Address, holder.TokenIDs)
		leaves[holder.Address] = leaf
		level[i] = leaf
	}

	// Track each holder's node index per level to collect siblings
	positions := make([]int, len(holders))
	for i := range positions {
		positions[i] = i
	}

	proofs := make(map[string][][32]byte, len(holders))
	for _, holder := range holders {
		proofs[holder.Address] = make([][32]byte, 0)
	}

	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, hashPair(level[i], level[i+1]))
			} else {
				// Odd node: carry up unchanged. Duplicating it would
				// silently alter the committed leaf set.
				next = append(next, level[i])
			}
		}

		for h, pos := range positions {
			sibling := pos ^ 1
			if sibling < len(level) {
				proofs[holders[h].Address] = append(proofs[holders[h].Address], level[sibling])
			}
			positions[h] = pos / 2
		}

		level = next
	}

	tree := &domain.MerkleTree{
		Root:   level[0],
		Leaves: leaves,
		Proofs: proofs,
	}

	// Self-check: every proof must reconstruct the root
	for address, leaf := range leaves {
		if !VerifyProof(leaf, proofs[address], tree.Root) {
			return nil, fmt.Errorf("%w: proof for %s does not reconstruct root", domain.ErrTreeConstructionFailed, address)
		}
	}

	return tree, nil
}

// VerifyProof recomputes the root from a leaf and its sibling path using
// canonical pairwise hashing. This mirrors what the on-chain verifier does.
func VerifyProof(leaf [32]byte, proof [][32]byte, root [32]byte) bool {
	node := leaf
	for _, sibling := range proof {
		node = hashPair(node, sibling)
	}
	return node == root
}
