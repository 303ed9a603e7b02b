package merkle

import (
	"context"
	"sync"

	"github.com/seedgarden/blessing-engine/internal/domain"
)

// SnapshotSource provides the promoted snapshot proofs are served against
type SnapshotSource interface {
	Latest(ctx context.Context) (*domain.Snapshot, error)
}

// ProofProvider serves membership proofs against the currently promoted
// snapshot. The tree is rebuilt only when the promoted snapshot changes, so
// repeated proof requests hit a cached tree.
type ProofProvider struct {
	snapshots SnapshotSource

	mu         sync.RWMutex
	snapshotID string
	tree       *domain.MerkleTree
}

// NewProofProvider creates a proof provider over the snapshot cache
func NewProofProvider(snapshots SnapshotSource) *ProofProvider {
	return &ProofProvider{snapshots: snapshots}
}

// Tree returns the Merkle tree for the current snapshot along with the
// snapshot ID it was derived from
func (p *ProofProvider) Tree(ctx context.Context) (*domain.MerkleTree, string, error) {
	snap, err := p.snapshots.Latest(ctx)
	if err != nil {
		return nil, "", err
	}

	p.mu.RLock()
	if p.tree != nil && p.snapshotID == snap.ID {
		tree, id := p.tree, p.snapshotID
		p.mu.RUnlock()
		return tree, id, nil
	}
	p.mu.RUnlock()

	tree, err := Build(snap)
	if err != nil {
		return nil, "", err
	}

	p.mu.Lock()
	p.tree = tree
	p.snapshotID = snap.ID
	p.mu.Unlock()

	return tree, snap.ID, nil
}

// ProofOf returns the leaf and sibling path for an address in the current
// snapshot, plus the snapshot ID the proof is valid for
func (p *ProofProvider) ProofOf(ctx context.Context, address string) (string, [32]byte, [][32]byte, error) {
	tree, snapshotID, err := p.Tree(ctx)
	if err != nil {
		return "", [32]byte{}, nil, err
	}

	leaf, proof, err := tree.ProofOf(address)
	if err != nil {
		return "", [32]byte{}, nil, err
	}

	return snapshotID, leaf, proof, nil
}
