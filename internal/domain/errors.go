package domain

import "errors"

var (
	// ErrSnapshotUnavailable is returned when no ownership snapshot has ever
	// been produced
	ErrSnapshotUnavailable = errors.New("no ownership snapshot available")

	// ErrOwnershipLookupFailed is returned when owner enumeration fails for a
	// subset of tokens during a snapshot build
	ErrOwnershipLookupFailed = errors.New("ownership lookup failed")

	// ErrProofNotFound is returned when a wallet owns no tokens in the snapshot
	ErrProofNotFound = errors.New("proof not found")

	// ErrRateLimitIndeterminate is returned when the authoritative usage
	// counter cannot be read and local state is too stale to trust
	ErrRateLimitIndeterminate = errors.New("rate limit state indeterminate")

	// ErrTreeConstructionFailed is returned when the Merkle self-check fails
	ErrTreeConstructionFailed = errors.New("merkle tree construction failed")

	// ErrEmptyHolderSet is returned when building a Merkle tree from a
	// snapshot with no holders
	ErrEmptyHolderSet = errors.New("empty holder set")
)
