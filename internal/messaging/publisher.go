package messaging

import (
	"context"
	"time"
)

// SnapshotPromotedEvent announces that a new ownership snapshot became the
// published one
type SnapshotPromotedEvent struct {
	SnapshotID      string    `json:"snapshot_id"`
	ContractAddress string    `json:"contract_address"`
	BlockNumber     uint64    `json:"block_number"`
	TotalSupply     uint64    `json:"total_supply"`
	HolderCount     int       `json:"holder_count"`
	MerkleRoot      string    `json:"merkle_root"`
	TakenAt         time.Time `json:"taken_at"`
}

// BlessingConfirmedEvent announces a confirmed blessing submission
type BlessingConfirmedEvent struct {
	WalletAddress string    `json:"wallet_address"`
	UsedBlessings int       `json:"used_blessings"`
	MaxBlessings  int       `json:"max_blessings"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}

// Publisher defines the interface for publishing engine events to the
// message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishSnapshotPromoted publishes a snapshot promotion event
	PublishSnapshotPromoted(ctx context.Context, event *SnapshotPromotedEvent) error
	// PublishBlessingConfirmed publishes a blessing confirmation event
	PublishBlessingConfirmed(ctx context.Context, event *BlessingConfirmedEvent) error
	// Close closes the connection
	Close()
}
