package schema

import (
	"time"

	"gorm.io/datatypes"
)

// SnapshotArtifact represents the snapshot_artifacts table - the versioned,
// append-only ownership snapshots. Rows are never updated; a new snapshot is
// a new row and the "latest" pointer in key_value_store decides which one
// readers see.
type SnapshotArtifact struct {
	// ID is a ULID, so lexicographic order is creation order
	ID string `gorm:"column:id;primaryKey;type:text"`
	// ContractAddress is the reference collection, lowercase-normalized
	ContractAddress string `gorm:"column:contract_address;not null;type:text;index:idx_snapshot_artifacts_contract"`
	// BlockNumber is the height the ownership was enumerated at
	BlockNumber uint64 `gorm:"column:block_number;not null"`
	// TotalSupply is the number of tokens in the snapshot
	TotalSupply uint64 `gorm:"column:total_supply;not null"`
	// TakenAt is when the snapshot was built
	TakenAt time.Time `gorm:"column:taken_at;not null;type:timestamptz"`
	// Holders is the canonicalized holder payload ([{address, token_ids}])
	Holders datatypes.JSON `gorm:"column:holders;not null;type:jsonb"`
	// Checksum is the keccak256 of the RFC 8785 canonical holder payload
	Checksum string `gorm:"column:checksum;not null;type:text"`
	// CreatedAt is the row insertion time
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the SnapshotArtifact model
func (SnapshotArtifact) TableName() string {
	return "snapshot_artifacts"
}
