package schema

import "time"

// BlessingPeriod represents the blessing_periods table - the per-wallet
// rate-limit cache for the current quota period. This is advisory state:
// the on-chain daily counter stays authoritative and the gate reconciles
// against it on period rollover.
type BlessingPeriod struct {
	// WalletAddress is the wallet, lowercase-normalized
	WalletAddress string `gorm:"column:wallet_address;primaryKey;type:text"`
	// NFTCount is the snapshot NFT count the quota was derived from
	NFTCount int `gorm:"column:nft_count;not null"`
	// MaxBlessings is nft_count x blessings_per_nft for the period
	MaxBlessings int `gorm:"column:max_blessings;not null"`
	// UsedBlessings is the confirmed blessings consumed this period
	UsedBlessings int `gorm:"column:used_blessings;not null"`
	// PeriodStart is the UTC-midnight-aligned period start
	PeriodStart time.Time `gorm:"column:period_start;not null;type:timestamptz"`
	// PeriodEnd is period_start + 24h
	PeriodEnd time.Time `gorm:"column:period_end;not null;type:timestamptz"`
	// CreatedAt is the timestamp when this row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the BlessingPeriod model
func (BlessingPeriod) TableName() string {
	return "blessing_periods"
}
