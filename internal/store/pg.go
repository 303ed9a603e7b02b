package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gowebpki/jcs"
	"gorm.io/gorm"

	"github.com/seedgarden/blessing-engine/internal/domain"
	"github.com/seedgarden/blessing-engine/internal/store/schema"
)

const latestSnapshotKey = "snapshot_pointer:latest"

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates the schema for all store tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.SnapshotArtifact{},
		&schema.BlessingPeriod{},
		&schema.KeyValueStore{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection, applying defaults for zero values
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// canonicalHolders serializes holders to RFC 8785 canonical JSON and returns
// the payload plus its keccak256 checksum. Canonicalization makes the
// checksum independent of map iteration and field ordering quirks.
func canonicalHolders(holders []domain.Holder) ([]byte, string, error) {
	raw, err := json.Marshal(holders)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal holders: %w", err)
	}

	canonical, err := jcs.Transform(raw)
	if err != nil {
		return nil, "", fmt.Errorf("failed to canonicalize holders: %w", err)
	}

	return canonical, hex.EncodeToString(crypto.Keccak256(canonical)), nil
}

// SaveSnapshot persists a snapshot artifact without promoting it
func (s *pgStore) SaveSnapshot(ctx context.Context, snapshot *domain.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("refusing to persist invalid snapshot: %w", err)
	}

	payload, checksum, err := canonicalHolders(snapshot.Holders)
	if err != nil {
		return err
	}

	artifact := schema.SnapshotArtifact{
		ID:              snapshot.ID,
		ContractAddress: snapshot.ContractAddress,
		BlockNumber:     snapshot.BlockNumber,
		TotalSupply:     snapshot.TotalSupply,
		TakenAt:         snapshot.TakenAt,
		Holders:         payload,
		Checksum:        checksum,
	}

	if err := s.db.WithContext(ctx).Create(&artifact).Error; err != nil {
		return fmt.Errorf("failed to persist snapshot artifact: %w", err)
	}

	return nil
}

// PromoteSnapshot flips the "latest" pointer to the given artifact
func (s *pgStore) PromoteSnapshot(ctx context.Context, id string) error {
	var artifact schema.SnapshotArtifact
	if err := s.db.WithContext(ctx).Select("id").Where("id = ?", id).First(&artifact).Error; err != nil {
		return fmt.Errorf("failed to load snapshot artifact %s: %w", id, err)
	}

	kv := schema.KeyValueStore{
		Key:   latestSnapshotKey,
		Value: id,
	}
	if err := s.db.WithContext(ctx).Save(&kv).Error; err != nil {
		return fmt.Errorf("failed to promote snapshot %s: %w", id, err)
	}

	return nil
}

// GetLatestSnapshot returns the currently promoted snapshot
func (s *pgStore) GetLatestSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", latestSnapshotKey).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSnapshotUnavailable
		}
		return nil, fmt.Errorf("failed to read latest snapshot pointer: %w", err)
	}

	return s.GetSnapshot(ctx, kv.Value)
}

// GetSnapshot returns a historical snapshot by artifact ID
func (s *pgStore) GetSnapshot(ctx context.Context, id string) (*domain.Snapshot, error) {
	var artifact schema.SnapshotArtifact
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&artifact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSnapshotUnavailable
		}
		return nil, fmt.Errorf("failed to load snapshot artifact %s: %w", id, err)
	}

	var holders []domain.Holder
	if err := json.Unmarshal(artifact.Holders, &holders); err != nil {
		return nil, fmt.Errorf("failed to unmarshal holders for snapshot %s: %w", id, err)
	}

	snapshot := &domain.Snapshot{
		ID:              artifact.ID,
		ContractAddress: artifact.ContractAddress,
		TotalSupply:     artifact.TotalSupply,
		BlockNumber:     artifact.BlockNumber,
		TakenAt:         artifact.TakenAt.UTC(),
		Holders:         holders,
	}

	return domain.RestoreSnapshot(snapshot), nil
}

// ListSnapshotIDs returns artifact IDs newest-first
func (s *pgStore) ListSnapshotIDs(ctx context.Context, limit int) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&schema.SnapshotArtifact{}).
		Order("id DESC").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot artifacts: %w", err)
	}

	return ids, nil
}

// PruneSnapshots deletes all but the newest keep artifacts, never deleting
// the promoted one
func (s *pgStore) PruneSnapshots(ctx context.Context, keep int) error {
	var promoted string
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", latestSnapshotKey).First(&kv).Error
	if err == nil {
		promoted = kv.Value
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to read latest snapshot pointer: %w", err)
	}

	var keepIDs []string
	err = s.db.WithContext(ctx).
		Model(&schema.SnapshotArtifact{}).
		Order("id DESC").
		Limit(keep).
		Pluck("id", &keepIDs).Error
	if err != nil {
		return fmt.Errorf("failed to list snapshots to retain: %w", err)
	}

	if promoted != "" {
		keepIDs = append(keepIDs, promoted)
	}
	if len(keepIDs) == 0 {
		return nil
	}

	err = s.db.WithContext(ctx).
		Where("id NOT IN ?", keepIDs).
		Delete(&schema.SnapshotArtifact{}).Error
	if err != nil {
		return fmt.Errorf("failed to prune snapshot artifacts: %w", err)
	}

	return nil
}

// GetBlessingPeriod returns the cached rate-limit state for a wallet
func (s *pgStore) GetBlessingPeriod(ctx context.Context, walletAddress string) (*domain.UserBlessingData, error) {
	var row schema.BlessingPeriod
	err := s.db.WithContext(ctx).
		Where("wallet_address = ?", domain.NormalizeAddress(walletAddress)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load blessing period: %w", err)
	}

	return &domain.UserBlessingData{
		WalletAddress: row.WalletAddress,
		NFTCount:      row.NFTCount,
		MaxBlessings:  row.MaxBlessings,
		UsedBlessings: row.UsedBlessings,
		PeriodStart:   row.PeriodStart.UTC(),
		PeriodEnd:     row.PeriodEnd.UTC(),
	}, nil
}

// SaveBlessingPeriod upserts the cached rate-limit state for a wallet
func (s *pgStore) SaveBlessingPeriod(ctx context.Context, data *domain.UserBlessingData) error {
	row := schema.BlessingPeriod{
		WalletAddress: domain.NormalizeAddress(data.WalletAddress),
		NFTCount:      data.NFTCount,
		MaxBlessings:  data.MaxBlessings,
		UsedBlessings: data.UsedBlessings,
		PeriodStart:   data.PeriodStart,
		PeriodEnd:     data.PeriodEnd,
	}

	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save blessing period: %w", err)
	}

	return nil
}
