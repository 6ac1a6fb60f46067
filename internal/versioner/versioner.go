package versioner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Record is one applied migration.
type Record struct {
	Version   string    `gorm:"primaryKey;column:version;size:255"`
	Name      string    `gorm:"column:name;size:255"`
	AppliedAt time.Time `gorm:"column:applied_at"`
}

// Versioner tracks applied migrations in a table of its own.
type Versioner struct {
	db    *gorm.DB
	table string
}

// NewVersioner creates a versioner storing records in tableName.
func NewVersioner(db *gorm.DB, tableName string) *Versioner {
	return &Versioner{
		db:    db,
		table: tableName,
	}
}

// WithDB returns a versioner bound to db, typically a transaction.
func (v *Versioner) WithDB(db *gorm.DB) *Versioner {
	return &Versioner{db: db, table: v.table}
}

func (v *Versioner) query(ctx context.Context) *gorm.DB {
	return v.db.WithContext(ctx).Table(v.table)
}

// Initialize creates the tracking table if it does not exist.
func (v *Versioner) Initialize(ctx context.Context) error {
	if err := v.query(ctx).AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}
	return nil
}

// Applied returns every applied migration ordered by version.
func (v *Versioner) Applied(ctx context.Context) ([]Record, error) {
	var records []Record
	if err := v.query(ctx).Order("version ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	return records, nil
}

// AppliedVersions returns the applied versions in ascending order.
func (v *Versioner) AppliedVersions(ctx context.Context) ([]string, error) {
	records, err := v.Applied(ctx)
	if err != nil {
		return nil, err
	}
	versions := make([]string, len(records))
	for i, r := range records {
		versions[i] = r.Version
	}
	return versions, nil
}

func (v *Versioner) RecordApplied(ctx context.Context, version, name string) error {
	record := Record{
		Version:   version,
		Name:      name,
		AppliedAt: time.Now().UTC(),
	}
	if err := v.query(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return nil
}

func (v *Versioner) RemoveApplied(ctx context.Context, version string) error {
	if err := v.query(ctx).Where("version = ?", version).Delete(&Record{}).Error; err != nil {
		return fmt.Errorf("failed to remove migration record: %w", err)
	}
	return nil
}

// LatestVersion returns the newest applied version, or "" when none is applied.
func (v *Versioner) LatestVersion(ctx context.Context) (string, error) {
	var record Record
	err := v.query(ctx).Order("version DESC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get latest version: %w", err)
	}
	return record.Version, nil
}

func (v *Versioner) AppliedCount(ctx context.Context) (int64, error) {
	var count int64
	if err := v.query(ctx).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count applied migrations: %w", err)
	}
	return count, nil
}
