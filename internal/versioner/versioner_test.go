package versioner

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testTable = "_test_migrations"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func setupVersioner(t *testing.T) *Versioner {
	ver := NewVersioner(setupTestDB(t), testTable)
	if err := ver.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return ver
}

func isApplied(t *testing.T, ver *Versioner, version string) bool {
	t.Helper()
	versions, err := ver.AppliedVersions(context.Background())
	if err != nil {
		t.Fatalf("AppliedVersions failed: %v", err)
	}
	for _, v := range versions {
		if v == version {
			return true
		}
	}
	return false
}

func TestInitialize(t *testing.T) {
	db := setupTestDB(t)
	ver := NewVersioner(db, testTable)

	if err := ver.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	// A second call is a no-op.
	if err := ver.Initialize(context.Background()); err != nil {
		t.Fatalf("Second Initialize failed: %v", err)
	}

	if !db.Migrator().HasTable(testTable) {
		t.Fatal("Tracking table should exist")
	}
}

func TestRecordApplied(t *testing.T) {
	ver := setupVersioner(t)
	ctx := context.Background()

	if err := ver.RecordApplied(ctx, "202501150900000001", "create_products"); err != nil {
		t.Fatalf("RecordApplied failed: %v", err)
	}

	if !isApplied(t, ver, "202501150900000001") {
		t.Error("Migration should be marked as applied")
	}

	records, err := ver.Applied(ctx)
	if err != nil {
		t.Fatalf("Applied failed: %v", err)
	}
	if len(records) != 1 || records[0].Name != "create_products" {
		t.Fatalf("Unexpected records: %+v", records)
	}
	if records[0].AppliedAt.IsZero() {
		t.Error("AppliedAt should be set")
	}
}

func TestRecordAppliedTwiceFails(t *testing.T) {
	ver := setupVersioner(t)
	ctx := context.Background()

	if err := ver.RecordApplied(ctx, "1", "first"); err != nil {
		t.Fatalf("RecordApplied failed: %v", err)
	}
	if err := ver.RecordApplied(ctx, "1", "again"); err == nil {
		t.Error("Recording the same version twice should fail")
	}
}

func TestAppliedVersionsOrder(t *testing.T) {
	ver := setupVersioner(t)
	ctx := context.Background()

	for _, v := range []string{"20250103000000", "20250101000000", "20250102000000"} {
		if err := ver.RecordApplied(ctx, v, "test_"+v); err != nil {
			t.Fatalf("RecordApplied failed: %v", err)
		}
	}

	applied, err := ver.AppliedVersions(ctx)
	if err != nil {
		t.Fatalf("AppliedVersions failed: %v", err)
	}

	expected := []string{"20250101000000", "20250102000000", "20250103000000"}
	if len(applied) != len(expected) {
		t.Fatalf("Expected %d applied versions, got %d", len(expected), len(applied))
	}
	for i, v := range applied {
		if v != expected[i] {
			t.Errorf("Expected version '%s' at index %d, got '%s'", expected[i], i, v)
		}
	}
}

func TestRemoveApplied(t *testing.T) {
	ver := setupVersioner(t)
	ctx := context.Background()

	if err := ver.RecordApplied(ctx, "20250101000000", "test"); err != nil {
		t.Fatalf("RecordApplied failed: %v", err)
	}
	if err := ver.RemoveApplied(ctx, "20250101000000"); err != nil {
		t.Fatalf("RemoveApplied failed: %v", err)
	}

	if isApplied(t, ver, "20250101000000") {
		t.Error("Migration should not be applied after removal")
	}
}

func TestLatestVersionAndCount(t *testing.T) {
	ver := setupVersioner(t)
	ctx := context.Background()

	latest, err := ver.LatestVersion(ctx)
	if err != nil {
		t.Fatalf("LatestVersion failed: %v", err)
	}
	if latest != "" {
		t.Errorf("Expected empty string, got '%s'", latest)
	}

	for _, v := range []string{"20250101000000", "20250103000000", "20250102000000"} {
		if err := ver.RecordApplied(ctx, v, "test_"+v); err != nil {
			t.Fatalf("RecordApplied failed: %v", err)
		}
	}

	latest, err = ver.LatestVersion(ctx)
	if err != nil {
		t.Fatalf("LatestVersion failed: %v", err)
	}
	if latest != "20250103000000" {
		t.Errorf("Expected latest version '20250103000000', got '%s'", latest)
	}

	count, err := ver.AppliedCount(ctx)
	if err != nil {
		t.Fatalf("AppliedCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected count 3, got %d", count)
	}
}

func TestWithDBUsesTransaction(t *testing.T) {
	db := setupTestDB(t)
	ver := NewVersioner(db, testTable)
	ctx := context.Background()
	if err := ver.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	_ = db.Transaction(func(tx *gorm.DB) error {
		if err := ver.WithDB(tx).RecordApplied(ctx, "1", "rolled_back"); err != nil {
			t.Fatalf("RecordApplied failed: %v", err)
		}
		return gorm.ErrInvalidTransaction
	})

	count, err := ver.AppliedCount(ctx)
	if err != nil {
		t.Fatalf("AppliedCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected rolled back record, got count %d", count)
	}
}
