package database

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.db")
	db, err := Open("sqlite://"+path, quietLogger(), false)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer Close(db)

	if err := Ping(context.Background(), db); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestOpenUnsupported(t *testing.T) {
	if _, err := Open("mysql://localhost/products", quietLogger(), false); err == nil {
		t.Error("Expected error for unsupported URL")
	}
}

func TestPingAfterClose(t *testing.T) {
	db, err := Open("sqlite://:memory:", quietLogger(), true)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := Close(db); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := Ping(context.Background(), db); err == nil {
		t.Error("Ping should fail on a closed database")
	}
}
