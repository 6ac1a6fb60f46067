package console

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestPrinterWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Success("Applied %d migration(s)", 2)
	p.Error("boom")
	p.Info("info")
	p.Warning("careful")
	p.Plain("  %s - %s", "1", "create_products")

	expected := "✓ Applied 2 migration(s)\n✗ boom\nℹ info\n⚠ careful\n  1 - create_products\n"
	if buf.String() != expected {
		t.Errorf("Unexpected output:\n%q\nwant:\n%q", buf.String(), expected)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.yml")

	if FileExists(path) {
		t.Error("File should not exist yet")
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if !FileExists(path) {
		t.Error("File should exist")
	}
}
