package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	importSheet = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// writeConfig creates a config pointing at a fresh SQLite file.
func writeConfig(t *testing.T) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.yml")
	cfg := fmt.Sprintf("database_url: sqlite://%s\nlog_level: error\n", filepath.Join(dir, "products.db"))
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))
	return path
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.yml")

	out, err := runCLI(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var written map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &written))
	assert.Equal(t, "_products_migrations", written["migration_table"])
	assert.Equal(t, ":3001", written["http_addr"])

	// A second run leaves the file alone.
	require.NoError(t, os.WriteFile(path, []byte("database_url: sqlite://keep.db\n"), 0644))
	out, err = runCLI(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "database_url: sqlite://keep.db\n", string(data))
}

func TestMigrateShowRollback(t *testing.T) {
	path := writeConfig(t)

	out, err := runCLI(t, "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Applied Migrations: (none)")
	assert.Contains(t, out, "Current version: (none)")
	assert.Contains(t, out, "create_products")

	out, err = runCLI(t, "migrate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Applied 2 migration(s)")

	out, err = runCLI(t, "migrate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No pending migrations")

	out, err = runCLI(t, "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Pending Migrations: (none)")
	assert.Contains(t, out, "Current version: 202501150900000002")

	out, err = runCLI(t, "rollback", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Rolled back 1 migration(s)")
	assert.Contains(t, out, "add_index_idx_products_available")

	out, err = runCLI(t, "rollback", "5", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Rolled back 1 migration(s)")

	out, err = runCLI(t, "rollback", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No migrations to rollback")
}

func TestRollbackInvalidArgument(t *testing.T) {
	path := writeConfig(t)

	_, err := runCLI(t, "rollback", "zero", "--config", path)
	assert.Error(t, err)

	_, err = runCLI(t, "rollback", "0", "--config", path)
	assert.Error(t, err)
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.yml")
	require.NoError(t, os.WriteFile(path, []byte("database_url: mysql://nope\n"), 0644))

	_, err := runCLI(t, "migrate", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestImportCommand(t *testing.T) {
	path := writeConfig(t)
	_, err := runCLI(t, "migrate", "--config", path)
	require.NoError(t, err)

	f := excelize.NewFile()
	defer f.Close()
	_, err = f.NewSheet("Catalog")
	require.NoError(t, err)
	for i, row := range [][]interface{}{
		{"name", "price"},
		{"Laptop", 999.99},
		{"Broken", "n/a"},
		{"Mouse", 25},
	} {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Catalog", cell, &row))
	}
	xlsx := filepath.Join(t.TempDir(), "products.xlsx")
	require.NoError(t, f.SaveAs(xlsx))

	out, err := runCLI(t, "import", xlsx, "--sheet", "Catalog", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped row 3")
	assert.Contains(t, out, "Imported 2 product(s), skipped 1 row(s)")

	_, err = runCLI(t, "import", filepath.Join(t.TempDir(), "missing.xlsx"), "--config", path)
	assert.Error(t, err)
}
