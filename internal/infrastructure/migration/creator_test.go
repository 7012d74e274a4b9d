package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add stock entries", "add_stock_entries"},
		{"Create-Vending-Mappings", "create_vending_mappings"},
		{"ADD_COMPOSITE_RECIPES", "add_composite_recipes"},
		{"index__sales__transactions", "index_sales_transactions"},
		{"Add Slot 2", "add_slot_2"},
		{"   spaces   ", "spaces"},
		{"drop!@#$indexes", "dropindexes"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add stock entries", "Daily opening and closing ledger per store and device")
	require.NoError(t, err)

	// Wall-clock version, YYYYMMDDHHMMSS
	assert.Len(t, mf.Version, 14)
	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_stock_entries.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_stock_entries.down.sql"))

	upBase := strings.TrimSuffix(filepath.Base(mf.UpPath), ".up.sql")
	downBase := strings.TrimSuffix(filepath.Base(mf.DownPath), ".down.sql")
	assert.Equal(t, upBase, downBase)

	upContent, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(upContent), "add stock entries")
	assert.Contains(t, string(upContent), "Daily opening and closing ledger")

	downContent, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(downContent), "revert: add stock entries")
}

func TestCreateMigration_NoDescription(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "tighten slot index", "")
	require.NoError(t, err)

	upContent, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(upContent), "tighten slot index")
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "db", "migrations")

	mf, err := CreateMigration(nested, "add sales transactions", "")
	require.NoError(t, err)
	require.NotNil(t, mf)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	files := []string{
		"20260301100000_create_sales_transactions.up.sql",
		"20260301100000_create_sales_transactions.down.sql",
		"20260301100100_create_mapping_tables.up.sql",
		"20260301100100_create_mapping_tables.down.sql",
		"20260301100200_create_stock_entries.up.sql",
		"20260301100200_create_stock_entries.down.sql",
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- sql"), 0o644))
	}

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"20260301100000_create_sales_transactions",
		"20260301100100_create_mapping_tables",
		"20260301100200_create_stock_entries",
	}, migrations)
}

func TestListMigrations_EmptyAndMissing(t *testing.T) {
	migrations, err := ListMigrations(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, migrations)

	migrations, err = ListMigrations(filepath.Join(t.TempDir(), "never_created"))
	require.NoError(t, err)
	assert.Empty(t, migrations)
}

func TestListMigrations_IgnoresStrays(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260301100000_create_sales_transactions.up.sql"), []byte("-- sql"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260301100000_create_sales_transactions.down.sql"), []byte("-- sql"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("schema notes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitkeep"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0o755))

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"20260301100000_create_sales_transactions"}, migrations)
}
