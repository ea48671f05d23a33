package migration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add invoice notes", "add_invoice_notes"},
		{"Add-Invoice-Notes", "add_invoice_notes"},
		{"ADD__INVOICE__NOTES", "add_invoice_notes"},
		{"index 2 audit", "index_2_audit"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
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

func TestCreate(t *testing.T) {
	dir := t.TempDir()

	f, err := Create(dir, "add invoice notes", "Free text notes on invoices", created)
	require.NoError(t, err)

	assert.Equal(t, uint(1), f.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_invoice_notes.up.sql"), f.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_add_invoice_notes.down.sql"), f.DownPath)

	up, err := os.ReadFile(f.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: add_invoice_notes")
	assert.Contains(t, string(up), "-- Free text notes on invoices")
	assert.Contains(t, string(up), "2024-05-10T09:00:00Z")

	down, err := os.ReadFile(f.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "-- Rollback: add_invoice_notes")
}

func TestCreate_NumbersAfterExisting(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"000001_init_schema.up.sql", "000001_init_schema.down.sql", "000004_audit_index.up.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	f, err := Create(dir, "invoice due index", "", created)
	require.NoError(t, err)
	assert.Equal(t, uint(5), f.Version)
	assert.Equal(t, "000005_invoice_due_index.up.sql", filepath.Base(f.UpPath))
}

func TestCreate_RejectsEmptyName(t *testing.T) {
	_, err := Create(t.TempDir(), "!!!", "", created)
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		files, err := List(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("ordered by version", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"000010_later.up.sql", "000002_second.up.sql", "000002_second.down.sql", "notes_x.up.sql"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
		}

		files, err := List(dir)
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, uint(2), files[0].Version)
		assert.Equal(t, "second", files[0].Name)
		assert.Equal(t, uint(10), files[1].Version)
	})

	t.Run("repository migrations", func(t *testing.T) {
		files, err := List(filepath.Join("..", "..", "..", "migrations"))
		require.NoError(t, err)
		require.NotEmpty(t, files)
		assert.Equal(t, uint(1), files[0].Version)
		assert.Equal(t, "init_schema", files[0].Name)
		_, err = os.Stat(files[0].DownPath)
		assert.NoError(t, err)
	})
}
