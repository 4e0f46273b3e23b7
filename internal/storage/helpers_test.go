package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// createTestDB opens a fresh advice database in a temp dir.
func createTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "advice.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestPrefs(t *testing.T) *Prefs {
	t.Helper()
	p, err := NewPrefs(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}
