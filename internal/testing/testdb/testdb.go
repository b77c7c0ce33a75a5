// Package testdb opens throwaway stores for service tests
package testdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osse101/TinyWins_Go/internal/database/sqlite"
)

// NewSQLiteStore returns a migrated SQLite store in the test's temp dir,
// closed when the test ends
func NewSQLiteStore(t testing.TB) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "tinywins.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}
