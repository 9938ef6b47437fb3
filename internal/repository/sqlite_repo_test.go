package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository_Holdings(t *testing.T) {
	testHoldingsStore(t, openTestSQLite(t))
}

func TestSQLiteRepository_Users(t *testing.T) {
	testUserStore(t, openTestSQLite(t))
}
