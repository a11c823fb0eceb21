package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/recordscout/sqlite"
	"github.com/stretchr/testify/require"
)

// openDB returns an open in-memory database closed at test end.
func openDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)
		ctx := context.Background()

		var settings int
		err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM settings").Scan(&settings)
		require.NoError(t, err)

		var models int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM models").Scan(&models)
		require.NoError(t, err)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(t.TempDir() + "/recordscout.db")
		require.NoError(t, db.Open())
		defer db.Close()

		var journalMode string
		err := db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})

	t.Run("reopening keeps existing data", func(t *testing.T) {
		t.Parallel()

		path := t.TempDir() + "/recordscout.db"
		ctx := context.Background()

		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		_, err := db.ExecContext(ctx, "INSERT INTO settings (key, value, updated_at) VALUES ('k', 'v', '2024-01-01T00:00:00Z')")
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db = sqlite.NewDB(path)
		require.NoError(t, db.Open())
		defer db.Close()

		var value string
		require.NoError(t, db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = 'k'").Scan(&value))
		require.Equal(t, "v", value)
	})
}
