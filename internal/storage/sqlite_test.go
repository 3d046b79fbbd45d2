package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewSQLiteStorage(t *testing.T) {
	t.Run("creates missing parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
		store, err := NewSQLiteStorage(path)
		require.NoError(t, err)
		store.Close()
	})

	t.Run("reopening an existing database is fine", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.db")
		store, err := NewSQLiteStorage(path)
		require.NoError(t, err)
		require.NoError(t, store.LogCheck(context.Background(), CheckHistoryEntry{
			RunID: "run-1", PackageName: "alpha", Installed: "1.0", Status: CheckStatusUpToDate,
		}))
		store.Close()

		store, err = NewSQLiteStorage(path)
		require.NoError(t, err)
		defer store.Close()

		entries, err := store.GetAllCheckHistory(context.Background(), 0)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestCheckHistory(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	entries := []CheckHistoryEntry{
		{RunID: "run-1", PackageName: "alpha", Installed: "1.0", Latest: "1.1",
			Status: CheckStatusUpdateAvailable, CheckTime: base},
		{RunID: "run-1", PackageName: "beta", Installed: "2.0", Latest: "2.0",
			Status: CheckStatusUpToDate, CheckTime: base},
		{RunID: "run-2", PackageName: "alpha", Installed: "1.1", Latest: "1.1",
			Status: CheckStatusUpToDate, CheckTime: base.Add(time.Hour)},
	}
	require.NoError(t, store.LogCheckBatch(ctx, entries))

	t.Run("per package, most recent first", func(t *testing.T) {
		got, err := store.GetCheckHistory(ctx, "alpha", 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "run-2", got[0].RunID)
		assert.Equal(t, CheckStatusUpToDate, got[0].Status)
		assert.Equal(t, "run-1", got[1].RunID)
		assert.True(t, got[0].CheckTime.After(got[1].CheckTime))
	})

	t.Run("all packages with limit", func(t *testing.T) {
		got, err := store.GetAllCheckHistory(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "run-2", got[0].RunID)
	})

	t.Run("unknown package yields nothing", func(t *testing.T) {
		got, err := store.GetCheckHistory(ctx, "nope", 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		assert.NoError(t, store.LogCheckBatch(ctx, nil))
	})
}

func TestUpgradeLog(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.LogUpgrade(ctx, UpgradeLogEntry{
		RunID: "run-1", PackageName: "alpha", FromVersion: "1.0", ToVersion: "1.1",
		Success: true, Timestamp: base,
	}))
	require.NoError(t, store.LogUpgrade(ctx, UpgradeLogEntry{
		RunID: "run-1", PackageName: "beta", FromVersion: "2.0", ToVersion: "2.1",
		Success: false, Error: "install failed", Timestamp: base.Add(time.Minute),
	}))

	got, err := store.GetUpgradeLog(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "beta", got[0].PackageName)
	assert.False(t, got[0].Success)
	assert.Equal(t, "install failed", got[0].Error)
	assert.Equal(t, "alpha", got[1].PackageName)
	assert.True(t, got[1].Success)
}

func TestZeroTimestampDefaultsToNow(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	require.NoError(t, store.LogCheck(ctx, CheckHistoryEntry{
		RunID: "run-1", PackageName: "alpha", Installed: "1.0", Status: CheckStatusUpToDate,
	}))

	got, err := store.GetAllCheckHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.WithinDuration(t, time.Now().UTC(), got[0].CheckTime, time.Minute)
}
