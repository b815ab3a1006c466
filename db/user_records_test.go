package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zcross091/torncity-bank-bot/models"
)

func newTestSQLiteRepository(t *testing.T) *SQLUserRecordsRepository {
	dbPath := filepath.Join(t.TempDir(), "bankbot.db")
	conn, err := NewConnection(DriverSQLite, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewSQLUserRecordsRepository(conn)
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	_, err := NewConnection("mysql", "whatever")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestRunMigrations_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bankbot.db")
	conn, err := NewConnection(DriverSQLite, dbPath)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, RunMigrations(DriverSQLite, dbPath))
}

func TestSQLRepository_UpsertGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLiteRepository(t)

	option, err := repo.GetUserRecord(ctx, "42")
	require.NoError(t, err)
	assert.True(t, option.IsAbsent())

	require.NoError(t, repo.UpsertUserRecord(ctx, "42", models.UserRecord{Key: "first", PlayerName: "Old"}))
	require.NoError(t, repo.UpsertUserRecord(ctx, "42", models.UserRecord{Key: "second", PlayerName: "New"}))

	option, err = repo.GetUserRecord(ctx, "42")
	require.NoError(t, err)
	record, ok := option.Get()
	require.True(t, ok)
	assert.Equal(t, &models.UserRecord{Key: "second", PlayerName: "New"}, record)

	deleted, err := repo.DeleteUserRecord(ctx, "42")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteUserRecord(ctx, "42")
	require.NoError(t, err)
	assert.False(t, deleted)
}
