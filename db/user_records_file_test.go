package db

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zcross091/torncity-bank-bot/models"
)

func newTestFileRepository(t *testing.T) *JSONFileUserRecordsRepository {
	path := filepath.Join(t.TempDir(), "data.json")
	repo, err := NewJSONFileUserRecordsRepository(path)
	require.NoError(t, err)
	return repo
}

func TestJSONFileRepository_CreatesEmptyFile(t *testing.T) {
	repo := newTestFileRepository(t)

	data, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
	assert.Empty(t, repo.Load())
}

func TestJSONFileRepository_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"42": {"key": "abc", "player": "Chedburn"}}`), 0644))

	repo, err := NewJSONFileUserRecordsRepository(path)
	require.NoError(t, err)

	records := repo.Load()
	assert.Equal(t, models.UserRecords{"42": {Key: "abc", PlayerName: "Chedburn"}}, records)
}

func TestJSONFileRepository_LoadTreatsMissingAndCorruptFileAsEmpty(t *testing.T) {
	repo := newTestFileRepository(t)

	require.NoError(t, os.Remove(repo.Path()))
	assert.Empty(t, repo.Load())

	require.NoError(t, os.WriteFile(repo.Path(), []byte(`{not json`), 0644))
	assert.Empty(t, repo.Load())

	option, err := repo.GetUserRecord(context.Background(), "42")
	require.NoError(t, err)
	assert.True(t, option.IsAbsent())
}

func TestJSONFileRepository_UpsertGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestFileRepository(t)

	require.NoError(t, repo.UpsertUserRecord(ctx, "42", models.UserRecord{Key: "first", PlayerName: "Old"}))
	require.NoError(t, repo.UpsertUserRecord(ctx, "42", models.UserRecord{Key: "second", PlayerName: "New"}))
	require.NoError(t, repo.UpsertUserRecord(ctx, "7", models.UserRecord{Key: "other", PlayerName: "Other"}))

	option, err := repo.GetUserRecord(ctx, "42")
	require.NoError(t, err)
	record, ok := option.Get()
	require.True(t, ok)
	assert.Equal(t, "second", record.Key)
	assert.Equal(t, "New", record.PlayerName)

	deleted, err := repo.DeleteUserRecord(ctx, "42")
	require.NoError(t, err)
	assert.True(t, deleted)

	option, err = repo.GetUserRecord(ctx, "42")
	require.NoError(t, err)
	assert.True(t, option.IsAbsent())

	assert.Equal(t, models.UserRecords{"7": {Key: "other", PlayerName: "Other"}}, repo.Load())
}

func TestJSONFileRepository_DeleteMissingLeavesFileUntouched(t *testing.T) {
	ctx := context.Background()
	repo := newTestFileRepository(t)
	require.NoError(t, repo.UpsertUserRecord(ctx, "7", models.UserRecord{Key: "k", PlayerName: "P"}))

	before, err := os.ReadFile(repo.Path())
	require.NoError(t, err)

	deleted, err := repo.DeleteUserRecord(ctx, "42")
	require.NoError(t, err)
	assert.False(t, deleted)

	after, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestJSONFileRepository_SaveWritesOriginalLayout(t *testing.T) {
	repo := newTestFileRepository(t)
	require.NoError(t, repo.Save(models.UserRecords{"42": {Key: "abc", PlayerName: "Chedburn"}}))

	data, err := os.ReadFile(repo.Path())
	require.NoError(t, err)

	var raw map[string]map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "abc", raw["42"]["key"])
	assert.Equal(t, "Chedburn", raw["42"]["player"])

	entries, err := os.ReadDir(filepath.Dir(repo.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}
