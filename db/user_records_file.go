package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/mo"

	"github.com/Zcross091/torncity-bank-bot/core/log"
	"github.com/Zcross091/torncity-bank-bot/models"
)

// JSONFileUserRecordsRepository keeps every user record in a single JSON file.
// The file is re-read on every call and fully rewritten on every change; there
// is no locking, the last writer wins.
type JSONFileUserRecordsRepository struct {
	path string
}

// NewJSONFileUserRecordsRepository creates the repository and seeds an empty
// mapping if the file does not exist yet
func NewJSONFileUserRecordsRepository(path string) (*JSONFileUserRecordsRepository, error) {
	repo := &JSONFileUserRecordsRepository{path: path}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Info("📋 Data file %s does not exist, creating an empty one", path)
		if err := repo.Save(models.UserRecords{}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat data file: %w", err)
	}

	return repo, nil
}

// Path returns the backing file path
func (r *JSONFileUserRecordsRepository) Path() string {
	return r.path
}

// Load returns the full mapping. A missing or corrupt file is treated as an
// empty store.
func (r *JSONFileUserRecordsRepository) Load() models.UserRecords {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("⚠️ Failed to read data file %s, treating as empty: %v", r.path, err)
		}
		return models.UserRecords{}
	}

	records := models.UserRecords{}
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warn("⚠️ Data file %s is not valid JSON, treating as empty: %v", r.path, err)
		return models.UserRecords{}
	}
	return records
}

// Save overwrites the backing file with the given mapping. The data is written
// to a temp file first and renamed into place.
func (r *JSONFileUserRecordsRepository) Save(records models.UserRecords) error {
	if records == nil {
		records = models.UserRecords{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user records: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp data file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp data file: %w", err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

func (r *JSONFileUserRecordsRepository) GetUserRecord(
	ctx context.Context,
	userID string,
) (mo.Option[*models.UserRecord], error) {
	record, ok := r.Load()[userID]
	if !ok {
		return mo.None[*models.UserRecord](), nil
	}
	return mo.Some(&record), nil
}

func (r *JSONFileUserRecordsRepository) UpsertUserRecord(
	ctx context.Context,
	userID string,
	record models.UserRecord,
) error {
	records := r.Load()
	records[userID] = record
	if err := r.Save(records); err != nil {
		return fmt.Errorf("failed to upsert user record: %w", err)
	}
	return nil
}

func (r *JSONFileUserRecordsRepository) DeleteUserRecord(ctx context.Context, userID string) (bool, error) {
	records := r.Load()
	if _, ok := records[userID]; !ok {
		return false, nil
	}

	delete(records, userID)
	if err := r.Save(records); err != nil {
		return false, fmt.Errorf("failed to delete user record: %w", err)
	}
	return true, nil
}
