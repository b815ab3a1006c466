package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"github.com/Zcross091/torncity-bank-bot/models"
)

// SQLUserRecordsRepository stores user records in the user_records table.
// Queries are written with ? placeholders and rebound for the driver in use.
type SQLUserRecordsRepository struct {
	db *sqlx.DB
}

func NewSQLUserRecordsRepository(db *sqlx.DB) *SQLUserRecordsRepository {
	return &SQLUserRecordsRepository{db: db}
}

func (r *SQLUserRecordsRepository) GetUserRecord(
	ctx context.Context,
	userID string,
) (mo.Option[*models.UserRecord], error) {
	query := r.db.Rebind(`
		SELECT api_key, player_name
		FROM user_records
		WHERE user_id = ?`)

	record := &models.UserRecord{}
	err := r.db.GetContext(ctx, record, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.UserRecord](), nil
		}
		return mo.None[*models.UserRecord](), fmt.Errorf("failed to get user record: %w", err)
	}

	return mo.Some(record), nil
}

func (r *SQLUserRecordsRepository) UpsertUserRecord(
	ctx context.Context,
	userID string,
	record models.UserRecord,
) error {
	query := r.db.Rebind(`
		INSERT INTO user_records (user_id, api_key, player_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			api_key = excluded.api_key,
			player_name = excluded.player_name,
			updated_at = excluded.updated_at`)

	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, query, userID, record.Key, record.PlayerName, now, now); err != nil {
		return fmt.Errorf("failed to upsert user record: %w", err)
	}
	return nil
}

func (r *SQLUserRecordsRepository) DeleteUserRecord(ctx context.Context, userID string) (bool, error) {
	query := r.db.Rebind(`DELETE FROM user_records WHERE user_id = ?`)

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete user record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}
