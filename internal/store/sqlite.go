package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gitlab.com/yelinaung/expense-ledger/internal/models"
)

// SQLite stores collections in the collections table of a SQLite database
// opened with database.OpenSQLite.
type SQLite struct {
	db *sql.DB
}

// NewSQLite creates a backend on an already migrated database.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Get implements Backend.
func (s *SQLite) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM collections WHERE user_id = ? AND kind = ?
	`, key.UserID, string(key.Kind)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: failed to read %s: %w", models.ErrStoreUnavailable, key, err)
	}
	return []byte(payload), true, nil
}

// Put implements Backend.
func (s *SQLite) Put(ctx context.Context, key Key, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (user_id, kind, payload, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, kind) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, key.UserID, string(key.Kind), string(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", models.ErrStoreUnavailable, key, err)
	}
	return nil
}
