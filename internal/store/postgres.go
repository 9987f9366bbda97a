package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"gitlab.com/yelinaung/expense-ledger/internal/database"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
)

// Postgres stores collections as JSONB rows in PostgreSQL.
type Postgres struct {
	db database.PGXDB
}

// NewPostgres creates a backend on a migrated pool or transaction.
func NewPostgres(db database.PGXDB) *Postgres {
	return &Postgres{db: db}
}

// Get implements Backend.
func (p *Postgres) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	var payload []byte
	err := p.db.QueryRow(ctx, `
		SELECT payload FROM collections WHERE user_id = $1 AND kind = $2
	`, key.UserID, string(key.Kind)).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: failed to read %s: %w", models.ErrStoreUnavailable, key, err)
	}
	return payload, true, nil
}

// Put implements Backend.
func (p *Postgres) Put(ctx context.Context, key Key, payload []byte) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO collections (user_id, kind, payload, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, kind) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = NOW()
	`, key.UserID, string(key.Kind), string(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", models.ErrStoreUnavailable, key, err)
	}
	return nil
}
