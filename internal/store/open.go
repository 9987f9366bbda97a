package store

import (
	"context"
	"fmt"

	"gitlab.com/yelinaung/expense-ledger/internal/config"
	"gitlab.com/yelinaung/expense-ledger/internal/database"
	"gitlab.com/yelinaung/expense-ledger/internal/logger"
)

// Open connects the backend selected by cfg.StoreDriver, running schema
// migrations for the SQL backends. The returned close function releases
// the connection.
func Open(ctx context.Context, cfg *config.Config) (Backend, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Log.Warn().Msg("Using in-memory store; data will not survive a restart")
		return NewMemory(), func() {}, nil

	case config.StoreSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Log.Debug().Str("path", cfg.SQLitePath).Msg("SQLite store opened")
		return NewSQLite(db), func() {
			if err := db.Close(); err != nil {
				logger.Log.Error().Err(err).Msg("Failed to close SQLite store")
			}
		}, nil

	case config.StorePostgres:
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Log.Debug().Msg("PostgreSQL store opened")
		return NewPostgres(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
