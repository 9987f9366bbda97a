package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXDB is the query surface shared by pgxpool.Pool and pgx.Tx, so the
// collection backend can run against a pool in production and a
// rolled-back transaction in tests.
type PGXDB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ PGXDB = (*pgxpool.Pool)(nil)
	_ PGXDB = (pgx.Tx)(nil)
)
