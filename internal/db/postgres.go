// Package db opens and verifies the connections behind the local
// key-value backends.
package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// kvSchema creates the single table used by store.Postgres.
const kvSchema = `
CREATE TABLE IF NOT EXISTS posting_kv (
	key        TEXT PRIMARY KEY,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// NewPostgresPool creates a pgxpool, pings it and makes sure the
// posting_kv table exists.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "pgxpool.New")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "postgres ping failed")
	}

	if _, err := pool.Exec(ctx, kvSchema); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "create posting_kv")
	}

	return pool, nil
}
