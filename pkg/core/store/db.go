// Package store persists batch extraction runs to Postgres. Persistence
// is opt-in: the pipeline runs without a database, and callers only open
// the pool when a connection URL is configured.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool    *pgxpool.Pool
	once    sync.Once
	initErr error
)

// Open initializes the shared connection pool from the given URL. The
// pool is opened once per process; every caller sees the first attempt's
// outcome.
func Open(ctx context.Context, dbURL string) error {
	once.Do(func() {
		if dbURL == "" {
			initErr = fmt.Errorf("database URL is empty")
			return
		}

		cfg, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			initErr = fmt.Errorf("parse database url: %w", err)
			return
		}

		pool, initErr = pgxpool.NewWithConfig(ctx, cfg)
	})
	return initErr
}

// GetPool returns the shared connection pool, nil before Open succeeds.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the shared connection pool.
func Close() {
	if pool != nil {
		pool.Close()
	}
}
