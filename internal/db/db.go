// Package db provides PostgreSQL storage for analyzed profiles.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS profiles (
	username       TEXT PRIMARY KEY,
	analysis_id    UUID NOT NULL,
	followers      BIGINT NOT NULL DEFAULT 0,
	following      BIGINT NOT NULL DEFAULT 0,
	posts          BIGINT NOT NULL DEFAULT 0,
	bio            TEXT NOT NULL DEFAULT '',
	avatar_url     TEXT,
	captions       TEXT[] NOT NULL DEFAULT '{}',
	flag           TEXT NOT NULL,
	reasoning      TEXT NOT NULL DEFAULT '',
	red_flags      TEXT[] NOT NULL DEFAULT '{}',
	green_flags    TEXT[] NOT NULL DEFAULT '{}',
	message_opener TEXT NOT NULL DEFAULT '',
	analyzed_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the profiles table if it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to create profiles table: %w", err)
	}
	return nil
}
