// Package sqlitestore keeps key-value pairs in a SQLite table. It is an
// alternative to the JSON file backend for users who prefer a single
// database file.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Backend is the SQLite key-value store.
type Backend struct {
	db *DB
}

func New(db *DB) *Backend {
	return &Backend{db: db}
}

// Open opens the database at path, migrates it and returns the backend with
// its DB so the caller can close it.
func Open(ctx context.Context, path string) (*Backend, *DB, error) {
	db, err := NewDB(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	if err := RunMigrations(db.Writer); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return New(db), db, nil
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const query = `SELECT value FROM kv WHERE key = ?`
	var value string
	err := b.db.Reader.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return []byte(value), true, nil
}

func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	const query = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := b.db.Writer.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}
