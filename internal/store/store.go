// Package store provides a SQLite-backed key-value store for ledger snapshots.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/banktally/internal/persist"

	_ "modernc.org/sqlite" // register sqlite driver
)

// KV is a persist.Gateway backed by a single SQLite table.
type KV struct {
	db *sql.DB
}

var (
	_ persist.Gateway     = (*KV)(nil)
	_ persist.BatchSetter = (*KV)(nil)
	_ persist.Deleter     = (*KV)(nil)
)

// Open opens or creates the database at dbPath.
func Open(dbPath string) (*KV, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &KV{db: db}, nil
}

// Close closes the database.
func (s *KV) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key.
func (s *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *KV) Set(ctx context.Context, key, value string) error {
	return s.SetAll(ctx, map[string]string{key: value})
}

// SetAll writes every entry in one transaction.
func (s *KV) SetAll(ctx context.Context, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for k, v := range values {
		_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO kv (key, value, updated_at)
			VALUES (?, ?, ?)`, k, v, now)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes key.
func (s *KV) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
	return err
}

// UpdatedAt returns when key was last written.
func (s *KV) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	var ts string
	err := s.db.QueryRowContext(ctx, "SELECT updated_at FROM kv WHERE key = ?", key).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing updated_at: %w", err)
	}
	return t, true, nil
}
