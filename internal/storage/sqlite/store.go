// Package sqlite provides a file-backed storage.Store on modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cory-johannsen/investigator/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	key        TEXT    PRIMARY KEY,
	payload    BLOB    NOT NULL,
	updated_at INTEGER NOT NULL
);`

// Store persists records in a single SQLite table.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
//
// Precondition: path must be non-empty.
// Postcondition: Returns a ready Store or a non-nil error.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Load returns the payload under key or storage.ErrNotFound.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT payload FROM records WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load record %q: %w", key, err)
	}
	return payload, nil
}

// Save upserts the payload under key.
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO records (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save record %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete record %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
