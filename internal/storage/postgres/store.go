package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/investigator/internal/config"
	"github.com/cory-johannsen/investigator/internal/storage"
)

// Store keeps records in the records table created by migrations/.
type Store struct {
	db    *pgxpool.Pool
	owned bool
}

// PingTimeout bounds the reachability check made by Open.
const PingTimeout = 5 * time.Second

// Open connects with cfg, checks the database answers within PingTimeout,
// and returns a Store that owns the pool.
//
// Postcondition: Returns a ready Store or a non-nil error; on error no pool
// is left open.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	db, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := NewStore(db)
	s.owned = true
	if err := s.Health(ctx, PingTimeout); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return s, nil
}

// NewStore wraps a pool the caller keeps ownership of; Close leaves it open.
//
// Precondition: db must be non-nil.
func NewStore(db *pgxpool.Pool) *Store {
	if db == nil {
		panic("postgres.NewStore: pool must not be nil")
	}
	return &Store{db: db}
}

// Health pings the database, giving up after timeout.
func (s *Store) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.db.Ping(ctx)
}

// Load returns the payload under key or storage.ErrNotFound.
//
// Postcondition: Returns the stored bytes, storage.ErrNotFound, or a wrapped query error.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRow(ctx, `SELECT payload FROM records WHERE key = $1`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("loading record %q: %w", key, err)
	}
	return payload, nil
}

// Save upserts the payload under key and bumps updated_at.
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO records (key, payload)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = NOW()`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("saving record %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM records WHERE key = $1`, key); err != nil {
		return fmt.Errorf("deleting record %q: %w", key, err)
	}
	return nil
}

// Close closes the pool when the Store opened it.
func (s *Store) Close() error {
	if s.owned {
		s.db.Close()
	}
	return nil
}
