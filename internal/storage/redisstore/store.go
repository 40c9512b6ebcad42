// Package redisstore provides a storage.Store on go-redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/cory-johannsen/investigator/internal/config"
	"github.com/cory-johannsen/investigator/internal/storage"
)

// Store keeps each record as a plain string value under prefix+key.
type Store struct {
	client *redis.Client
	prefix string
}

// NewClient builds a client from cfg and verifies the server answers.
//
// Postcondition: Returns a connected client or a non-nil error.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewStore returns a Store over client. The Store owns client and closes it
// on Close.
//
// Precondition: client must be non-nil.
func NewStore(client *redis.Client, prefix string) *Store {
	if client == nil {
		panic("redisstore.NewStore: precondition violated: client must be non-nil")
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// Load returns the payload under key or storage.ErrNotFound.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record from Redis: %w", err)
	}
	return data, nil
}

// Save sets the payload under key with no expiry.
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.key(key), string(data), 0).Err(); err != nil {
		return fmt.Errorf("failed to set record in Redis: %w", err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete record from Redis: %w", err)
	}
	return nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}
