// Package storage defines the opaque key/value persistence the builder
// saves character input through, plus an in-memory implementation.
package storage

import (
	"context"
	"errors"
)

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/cory-johannsen/investigator/internal/storage Store

// ErrNotFound is returned by Load when no record exists under the key.
var ErrNotFound = errors.New("record not found")

// Store persists opaque payloads under string keys. Implementations do not
// interpret the payload.
type Store interface {
	// Load returns the payload saved under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the payload under key.
	Save(ctx context.Context, key string, data []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
