// Package blob provides key-value stores for serialized task lists.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("blob not found")

// Store is a key-value store of opaque blobs.
type Store interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the blob stored under key.
	Set(ctx context.Context, key string, data []byte) error

	// Close releases any resources held by the store.
	Close() error
}
