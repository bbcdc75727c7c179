package testutil

import (
	"context"
	"sync"

	"tasklist/internal/blob"
)

// FakeBlobStore is an in-memory blob.Store with error injection.
type FakeBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte

	// Error injection for testing
	GetErr   error
	SetErr   error
	CloseErr error

	// Sets counts successful writes.
	Sets   int
	Closed bool
}

// NewFakeBlobStore creates an empty FakeBlobStore.
func NewFakeBlobStore() *FakeBlobStore {
	return &FakeBlobStore{blobs: make(map[string][]byte)}
}

// Put stores data under key without counting it as a write.
func (f *FakeBlobStore) Put(key string, data string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = []byte(data)
}

// Blob returns the raw data under key.
func (f *FakeBlobStore) Blob(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.blobs[key]
	return string(data), ok
}

// Get implements blob.Store.
func (f *FakeBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.blobs[key]
	if !ok {
		return nil, blob.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Set implements blob.Store.
func (f *FakeBlobStore) Set(ctx context.Context, key string, data []byte) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = append([]byte(nil), data...)
	f.Sets++
	return nil
}

// Close implements blob.Store.
func (f *FakeBlobStore) Close() error {
	f.Closed = true
	return f.CloseErr
}
