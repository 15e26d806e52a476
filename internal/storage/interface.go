package storage

import (
	"context"
)

//go:generate go tool go.uber.org/mock/mockgen -destination=mocks/storage.go -package=mocks . Storage

// Storage is a namespaced key-value store holding opaque values.
// Writes are atomic per key.
type Storage interface {
	// Get returns the value stored under key, or model.ErrRecordNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value stored under key
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
