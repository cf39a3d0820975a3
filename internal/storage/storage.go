package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/teenfaith/teenfaith/internal/config"
)

// ErrNotFound is returned when a key is absent.
var ErrNotFound = errors.New("key not found")

// KV is a byte-oriented key-value store.
type KV interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// New creates the backend selected in the config.
func New(cfg *config.StorageConfig) (KV, error) {
	if cfg == nil {
		return nil, fmt.Errorf("storage config is required")
	}

	switch cfg.Type {
	case config.StorageTypeSQLite:
		return NewSQLite(cfg.Path)
	case config.StorageTypeMemory:
		return NewMemory(), nil
	case config.StorageTypeRedis:
		return NewRedis(cfg.RedisURL), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
