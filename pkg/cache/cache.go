package cache

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("cache: key not found")
)

// Store keeps opaque byte blobs, such as rendered images, under string keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
