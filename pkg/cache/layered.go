package cache

import (
	"context"
	"errors"
)

// LayeredCache keeps a bounded in-process copy of what it reads from or
// writes to a slower shared Store.
type LayeredCache struct {
	near *MemoryCache
	far  Store
}

// NewLayeredCache puts an in-memory cache built from opts in front of far.
func NewLayeredCache(far Store, opts ...MemoryOption) *LayeredCache {
	return &LayeredCache{near: NewMemoryCache(opts...), far: far}
}

// Set writes through to far before updating the near copy.
func (lc *LayeredCache) Set(ctx context.Context, key string, value []byte) error {
	if err := lc.far.Set(ctx, key, value); err != nil {
		return err
	}
	return lc.near.Set(ctx, key, value)
}

func (lc *LayeredCache) Get(ctx context.Context, key string) ([]byte, error) {
	if b, err := lc.near.Get(ctx, key); err == nil {
		return b, nil
	}
	b, err := lc.far.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	_ = lc.near.Set(ctx, key, b)
	return b, nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.near.Delete(ctx, keys...)
	return lc.far.Delete(ctx, keys...)
}

func (lc *LayeredCache) Close() error {
	return errors.Join(lc.near.Close(), lc.far.Close())
}
