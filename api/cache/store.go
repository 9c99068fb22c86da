package cache

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store is a best effort key value cache.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// NopStore never stores anything.
type NopStore struct{}

func (NopStore) Get(ctx context.Context, key string) ([]byte, bool) {
	return nil, false
}

func (NopStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) {}

// loadTimeout bounds a shared load once it no longer follows its caller.
const loadTimeout = 30 * time.Second

// Memoizer is a read through cache over a Store.
// Concurrent loads of the same key are done once.
type Memoizer struct {
	store Store
	ttl   time.Duration
	group singleflight.Group
}

// NewMemoizer creates a memoizer, a nil store disables the caching.
func NewMemoizer(store Store, ttl time.Duration) *Memoizer {
	if store == nil {
		store = NopStore{}
	}
	return &Memoizer{
		store: store,
		ttl:   ttl,
	}
}

// Memoize returns the cached value of the key or loads it.
// Only successful loads are stored. The shared load is detached from the
// caller, each caller only waits as long as its own context allows.
func Memoize[T any](ctx context.Context, m *Memoizer, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T

	if raw, ok := m.store.Get(ctx, key); ok {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			return value, nil
		}
	}

	ch := m.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		value, err := load(loadCtx)
		if err != nil {
			return value, err
		}

		if raw, err := json.Marshal(value); err == nil {
			m.store.Put(loadCtx, key, raw, m.ttl)
		}
		return value, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case result := <-ch:
		if result.Err != nil {
			return zero, result.Err
		}
		return result.Val.(T), nil
	}
}
