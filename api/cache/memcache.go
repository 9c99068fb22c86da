package cache

import (
	"context"
	"sync"
	"time"
)

// MemCache is a in-memory Store with a cleanup worker for the expired keys.
type MemCache struct {
	memoryCache   sync.Map
	cleanupTicker *time.Ticker
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// Simple cache item.
type MemCacheItem struct {
	value []byte
	ttl   time.Time
}

// NewMemCache creates a new memory cache, cleaned on the given interval.
func NewMemCache(cleanupInterval time.Duration) *MemCache {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	mc := &MemCache{
		cancel:        cancel,
		cleanupTicker: time.NewTicker(cleanupInterval),
		ctx:           ctx,
	}
	mc.startCleanupWorker()

	return mc
}

// startCleanupWorker starts the background worker for memory cleaning.
func (mc *MemCache) startCleanupWorker() {
	mc.wg.Add(1)
	go func() {
		defer mc.wg.Done()
		for {
			select {
			case <-mc.cleanupTicker.C:
				mc.cleanup(time.Now())
			case <-mc.ctx.Done():
				return
			}
		}
	}()
}

// cleanup go through each key and clean any expired key.
func (mc *MemCache) cleanup(now time.Time) {
	mc.memoryCache.Range(func(key, value any) bool {
		item := value.(*MemCacheItem)
		if now.After(item.ttl) {
			mc.memoryCache.Delete(key)
		}
		return true
	})
}

// Len returns how many keys are kept, expired or not.
func (mc *MemCache) Len() int {
	count := 0
	mc.memoryCache.Range(func(key, value any) bool {
		count++
		return true
	})
	return count
}

// Close shutdown the memory cache worker.
func (mc *MemCache) Close() {
	mc.cancel()
	mc.cleanupTicker.Stop()
	mc.wg.Wait()
}

// Get returns a key value of the cache.
func (mc *MemCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, exists := mc.memoryCache.Load(key)
	if !exists {
		return nil, false
	}

	item := value.(*MemCacheItem)

	// If the reset time was reached, remove the cache.
	if time.Now().After(item.ttl) {
		mc.memoryCache.Delete(key)
		return nil, false
	}

	return item.value, true
}

// Put a given key on the cache, the whole value is replaced.
func (mc *MemCache) Put(ctx context.Context, key string, value []byte, ttl time.Duration) {
	mc.memoryCache.Store(key, &MemCacheItem{
		value: value,
		ttl:   time.Now().Add(ttl),
	})
}
