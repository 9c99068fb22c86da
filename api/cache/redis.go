package cache

import (
	"context"
	"errors"
	"time"

	"clashfinder/pkg/logger"
	"clashfinder/pkg/redis"
)

const keyPrefix = "clashfinder:"

// RedisClient is the part of the redis client used by the store.
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// RedisStore is a Store shared between every api replica.
// Failures are logged and treated as a miss.
type RedisStore struct {
	client RedisClient
	logger *logger.Logger
}

func NewRedisStore(client RedisClient, log *logger.Logger) *RedisStore {
	if log == nil {
		log = logger.NewNop()
	}
	return &RedisStore{
		client: client,
		logger: log,
	}
}

func (rs *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := rs.client.Get(ctx, keyPrefix+key)
	if err != nil {
		if !errors.Is(err, redis.ErrKeyNotFound) {
			rs.logger.Warnf("Couldn't get key %s from redis: %v", key, err)
		}
		return nil, false
	}
	return []byte(value), true
}

func (rs *RedisStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := rs.client.Set(ctx, keyPrefix+key, value, ttl); err != nil {
		rs.logger.Warnf("Couldn't set key %s on redis: %v", key, err)
	}
}
