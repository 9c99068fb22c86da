package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clashfinder/pkg/config"

	"github.com/redis/go-redis/v9"
)

// ErrKeyNotFound is returned by Get when the key doesn't exist.
var ErrKeyNotFound = errors.New("redis key not found")

// Type for the client.
type RedisClient struct {
	*redis.Client
}

// NewClient creates a client and verifies the connection.
func NewClient(cfg config.RedisConfiguration) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Host + ":" + cfg.Port,
		Password:     cfg.Password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     100,
		MinIdleConns: 10,
		PoolTimeout:  30 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("couldn't connect to redis at %s:%s: %w", cfg.Host, cfg.Port, err)
	}

	return &RedisClient{Client: client}, nil
}

// Close the client connection.
func (r *RedisClient) Close() error {
	return r.Client.Close()
}

// Wrapper to return the Result directly.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	value, err := r.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	return value, err
}

// Wrapper to already return the .Err()
func (r *RedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return r.Client.Set(ctx, key, value, ttl).Err()
}
