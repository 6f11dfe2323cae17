package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JonnieCache/cargo-open/pkg/observability"
)

// RedisCache stores entries in a Redis instance. Useful when several machines
// or CI jobs should share one metadata cache. Expiration is delegated to
// Redis via per-key TTLs.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed cache talking to addr
// (host:port, e.g. "localhost:6379"). The connection is established lazily;
// a wrong address surfaces on first use, not here.
func NewRedisCache(addr string) Cache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	observability.Cache().OnCacheHit(ctx, key)
	return data, true, nil
}

// Set stores a value in Redis. A zero ttl stores the key without expiration.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
	return nil
}

// Delete removes a value from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close closes the underlying Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
