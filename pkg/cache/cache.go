// Package cache provides pluggable storage backends for resolved metadata
// and HTTP responses.
//
// Three backends are available: a file-based cache under the user's cache
// directory (the default), a Redis-backed cache for shared environments, and
// a null cache that disables storage entirely. All backends store opaque
// byte slices under string keys with an optional TTL.
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all storage backends.
//
// Get returns the stored data and whether the key was present. An expired or
// unreadable entry is reported as a miss, not an error. Set with a zero ttl
// stores the entry without expiration.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache discards writes and misses every read. It backs the --no-cache
// flag and the "off" backend.
type NullCache struct{}

// NewNullCache creates a cache that stores nothing.
func NewNullCache() Cache { return &NullCache{} }

func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
