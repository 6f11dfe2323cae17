package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/JonnieCache/cargo-open/pkg/observability"
)

// FileCache stores entries as JSON files under a directory, sharded by key
// digest to keep directory listings small. Entries carry their own
// expiration so stale data is dropped on read without a sweeper process.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache rooted at dir.
// The directory is created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// entry is the on-disk representation of one cached value.
type entry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (e *entry) expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}

// Get reads a value. Corrupt and expired entries count as misses and are
// removed from disk on the way out.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}

	var e entry
	if json.Unmarshal(data, &e) != nil || e.expired() {
		_ = os.Remove(path)
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false, nil
	}

	observability.Cache().OnCacheHit(ctx, key)
	return e.Data, true, nil
}

// Set writes a value. A zero ttl means no expiration.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := entry{Data: data}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	encoded, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return err
	}

	observability.Cache().OnCacheSet(ctx, key, len(data))
	return nil
}

// Delete removes a value. Missing keys are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error { return nil }

// path converts a cache key to a file path. Keys are digested so arbitrary
// characters never reach the filesystem, and the first two digest characters
// form a shard directory so a large cache doesn't pile up in one listing.
func (c *FileCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	name := hex.EncodeToString(sum[:])
	return filepath.Join(c.dir, name[:2], name[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
