package cargo

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/JonnieCache/cargo-open/pkg/cache"
	"github.com/JonnieCache/cargo-open/pkg/errors"
)

// missingCargo is a binary name that will never resolve via PATH, so tests
// can prove a code path finishes before cargo would be executed.
const missingCargo = "cargo-open-test-no-such-binary"

func TestMetadataCommandArgs(t *testing.T) {
	tests := []struct {
		name string
		cmd  MetadataCommand
		want []string
	}{
		{
			name: "defaults",
			cmd:  MetadataCommand{},
			want: []string{"metadata", "--format-version", "1"},
		},
		{
			name: "manifest path",
			cmd:  MetadataCommand{ManifestPath: "/work/demo/Cargo.toml"},
			want: []string{"metadata", "--format-version", "1", "--manifest-path", "/work/demo/Cargo.toml"},
		},
		{
			name: "no deps",
			cmd:  MetadataCommand{NoDeps: true},
			want: []string{"metadata", "--format-version", "1", "--no-deps"},
		},
		{
			name: "features",
			cmd:  MetadataCommand{Features: []string{"derive", "rc"}},
			want: []string{"metadata", "--format-version", "1", "--features", "derive,rc"},
		},
		{
			name: "feature toggles",
			cmd:  MetadataCommand{AllFeatures: true, NoDefaultFeatures: true},
			want: []string{"metadata", "--format-version", "1", "--all-features", "--no-default-features"},
		},
		{
			name: "network flags",
			cmd:  MetadataCommand{Offline: true, Locked: true, Frozen: true},
			want: []string{"metadata", "--format-version", "1", "--offline", "--locked", "--frozen"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.args(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCacheKey(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "Cargo.toml")
	writeFile(t, manifest, demoManifest)

	cmd := MetadataCommand{ManifestPath: manifest}
	key1, err := cmd.cacheKey()
	if err != nil {
		t.Fatalf("cacheKey() error: %v", err)
	}
	key2, err := cmd.cacheKey()
	if err != nil {
		t.Fatalf("cacheKey() error: %v", err)
	}
	if key1 != key2 {
		t.Errorf("cacheKey() not deterministic: %s vs %s", key1, key2)
	}

	// Different cargo arguments produce a different key.
	offline := MetadataCommand{ManifestPath: manifest, Offline: true}
	offlineKey, err := offline.cacheKey()
	if err != nil {
		t.Fatalf("cacheKey() error: %v", err)
	}
	if offlineKey == key1 {
		t.Error("offline flag should change the cache key")
	}

	// Editing the manifest produces a different key.
	writeFile(t, manifest, demoManifest+"\n[features]\nextra = []\n")
	editedKey, err := cmd.cacheKey()
	if err != nil {
		t.Fatalf("cacheKey() error: %v", err)
	}
	if editedKey == key1 {
		t.Error("manifest edit should change the cache key")
	}

	// A lockfile appearing produces a different key.
	writeFile(t, filepath.Join(dir, "Cargo.lock"), "# lock\n")
	lockedKey, err := cmd.cacheKey()
	if err != nil {
		t.Fatalf("cacheKey() error: %v", err)
	}
	if lockedKey == editedKey {
		t.Error("lockfile should change the cache key")
	}
}

func TestCacheKeyMissingManifest(t *testing.T) {
	cmd := MetadataCommand{ManifestPath: filepath.Join(t.TempDir(), "Cargo.toml")}
	if _, err := cmd.cacheKey(); !errors.Is(err, errors.ErrCodeManifest) {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeManifest)
	}
}

func TestRunMissingCargo(t *testing.T) {
	cmd := MetadataCommand{CargoPath: missingCargo}
	_, err := cmd.Run(context.Background())
	if !errors.Is(err, errors.ErrCodeCargoUnavailable) {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeCargoUnavailable)
	}
}

func newTestStore(t *testing.T) cache.Cache {
	t.Helper()
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	return store
}

func TestRunCachedHit(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	manifest := filepath.Join(dir, "Cargo.toml")
	writeFile(t, manifest, demoManifest)

	// The cargo binary does not exist, so a result can only come from the
	// cache.
	cmd := MetadataCommand{CargoPath: missingCargo, ManifestPath: manifest}
	key, err := cmd.cacheKey()
	if err != nil {
		t.Fatalf("cacheKey() error: %v", err)
	}

	store := newTestStore(t)
	if err := store.Set(ctx, key, []byte(sampleMetadata), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	meta, cached, err := cmd.RunCached(ctx, store, time.Hour, false)
	if err != nil {
		t.Fatalf("RunCached() error: %v", err)
	}
	if !cached {
		t.Error("expected a cache hit")
	}
	if len(meta.PackagesByName("demo")) != 1 {
		t.Error("cached metadata should contain the demo package")
	}
}

func TestRunCachedCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	manifest := filepath.Join(dir, "Cargo.toml")
	writeFile(t, manifest, demoManifest)

	cmd := MetadataCommand{CargoPath: missingCargo, ManifestPath: manifest}
	key, err := cmd.cacheKey()
	if err != nil {
		t.Fatalf("cacheKey() error: %v", err)
	}

	store := newTestStore(t)
	if err := store.Set(ctx, key, []byte("not json"), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	// The corrupt entry must not be served; the fallthrough to cargo fails
	// because the binary is missing.
	_, _, err = cmd.RunCached(ctx, store, time.Hour, false)
	if !errors.Is(err, errors.ErrCodeCargoUnavailable) {
		t.Fatalf("error = %v, want code %s", err, errors.ErrCodeCargoUnavailable)
	}

	// And it gets evicted on the way.
	if _, hit, _ := store.Get(ctx, key); hit {
		t.Error("corrupt entry should have been deleted")
	}
}

func TestRunCachedRefresh(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	manifest := filepath.Join(dir, "Cargo.toml")
	writeFile(t, manifest, demoManifest)

	cmd := MetadataCommand{CargoPath: missingCargo, ManifestPath: manifest}
	key, err := cmd.cacheKey()
	if err != nil {
		t.Fatalf("cacheKey() error: %v", err)
	}

	store := newTestStore(t)
	if err := store.Set(ctx, key, []byte(sampleMetadata), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	// refresh skips the lookup even though a valid entry exists.
	_, _, err = cmd.RunCached(ctx, store, time.Hour, true)
	if !errors.Is(err, errors.ErrCodeCargoUnavailable) {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeCargoUnavailable)
	}
}

func TestRunCachedWithoutManifestPath(t *testing.T) {
	// No manifest path means no cache key, so the command always runs.
	cmd := MetadataCommand{CargoPath: missingCargo}
	_, cached, err := cmd.RunCached(context.Background(), newTestStore(t), time.Hour, false)
	if !errors.Is(err, errors.ErrCodeCargoUnavailable) {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeCargoUnavailable)
	}
	if cached {
		t.Error("uncached run should not report a cache hit")
	}
}
