package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JonnieCache/cargo-open/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Editor != "" {
		t.Errorf("Editor = %q, want empty", cfg.Editor)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL.Std() != DefaultTTL {
		t.Errorf("TTL = %v, want %v", cfg.Cache.TTL.Std(), DefaultTTL)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q, want localhost:6379", cfg.Cache.RedisAddr)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Cache.Backend != "file" {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `editor = "code --wait"

[cache]
backend = "redis"
ttl = "1h"
redis_addr = "cache.internal:6379"
dir = "/var/cache/crates"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Editor != "code --wait" {
		t.Errorf("Editor = %q, want code --wait", cfg.Editor)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL.Std() != time.Hour {
		t.Errorf("TTL = %v, want 1h", cfg.Cache.TTL.Std())
	}
	if cfg.Cache.RedisAddr != "cache.internal:6379" {
		t.Errorf("RedisAddr = %q, want cache.internal:6379", cfg.Cache.RedisAddr)
	}
	if cfg.Cache.Dir != "/var/cache/crates" {
		t.Errorf("Dir = %q, want /var/cache/crates", cfg.Cache.Dir)
	}
}

func TestLoadFromPartial(t *testing.T) {
	path := writeConfig(t, `editor = "vim"` + "\n")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Editor != "vim" {
		t.Errorf("Editor = %q, want vim", cfg.Editor)
	}
	// Unset sections keep their defaults.
	if cfg.Cache.Backend != "file" || cfg.Cache.TTL.Std() != DefaultTTL {
		t.Errorf("cache defaults lost: %+v", cfg.Cache)
	}
}

func TestLoadFromMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"broken toml", "[cache\nbackend ="},
		{"bad ttl", "[cache]\nttl = \"never\"\n"},
		{"unknown backend", "[cache]\nbackend = \"memcached\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := LoadFrom(path); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want code %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestPath(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", custom)

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	if path != filepath.Join(custom, AppName, FileName) {
		t.Errorf("Path() = %q, want it under XDG_CONFIG_HOME", path)
	}
}

func TestPathDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if path != filepath.Join(home, ".config", AppName, FileName) {
		t.Errorf("Path() = %q, want ~/.config/%s/%s", path, AppName, FileName)
	}
}

func TestCacheDir(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error: %v", err)
	}
	if dir != filepath.Join(custom, AppName) {
		t.Errorf("CacheDir() = %q, want it under XDG_CACHE_HOME", dir)
	}
}

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if dir != filepath.Join(home, ".cache", AppName) {
		t.Errorf("CacheDir() = %q, want ~/.cache/%s", dir, AppName)
	}
}

func TestLoadMissingEverywhere(t *testing.T) {
	// Point the config home somewhere empty so Load falls back to defaults.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Cache.Backend != "file" {
		t.Error("expected defaults when no config file exists")
	}
}
