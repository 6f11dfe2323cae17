// Package config loads the tool's optional config file and owns its XDG
// directory layout.
//
// The file lives at $XDG_CONFIG_HOME/cargo-open/config.toml (falling back
// to ~/.config/cargo-open/config.toml) and every setting in it has a
// default, so a missing file is not an error:
//
//	editor = "code --wait"
//
//	[cache]
//	backend = "file"
//	ttl = "24h"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/JonnieCache/cargo-open/pkg/errors"
)

// AppName names the directories this tool claims under the XDG base
// directories.
const AppName = "cargo-open"

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// DefaultTTL is how long cached cargo metadata and registry responses live.
const DefaultTTL = 24 * time.Hour

// Duration decodes TOML strings like "24h" or "90m" via time.ParseDuration.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// CacheConfig controls the metadata and registry caches.
type CacheConfig struct {
	Backend   string   `toml:"backend"`    // "file", "redis", or "off"
	Dir       string   `toml:"dir"`        // file backend directory, empty means the XDG cache dir
	TTL       Duration `toml:"ttl"`        // entry lifetime
	RedisAddr string   `toml:"redis_addr"` // redis backend address
}

// Config is the decoded config.toml.
type Config struct {
	// Editor is launched on crate directories. It sits between the --editor
	// flag and the CARGO_EDITOR/VISUAL/EDITOR variables in precedence.
	Editor string      `toml:"editor"`
	Cache  CacheConfig `toml:"cache"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Backend:   "file",
			TTL:       Duration(DefaultTTL),
			RedisAddr: "localhost:6379",
		},
	}
}

// Path returns the config file location, whether or not the file exists.
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the config file from its standard location. A missing file
// yields the defaults; a file that exists but does not parse is an error.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads a specific config file. Settings absent from the file keep
// their defaults.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed config %s", path)
	}

	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = Duration(DefaultTTL)
	}
	if cfg.Cache.RedisAddr == "" {
		cfg.Cache.RedisAddr = "localhost:6379"
	}
	switch cfg.Cache.Backend {
	case "", "file", "redis", "off":
	default:
		return cfg, errors.New(errors.ErrCodeInvalidInput,
			"unknown cache backend %q in %s (expected file, redis, or off)", cfg.Cache.Backend, path)
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "file"
	}

	return cfg, nil
}

// configDir returns the XDG config directory (~/.config/cargo-open/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// CacheDir returns the XDG cache directory (~/.cache/cargo-open/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
