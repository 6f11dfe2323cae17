package cargo

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/JonnieCache/cargo-open/pkg/cache"
	"github.com/JonnieCache/cargo-open/pkg/errors"
)

// MetadataCommand configures one `cargo metadata` invocation.
//
// The zero value runs `cargo metadata --format-version 1` in the current
// directory with cargo's own manifest discovery. Flags map one-to-one onto
// cargo's flags of the same name.
type MetadataCommand struct {
	CargoPath         string // cargo binary to run, "cargo" when empty
	ManifestPath      string // --manifest-path; empty uses cargo's discovery
	Dir               string // working directory for the subprocess
	NoDeps            bool   // --no-deps: workspace members only, no resolve graph
	Offline           bool
	Locked            bool
	Frozen            bool
	AllFeatures       bool
	NoDefaultFeatures bool
	Features          []string

	// Logger receives debug output (the composed command line). Optional.
	Logger func(format string, args ...any)
}

func (c *MetadataCommand) cargo() string {
	if c.CargoPath != "" {
		return c.CargoPath
	}
	return "cargo"
}

func (c *MetadataCommand) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger(format, args...)
	}
}

// args composes the cargo argument list for this command.
func (c *MetadataCommand) args() []string {
	args := []string{"metadata", "--format-version", "1"}
	if c.ManifestPath != "" {
		args = append(args, "--manifest-path", c.ManifestPath)
	}
	if c.NoDeps {
		args = append(args, "--no-deps")
	}
	if len(c.Features) > 0 {
		args = append(args, "--features", strings.Join(c.Features, ","))
	}
	if c.AllFeatures {
		args = append(args, "--all-features")
	}
	if c.NoDefaultFeatures {
		args = append(args, "--no-default-features")
	}
	if c.Offline {
		args = append(args, "--offline")
	}
	if c.Locked {
		args = append(args, "--locked")
	}
	if c.Frozen {
		args = append(args, "--frozen")
	}
	return args
}

// Run executes cargo metadata and decodes the resulting graph.
//
// A missing cargo binary is CARGO_UNAVAILABLE. A non-zero cargo exit is
// MANIFEST_ERROR carrying cargo's stderr, which already names the manifest
// and the problem. Context cancellation surfaces as the context's error.
func (c *MetadataCommand) Run(ctx context.Context) (*Metadata, error) {
	raw, err := c.run(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeMetadata(raw)
}

func (c *MetadataCommand) run(ctx context.Context) ([]byte, error) {
	bin, err := exec.LookPath(c.cargo())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCargoUnavailable, err,
			"cargo executable %q not found in PATH", c.cargo())
	}

	args := c.args()
	c.logf("running %s %s", bin, strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = c.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "cargo metadata failed"
		}
		return nil, errors.Wrap(errors.ErrCodeManifest, err, "%s", msg)
	}
	return stdout.Bytes(), nil
}

// RunCached is Run with a cache in front. The boolean result reports whether
// the graph came from the cache.
//
// Caching requires an explicit ManifestPath (the key hashes the manifest
// contents); without one the command runs uncached. refresh bypasses the
// lookup but still stores the fresh result.
func (c *MetadataCommand) RunCached(ctx context.Context, store cache.Cache, ttl time.Duration, refresh bool) (*Metadata, bool, error) {
	if c.ManifestPath == "" {
		meta, err := c.Run(ctx)
		return meta, false, err
	}

	key, err := c.cacheKey()
	if err != nil {
		return nil, false, err
	}

	if !refresh {
		if data, hit, _ := store.Get(ctx, key); hit {
			meta, err := DecodeMetadata(data)
			if err == nil {
				return meta, true, nil
			}
			_ = store.Delete(ctx, key)
		}
	}

	raw, err := c.run(ctx)
	if err != nil {
		return nil, false, err
	}
	meta, err := DecodeMetadata(raw)
	if err != nil {
		return nil, false, err
	}
	_ = store.Set(ctx, key, raw, ttl)
	return meta, false, nil
}

// cacheKey derives a content-addressed key from the cargo arguments, the
// manifest, and the lockfile. Editing either file changes the key, so stale
// entries are never served; they age out via the TTL.
func (c *MetadataCommand) cacheKey() (string, error) {
	manifest, err := readManifest(c.ManifestPath)
	if err != nil {
		return "", err
	}

	parts := append(c.args(), c.ManifestPath, string(manifest))
	if lockPath, ok := FindLockfile(c.ManifestPath); ok {
		if lock, err := readManifest(lockPath); err == nil {
			parts = append(parts, string(lock))
		}
	}
	return cache.Key("metadata", parts...), nil
}
