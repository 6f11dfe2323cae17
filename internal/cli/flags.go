package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/JonnieCache/cargo-open/internal/config"
	"github.com/JonnieCache/cargo-open/pkg/cargo"
)

// metaFlags are the flags shared by every command that resolves the
// dependency graph. They map onto `cargo metadata` flags plus the cache
// controls.
type metaFlags struct {
	manifestPath      string
	offline           bool
	locked            bool
	frozen            bool
	allFeatures       bool
	noDefaultFeatures bool
	features          []string
	noCache           bool
	refresh           bool
}

// register adds the shared flags to cmd.
func (f *metaFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.manifestPath, "manifest-path", "", "path to Cargo.toml (default: found by searching upward)")
	flags.BoolVar(&f.offline, "offline", false, "run cargo without network access")
	flags.BoolVar(&f.locked, "locked", false, "require Cargo.lock to be up to date")
	flags.BoolVar(&f.frozen, "frozen", false, "equivalent to --locked --offline")
	flags.StringSliceVar(&f.features, "features", nil, "features to activate, comma-separated")
	flags.BoolVar(&f.allFeatures, "all-features", false, "activate all available features")
	flags.BoolVar(&f.noDefaultFeatures, "no-default-features", false, "do not activate default features")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable the metadata cache")
	flags.BoolVar(&f.refresh, "refresh", false, "bypass the cache and store a fresh result")
}

// resolveManifest turns the --manifest-path flag into an absolute manifest
// location, falling back to the upward search from the working directory.
func resolveManifest(flag string) (string, error) {
	if flag != "" {
		return cargo.ResolveManifestPath(flag)
	}
	return cargo.LocateManifest("")
}

// loadMetadata resolves the manifest, validates that it decodes, and runs
// cargo metadata through the configured cache. The boolean result reports
// whether the graph came from the cache.
//
// The manifest is inspected before cargo runs so malformed files fail fast
// with a readable error instead of surfacing as cargo stderr.
func (c *CLI) loadMetadata(ctx context.Context, f *metaFlags, cfg config.Config, noDeps bool) (*cargo.Metadata, bool, error) {
	manifest, err := resolveManifest(f.manifestPath)
	if err != nil {
		return nil, false, err
	}

	if _, err := cargo.InspectManifest(manifest); err != nil {
		return nil, false, err
	}

	store := newStore(cfg, f.noCache)
	defer store.Close()

	cmd := cargo.MetadataCommand{
		ManifestPath:      manifest,
		NoDeps:            noDeps,
		Offline:           f.offline,
		Locked:            f.locked,
		Frozen:            f.frozen,
		AllFeatures:       f.allFeatures,
		NoDefaultFeatures: f.noDefaultFeatures,
		Features:          f.features,
		Logger:            c.Logger.Debugf,
	}

	sp := newSpinner(ctx, "Resolving dependency graph...")
	sp.Start()

	meta, cached, err := cmd.RunCached(ctx, store, cfg.Cache.TTL.Std(), f.refresh)
	if err != nil {
		if ctx.Err() != nil {
			sp.Stop()
			return nil, false, ctx.Err()
		}
		sp.StopWithError("Resolving dependency graph failed")
		return nil, false, err
	}
	sp.Stop()

	if ctx.Err() != nil {
		return nil, false, ctx.Err()
	}

	c.Logger.Debugf("resolved %d crates from %s (cached=%v)", len(meta.Packages), manifest, cached)
	return meta, cached, nil
}
