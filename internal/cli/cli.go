// Package cli implements the cargo-open command-line interface.
//
// The root command resolves the current manifest's dependency graph, finds
// the named crate in it, and launches the configured editor on the crate's
// source directory. Subcommands cover listing and inspecting resolved
// crates, rendering the dependency graph, and managing the metadata cache.
//
// # Commands
//
//   - cargo-open <crate>: resolve a crate and open it in the editor
//   - list: print every crate in the resolved graph
//   - info: show one crate's manifest details
//   - graph: render the dependency graph as DOT, SVG, or PNG
//   - cache: manage the metadata cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging via
// charmbracelet/log. Verbose mode also installs observability hooks that
// trace cache and registry traffic.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/JonnieCache/cargo-open/internal/config"
	"github.com/JonnieCache/cargo-open/pkg/buildinfo"
	"github.com/JonnieCache/cargo-open/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// maxSuggestions caps "did you mean" output after a failed crate lookup.
	maxSuggestions = 5
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered. The root command itself performs the open: cargo invokes
// this binary as `cargo open <crate>`, so the primary operation carries no
// subcommand name.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		editorFlag string
		meta       metaFlags
	)

	root := &cobra.Command{
		Use:   "cargo-open <crate>[@<version>]",
		Short: "Open a dependency's source code in your editor",
		Long: `cargo-open resolves the dependency graph of the current Cargo.toml, finds
the named crate in it, and opens the crate's source directory in your
editor, modelled on bundler's 'bundle open'.

The editor is taken from the first of: the --editor flag, the 'editor'
setting in the config file, $CARGO_EDITOR, $VISUAL, $EDITOR. There is no
built-in default.

When several versions of a crate are in the graph, the highest version
wins; pin one explicitly with name@version. Run without arguments in a
terminal to pick a crate interactively.

Installed as a cargo subcommand, it is invoked as:

  cargo open serde
  cargo open serde@0.8.23
  cargo open rand --manifest-path crates/worker/Cargo.toml`,
		Version:       buildinfo.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOpen(cmd.Context(), args, &meta, editorFlag)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	meta.register(root)
	root.Flags().StringVarP(&editorFlag, "editor", "e", "", "editor command to launch (overrides config and environment)")

	// Register all subcommands
	root.AddCommand(c.listCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Store Factory
// =============================================================================

// newStore builds the cache backend selected by the config, degrading to
// the null cache when the backend cannot be set up.
func newStore(cfg config.Config, noCache bool) cache.Cache {
	if noCache || cfg.Cache.Backend == "off" {
		return cache.NewNullCache()
	}

	if cfg.Cache.Backend == "redis" {
		return cache.NewRedisCache(cfg.Cache.RedisAddr)
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := config.CacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
		dir = d
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return store
}
