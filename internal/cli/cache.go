package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JonnieCache/cargo-open/internal/config"
)

// cacheCommand groups the cache maintenance subcommands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the metadata and registry cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear all cached metadata and registry responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCachePath()
		},
	})

	return cmd
}

func (c *CLI) runCacheClear() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Cache.Backend == "redis" {
		printWarning("Cache backend is redis; only the local file cache is cleared")
	}

	dir, err := effectiveCacheDir(cfg)
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	count, err := clearDir(dir)
	if err != nil {
		return err
	}

	printSuccess("Cleared %d cached entries", count)
	printDetail("Directory: %s", dir)
	return nil
}

func (c *CLI) runCachePath() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dir, err := effectiveCacheDir(cfg)
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	fmt.Println(dir)
	return nil
}

// effectiveCacheDir resolves the file cache directory: the configured
// override when set, otherwise the XDG default.
func effectiveCacheDir(cfg config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return config.CacheDir()
}

// clearDir removes every file under dir, prunes the emptied shard
// directories, and reports how many files went away. Entries that cannot
// be read or removed are skipped rather than aborting the clear.
func clearDir(dir string) (int, error) {
	var files, subdirs []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == dir {
			return nil
		}
		if d.IsDir() {
			subdirs = append(subdirs, path)
		} else {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, f := range files {
		if os.Remove(f) == nil {
			count++
		}
	}
	// Deepest directories first so emptied parents can go too.
	for i := len(subdirs) - 1; i >= 0; i-- {
		_ = os.Remove(subdirs[i])
	}
	return count, nil
}
