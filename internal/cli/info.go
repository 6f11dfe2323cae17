package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/JonnieCache/cargo-open/internal/config"
	"github.com/JonnieCache/cargo-open/pkg/cargo"
	"github.com/JonnieCache/cargo-open/pkg/registry/crates"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var (
		meta     metaFlags
		pathOnly bool
	)

	cmd := &cobra.Command{
		Use:   "info <crate>[@<version>]",
		Short: "Show details about a crate in the dependency graph",
		Long: `Show details about one crate in the resolved dependency graph: version,
license, source, and the directory the root command would open.

Crates from crates.io are enriched with registry data (latest version,
download counts) unless --offline is set. With --path only the source
directory is printed, for use in scripts:

  cd "$(cargo open info serde --path)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), args[0], &meta, pathOnly)
		},
	}

	meta.register(cmd)
	cmd.Flags().BoolVar(&pathOnly, "path", false, "print only the crate's source directory")

	return cmd
}

func (c *CLI) runInfo(ctx context.Context, raw string, f *metaFlags, pathOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	spec, err := cargo.ParseSpec(raw)
	if err != nil {
		return err
	}

	meta, _, err := c.loadMetadata(ctx, f, cfg, false)
	if err != nil {
		return err
	}

	pkg, err := c.findPackage(meta, spec)
	if err != nil {
		return err
	}

	if pathOnly {
		fmt.Println(pkg.Dir())
		return nil
	}

	printCrateDetails(meta, pkg)

	if sourceLabel(pkg) == "crates.io" && !f.offline {
		c.printRegistryInfo(ctx, cfg, pkg, f.refresh)
	}
	return nil
}

// printCrateDetails prints the locally resolved facts about a crate.
func printCrateDetails(meta *cargo.Metadata, pkg *cargo.Package) {
	fmt.Println(StyleTitle.Render(pkg.Label()))
	if desc := strings.TrimSpace(pkg.Description); desc != "" {
		fmt.Println(StyleDim.Render(desc))
	}
	fmt.Println()

	printKeyValue("version", pkg.Version)
	if pkg.License != "" {
		printKeyValue("license", pkg.License)
	}
	if pkg.Edition != "" {
		printKeyValue("edition", pkg.Edition)
	}
	printKeyValue("source", sourceLabel(pkg))
	if meta.IsWorkspaceMember(pkg.ID) {
		printKeyValue("workspace", "member")
	}
	if pkg.Repository != "" {
		printKeyValue("repository", StyleLink.Render(pkg.Repository))
	}
	if pkg.Homepage != "" && pkg.Homepage != pkg.Repository {
		printKeyValue("homepage", StyleLink.Render(pkg.Homepage))
	}
	if pkg.Documentation != "" {
		printKeyValue("docs", StyleLink.Render(pkg.Documentation))
	}
	printKeyValue("manifest", pkg.ManifestPath)
	printKeyValue("directory", pkg.Dir())
	printKeyValue("dependencies", strconv.Itoa(len(pkg.Dependencies)))
}

// printRegistryInfo enriches the output with crates.io data. Registry
// failures only warn; the local facts have already been printed.
func (c *CLI) printRegistryInfo(ctx context.Context, cfg config.Config, pkg *cargo.Package, refresh bool) {
	store := newStore(cfg, false)
	defer store.Close()

	client := crates.NewClient(store, cfg.Cache.TTL.Std())

	sp := newSpinner(ctx, "Fetching crates.io data...")
	sp.Start()
	info, err := client.FetchCrate(ctx, pkg.Name, refresh)
	sp.Stop()
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		printWarning("crates.io lookup failed: %v", err)
		return
	}

	fmt.Println()
	printKeyValue("latest", info.Latest())
	printKeyValue("downloads", StyleNumber.Render(formatCount(info.Downloads)))
	if info.RecentDownloads > 0 {
		printKeyValue("recent", StyleNumber.Render(formatCount(info.RecentDownloads))+StyleDim.Render(" (90 days)"))
	}

	if latest := info.Latest(); newerVersion(pkg.Version, latest) {
		printNewline()
		printWarning("%s %s is available (%s in this graph)", pkg.Name, latest, pkg.Version)
	}
}

// newerVersion reports whether latest is a strictly newer semver than
// current. Unparseable versions never trigger the upgrade hint.
func newerVersion(current, latest string) bool {
	cur, err := semver.NewVersion(current)
	if err != nil {
		return false
	}
	lat, err := semver.NewVersion(latest)
	if err != nil {
		return false
	}
	return lat.GreaterThan(cur)
}

// formatCount renders a count with thousands separators.
func formatCount(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
