package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonnieCache/cargo-open/internal/config"
	"github.com/JonnieCache/cargo-open/pkg/cargo"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var (
		meta          metaFlags
		workspaceOnly bool
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every crate in the resolved dependency graph",
		Long: `List every crate in the resolved dependency graph, one per line, sorted
by name. Workspace members are highlighted.

With --workspace, only workspace members are listed and cargo runs with
--no-deps, which is much faster for large graphs. With --json the listing
is emitted as a JSON array for scripting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runList(cmd.Context(), &meta, workspaceOnly, asJSON)
		},
	}

	meta.register(cmd)
	cmd.Flags().BoolVar(&workspaceOnly, "workspace", false, "list only workspace members")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the listing as JSON")

	return cmd
}

func (c *CLI) runList(ctx context.Context, f *metaFlags, workspaceOnly, asJSON bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Workspace-only listings never need the resolve graph.
	meta, cached, err := c.loadMetadata(ctx, f, cfg, workspaceOnly)
	if err != nil {
		return err
	}

	rows := listRows(meta, workspaceOnly)

	if asJSON {
		return writeJSON(os.Stdout, rows)
	}

	for _, row := range rows {
		label := fmt.Sprintf("%-44s", row.Label)
		if row.Workspace {
			label = StyleHighlight.Render(label)
		}
		fmt.Println(label + " " + StyleDim.Render(row.Source))
	}

	printNewline()
	printStats(len(rows), edgeCount(meta), cached)
	if !workspaceOnly && len(rows) > 0 {
		printNextStep("Open one", "cargo open <crate>")
	}
	return nil
}

// listRow is one line of list output.
type listRow struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Source    string `json:"source"`
	Dir       string `json:"dir"`
	Workspace bool   `json:"workspace"`

	Label string `json:"-"` // name@version, derived
}

// listRows flattens the metadata into sorted display rows.
func listRows(meta *cargo.Metadata, workspaceOnly bool) []listRow {
	rows := make([]listRow, 0, len(meta.Packages))
	for i := range meta.Packages {
		p := &meta.Packages[i]
		member := meta.IsWorkspaceMember(p.ID)
		if workspaceOnly && !member {
			continue
		}
		rows = append(rows, listRow{
			Name:      p.Name,
			Version:   p.Version,
			Source:    sourceLabel(p),
			Dir:       p.Dir(),
			Workspace: member,
			Label:     p.Label(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Label < rows[j].Label
	})
	return rows
}

// sourceLabel condenses a package's source for display.
func sourceLabel(p *cargo.Package) string {
	switch {
	case p.Source == "":
		return "local"
	case strings.Contains(p.Source, "crates.io-index"):
		return "crates.io"
	case strings.HasPrefix(p.Source, "git+"):
		return "git"
	default:
		return p.Source
	}
}

// edgeCount totals the resolved dependency edges. Zero when the graph was
// produced with --no-deps.
func edgeCount(meta *cargo.Metadata) int {
	if meta.Resolve == nil {
		return 0
	}
	count := 0
	for _, n := range meta.Resolve.Nodes {
		count += len(n.Deps)
	}
	return count
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
