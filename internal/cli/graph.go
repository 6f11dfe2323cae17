package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonnieCache/cargo-open/internal/config"
	"github.com/JonnieCache/cargo-open/pkg/cargo"
	"github.com/JonnieCache/cargo-open/pkg/errors"
	"github.com/JonnieCache/cargo-open/pkg/render"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		meta     metaFlags
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the dependency graph as DOT, SVG, or PNG",
		Long: `Render the resolved dependency graph with Graphviz. Workspace members are
shaded and the root package gets a heavier border.

DOT source goes to stdout unless --output is set, so it pipes straight
into other tools:

  cargo open graph | dot -Tpdf -o deps.pdf

SVG and PNG are rendered in-process and written to --output, which
defaults to cargo-deps.svg or cargo-deps.png.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), &meta, format, output, detailed)
		},
	}

	meta.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg, or png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout for dot, cargo-deps.<format> otherwise)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include license and edition in node labels")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, f *metaFlags, format, output string, detailed bool) error {
	format = strings.ToLower(format)
	if format != "dot" && format != "svg" && format != "png" {
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (expected dot, svg, or png)", format)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	meta, cached, err := c.loadMetadata(ctx, f, cfg, false)
	if err != nil {
		return err
	}

	dot, err := render.ToDOT(meta, render.Options{Detailed: detailed})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build DOT graph")
	}

	if format == "dot" {
		if output == "" {
			fmt.Print(dot)
			return nil
		}
		if err := os.WriteFile(output, []byte(dot), 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
		}
		c.reportGraph(meta, output, cached)
		return nil
	}

	if output == "" {
		output = defaultGraphOutput(format)
	}

	sp := newSpinner(ctx, "Rendering "+strings.ToUpper(format)+"...")
	sp.Start()
	data, err := renderImage(ctx, dot, format)
	if err != nil {
		if ctx.Err() != nil {
			sp.Stop()
			return ctx.Err()
		}
		sp.StopWithError("Rendering failed")
		return errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	sp.StopWithSuccess("Rendered " + strings.ToUpper(format))

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
	}
	c.reportGraph(meta, output, cached)
	return nil
}

func renderImage(ctx context.Context, dot, format string) ([]byte, error) {
	if format == "svg" {
		return render.RenderSVG(ctx, dot)
	}
	return render.RenderPNG(ctx, dot)
}

// defaultGraphOutput names the output file when --output is omitted for
// image formats.
func defaultGraphOutput(format string) string {
	return "cargo-deps." + format
}

func (c *CLI) reportGraph(meta *cargo.Metadata, output string, cached bool) {
	printSuccess("Dependency graph written")
	printFile(output)
	printStats(len(meta.Packages), edgeCount(meta), cached)
}
