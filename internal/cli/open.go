package cli

import (
	"context"
	"os"
	"strings"

	"github.com/JonnieCache/cargo-open/internal/config"
	"github.com/JonnieCache/cargo-open/pkg/cargo"
	"github.com/JonnieCache/cargo-open/pkg/editor"
	"github.com/JonnieCache/cargo-open/pkg/errors"
)

// runOpen implements the root command: resolve the graph, find the crate,
// and launch the editor on its source directory. With no argument and an
// interactive terminal the crate is chosen from a picker instead.
func (c *CLI) runOpen(ctx context.Context, args []string, f *metaFlags, editorFlag string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var spec cargo.Spec
	interactive := len(args) == 0
	if !interactive {
		spec, err = cargo.ParseSpec(args[0])
		if err != nil {
			return err
		}
	} else if !stdinIsTerminal() {
		return errors.New(errors.ErrCodeInvalidInput,
			"missing crate name (pass one, or run from a terminal to pick interactively)")
	}

	meta, _, err := c.loadMetadata(ctx, f, cfg, false)
	if err != nil {
		return err
	}

	var pkg *cargo.Package
	if interactive {
		pkg, err = pickCrate(meta)
		if err != nil {
			return err
		}
		if pkg == nil {
			printDetail("nothing selected")
			return nil
		}
	} else {
		pkg, err = c.findPackage(meta, spec)
		if err != nil {
			return err
		}
	}

	cmd, err := editor.Resolver{Flag: editorFlag, Config: cfg.Editor}.Resolve()
	if err != nil {
		return err
	}

	printInfo("Opening %s in %s", StyleHighlight.Render(pkg.Label()), cmd.String())
	printDetail("%s", pkg.Dir())
	c.Logger.Debugf("editor from %s: %s", cmd.Source, cmd.String())

	return cmd.Launch(pkg.Dir())
}

// findPackage wraps the graph lookup with CLI affordances: a warning when
// several versions resolve, and name suggestions when the lookup fails.
func (c *CLI) findPackage(meta *cargo.Metadata, spec cargo.Spec) (*cargo.Package, error) {
	matches := meta.PackagesByName(spec.Name)

	pkg, err := cargo.FindPackage(meta, spec)
	if err != nil {
		if errors.Is(err, errors.ErrCodePackageNotFound) && len(matches) == 0 {
			if suggestions := cargo.Suggest(meta, spec.Name, maxSuggestions); len(suggestions) > 0 {
				printInfo("Crates with similar names:")
				for _, s := range suggestions {
					printDetail("%s", s)
				}
			}
		}
		return nil, err
	}

	if spec.Version == nil && len(matches) > 1 {
		cargo.SortByVersion(matches)
		losers := make([]string, 0, len(matches)-1)
		for _, m := range matches[1:] {
			losers = append(losers, m.Version)
		}
		printWarning("%d versions of %s resolved, opening %s", len(matches), spec.Name, pkg.Version)
		printDetail("also in the graph: %s", strings.Join(losers, ", "))
	}

	return pkg, nil
}

// stdinIsTerminal reports whether stdin is an interactive terminal, gating
// the crate picker.
func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
