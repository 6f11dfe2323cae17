package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/JonnieCache/cargo-open/pkg/cargo"
)

// Options configures dependency graph rendering.
type Options struct {
	// Detailed adds license and edition lines to node labels.
	// When false, labels carry only the crate name and version.
	Detailed bool
}

// ToDOT converts a resolved dependency graph to Graphviz DOT format. The
// output is deterministic: nodes and edges are emitted in sorted order, so
// identical metadata yields identical DOT.
//
// Workspace members are drawn with a tinted fill, and the root package with
// a heavier outline. The resulting string can be rendered with [RenderSVG]
// or [RenderPNG], or fed to external Graphviz tools.
func ToDOT(meta *cargo.Metadata, opts Options) (string, error) {
	if meta.Resolve == nil {
		return "", fmt.Errorf("metadata carries no resolve graph")
	}

	idx := newIndex(meta)

	nodes := make([]*cargo.Node, len(meta.Resolve.Nodes))
	for i := range meta.Resolve.Nodes {
		nodes[i] = &meta.Resolve.Nodes[i]
	}
	sort.Slice(nodes, func(i, j int) bool {
		return idx.sortKey(nodes[i].ID) < idx.sortKey(nodes[j].ID)
	})

	var buf bytes.Buffer
	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		attrs := idx.attrs(n.ID, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range nodes {
		deps := append([]cargo.NodeDep(nil), n.Deps...)
		sort.Slice(deps, func(i, j int) bool {
			return idx.sortKey(deps[i].Pkg) < idx.sortKey(deps[j].Pkg)
		})
		for _, d := range deps {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.ID, d.Pkg)
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// index resolves package IDs without rescanning the package list per node.
type index struct {
	packages map[string]*cargo.Package
	members  map[string]bool
	root     string
}

func newIndex(meta *cargo.Metadata) *index {
	idx := &index{
		packages: make(map[string]*cargo.Package, len(meta.Packages)),
		members:  make(map[string]bool, len(meta.WorkspaceMembers)),
		root:     meta.Resolve.Root,
	}
	for i := range meta.Packages {
		idx.packages[meta.Packages[i].ID] = &meta.Packages[i]
	}
	for _, id := range meta.WorkspaceMembers {
		idx.members[id] = true
	}
	return idx
}

// sortKey orders nodes by crate label rather than by the opaque package ID,
// so the DOT reads naturally. The ID breaks ties between equal labels.
func (idx *index) sortKey(id string) string {
	if p, ok := idx.packages[id]; ok {
		return p.Label() + "\x00" + id
	}
	return id
}

func (idx *index) attrs(id string, opts Options) []string {
	p, ok := idx.packages[id]
	if !ok {
		return []string{fmt.Sprintf("label=%q", id)}
	}

	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(p, opts))}
	if idx.members[id] {
		attrs = append(attrs, "fillcolor=lightblue")
	}
	if idx.root == id {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

func fmtLabel(p *cargo.Package, opts Options) string {
	label := p.Name + "\n" + p.Version
	if !opts.Detailed {
		return label
	}

	if p.License != "" {
		label += "\n" + p.License
	}
	if p.Edition != "" {
		label += "\nedition " + p.Edition
	}
	return label
}
