// Package render turns resolved cargo metadata into dependency graph
// visualizations.
//
// # Overview
//
// [ToDOT] converts a [cargo.Metadata] resolve graph into Graphviz DOT
// source. Nodes are crates labeled with name and version; edges follow the
// resolved dependency relation. Workspace members and the root package are
// styled so a reader can pick them out of a large graph.
//
// # Rendering
//
// [RenderSVG] and [RenderPNG] rasterize DOT in process via
// [github.com/goccy/go-graphviz]; no system Graphviz installation is
// needed. DOT output can also be written as-is for external tooling:
//
//	dot, err := render.ToDOT(meta, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Determinism
//
// ToDOT sorts nodes and edges before emitting them, so the same metadata
// always produces byte-identical output.
//
// [cargo.Metadata]: github.com/JonnieCache/cargo-open/pkg/cargo
package render
