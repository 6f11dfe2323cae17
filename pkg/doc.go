// Package pkg provides the core libraries behind the cargo-open CLI.
//
// # Overview
//
// cargo-open resolves a Cargo project's dependency graph and opens a chosen
// crate's source directory in the user's editor, the way bundler's
// `bundle open` does for Ruby gems. The pkg directory is organized into
// focused areas:
//
//  1. [cargo] - Manifest discovery and `cargo metadata` invocation/decoding
//  2. [editor] - Editor resolution and launching
//  3. [render] - Dependency graph rendering (DOT, SVG, PNG)
//  4. [cache] - Cache backends (file, Redis, null)
//  5. [registry] - crates.io API client with caching and retries
//  6. [errors] - Error codes and user-facing messages
//  7. [observability] - Cache and HTTP event hooks
//  8. [buildinfo] - Build-time version information
//
// # Architecture
//
// The typical data flow:
//
//	Cargo.toml (located or given via --manifest-path)
//	         ↓
//	    [cargo] package (run `cargo metadata`, decode the graph)
//	         ↓
//	    lookup / picker / renderer
//	         ↓
//	    [editor] launch, listing output, or [render] image
//
// # Quick Start
//
// Resolve a graph and open a crate:
//
//	import (
//	    "context"
//	    "github.com/JonnieCache/cargo-open/pkg/cargo"
//	    "github.com/JonnieCache/cargo-open/pkg/editor"
//	)
//
//	// 1. Locate the manifest and resolve the graph
//	manifest, _ := cargo.LocateManifest("")
//	cmd := cargo.MetadataCommand{ManifestPath: manifest}
//	meta, _ := cmd.Run(context.Background())
//
//	// 2. Find the crate
//	spec, _ := cargo.ParseSpec("serde")
//	pkg, _ := cargo.FindPackage(meta, spec)
//
//	// 3. Launch the editor on its source directory
//	ed, _ := editor.Resolver{}.Resolve()
//	_ = ed.Launch(pkg.Dir())
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/cargo/...              # Specific package
//	go test -tags integration ./pkg/...  # Include tests that shell out to cargo
//
// [cargo]: https://pkg.go.dev/github.com/JonnieCache/cargo-open/pkg/cargo
// [editor]: https://pkg.go.dev/github.com/JonnieCache/cargo-open/pkg/editor
// [render]: https://pkg.go.dev/github.com/JonnieCache/cargo-open/pkg/render
// [cache]: https://pkg.go.dev/github.com/JonnieCache/cargo-open/pkg/cache
// [registry]: https://pkg.go.dev/github.com/JonnieCache/cargo-open/pkg/registry
// [errors]: https://pkg.go.dev/github.com/JonnieCache/cargo-open/pkg/errors
// [observability]: https://pkg.go.dev/github.com/JonnieCache/cargo-open/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/JonnieCache/cargo-open/pkg/buildinfo
package pkg
