// Package cargo resolves Cargo project dependency graphs by shelling out to
// the cargo toolchain.
//
// # Overview
//
// The package wraps `cargo metadata --format-version 1`, the stable interface
// cargo provides for build tooling. cargo performs the actual resolution
// (feature unification, version selection, workspace handling) and this
// package decodes the result into [Metadata], so the graph seen here is
// always the graph cargo itself would build with.
//
// # Resolving
//
// Configure a [MetadataCommand] and run it:
//
//	cmd := cargo.MetadataCommand{ManifestPath: "/src/app/Cargo.toml"}
//	meta, err := cmd.Run(ctx)
//
// [MetadataCommand.RunCached] adds content-addressed caching: the cache key
// hashes the manifest, the lockfile, and the cargo arguments, so any edit to
// either file invalidates the entry.
//
// # Locating crates
//
// [FindPackage] looks up a crate by the exact name (or a name@version spec)
// in the resolved graph:
//
//	pkg, err := cargo.FindPackage(meta, cargo.Spec{Name: "serde"})
//	dir := pkg.Dir() // directory containing the crate's Cargo.toml
//
// When several versions of one crate are resolved, the highest semantic
// version wins; [Metadata.PackagesByName] exposes all of them.
//
// # Manifest discovery
//
// [LocateManifest] finds the nearest Cargo.toml walking up from a directory,
// mirroring cargo's own discovery. [InspectManifest] decodes just enough of
// the file to validate it and name the project before cargo runs.
package cargo
