package cargo

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/JonnieCache/cargo-open/pkg/errors"
)

// Metadata is the decoded output of `cargo metadata --format-version 1`.
//
// Packages holds every crate in the graph (workspace members and registry
// dependencies alike). Resolve is the dependency graph over package IDs; it
// is nil when metadata was requested with --no-deps.
type Metadata struct {
	Packages         []Package `json:"packages"`
	WorkspaceMembers []string  `json:"workspace_members"`
	Resolve          *Resolve  `json:"resolve"`
	WorkspaceRoot    string    `json:"workspace_root"`
	TargetDirectory  string    `json:"target_directory"`
	Version          int       `json:"version"`
}

// Package describes one crate in the resolved graph.
//
// ID is cargo's opaque package identifier, unique within one metadata
// invocation; treat it as a key, never parse it. Source identifies where the
// crate came from (e.g. the crates.io registry URL) and is empty for path
// and workspace crates.
type Package struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Version       string       `json:"version"`
	Description   string       `json:"description"`
	License       string       `json:"license"`
	Edition       string       `json:"edition"`
	Repository    string       `json:"repository"`
	Homepage      string       `json:"homepage"`
	Documentation string       `json:"documentation"`
	Source        string       `json:"source"`
	ManifestPath  string       `json:"manifest_path"`
	Dependencies  []Dependency `json:"dependencies"`
}

// Dependency is a declared dependency of a package, before resolution.
type Dependency struct {
	Name     string `json:"name"`
	Req      string `json:"req"`
	Kind     string `json:"kind"` // "" (normal), "dev", or "build"
	Optional bool   `json:"optional"`
}

// Resolve is the resolved dependency graph over package IDs.
type Resolve struct {
	Nodes []Node `json:"nodes"`
	Root  string `json:"root"` // empty for virtual workspaces
}

// Node is one package in the resolved graph with its resolved dependencies.
type Node struct {
	ID   string    `json:"id"`
	Deps []NodeDep `json:"deps"`
}

// NodeDep links a node to one resolved dependency.
type NodeDep struct {
	Name string `json:"name"`
	Pkg  string `json:"pkg"`
}

// Dir returns the directory containing the package's Cargo.toml.
// This is the directory handed to the editor.
func (p *Package) Dir() string {
	return filepath.Dir(p.ManifestPath)
}

// IsLocal reports whether the package is a path or workspace crate rather
// than one fetched from a registry or git source.
func (p *Package) IsLocal() bool {
	return p.Source == ""
}

// Label returns the package's name@version form used in output.
func (p *Package) Label() string {
	return p.Name + "@" + p.Version
}

// DecodeMetadata parses raw `cargo metadata` JSON output.
func DecodeMetadata(data []byte) (*Metadata, error) {
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse cargo metadata output")
	}
	return &meta, nil
}

// PackagesByName returns every resolved package with the exact given name.
// The match is case-sensitive, like cargo's own lookups. Results are ordered
// as cargo emitted them.
func (m *Metadata) PackagesByName(name string) []*Package {
	var matches []*Package
	for i := range m.Packages {
		if m.Packages[i].Name == name {
			matches = append(matches, &m.Packages[i])
		}
	}
	return matches
}

// PackageByID returns the package with the given cargo package ID.
func (m *Metadata) PackageByID(id string) (*Package, bool) {
	for i := range m.Packages {
		if m.Packages[i].ID == id {
			return &m.Packages[i], true
		}
	}
	return nil, false
}

// IsWorkspaceMember reports whether the package ID belongs to the workspace.
func (m *Metadata) IsWorkspaceMember(id string) bool {
	for _, member := range m.WorkspaceMembers {
		if member == id {
			return true
		}
	}
	return false
}

// RootPackage returns the root package of the graph, if there is one.
// Virtual workspaces (a [workspace] section with no [package]) have none.
func (m *Metadata) RootPackage() (*Package, bool) {
	if m.Resolve == nil || m.Resolve.Root == "" {
		return nil, false
	}
	return m.PackageByID(m.Resolve.Root)
}

// Names returns the sorted unique crate names in the graph.
func (m *Metadata) Names() []string {
	seen := make(map[string]bool, len(m.Packages))
	var names []string
	for i := range m.Packages {
		if name := m.Packages[i].Name; !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
