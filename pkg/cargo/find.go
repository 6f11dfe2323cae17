package cargo

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/sahilm/fuzzy"

	"github.com/JonnieCache/cargo-open/pkg/errors"
)

// Spec identifies a crate to look up: a name, optionally pinned to one
// version with the name@version form.
type Spec struct {
	Name    string
	Version *semver.Version // nil when any version is acceptable
}

// String returns the spec in its name or name@version form.
func (s Spec) String() string {
	if s.Version == nil {
		return s.Name
	}
	return s.Name + "@" + s.Version.String()
}

// ParseSpec parses a crate spec of the form "name" or "name@version".
// The name is validated with the crate naming rules; the version must be a
// valid semantic version.
func ParseSpec(raw string) (Spec, error) {
	name, version, pinned := strings.Cut(raw, "@")

	if err := errors.ValidateCrateName(name); err != nil {
		return Spec{}, err
	}
	if !pinned {
		return Spec{Name: name}, nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return Spec{}, errors.Wrap(errors.ErrCodeInvalidInput, err,
			"invalid version %q in spec %q", version, raw)
	}
	return Spec{Name: name, Version: v}, nil
}

// FindPackage locates the crate matching spec in the resolved graph.
//
// The name match is exact and case-sensitive. When the graph contains
// several versions of the crate and the spec doesn't pin one, the highest
// semantic version is returned; [Metadata.PackagesByName] lists all of them
// when the caller wants to surface the others. A pinned version must match
// one of the resolved versions exactly.
//
// Lookup failures are PACKAGE_NOT_FOUND. A match whose metadata carries no
// manifest path (corrupt cargo output) is an internal error.
func FindPackage(meta *Metadata, spec Spec) (*Package, error) {
	matches := meta.PackagesByName(spec.Name)
	if len(matches) == 0 {
		return nil, errors.New(errors.ErrCodePackageNotFound,
			"crate %q not found in the dependency graph", spec.Name)
	}

	if spec.Version != nil {
		for _, p := range matches {
			if v, err := semver.NewVersion(p.Version); err == nil && v.Equal(spec.Version) {
				return located(p)
			}
			if p.Version == spec.Version.Original() {
				return located(p)
			}
		}
		return nil, errors.New(errors.ErrCodePackageNotFound,
			"version %s of crate %q is not in the dependency graph (resolved: %s)",
			spec.Version, spec.Name, strings.Join(versions(matches), ", "))
	}

	SortByVersion(matches)
	return located(matches[0])
}

// located rejects a match without a manifest path; the source directory to
// open is derived from it.
func located(p *Package) (*Package, error) {
	if p.ManifestPath == "" {
		return nil, errors.New(errors.ErrCodeInternal,
			"cargo metadata reports no manifest path for %s", p.Label())
	}
	return p, nil
}

// SortByVersion orders packages by descending semantic version, so the
// newest release comes first. Unparseable versions sort below parseable
// ones; ties fall back to the package ID for a stable order.
func SortByVersion(pkgs []*Package) {
	sort.SliceStable(pkgs, func(i, j int) bool {
		vi, erri := semver.NewVersion(pkgs[i].Version)
		vj, errj := semver.NewVersion(pkgs[j].Version)
		switch {
		case erri == nil && errj == nil:
			if c := vi.Compare(vj); c != 0 {
				return c > 0
			}
			return pkgs[i].ID < pkgs[j].ID
		case erri == nil:
			return true
		case errj == nil:
			return false
		default:
			return pkgs[i].ID < pkgs[j].ID
		}
	})
}

// Suggest returns up to max crate names from the graph that fuzzy-match
// name, closest first. Used for did-you-mean hints after a failed lookup.
func Suggest(meta *Metadata, name string, max int) []string {
	matches := fuzzy.Find(name, meta.Names())
	if len(matches) > max {
		matches = matches[:max]
	}
	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}

func versions(pkgs []*Package) []string {
	out := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, p.Version)
	}
	return out
}
