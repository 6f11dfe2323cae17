package cli

import (
	"io"
	"testing"

	"github.com/JonnieCache/cargo-open/pkg/cargo"
	"github.com/JonnieCache/cargo-open/pkg/errors"
)

func openMetadata() *cargo.Metadata {
	return &cargo.Metadata{
		Packages: []cargo.Package{
			{
				ID:           "id-demo",
				Name:         "demo",
				Version:      "0.1.0",
				ManifestPath: "/work/demo/Cargo.toml",
			},
			{
				ID:           "id-serde-new",
				Name:         "serde",
				Version:      "1.0.219",
				Source:       cratesIOSource,
				ManifestPath: "/reg/serde-1.0.219/Cargo.toml",
			},
			{
				ID:           "id-serde-old",
				Name:         "serde",
				Version:      "0.8.23",
				Source:       cratesIOSource,
				ManifestPath: "/reg/serde-0.8.23/Cargo.toml",
			},
		},
		WorkspaceMembers: []string{"id-demo"},
	}
}

func mustSpec(t *testing.T, raw string) cargo.Spec {
	t.Helper()
	spec, err := cargo.ParseSpec(raw)
	if err != nil {
		t.Fatalf("ParseSpec(%q) error = %v", raw, err)
	}
	return spec
}

func TestFindPackageSingle(t *testing.T) {
	c := New(io.Discard, LogInfo)

	pkg, err := c.findPackage(openMetadata(), mustSpec(t, "demo"))
	if err != nil {
		t.Fatalf("findPackage(demo) error = %v", err)
	}
	if pkg.Name != "demo" || pkg.Version != "0.1.0" {
		t.Errorf("findPackage(demo) = %s@%s, want demo@0.1.0", pkg.Name, pkg.Version)
	}
}

func TestFindPackageHighestVersionWins(t *testing.T) {
	c := New(io.Discard, LogInfo)

	pkg, err := c.findPackage(openMetadata(), mustSpec(t, "serde"))
	if err != nil {
		t.Fatalf("findPackage(serde) error = %v", err)
	}
	if pkg.Version != "1.0.219" {
		t.Errorf("findPackage(serde) picked %s, want highest version 1.0.219", pkg.Version)
	}
}

func TestFindPackagePinned(t *testing.T) {
	c := New(io.Discard, LogInfo)

	pkg, err := c.findPackage(openMetadata(), mustSpec(t, "serde@0.8.23"))
	if err != nil {
		t.Fatalf("findPackage(serde@0.8.23) error = %v", err)
	}
	if pkg.Version != "0.8.23" {
		t.Errorf("findPackage(serde@0.8.23) picked %s, want 0.8.23", pkg.Version)
	}
}

func TestFindPackageNotFound(t *testing.T) {
	c := New(io.Discard, LogInfo)

	_, err := c.findPackage(openMetadata(), mustSpec(t, "rand"))
	if !errors.Is(err, errors.ErrCodePackageNotFound) {
		t.Errorf("findPackage(rand) error = %v, want %s", err, errors.ErrCodePackageNotFound)
	}
}
