// Package buildinfo records the version stamped into release binaries.
//
// Release builds overwrite the defaults through the linker:
//
//	go build -ldflags "\
//	  -X github.com/JonnieCache/cargo-open/pkg/buildinfo.Version=v0.3.0 \
//	  -X github.com/JonnieCache/cargo-open/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/JonnieCache/cargo-open/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Development builds report "dev" with no commit or date.
package buildinfo

import "fmt"

// Set by the linker; see the package comment.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String renders the three fields, one per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template builds cobra's version template so --version prints the same
// fields under the binary name.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
