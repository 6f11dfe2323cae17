package cargo

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/JonnieCache/cargo-open/pkg/errors"
)

// ManifestName is the file name cargo manifests must have.
const ManifestName = "Cargo.toml"

// LockfileName is the file name of cargo's lockfile.
const LockfileName = "Cargo.lock"

// LocateManifest finds the nearest Cargo.toml walking up from start,
// mirroring cargo's own manifest discovery. start may be empty, meaning the
// current working directory. The returned path is absolute.
func LocateManifest(start string) (string, error) {
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeManifest, err, "determine working directory")
		}
		start = cwd
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeManifest, err, "resolve %s", start)
	}

	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.ErrCodeManifest,
				"could not find %s in %s or any parent directory", ManifestName, start)
		}
		dir = parent
	}
}

// ResolveManifestPath validates an explicitly provided --manifest-path and
// returns it as an absolute path. Like cargo, the path must point at a file
// named Cargo.toml.
func ResolveManifestPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New(errors.ErrCodeManifest, "manifest path %s does not exist", path)
		}
		return "", errors.Wrap(errors.ErrCodeManifest, err, "stat %s", path)
	}
	if info.IsDir() || filepath.Base(path) != ManifestName {
		return "", errors.New(errors.ErrCodeManifest,
			"the manifest path must point at a %s file, got %s", ManifestName, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeManifest, err, "resolve %s", path)
	}
	return abs, nil
}

// ManifestInfo is the pre-flight summary of a manifest file, decoded without
// running cargo.
type ManifestInfo struct {
	Name            string // package name, empty for virtual workspaces
	Version         string
	IsWorkspaceRoot bool // the file has a [workspace] section
}

// manifestFile is the subset of Cargo.toml this tool reads directly.
type manifestFile struct {
	Package *struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Workspace *struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
}

// InspectManifest decodes enough of a Cargo.toml to validate it before cargo
// runs: malformed TOML and files with neither a [package] nor a [workspace]
// section fail here with MANIFEST_ERROR instead of surfacing later as cargo
// stderr.
func InspectManifest(path string) (*ManifestInfo, error) {
	data, err := readManifest(path)
	if err != nil {
		return nil, err
	}

	var mf manifestFile
	if err := toml.Unmarshal(data, &mf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeManifest, err, "malformed manifest %s", path)
	}

	if mf.Package == nil && mf.Workspace == nil {
		return nil, errors.New(errors.ErrCodeManifest,
			"manifest %s has neither a [package] nor a [workspace] section", path)
	}

	info := &ManifestInfo{IsWorkspaceRoot: mf.Workspace != nil}
	if mf.Package != nil {
		info.Name = mf.Package.Name
		info.Version = mf.Package.Version
	}
	return info, nil
}

// FindLockfile returns the path of the Cargo.lock governing manifestPath,
// searching upward from the manifest's directory. Workspace members share
// the lockfile at the workspace root, hence the walk.
func FindLockfile(manifestPath string) (string, bool) {
	dir := filepath.Dir(manifestPath)
	for {
		candidate := filepath.Join(dir, LockfileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func readManifest(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeManifest, err, "read %s", path)
	}
	return data, nil
}
