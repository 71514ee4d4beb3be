// Package project loads the optional glint.toml project manifest that
// supplies a default include-path list and target triple for cmd/glint,
// grounded on the teacher's internal/project package
// (modules.go's toml.DecodeFile usage, root.go's upward directory walk)
// but trimmed to this core's scope: there is no module dependency graph
// to resolve (spec.md's sema core analyses one module at a time, §5),
// so the dependency-install/hashing/DAG machinery the teacher's
// internal/project carries has no component here to serve it.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest mirrors glint.toml's [build] table.
type Manifest struct {
	Include []string `toml:"include"`
	Target  string   `toml:"target"`
	Output  string   `toml:"output"`
}

type fileFormat struct {
	Build Manifest `toml:"build"`
}

// Load parses path's [build] table into a Manifest.
func Load(path string) (Manifest, error) {
	var cfg fileFormat
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg.Build, nil
}

// FindManifest walks upward from startDir looking for glint.toml, the
// same upward search the teacher's FindSurgeToml does for surge.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "glint.toml")
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadFromDir discovers and loads glint.toml starting at dir, returning
// a zero Manifest and ok=false if none is found — callers then fall
// back to CLI-flag-only defaults (SPEC_FULL.md's "optional ambient
// plumbing, not required by any spec.md invariant").
func LoadFromDir(dir string) (Manifest, bool, error) {
	path, ok, err := FindManifest(dir)
	if err != nil || !ok {
		return Manifest{}, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return Manifest{}, true, err
	}
	return m, true, nil
}

// MergeIncludeDirs returns manifest includes (resolved relative to
// manifestDir) followed by the CLI's own -I/--include flags, matching
// the teacher's convention that explicit CLI flags extend rather than
// replace a project manifest's defaults.
func MergeIncludeDirs(manifestDir string, manifestIncludes, cliIncludes []string) []string {
	out := make([]string, 0, len(manifestIncludes)+len(cliIncludes))
	for _, inc := range manifestIncludes {
		inc = strings.TrimSpace(inc)
		if inc == "" {
			continue
		}
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(manifestDir, inc)
		}
		out = append(out, inc)
	}
	out = append(out, cliIncludes...)
	return out
}
