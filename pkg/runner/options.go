// Package runner discovers project files and renders them on a worker pool.
package runner

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultIgnore lists names that are never rendered, wherever they appear.
//
//nolint:gochecknoglobals // Read-only lookup table.
var DefaultIgnore = []string{
	".DS_Store",
	".git",
	"target",
	"README.md",
	"output.html",
	"Cargo.lock",
	"node_modules",
}

// Options controls discovery and the worker pool.
type Options struct {
	// Dir is the project root. Discovery walks it recursively.
	Dir string

	// Files, when non-nil, replaces discovery.
	Files []string

	// Output is the report path; its base name is ignored like DefaultIgnore.
	Output string

	// Ignore are doublestar patterns matched against slash-separated paths
	// relative to Dir. Patterns without a slash also match base names.
	Ignore []string

	// ScanWhole keeps vendored paths that are skipped by default.
	ScanWhole bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Fs is the filesystem to walk. Nil means the OS filesystem.
	Fs afero.Fs
}

func (o Options) fs() afero.Fs {
	if o.Fs == nil {
		return afero.NewOsFs()
	}
	return o.Fs
}

// ignoredNames returns DefaultIgnore plus the output file name.
func (o Options) ignoredNames() map[string]bool {
	names := make(map[string]bool, len(DefaultIgnore)+1)
	for _, n := range DefaultIgnore {
		names[n] = true
	}
	if o.Output != "" {
		names[filepath.Base(o.Output)] = true
	}
	return names
}
