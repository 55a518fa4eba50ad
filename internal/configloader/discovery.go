package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
)

// ConfigPaths holds the config files found for one run. Empty fields mean
// the layer has no file.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// ProjectConfigFiles are the project config names, most preferred first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ProjectConfigFiles = []string{
	".hlgen.yml",
	".hlgen.yaml",
	"hlgen.yml",
	"hlgen.yaml",
}

// globalConfigFiles are the names looked up in the system and user dirs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var globalConfigFiles = []string{"config.yaml", "config.yml"}

// vcsRootMarkers end the upward project search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn", ".jj"}

// DiscoverPaths looks up the system, user and project config files.
//
//   - system: /etc/hlgen (or %ProgramData%\hlgen on Windows)
//   - user: $XDG_CONFIG_HOME/hlgen, falling back to ~/.config/hlgen
//   - project: the first of ProjectConfigFiles found walking up from workDir
func DiscoverPaths(ctx context.Context, fsys afero.Fs, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, fsys, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{
		System:  firstFile(fsys, systemConfigDir(), globalConfigFiles),
		User:    firstFile(fsys, userConfigDir(), globalConfigFiles),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/hlgen"
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, "hlgen")
}

func userConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "hlgen")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hlgen")
}

// FindProjectConfig walks up from startDir and returns the first project
// config file, or "" when the walk reaches a VCS root, the home directory
// or the filesystem root without finding one.
func FindProjectConfig(ctx context.Context, fsys afero.Fs, startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir() //nolint:errcheck // No home only disables that stop.

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}
		if path := firstFile(fsys, dir, ProjectConfigFiles); path != "" {
			return path, nil
		}
		if isVCSRoot(fsys, dir) || dir == home {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first regular file dir/name for names, or "".
func firstFile(fsys afero.Fs, dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := fsys.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isVCSRoot(fsys afero.Fs, dir string) bool {
	for _, marker := range vcsRootMarkers {
		if ok, err := afero.IsDir(fsys, filepath.Join(dir, marker)); err == nil && ok {
			return true
		}
	}
	return false
}
