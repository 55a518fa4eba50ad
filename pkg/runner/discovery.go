package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-enry/go-enry/v2"
	"github.com/spf13/afero"

	"github.com/sevenzing/rust-html-generator/internal/logging"
	"github.com/sevenzing/rust-html-generator/pkg/fsutil"
)

// binarySniffSize is how much of a file is read to decide if it is binary.
const binarySniffSize = 8000

// ErrNotDirectory is returned when the project root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Discover lists the files to render under opts.Dir. It returns a
// deterministically sorted list of absolute file paths.
//
// Skipped are: hidden entries, DefaultIgnore names and the output file,
// paths matching opts.Ignore, vendored paths unless opts.ScanWhole, and
// files whose leading bytes look binary. Symlinks are not followed.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	fsys := opts.fs()

	root, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", opts.Dir, err)
	}
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	logger := logging.FromContext(ctx)
	names := opts.ignoredNames()
	var files []string

	err = afero.Walk(fsys, root, func(path string, info os.FileInfo, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				logger.Warn("skipping unreadable path", logging.FieldPath, path)
				return nil
			}
			return walkErr
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if skipEntry(info, rel, names, opts) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}

		binary, err := isBinary(fsys, path)
		if err != nil {
			return err
		}
		if binary {
			logger.Debug("skipping binary file", logging.FieldPath, rel)
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	slices.Sort(files)
	return files, nil
}

// skipEntry reports whether a walked entry is left out, along with its
// subtree when it is a directory.
func skipEntry(info os.FileInfo, rel string, names map[string]bool, opts Options) bool {
	name := info.Name()
	if strings.HasPrefix(name, ".") || names[name] {
		return true
	}
	if matchesIgnore(rel, opts.Ignore) {
		return true
	}
	if opts.ScanWhole {
		return false
	}
	if info.IsDir() {
		return enry.IsVendor(rel + "/")
	}
	return enry.IsVendor(rel)
}

// matchesIgnore matches rel against doublestar patterns. Patterns without
// a slash also match the base name, so "*.lock" ignores lock files at any
// depth.
func matchesIgnore(rel string, patterns []string) bool {
	base := rel[strings.LastIndexByte(rel, '/')+1:]
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, err := doublestar.Match(pattern, base); err == nil && ok {
				return true
			}
		}
	}
	return false
}

func isBinary(fsys afero.Fs, path string) (bool, error) {
	head, err := fsutil.ReadHead(fsys, path, binarySniffSize)
	if err != nil {
		return false, err
	}
	return enry.IsBinary(head), nil
}
