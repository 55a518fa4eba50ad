package runner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/sevenzing/rust-html-generator/pkg/runner"
)

func memTree(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fsys, path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return fsys
}

func assertPaths(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d files %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	fsys := memTree(t, map[string]string{
		"/proj/src/main.rs":       "fn main() {}\n",
		"/proj/src/net/mod.rs":    "pub mod a;\n",
		"/proj/Cargo.toml":        "[package]\n",
		"/proj/Cargo.lock":        "# lock\n",
		"/proj/README.md":         "# readme\n",
		"/proj/output.html":       "<html>",
		"/proj/target/debug/x.rs": "fn x() {}\n",
		"/proj/.git/config":       "[core]\n",
		"/proj/.env":              "A=1\n",
		"/proj/node_modules/a.js": "x\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{Dir: "/proj", Fs: fsys})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertPaths(t, files, []string{
		"/proj/Cargo.toml",
		"/proj/src/net/mod.rs",
		"/proj/src/main.rs",
	})
}

func TestDiscover_IgnoreGlobs(t *testing.T) {
	t.Parallel()

	fsys := memTree(t, map[string]string{
		"/proj/a.go":                "package a\n",
		"/proj/gen/a_gen.go":        "package gen\n",
		"/proj/web/app.min.js":      "x\n",
		"/proj/testdata/in.txt":     "in\n",
		"/proj/docs/report.html":    "<p>\n",
		"/proj/deep/x/y/schema.sql": "select 1;\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		Dir:       "/proj",
		Fs:        fsys,
		Ignore:    []string{"gen/**", "*.min.js", "testdata", "**/*.sql"},
		Output:    "docs/report.html",
		ScanWhole: true,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertPaths(t, files, []string{"/proj/a.go"})
}

func TestDiscover_Vendor(t *testing.T) {
	t.Parallel()

	fsys := memTree(t, map[string]string{
		"/proj/main.go":            "package main\n",
		"/proj/vendor/dep/dep.go":  "package dep\n",
		"/proj/third_party/x/x.go": "package x\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{Dir: "/proj", Fs: fsys})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertPaths(t, files, []string{"/proj/main.go"})

	files, err = runner.Discover(context.Background(), runner.Options{Dir: "/proj", Fs: fsys, ScanWhole: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertPaths(t, files, []string{
		"/proj/main.go",
		"/proj/third_party/x/x.go",
		"/proj/vendor/dep/dep.go",
	})
}

func TestDiscover_SkipsBinary(t *testing.T) {
	t.Parallel()

	fsys := memTree(t, map[string]string{
		"/proj/main.c":    "int main(void) { return 0; }\n",
		"/proj/image.bin": "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR",
	})

	files, err := runner.Discover(context.Background(), runner.Options{Dir: "/proj", Fs: fsys})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertPaths(t, files, []string{"/proj/main.c"})
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	fsys := memTree(t, map[string]string{"/proj/file.rs": "fn x() {}\n"})

	if _, err := runner.Discover(context.Background(), runner.Options{Dir: "/missing", Fs: fsys}); err == nil {
		t.Error("expected error for a missing root")
	}

	_, err := runner.Discover(context.Background(), runner.Options{Dir: "/proj/file.rs", Fs: fsys})
	if !errors.Is(err, runner.ErrNotDirectory) {
		t.Errorf("error = %v, want ErrNotDirectory", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.Discover(ctx, runner.Options{Dir: "/proj", Fs: fsys}); err == nil {
		t.Error("expected error for cancelled context")
	}
}
