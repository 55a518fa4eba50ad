package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/sevenzing/rust-html-generator/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		fsys := afero.NewMemMapFs()
		content := []byte("<html></html>")

		if err := fsutil.WriteAtomic(context.Background(), fsys, "/out/output.html", content, 0644); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := afero.ReadFile(fsys, "/out/output.html")
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		fsys := afero.NewMemMapFs()
		if err := afero.WriteFile(fsys, "/out/output.html", []byte("original"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fsutil.WriteAtomic(context.Background(), fsys, "/out/output.html", []byte("new"), 0644); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := afero.ReadFile(fsys, "/out/output.html")
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
	})

	t.Run("applies mode on disk", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			mode os.FileMode
			want os.FileMode
		}{
			{"explicit", 0600, 0600},
			{"default when zero", 0, fsutil.DefaultFileMode},
		}

		for _, tt := range tests {
			path := filepath.Join(t.TempDir(), "output.html")
			if err := fsutil.WriteAtomic(context.Background(), afero.NewOsFs(), path, []byte("x"), tt.mode); err != nil {
				t.Fatalf("%s: WriteAtomic() error = %v", tt.name, err)
			}
			stat, err := os.Stat(path)
			if err != nil {
				t.Fatalf("%s: stat: %v", tt.name, err)
			}
			if got := stat.Mode().Perm(); got != tt.want {
				t.Errorf("%s: mode = %o, want %o", tt.name, got, tt.want)
			}
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		fsys := afero.NewMemMapFs()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := fsutil.WriteAtomic(ctx, fsys, "/out/output.html", []byte("content"), 0644); err == nil {
			t.Fatal("expected error for cancelled context")
		}

		if exists, _ := afero.Exists(fsys, "/out/output.html"); exists {
			t.Error("file should not have been created")
		}
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()

		fsys := afero.NewMemMapFs()
		if err := fsutil.WriteAtomic(context.Background(), fsys, "/site/docs/index.html", []byte("<html>"), 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := afero.ReadFile(fsys, "/site/docs/index.html")
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != "<html>" {
			t.Errorf("content = %q, want %q", got, "<html>")
		}
	})

	t.Run("cleans up temp file on error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		// The target is an existing directory, so the final rename fails.
		target := filepath.Join(dir, "taken")
		if err := os.MkdirAll(filepath.Join(target, "child"), 0o755); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fsutil.WriteAtomic(context.Background(), afero.NewOsFs(), target, []byte("content"), 0644); err == nil {
			t.Fatal("expected error when the target is a directory")
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("readdir: %v", err)
		}
		for _, entry := range entries {
			if strings.Contains(entry.Name(), ".tmp.") {
				t.Errorf("temp file left behind: %s", entry.Name())
			}
		}
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		existing    string
		hasExisting bool
		content     string
		wantChanged bool
	}{
		{name: "writes new file", content: "hello", wantChanged: true},
		{name: "skips unchanged content", existing: "hello", hasExisting: true, content: "hello"},
		{name: "writes changed content", existing: "old", hasExisting: true, content: "new", wantChanged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fsys := afero.NewMemMapFs()
			if tt.hasExisting {
				if err := afero.WriteFile(fsys, "/output.html", []byte(tt.existing), 0644); err != nil {
					t.Fatalf("setup: %v", err)
				}
			}

			changed, err := fsutil.WriteAtomicIfChanged(context.Background(), fsys, "/output.html", []byte(tt.content), 0644)
			if err != nil {
				t.Fatalf("WriteAtomicIfChanged() error = %v", err)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}

			got, err := afero.ReadFile(fsys, "/output.html")
			if err != nil {
				t.Fatalf("read back: %v", err)
			}
			if string(got) != tt.content {
				t.Errorf("content = %q, want %q", got, tt.content)
			}
		})
	}

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := fsutil.WriteAtomicIfChanged(ctx, afero.NewMemMapFs(), "/output.html", []byte("x"), 0644); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}
