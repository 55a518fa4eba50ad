package fsutil_test

import (
	"context"
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/sevenzing/rust-html-generator/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads file content and metadata", func(t *testing.T) {
		t.Parallel()

		fsys := afero.NewMemMapFs()
		content := []byte("fn main() {}\n")
		if err := afero.WriteFile(fsys, "/src/main.rs", content, 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, info, err := fsutil.ReadFile(context.Background(), fsys, "/src/main.rs")
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
		if info.Path != "/src/main.rs" {
			t.Errorf("Path = %q, want %q", info.Path, "/src/main.rs")
		}
		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}
		if info.Hash != sha256.Sum256(content) {
			t.Error("Hash should be the SHA-256 of the content")
		}
	})

	t.Run("classifies errors", func(t *testing.T) {
		t.Parallel()

		fsys := afero.NewMemMapFs()
		if err := fsys.MkdirAll("/src", 0o755); err != nil {
			t.Fatalf("setup: %v", err)
		}

		tests := []struct {
			path string
			want error
		}{
			{"/src/missing.rs", fsutil.ErrNotFound},
			{"/src", fsutil.ErrIsDirectory},
		}
		for _, tt := range tests {
			_, _, err := fsutil.ReadFile(context.Background(), fsys, tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadFile(%q) error = %v, want %v", tt.path, err, tt.want)
			}
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, _, err := fsutil.ReadFile(ctx, afero.NewMemMapFs(), "/x"); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

func TestReadHead(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/blob", []byte("0123456789"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		n    int
		want string
	}{
		{4, "0123"},
		{10, "0123456789"},
		{64, "0123456789"},
	}
	for _, tt := range tests {
		got, err := fsutil.ReadHead(fsys, "/blob", tt.n)
		if err != nil {
			t.Fatalf("ReadHead(%d) error = %v", tt.n, err)
		}
		if string(got) != tt.want {
			t.Errorf("ReadHead(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}

	if _, err := fsutil.ReadHead(fsys, "/missing", 4); !errors.Is(err, fsutil.ErrNotFound) {
		t.Errorf("ReadHead(missing) error = %v, want ErrNotFound", err)
	}
}
