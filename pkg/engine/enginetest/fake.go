// Package enginetest provides an in-memory engine.Engine for tests.
package enginetest

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/sevenzing/rust-html-generator/pkg/engine"
	"github.com/sevenzing/rust-html-generator/pkg/lineindex"
	"github.com/sevenzing/rust-html-generator/pkg/textrange"
)

// File describes one file served by a Fake.
type File struct {
	Path    string
	Content string

	Tokens     []engine.SyntaxToken
	Highlights []engine.HighlightRange
	Hints      []engine.InlayHint
	Folds      []engine.Fold

	// Hovers maps an exact token range to its hover text.
	Hovers map[textrange.Range]string

	// Definitions and References are keyed by the range that triggers them;
	// a query at any offset inside the key range matches.
	Definitions map[textrange.Range][]engine.NavigationTarget
	References  map[textrange.Range][]engine.FileReferences

	// Unanalyzed marks a file that no backend understood.
	Unanalyzed bool

	// Library files are reachable by ID but not listed by Files.
	Library bool
}

// Fake is an engine.Engine backed by static data. FileIDs are assigned in
// the order files are passed to New, starting at 0.
type Fake struct {
	files []File
	index []*lineindex.Index

	// Err, when set, is returned by every query method.
	Err error

	semanticQueries atomic.Int64
}

var _ engine.Engine = (*Fake)(nil)

// New returns a fake serving files.
func New(files ...File) *Fake {
	f := &Fake{files: files}
	for _, file := range files {
		f.index = append(f.index, lineindex.New([]byte(file.Content)))
	}
	return f
}

// SemanticQueries returns how many Hover, GotoDefinition and FindReferences
// calls the fake has served.
func (f *Fake) SemanticQueries() int {
	return int(f.semanticQueries.Load())
}

func (f *Fake) file(id engine.FileID) (*File, error) {
	if int(id) >= len(f.files) {
		return nil, fmt.Errorf("%w: %d", engine.ErrUnknownFile, id)
	}
	return &f.files[id], nil
}

func (f *Fake) Files() []engine.FileID {
	ids := make([]engine.FileID, 0, len(f.files))
	for i, file := range f.files {
		if !file.Library {
			ids = append(ids, engine.FileID(i))
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return f.files[ids[i]].Path < f.files[ids[j]].Path
	})
	return ids
}

func (f *Fake) Lookup(path string) (engine.FileID, bool) {
	for i, file := range f.files {
		if file.Path == path {
			return engine.FileID(i), true
		}
	}
	return 0, false
}

func (f *Fake) Analyzed(id engine.FileID) bool {
	file, err := f.file(id)
	return err == nil && !file.Unanalyzed
}

func (f *Fake) FilePath(id engine.FileID) (string, error) {
	file, err := f.file(id)
	if err != nil {
		return "", err
	}
	return file.Path, nil
}

func (f *Fake) FileContents(id engine.FileID) ([]byte, error) {
	file, err := f.file(id)
	if err != nil {
		return nil, err
	}
	return []byte(file.Content), nil
}

func (f *Fake) LineIndex(id engine.FileID) (engine.LineIndex, error) {
	if _, err := f.file(id); err != nil {
		return nil, err
	}
	return f.index[id], nil
}

func (f *Fake) Tokens(_ context.Context, id engine.FileID) ([]engine.SyntaxToken, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	file, err := f.file(id)
	if err != nil {
		return nil, err
	}
	return file.Tokens, nil
}

func (f *Fake) Highlight(_ context.Context, id engine.FileID) ([]engine.HighlightRange, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	file, err := f.file(id)
	if err != nil {
		return nil, err
	}
	return file.Highlights, nil
}

func (f *Fake) InlayTypeHints(_ context.Context, id engine.FileID) ([]engine.InlayHint, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	file, err := f.file(id)
	if err != nil {
		return nil, err
	}
	return file.Hints, nil
}

func (f *Fake) FoldRanges(_ context.Context, id engine.FileID) ([]engine.Fold, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	file, err := f.file(id)
	if err != nil {
		return nil, err
	}
	return file.Folds, nil
}

func (f *Fake) Hover(_ context.Context, at engine.FileRange) (string, bool, error) {
	f.semanticQueries.Add(1)
	if f.Err != nil {
		return "", false, f.Err
	}
	file, err := f.file(at.File)
	if err != nil {
		return "", false, err
	}
	text, ok := file.Hovers[at.Range]
	return text, ok, nil
}

func (f *Fake) GotoDefinition(_ context.Context, at engine.Position) ([]engine.NavigationTarget, error) {
	f.semanticQueries.Add(1)
	if f.Err != nil {
		return nil, f.Err
	}
	file, err := f.file(at.File)
	if err != nil {
		return nil, err
	}
	for r, targets := range file.Definitions {
		if r.ContainsOffset(at.Offset) {
			return targets, nil
		}
	}
	return nil, nil
}

func (f *Fake) FindReferences(
	_ context.Context,
	at engine.Position,
	scope *engine.SearchScope,
) ([]engine.FileReferences, error) {
	f.semanticQueries.Add(1)
	if f.Err != nil {
		return nil, f.Err
	}
	file, err := f.file(at.File)
	if err != nil {
		return nil, err
	}
	for r, refs := range file.References {
		if !r.ContainsOffset(at.Offset) {
			continue
		}
		var out []engine.FileReferences
		for _, ref := range refs {
			if scope.Includes(ref.File) {
				out = append(out, ref)
			}
		}
		return out, nil
	}
	return nil, nil
}
