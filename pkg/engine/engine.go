// Package engine defines the source-analysis capability consumed by the
// token stream, navigation and rendering packages.
//
// An Engine is loaded once per run and is read-only afterwards; every query
// method must be safe for concurrent use.
package engine

import (
	"context"
	"errors"

	"github.com/sevenzing/rust-html-generator/pkg/lineindex"
	"github.com/sevenzing/rust-html-generator/pkg/textrange"
)

// ErrUnknownFile is returned when a FileID or path is not part of the workspace.
var ErrUnknownFile = errors.New("unknown file")

// FileID identifies a file inside a loaded workspace.
type FileID uint32

// Position is a byte offset inside a file.
type Position struct {
	File   FileID
	Offset int
}

// FileRange is a byte range inside a file.
type FileRange struct {
	File  FileID
	Range textrange.Range
}

// HighlightRange classifies a range with a dotted tag such as "keyword" or
// "function.declaration".
type HighlightRange struct {
	Range textrange.Range
	Tag   string
}

// InlayHint is an inferred type label for the exact range of an identifier.
type InlayHint struct {
	Range textrange.Range
	Label string
}

// Fold is a collapsible region.
type Fold struct {
	Range textrange.Range
}

// NavigationTarget is one result of a definition query. FocusRange, when set,
// narrows FullRange to the name of the item.
type NavigationTarget struct {
	File       FileID
	FullRange  textrange.Range
	FocusRange *textrange.Range
}

// FocusOrFullRange returns FocusRange when present and FullRange otherwise.
func (t NavigationTarget) FocusOrFullRange() textrange.Range {
	if t.FocusRange != nil {
		return *t.FocusRange
	}
	return t.FullRange
}

// FileReferences lists reference ranges found in one file.
type FileReferences struct {
	File   FileID
	Ranges []textrange.Range
}

// SearchScope restricts reference searches to a set of files.
// A nil scope searches the whole workspace.
type SearchScope struct {
	Files []FileID
}

// Includes reports whether the scope covers file.
func (s *SearchScope) Includes(file FileID) bool {
	if s == nil {
		return true
	}
	for _, f := range s.Files {
		if f == file {
			return true
		}
	}
	return false
}

// SyntaxToken is a lexical token of a file.
type SyntaxToken struct {
	Range textrange.Range
	Kind  TokenKind
}

// LineIndex converts byte offsets to 0-based line/column positions.
type LineIndex interface {
	LineCol(offset int) lineindex.LineCol
}

// Engine answers semantic questions about a loaded workspace.
type Engine interface {
	// Files returns the workspace files in path order. Library files loaded
	// for navigation are not included.
	Files() []FileID

	// Lookup returns the FileID of an absolute path.
	Lookup(path string) (FileID, bool)

	// Analyzed reports whether any backend understood the file. Files that
	// are not analyzed have no highlights, tokens or folds.
	Analyzed(file FileID) bool

	FilePath(file FileID) (string, error)
	FileContents(file FileID) ([]byte, error)
	LineIndex(file FileID) (LineIndex, error)

	Tokens(ctx context.Context, file FileID) ([]SyntaxToken, error)
	Highlight(ctx context.Context, file FileID) ([]HighlightRange, error)
	InlayTypeHints(ctx context.Context, file FileID) ([]InlayHint, error)
	FoldRanges(ctx context.Context, file FileID) ([]Fold, error)

	// Hover returns markup describing the item under the range. The boolean
	// is false when there is nothing to show.
	Hover(ctx context.Context, at FileRange) (string, bool, error)

	GotoDefinition(ctx context.Context, at Position) ([]NavigationTarget, error)
	FindReferences(ctx context.Context, at Position, scope *SearchScope) ([]FileReferences, error)
}
