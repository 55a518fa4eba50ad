package tokenstream

import (
	"strings"

	"github.com/sevenzing/rust-html-generator/pkg/engine"
)

// inertHighlights are top-level highlight tags that never name anything.
//
//nolint:gochecknoglobals // Read-only lookup table.
var inertHighlights = map[string]bool{
	"keyword":     true,
	"string":      true,
	"number":      true,
	"comment":     true,
	"punctuation": true,
	"operator":    true,
	"boolean":     true,
	"escape":      true,
}

// Tag is the annotation carried through range merging: the engine highlight
// for the range (possibly empty) and the lexical kind when the range is a
// syntax token.
type Tag struct {
	Highlight string
	Kind      engine.TokenKind
}

// Inert reports whether the tagged range can never be a navigation source:
// literals, keywords, punctuation, comments and whitespace.
func (t Tag) Inert() bool {
	if t.Kind.Trivia() {
		return true
	}
	if t.Kind != engine.KindNone {
		return false
	}
	if t.Highlight == "" {
		return true
	}
	return inertHighlights[topLevel(t.Highlight)]
}

// IsComment reports whether the tag marks a comment.
func (t Tag) IsComment() bool {
	return t.Kind == engine.KindComment || topLevel(t.Highlight) == "comment"
}

// Class returns the CSS class list for the tag: the highlight with dots
// replaced by spaces, "string_literal" for unhighlighted strings, or "".
func (t Tag) Class() string {
	if t.Highlight != "" {
		return strings.ReplaceAll(t.Highlight, ".", " ")
	}
	if t.Kind == engine.KindString {
		return "string_literal"
	}
	return ""
}

func topLevel(highlight string) string {
	if i := strings.IndexByte(highlight, '.'); i >= 0 {
		return highlight[:i]
	}
	return highlight
}
