// Package tokenstream builds the ordered, non-overlapping, line-partitioned
// token sequence for one file from engine output.
package tokenstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/sevenzing/rust-html-generator/pkg/engine"
	"github.com/sevenzing/rust-html-generator/pkg/linesplit"
	"github.com/sevenzing/rust-html-generator/pkg/navigation"
	"github.com/sevenzing/rust-html-generator/pkg/rangemerge"
	"github.com/sevenzing/rust-html-generator/pkg/textrange"
)

// Token is one renderable piece of a file. Empty strings mean "absent".
type Token struct {
	Range       textrange.Range
	IsLineBreak bool

	Class      string
	Hover      string
	TypeLabel  string
	Navigation *navigation.Navigation
}

// InvariantError reports engine output that cannot be rendered safely:
// partially overlapping ranges or a split that lost bytes.
type InvariantError struct {
	Path string
	Err  error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invalid analysis output for %s: %v", e.Path, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// Builder produces token streams. It holds no per-file state and may be
// shared between goroutines.
type Builder struct {
	engine   engine.Engine
	resolver *navigation.Resolver
}

// NewBuilder returns a builder. A nil resolver disables navigation.
func NewBuilder(eng engine.Engine, resolver *navigation.Resolver) *Builder {
	return &Builder{engine: eng, resolver: resolver}
}

// Build returns the token stream of file covering its whole content in
// source order. Engine failures are returned wrapped; contract violations
// are returned as *InvariantError.
func (b *Builder) Build(ctx context.Context, file engine.FileID) ([]Token, error) {
	path, err := b.engine.FilePath(file)
	if err != nil {
		return nil, err
	}
	content, err := b.engine.FileContents(file)
	if err != nil {
		return nil, fmt.Errorf("contents of %s: %w", path, err)
	}

	syntax, err := b.engine.Tokens(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("tokens of %s: %w", path, err)
	}
	highlights, err := b.engine.Highlight(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("highlight %s: %w", path, err)
	}
	hints, err := b.engine.InlayTypeHints(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("inlay hints of %s: %w", path, err)
	}

	var leaves []rangemerge.Leaf[Tag]
	if err := guard(path, func() {
		leaves = merge(len(content), syntax, highlights)
	}); err != nil {
		return nil, err
	}

	labels := make(map[textrange.Range]string, len(hints))
	for _, h := range hints {
		labels[h.Range] = h.Label
	}

	tokens := make([]Token, 0, len(leaves))
	for _, leaf := range leaves {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var tag Tag
		if leaf.Tagged {
			tag = leaf.Tag
		}
		class := tag.Class()
		text := content[leaf.Range.Start:leaf.Range.End]

		if tag.Kind == engine.KindString || bytes.IndexByte(text, '\n') >= 0 {
			var pieces []linesplit.Piece
			if err := guard(path, func() {
				pieces = linesplit.Split(string(text), leaf.Range.Start, class)
			}); err != nil {
				return nil, err
			}
			for _, p := range pieces {
				tokens = append(tokens, Token{Range: p.Range, IsLineBreak: p.IsLineBreak, Class: p.Class})
			}
			continue
		}

		tok := Token{Range: leaf.Range, Class: class}
		if class == "" {
			tokens = append(tokens, tok)
			continue
		}

		if !tag.IsComment() {
			hover, ok, err := b.engine.Hover(ctx, engine.FileRange{File: file, Range: leaf.Range})
			if err != nil {
				return nil, fmt.Errorf("hover in %s at %s: %w", path, leaf.Range, err)
			}
			if ok {
				tok.Hover = hover
			}
		}

		tok.TypeLabel = labels[leaf.Range]

		if b.resolver != nil && !tag.Inert() {
			nav, err := b.resolver.Resolve(ctx, file, leaf.Range)
			if err != nil {
				return nil, err
			}
			tok.Navigation = nav
		}

		tokens = append(tokens, tok)
	}

	return tokens, nil
}

// merge builds the interval tree: syntax tokens tagged with their kind and
// their exact-range highlight, then every highlight not matched to a token.
func merge(size int, syntax []engine.SyntaxToken, highlights []engine.HighlightRange) []rangemerge.Leaf[Tag] {
	exact := make(map[textrange.Range]string, len(highlights))
	for _, h := range highlights {
		if _, ok := exact[h.Range]; !ok {
			exact[h.Range] = h.Tag
		}
	}

	m := rangemerge.New[Tag](textrange.New(0, size))
	tokenRanges := make(map[textrange.Range]bool, len(syntax))

	for _, tok := range syntax {
		m.Add(tok.Range, Tag{Highlight: exact[tok.Range], Kind: tok.Kind})
		tokenRanges[tok.Range] = true
	}
	for _, h := range highlights {
		if tokenRanges[h.Range] {
			continue
		}
		m.Add(h.Range, Tag{Highlight: h.Tag})
	}

	return m.Flatten()
}

// guard runs fn and converts contract-violation panics into *InvariantError.
// Other panics are re-raised.
func guard(path string, fn func()) (err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		recErr, ok := rec.(error)
		if !ok {
			panic(rec)
		}
		var containment *rangemerge.ContainmentError
		var length *linesplit.LengthError
		if !errors.As(recErr, &containment) && !errors.As(recErr, &length) {
			panic(rec)
		}
		err = &InvariantError{Path: path, Err: recErr}
	}()

	fn()
	return nil
}

// NavigationCount returns how many tokens carry navigation.
func NavigationCount(tokens []Token) int {
	n := 0
	for _, t := range tokens {
		if t.Navigation != nil {
			n++
		}
	}
	return n
}
