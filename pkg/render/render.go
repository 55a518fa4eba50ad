// Package render turns token streams into per-line HTML fragments.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/sevenzing/rust-html-generator/pkg/engine"
	"github.com/sevenzing/rust-html-generator/pkg/tokenstream"
)

// FoldRange is a collapsible region in 1-based line numbers.
type FoldRange struct {
	StartLine int
	EndLine   int
}

// Line is one rendered source line.
type Line struct {
	Number int
	HTML   string
	Fold   *FoldRange
}

// Hover values that carry no information.
const (
	emptyTupleHover = "()"
	unknownHover    = "{unknown}"
)

// FoldIndex converts engine folds to 1-based line ranges keyed by start
// line. Folds that do not span at least two lines are dropped; when several
// folds start on the same line the one reaching furthest wins.
func FoldIndex(folds []engine.Fold, idx engine.LineIndex) map[int]FoldRange {
	out := make(map[int]FoldRange, len(folds))
	for _, f := range folds {
		start := idx.LineCol(f.Range.Start).Line + 1
		end := idx.LineCol(f.Range.End).Line + 1
		if end <= start {
			continue
		}
		if prev, ok := out[start]; ok && prev.EndLine >= end {
			continue
		}
		out[start] = FoldRange{StartLine: start, EndLine: end}
	}
	return out
}

// Lines groups tokens into lines, each ending with its line break, and
// renders every token. Line numbers start at 1.
func Lines(tokens []tokenstream.Token, content []byte, folds map[int]FoldRange) ([]Line, error) {
	var (
		lines []Line
		buf   strings.Builder
		open  bool
	)

	flush := func() {
		number := len(lines) + 1
		line := Line{Number: number, HTML: buf.String()}
		if f, ok := folds[number]; ok {
			line.Fold = &f
		}
		lines = append(lines, line)
		buf.Reset()
		open = false
	}

	for _, tok := range tokens {
		open = true
		if tok.IsLineBreak {
			buf.WriteString(html.EscapeString(string(content[tok.Range.Start:tok.Range.End])))
			flush()
			continue
		}
		fragment, err := Token(tok, content)
		if err != nil {
			return nil, err
		}
		buf.WriteString(fragment)
	}
	if open {
		flush()
	}

	return lines, nil
}

// Token renders a single token. Tokens without a class render as escaped
// text; others are wrapped in a hovertext span carrying the hover or type
// label and, when present, the jump data.
func Token(tok tokenstream.Token, content []byte) (string, error) {
	text := html.EscapeString(string(content[tok.Range.Start:tok.Range.End]))
	if tok.Class == "" {
		return text, nil
	}

	var b strings.Builder
	b.WriteString(`<span class="hovertext `)
	b.WriteString(html.EscapeString(tok.Class))
	if tok.Navigation != nil {
		data, err := tok.Navigation.Attribute()
		if err != nil {
			return "", fmt.Errorf("render token at %s: %w", tok.Range, err)
		}
		b.WriteString(` jump" jump-data="`)
		b.WriteString(data)
	}
	b.WriteString(`">`)
	b.WriteString(text)

	if tip := tooltip(tok); tip != "" {
		b.WriteString("<span>")
		b.WriteString(html.EscapeString(tip))
		b.WriteString("</span>")
	}

	b.WriteString("</span>")
	return b.String(), nil
}

func tooltip(tok tokenstream.Token) string {
	hover := tok.Hover
	if hover == emptyTupleHover || hover == unknownHover {
		hover = ""
	}
	if hover != "" {
		return hover
	}
	return tok.TypeLabel
}

// PlainLines renders content without analysis: escaped text split after
// each "\n", which stays at the end of its line. A trailing newline does
// not start an extra empty line.
func PlainLines(content []byte) []Line {
	parts := strings.SplitAfter(html.EscapeString(string(content)), "\n")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	lines := make([]Line, len(parts))
	for i, part := range parts {
		lines[i] = Line{Number: i + 1, HTML: part}
	}
	return lines
}
