package treesitter

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/sevenzing/rust-html-generator/pkg/engine"
	"github.com/sevenzing/rust-html-generator/pkg/lineindex"
	"github.com/sevenzing/rust-html-generator/pkg/textrange"
)

// analyzeMarkdown highlights Markdown structure from a goldmark block walk.
// Tokens are cut at every highlight boundary and at whitespace, and every
// token inside a structure carries that structure's tag.
func analyzeMarkdown(content []byte) *analysis {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))
	lines := lineindex.New(content)

	var (
		highlights []engine.HighlightRange
		folds      []engine.Fold
	)
	add := func(start, end int, tag string) {
		if start < 0 || end > len(content) || start >= end {
			return
		}
		highlights = append(highlights, engine.HighlightRange{Range: textrange.New(start, end), Tag: tag})
	}

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fold := func(start, end int) {
			if lines.LineCol(start).Line < lines.LineCol(end).Line {
				folds = append(folds, engine.Fold{Range: textrange.New(start, end)})
			}
		}
		switch n := node.(type) {
		case *ast.Heading:
			if start, end := blockRange(n); start >= 0 {
				add(lineStart(lines, start), end, "markup.heading")
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if start, end := blockRange(n); start >= 0 {
				end = trimNewline(content, end)
				add(start, end, "markup.code")
				fold(start, end)
			}
			return ast.WalkSkipChildren, nil
		case *ast.Blockquote:
			if start, end := blockRange(n); start >= 0 {
				start, end = lineStart(lines, start), trimNewline(content, end)
				add(start, end, "markup.quote")
				fold(start, end)
			}
		case *ast.ListItem:
			if first, _ := blockRange(n); first >= 0 {
				markerStart := lineStart(lines, first)
				for markerStart < first && (content[markerStart] == ' ' || content[markerStart] == '\t') {
					markerStart++
				}
				markerEnd := first
				for markerEnd > markerStart && (content[markerEnd-1] == ' ' || content[markerEnd-1] == '\t') {
					markerEnd--
				}
				add(markerStart, markerEnd, "markup.list")
			}
		case *ast.CodeSpan:
			start, end := inlineRange(n)
			add(start, end, "markup.code")
			return ast.WalkSkipChildren, nil
		case *ast.Link:
			start, end := inlineRange(n)
			add(start, end, "markup.link")
			return ast.WalkSkipChildren, nil
		case *ast.Emphasis:
			tag := "markup.italic"
			if n.Level >= 2 {
				tag = "markup.bold"
			}
			start, end := inlineRange(n)
			add(start, end, tag)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	highlights = engine.Nested(highlights)
	tokens := cutTokens(content, highlights)
	return &analysis{
		tokens:     tokens,
		highlights: perToken(tokens, highlights),
		folds:      folds,
	}
}

// perToken re-keys nested highlights onto the tokens they cover. Each token
// takes the tag of the innermost highlight containing it.
func perToken(tokens []engine.SyntaxToken, nested []engine.HighlightRange) []engine.HighlightRange {
	var out []engine.HighlightRange
	for _, tok := range tokens {
		upper, _ := slices.BinarySearchFunc(nested, tok.Range.Start, func(h engine.HighlightRange, off int) int {
			if h.Range.Start <= off {
				return -1
			}
			return 1
		})
		for i := upper - 1; i >= 0; i-- {
			if nested[i].Range.Contains(tok.Range) {
				out = append(out, engine.HighlightRange{Range: tok.Range, Tag: nested[i].Tag})
				break
			}
		}
	}
	return out
}

// blockRange returns the byte range of a block node's lines, including its
// descendants' lines, or -1, -1 when it has none.
func blockRange(node ast.Node) (int, int) {
	start, end := -1, -1
	if node.Type() == ast.TypeBlock {
		lines := node.Lines()
		if lines.Len() > 0 {
			start, end = lines.At(0).Start, lines.At(lines.Len()-1).Stop
		}
	}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() != ast.TypeBlock {
			continue
		}
		s, e := blockRange(child)
		if s >= 0 && (start < 0 || s < start) {
			start = s
		}
		if e > end {
			end = e
		}
	}
	return start, end
}

// inlineRange returns the range covered by the text segments below an
// inline node.
func inlineRange(node ast.Node) (int, int) {
	start, end := -1, -1
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		t, ok := n.(*ast.Text)
		if !ok {
			return ast.WalkContinue, nil
		}
		seg := t.Segment
		if start < 0 || seg.Start < start {
			start = seg.Start
		}
		if seg.Stop > end {
			end = seg.Stop
		}
		return ast.WalkContinue, nil
	})
	return start, end
}

func lineStart(lines *lineindex.Index, offset int) int {
	start, _, ok := lines.LineBounds(lines.LineCol(offset).Line)
	if !ok {
		return offset
	}
	return start
}

func trimNewline(content []byte, end int) int {
	for end > 0 && end <= len(content) && (content[end-1] == '\n' || content[end-1] == '\r') {
		end--
	}
	return end
}

// cutTokens partitions content into tokens whose boundaries include every
// highlight boundary and every change between whitespace and text.
func cutTokens(content []byte, highlights []engine.HighlightRange) []engine.SyntaxToken {
	cuts := make([]int, 0, 2*len(highlights))
	for _, h := range highlights {
		cuts = append(cuts, h.Range.Start, h.Range.End)
	}
	slices.Sort(cuts)

	var tokens []engine.SyntaxToken
	emit := func(start, end int) {
		for start < end {
			space := isSpaceAt(content, start)
			stop := start
			for stop < end && isSpaceAt(content, stop) == space {
				_, size := utf8.DecodeRune(content[stop:end])
				stop += size
			}
			kind := engine.KindOther
			if space {
				kind = engine.KindWhitespace
			}
			tokens = append(tokens, engine.SyntaxToken{Range: textrange.New(start, stop), Kind: kind})
			start = stop
		}
	}

	pos := 0
	for _, cut := range cuts {
		if cut > pos {
			emit(pos, cut)
			pos = cut
		}
	}
	emit(pos, len(content))
	return tokens
}

func isSpaceAt(content []byte, offset int) bool {
	r, _ := utf8.DecodeRune(content[offset:])
	return unicode.IsSpace(r)
}
