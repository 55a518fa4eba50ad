package treesitter

import (
	"context"
	"fmt"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sevenzing/rust-html-generator/pkg/engine"
	"github.com/sevenzing/rust-html-generator/pkg/langdetect"
	"github.com/sevenzing/rust-html-generator/pkg/textrange"
)

// ident is one identifier occurrence.
type ident struct {
	rng  textrange.Range
	name string
}

// definition is a declared name.
type definition struct {
	name string
	kind string
	// nameRange is the identifier, fullRange the declaring node.
	nameRange textrange.Range
	fullRange textrange.Range
	// local names are visible only inside their own file, and only inside
	// scope when it is not empty.
	local bool
	scope textrange.Range
}

// analysis is everything the engine keeps about one file once its syntax
// tree has been released.
type analysis struct {
	tokens     []engine.SyntaxToken
	highlights []engine.HighlightRange
	hints      []engine.InlayHint
	folds      []engine.Fold
	idents     []ident
	defs       []definition
}

// syntaxWalker collects an analysis from one syntax tree.
type syntaxWalker struct {
	lang    langdetect.Language
	content []byte
	rules   map[string]defRule
	out     analysis
	// declared marks name ranges that are definitions.
	declared map[textrange.Range]string
	cursor   int
}

// analyzeTree parses content with parser and walks the resulting tree.
// The tree is closed before returning.
func analyzeTree(ctx context.Context, parser *sitter.Parser, grammar *sitter.Language,
	lang langdetect.Language, content []byte,
) (*analysis, error) {
	parser.SetLanguage(grammar)
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", lang, err)
	}
	defer tree.Close()

	w := &syntaxWalker{
		lang:     lang,
		content:  content,
		rules:    definitionRules[lang],
		declared: make(map[textrange.Range]string),
	}
	root := tree.RootNode()

	w.collectDefinitions(root, textrange.Range{})
	w.walk(root)
	w.gap(len(content))

	if lang == langdetect.Go {
		w.out.hints = goHints(root, content)
	} else if lang == langdetect.Rust {
		w.out.hints = rustHints(root, content)
	}

	return &w.out, nil
}

func nodeRange(node *sitter.Node) textrange.Range {
	return textrange.New(int(node.StartByte()), int(node.EndByte()))
}

func spansLines(node *sitter.Node) bool {
	return node.EndPoint().Row > node.StartPoint().Row
}

// walk emits tokens, highlights, folds and identifiers in source order.
func (w *syntaxWalker) walk(node *sitter.Node) {
	if node == nil {
		return
	}
	rng := nodeRange(node)

	if node.IsNamed() && spansLines(node) && isFoldable(node.Type()) {
		w.out.folds = append(w.out.folds, engine.Fold{Range: rng})
	}

	switch {
	case rng.IsEmpty():
		return
	case isCommentNode(node) && node.IsNamed():
		w.token(rng, engine.KindComment, "comment")
		return
	case isStringNode(node):
		tag := "string"
		if w.lang == langdetect.JSON && node.Parent() != nil && node.Parent().Type() == "pair" &&
			node.Parent().ChildByFieldName("key") != nil && nodeRange(node.Parent().ChildByFieldName("key")) == rng {
			tag = "field"
		}
		w.token(rng, engine.KindString, tag)
		w.escapes(node)
		return
	case node.ChildCount() == 0:
		w.leaf(node, rng)
		return
	}

	for i := range int(node.ChildCount()) {
		w.walk(node.Child(i))
	}
}

func (w *syntaxWalker) leaf(node *sitter.Node, rng textrange.Range) {
	text := string(w.content[rng.Start:rng.End])
	tag, kind := classifyLeaf(w.lang, node, text)
	if kind == engine.KindIdentifier {
		w.out.idents = append(w.out.idents, ident{rng: rng, name: text})
		if defKind, ok := w.declared[rng]; ok {
			tag = defKind + ".declaration"
		}
	}
	w.token(rng, kind, tag)
}

// escapes highlights escape sequences nested inside a string token.
func (w *syntaxWalker) escapes(node *sitter.Node) {
	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		if isEscapeNode(child) {
			w.out.highlights = append(w.out.highlights, engine.HighlightRange{Range: nodeRange(child), Tag: "escape"})
			continue
		}
		w.escapes(child)
	}
}

func (w *syntaxWalker) token(rng textrange.Range, kind engine.TokenKind, tag string) {
	w.gap(rng.Start)
	w.out.tokens = append(w.out.tokens, engine.SyntaxToken{Range: rng, Kind: kind})
	if tag != "" {
		w.out.highlights = append(w.out.highlights, engine.HighlightRange{Range: rng, Tag: tag})
	}
	w.cursor = rng.End
}

// gap emits the bytes between the previous token and end.
func (w *syntaxWalker) gap(end int) {
	if end <= w.cursor {
		return
	}
	rng := textrange.New(w.cursor, end)
	kind := engine.KindWhitespace
	if strings.TrimSpace(string(w.content[rng.Start:rng.End])) != "" {
		kind = engine.KindOther
	}
	w.out.tokens = append(w.out.tokens, engine.SyntaxToken{Range: rng, Kind: kind})
	w.cursor = end
}

// collectDefinitions records declared names. scope is the innermost
// enclosing node that opens a local scope, empty at file level.
func (w *syntaxWalker) collectDefinitions(node *sitter.Node, scope textrange.Range) {
	if node == nil {
		return
	}
	if rule, ok := w.rules[node.Type()]; ok {
		for _, name := range w.declaredNames(node, rule.field) {
			rng := nodeRange(name)
			if _, seen := w.declared[rng]; seen {
				continue
			}
			w.declared[rng] = rule.kind
			w.out.defs = append(w.out.defs, definition{
				name:      name.Content(w.content),
				kind:      rule.kind,
				nameRange: rng,
				fullRange: nodeRange(node),
				local:     !scope.IsEmpty() || rule.kind == "parameter",
				scope:     scope,
			})
		}
	}

	childScope := scope
	if localScopes[node.Type()] {
		childScope = nodeRange(node)
	}
	for i := range int(node.NamedChildCount()) {
		w.collectDefinitions(node.NamedChild(i), childScope)
	}
}

// declaredNames returns the identifier nodes a declaration introduces
// through field. Declarator chains (C pointers, arrays, functions), pattern
// lists and Go's repeated name fields are followed.
func (w *syntaxWalker) declaredNames(node *sitter.Node, field string) []*sitter.Node {
	var names []*sitter.Node
	for i := range int(node.ChildCount()) {
		if node.FieldNameForChild(i) != field {
			continue
		}
		names = append(names, identifiersOf(node.Child(i))...)
	}
	return names
}

func identifiersOf(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	if isIdentifierNode(node.Type()) && node.ChildCount() == 0 {
		return []*sitter.Node{node}
	}
	if inner := node.ChildByFieldName("declarator"); inner != nil {
		return identifiersOf(inner)
	}
	if inner := node.ChildByFieldName("name"); inner != nil {
		return identifiersOf(inner)
	}
	if inner := node.ChildByFieldName("pattern"); inner != nil {
		return identifiersOf(inner)
	}
	switch node.Type() {
	case "expression_list", "pattern_list", "tuple_pattern", "identifier_list", "tuple":
		var out []*sitter.Node
		for i := range int(node.NamedChildCount()) {
			out = append(out, identifiersOf(node.NamedChild(i))...)
		}
		return out
	}
	return nil
}

// identAt returns the identifier covering offset.
func (a *analysis) identAt(offset int) (ident, bool) {
	i, found := slices.BinarySearchFunc(a.idents, offset, func(id ident, off int) int {
		switch {
		case id.rng.End <= off:
			return -1
		case id.rng.Start > off:
			return 1
		default:
			return 0
		}
	})
	if !found {
		return ident{}, false
	}
	return a.idents[i], true
}
