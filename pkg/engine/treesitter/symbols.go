package treesitter

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sevenzing/rust-html-generator/pkg/engine"
	"github.com/sevenzing/rust-html-generator/pkg/textrange"
)

// maxDocLines bounds the comment lines shown above a signature.
const maxDocLines = 12

// symbolRef points at definition def of file.
type symbolRef struct {
	file engine.FileID
	def  int
}

// indexSymbols builds the name index in FileID order, so lookups list
// definitions in path order with project files before library files.
func (e *Engine) indexSymbols() {
	for id, f := range e.files {
		if f.syntax == nil {
			continue
		}
		for i, d := range f.syntax.defs {
			e.symbols[d.name] = append(e.symbols[d.name], symbolRef{file: engine.FileID(id), def: i})
		}
	}
}

func (e *Engine) definition(ref symbolRef) definition {
	return e.files[ref.file].syntax.defs[ref.def]
}

// resolve returns the definitions the occurrence id in file can refer to.
// A declared name resolves to its own declaration only. A local binding
// whose scope contains the occurrence shadows everything else. Otherwise
// the file's non-local definitions come first, then those of other files.
func (e *Engine) resolve(file engine.FileID, id ident) []symbolRef {
	var (
		binding    symbolRef
		bound      bool
		own, other []symbolRef
	)
	for _, r := range e.symbols[id.name] {
		d := e.definition(r)
		switch {
		case r.file == file && d.nameRange == id.rng:
			return []symbolRef{r}
		case r.file == file && d.local:
			if !d.scope.IsEmpty() && !d.scope.Contains(id.rng) {
				continue
			}
			if !bound || closerBinding(d, e.definition(binding), id.rng.Start) {
				binding, bound = r, true
			}
		case r.file == file:
			own = append(own, r)
		case !d.local:
			other = append(other, r)
		}
	}
	if bound {
		return []symbolRef{binding}
	}
	return append(own, other...)
}

// closerBinding reports whether local a binds a use at offset more tightly
// than local b: inner scopes win, then declarations before the use, then
// the declaration nearest to the use.
func closerBinding(a, b definition, offset int) bool {
	if a.scope != b.scope {
		return b.scope.IsEmpty() || (!a.scope.IsEmpty() && b.scope.Contains(a.scope))
	}
	aBefore, bBefore := a.nameRange.Start <= offset, b.nameRange.Start <= offset
	switch {
	case aBefore != bBefore:
		return aBefore
	case aBefore:
		return a.nameRange.Start > b.nameRange.Start
	default:
		return a.nameRange.Start < b.nameRange.Start
	}
}

// identifier returns the identifier under pos.
func (e *Engine) identifier(ctx context.Context, pos engine.Position) (ident, bool, error) {
	a, err := e.analysisOf(ctx, pos.File)
	if err != nil {
		return ident{}, false, err
	}
	id, ok := a.identAt(pos.Offset)
	return id, ok, nil
}

// GotoDefinition lists the definitions of the identifier under pos.
func (e *Engine) GotoDefinition(ctx context.Context, pos engine.Position) ([]engine.NavigationTarget, error) {
	id, ok, err := e.identifier(ctx, pos)
	if err != nil || !ok {
		return nil, err
	}

	refs := e.resolve(pos.File, id)
	targets := make([]engine.NavigationTarget, 0, len(refs))
	for _, r := range refs {
		d := e.definition(r)
		focus := d.nameRange
		targets = append(targets, engine.NavigationTarget{File: r.file, FullRange: d.fullRange, FocusRange: &focus})
	}
	return targets, nil
}

// FindReferences lists the occurrences of the identifier under pos that
// resolve to the same definition it does.
func (e *Engine) FindReferences(ctx context.Context, pos engine.Position, scope *engine.SearchScope) ([]engine.FileReferences, error) {
	id, ok, err := e.identifier(ctx, pos)
	if err != nil || !ok {
		return nil, err
	}
	refs := e.resolve(pos.File, id)
	if len(refs) == 0 {
		return nil, nil
	}
	target := refs[0]
	local := e.definition(target).local

	var out []engine.FileReferences
	for fid, f := range e.files {
		file := engine.FileID(fid)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f.syntax == nil || !scope.Includes(file) || (local && file != target.file) {
			continue
		}
		var ranges []textrange.Range
		for _, occ := range f.syntax.idents {
			if occ.name != id.name {
				continue
			}
			if bound := e.resolve(file, occ); len(bound) > 0 && bound[0] == target {
				ranges = append(ranges, occ.rng)
			}
		}
		if len(ranges) > 0 {
			out = append(out, engine.FileReferences{File: file, Ranges: ranges})
		}
	}
	return out, nil
}

// Hover describes the definition of the identifier at exactly at.Range:
// its signature line followed by the comment block above it.
func (e *Engine) Hover(ctx context.Context, at engine.FileRange) (string, bool, error) {
	id, ok, err := e.identifier(ctx, engine.Position{File: at.File, Offset: at.Range.Start})
	if err != nil || !ok || id.rng != at.Range {
		return "", false, err
	}
	refs := e.resolve(at.File, id)
	if len(refs) == 0 {
		return "", false, nil
	}

	key := fmt.Sprintf("%d:%d", refs[0].file, refs[0].def)
	if text, found := e.hovers.Get(key); found {
		return text, text != "", nil
	}
	text := e.renderHover(refs[0])
	e.hovers.Set(key, text, int64(len(text))+1)
	return text, text != "", nil
}

func (e *Engine) renderHover(ref symbolRef) string {
	f := e.files[ref.file]
	d := e.definition(ref)

	sig := d.fullRange
	if d.kind != "parameter" && d.kind != "field" {
		line := f.lines.LineCol(d.nameRange.Start).Line
		if start, end, ok := f.lines.LineBounds(line); ok {
			sig = textrange.New(start, end)
		}
	}
	signature := firstLine(sig.Slice(f.content))
	signature = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(signature), "{"))
	if signature == "" {
		return ""
	}

	doc := docComment(f, f.lines.LineCol(sig.Start).Line)
	if doc == "" {
		return signature
	}
	return signature + "\n\n" + doc
}

// docComment collects the single-line comments directly above line.
func docComment(f *sourceFile, line int) string {
	var lines []string
	for l := line - 1; l >= 0 && len(lines) < maxDocLines; l-- {
		text, ok := commentLine(f, l)
		if !ok {
			break
		}
		lines = append(lines, text)
	}
	if len(lines) == 0 {
		return ""
	}
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return strings.Join(lines, "\n")
}

// commentLine returns the text of line when the line holds nothing but a
// comment token that ends on it.
func commentLine(f *sourceFile, line int) (string, bool) {
	start, end, ok := f.lines.LineBounds(line)
	if !ok {
		return "", false
	}
	raw := f.content[start:end]
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return "", false
	}
	offset := start + strings.Index(string(raw), trimmed)
	i, found := slices.BinarySearchFunc(f.syntax.tokens, offset, func(tok engine.SyntaxToken, off int) int {
		return cmp.Compare(tok.Range.Start, off)
	})
	if !found {
		return "", false
	}
	if tok := f.syntax.tokens[i]; tok.Kind != engine.KindComment || tok.Range.End > end {
		return "", false
	}
	return strings.TrimSpace(strings.TrimLeft(trimmed, "/#*!-;")), true
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
