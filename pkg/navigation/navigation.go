// Package navigation turns engine definition and reference results into
// project-relative, line-addressed jump targets.
package navigation

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sevenzing/rust-html-generator/pkg/engine"
	"github.com/sevenzing/rust-html-generator/pkg/textrange"
)

// Loc is a 1-based line location.
type Loc struct {
	Line int `json:"line"`
}

// JumpTarget is a destination inside the generated report. File is
// "{project}/{relative path}" with forward slashes.
type JumpTarget struct {
	File string `json:"file"`
	Loc  Loc    `json:"loc"`
}

// Navigation is the jump data attached to one token.
type Navigation struct {
	Definition *JumpTarget  `json:"def"`
	References []JumpTarget `json:"refs"`
	Origin     JumpTarget   `json:"from"`
}

// Attribute encodes the navigation as JSON with double quotes replaced by
// single quotes, ready to be placed in a double-quoted HTML attribute.
// Single quotes already in the data are written as \u0027 so the reader can
// swap the quotes back.
func (n *Navigation) Attribute() (string, error) {
	out := *n
	if out.References == nil {
		out.References = []JumpTarget{}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode jump data: %w", err)
	}
	escaped := strings.ReplaceAll(string(data), `'`, `\u0027`)
	return strings.ReplaceAll(escaped, `"`, `'`), nil
}

// Options configures a Resolver.
type Options struct {
	// Root is the absolute project directory.
	Root string

	// ProjectName prefixes every relative path.
	ProjectName string

	// Scope limits reference searches. Nil searches the whole workspace.
	Scope *engine.SearchScope

	// ReferencesOnly keeps navigation for tokens whose only results are
	// references. By default a token without a definition gets no navigation.
	ReferencesOnly bool

	// SkipReferences disables reference queries entirely.
	SkipReferences bool
}

// Resolver queries an engine for jump targets. It is safe for concurrent use
// when the engine is.
type Resolver struct {
	engine engine.Engine
	opts   Options
}

// NewResolver returns a resolver backed by eng.
func NewResolver(eng engine.Engine, opts Options) *Resolver {
	opts.Root = filepath.Clean(opts.Root)
	return &Resolver{engine: eng, opts: opts}
}

// Resolve returns the navigation for the token at r in file, or nil when
// there is nothing to jump to. Results pointing back at the token itself
// are dropped, as are results in files outside the project root.
func (res *Resolver) Resolve(ctx context.Context, file engine.FileID, r textrange.Range) (*Navigation, error) {
	origin, ok, err := res.Target(file, r.Start)
	if err != nil || !ok {
		return nil, err
	}

	at := engine.Position{File: file, Offset: r.Start}

	defs, err := res.engine.GotoDefinition(ctx, at)
	if err != nil {
		return nil, fmt.Errorf("goto definition at %s: %w", origin.File, err)
	}

	var definition *JumpTarget
	for _, d := range defs {
		focus := d.FocusOrFullRange()
		if d.File == file && focus == r {
			continue
		}
		target, ok, err := res.Target(d.File, focus.Start)
		if err != nil {
			return nil, err
		}
		if ok {
			definition = &target
			break
		}
	}

	if definition == nil && !res.opts.ReferencesOnly {
		return nil, nil
	}

	var refs []JumpTarget
	if !res.opts.SkipReferences {
		refs, err = res.references(ctx, at, file, r)
		if err != nil {
			return nil, fmt.Errorf("find references at %s: %w", origin.File, err)
		}
	}

	if definition == nil && len(refs) == 0 {
		return nil, nil
	}

	return &Navigation{Definition: definition, References: refs, Origin: origin}, nil
}

func (res *Resolver) references(
	ctx context.Context,
	at engine.Position,
	file engine.FileID,
	r textrange.Range,
) ([]JumpTarget, error) {
	found, err := res.engine.FindReferences(ctx, at, res.opts.Scope)
	if err != nil {
		return nil, err
	}

	var refs []JumpTarget
	for _, fr := range found {
		for _, ref := range fr.Ranges {
			if fr.File == file && ref == r {
				continue
			}
			target, ok, err := res.Target(fr.File, ref.Start)
			if err != nil {
				return nil, err
			}
			if ok {
				refs = append(refs, target)
			}
		}
	}
	return refs, nil
}

// Target converts a file offset into a jump target. It returns false when
// the file lies outside the project root.
func (res *Resolver) Target(file engine.FileID, offset int) (JumpTarget, bool, error) {
	path, err := res.engine.FilePath(file)
	if err != nil {
		return JumpTarget{}, false, err
	}

	rel, ok := RelativePath(res.opts.Root, path)
	if !ok {
		return JumpTarget{}, false, nil
	}

	idx, err := res.engine.LineIndex(file)
	if err != nil {
		return JumpTarget{}, false, err
	}

	return JumpTarget{
		File: res.opts.ProjectName + "/" + rel,
		Loc:  Loc{Line: idx.LineCol(offset).Line + 1},
	}, true, nil
}

// RelativePath returns path relative to root with forward slashes, or false
// when path is not below root.
func RelativePath(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
