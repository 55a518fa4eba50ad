// Package pipeline renders one source file into its code table.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/sevenzing/rust-html-generator/internal/logging"
	"github.com/sevenzing/rust-html-generator/pkg/engine"
	"github.com/sevenzing/rust-html-generator/pkg/navigation"
	"github.com/sevenzing/rust-html-generator/pkg/render"
	"github.com/sevenzing/rust-html-generator/pkg/report"
	"github.com/sevenzing/rust-html-generator/pkg/tokenstream"
)

// ErrNotLoaded is returned for a path the engine did not load.
var ErrNotLoaded = errors.New("file not loaded by the engine")

// Skip reasons.
const (
	ReasonInvalidUTF8 = "invalid utf-8"
	ReasonOutsideRoot = "outside project root"
)

// Options configures a Pipeline.
type Options struct {
	// Root is the absolute project directory.
	Root string

	// ProjectName prefixes every tree path.
	ProjectName string

	// MaxFileSize is the analysis limit the engine was loaded with. Larger
	// files are reported as rendered without highlighting.
	MaxFileSize int64
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	// Path is the absolute path of the file.
	Path string

	// TreePath is "{project}/{relative path}", the key of the file in the
	// report.
	TreePath string

	// HTML is the rendered code table. Empty when Skipped.
	HTML string

	// Skipped is set when the file is left out of the report.
	Skipped bool
	Reason  string

	// Analyzed is set when the file was highlighted.
	Analyzed bool

	Lines  int
	Tokens int
	Links  int
}

// Pipeline turns engine results into rendered HTML. It holds no per-file
// state and is safe for concurrent use.
type Pipeline struct {
	engine  engine.Engine
	builder *tokenstream.Builder
	assets  *report.Assets
	opts    Options
}

// New returns a pipeline.
func New(eng engine.Engine, builder *tokenstream.Builder, assets *report.Assets, opts Options) *Pipeline {
	return &Pipeline{engine: eng, builder: builder, assets: assets, opts: opts}
}

// ProcessFile renders the file at path. Files with invalid UTF-8 are
// skipped with a warning; every other failure is returned.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*FileResult, error) {
	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	logger := logging.FromContext(ctx)

	id, ok := p.engine.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, path)
	}

	result := &FileResult{Path: path}
	rel, ok := navigation.RelativePath(p.opts.Root, path)
	if !ok {
		result.Skipped, result.Reason = true, ReasonOutsideRoot
		logger.Warn("skipping file", logging.FieldReason, result.Reason)
		return result, nil
	}
	result.TreePath = p.opts.ProjectName + "/" + rel

	content, err := p.engine.FileContents(id)
	if err != nil {
		return nil, fmt.Errorf("contents of %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		result.Skipped, result.Reason = true, ReasonInvalidUTF8
		logger.Warn("skipping file", logging.FieldReason, result.Reason)
		return result, nil
	}

	var lines []render.Line
	if p.engine.Analyzed(id) {
		result.Analyzed = true
		lines, err = p.analyzedLines(ctx, id, content, result)
		if err != nil {
			return nil, err
		}
	} else {
		if p.opts.MaxFileSize > 0 && int64(len(content)) > p.opts.MaxFileSize {
			logger.Warn("file exceeds max_file_size, rendering without highlighting", logging.FieldSize, len(content))
		} else {
			logger.Debug("no analysis for file, rendering plain text")
		}
		lines = render.PlainLines(content)
	}

	html, err := p.assets.RenderCode(lines)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", path, err)
	}
	result.HTML = html
	result.Lines = len(lines)
	return result, nil
}

func (p *Pipeline) analyzedLines(ctx context.Context, id engine.FileID, content []byte, result *FileResult) ([]render.Line, error) {
	tokens, err := p.builder.Build(ctx, id)
	if err != nil {
		return nil, err
	}

	folds, err := p.engine.FoldRanges(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("folds of %s: %w", result.Path, err)
	}
	idx, err := p.engine.LineIndex(id)
	if err != nil {
		return nil, fmt.Errorf("line index of %s: %w", result.Path, err)
	}

	lines, err := render.Lines(tokens, content, render.FoldIndex(folds, idx))
	if err != nil {
		return nil, fmt.Errorf("render lines of %s: %w", result.Path, err)
	}

	result.Tokens = len(tokens)
	result.Links = tokenstream.NavigationCount(tokens)
	return lines, nil
}
