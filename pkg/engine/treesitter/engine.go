// Package treesitter implements engine.Engine on tree-sitter grammars, with
// goldmark for Markdown and chroma lexers for everything else.
//
// Load reads and analyzes every file up front; syntax trees are released as
// soon as a file has been walked, and queries only read the results.
package treesitter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dgraph-io/ristretto/v2"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/sevenzing/rust-html-generator/internal/logging"
	"github.com/sevenzing/rust-html-generator/pkg/engine"
	"github.com/sevenzing/rust-html-generator/pkg/fsutil"
	"github.com/sevenzing/rust-html-generator/pkg/langdetect"
	"github.com/sevenzing/rust-html-generator/pkg/lineindex"
)

// hoverCacheBytes bounds the memory held by rendered hover texts.
const hoverCacheBytes = 8 << 20

// LoadOptions controls which files Load analyzes.
type LoadOptions struct {
	// Files are the absolute paths of the project files.
	Files []string

	// LibraryRoots are directories indexed for navigation only when
	// ScanWhole is set. Their files are not listed by Files().
	LibraryRoots []string
	ScanWhole    bool

	// Jobs bounds parallel parsing. Zero or less means one per file.
	Jobs int

	// MaxFileSize skips analysis of larger files. Zero means no limit.
	MaxFileSize int64
}

// sourceFile is one loaded file.
type sourceFile struct {
	path    string
	content []byte
	lang    langdetect.Language
	library bool
	lines   *lineindex.Index
	// syntax is nil when no backend understood the file.
	syntax *analysis
}

// Engine is a loaded workspace. It is safe for concurrent queries.
type Engine struct {
	files   []*sourceFile
	byPath  map[string]engine.FileID
	project []engine.FileID
	symbols map[string][]symbolRef
	hovers  *ristretto.Cache[string, string]
}

var _ engine.Engine = (*Engine)(nil)

// Load reads the files named by opts from fsys and analyzes them.
func Load(ctx context.Context, fsys afero.Fs, opts LoadOptions) (*Engine, error) {
	projectPaths := slices.Clone(opts.Files)
	slices.Sort(projectPaths)
	projectPaths = slices.Compact(projectPaths)

	var libraryPaths []string
	if opts.ScanWhole {
		var err error
		libraryPaths, err = libraryFiles(fsys, opts.LibraryRoots, projectPaths)
		if err != nil {
			return nil, err
		}
	}

	eng := &Engine{
		byPath:  make(map[string]engine.FileID, len(projectPaths)+len(libraryPaths)),
		symbols: make(map[string][]symbolRef),
	}
	for _, path := range projectPaths {
		eng.project = append(eng.project, engine.FileID(len(eng.files)))
		eng.files = append(eng.files, &sourceFile{path: path})
	}
	for _, path := range libraryPaths {
		eng.files = append(eng.files, &sourceFile{path: path, library: true})
	}
	for i, f := range eng.files {
		eng.byPath[f.path] = engine.FileID(i)
	}

	if err := eng.analyzeAll(ctx, fsys, opts); err != nil {
		return nil, err
	}
	eng.indexSymbols()

	analyzed := 0
	for _, f := range eng.files {
		if f.syntax != nil {
			analyzed++
		}
	}
	logging.FromContext(ctx).Debug("workspace loaded",
		logging.FieldFiles, len(projectPaths),
		logging.FieldLibraries, len(libraryPaths),
		logging.FieldFilesAnalyzed, analyzed,
	)

	cache, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: hoverCacheBytes / 100 * 10,
		MaxCost:     hoverCacheBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create hover cache: %w", err)
	}
	eng.hovers = cache

	return eng, nil
}

// Close releases the hover cache.
func (e *Engine) Close() {
	if e.hovers != nil {
		e.hovers.Close()
	}
}

// analyzeAll reads and analyzes files on opts.Jobs workers. Each worker
// owns one parser.
func (e *Engine) analyzeAll(ctx context.Context, fsys afero.Fs, opts LoadOptions) error {
	jobs := opts.Jobs
	if jobs <= 0 || jobs > len(e.files) {
		jobs = max(len(e.files), 1)
	}
	grammarFor := grammars()

	work := make(chan *sourceFile)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(work)
		for _, f := range e.files {
			select {
			case work <- f:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for range jobs {
		g.Go(func() error {
			parser := sitter.NewParser()
			defer parser.Close()
			for f := range work {
				if err := loadFile(ctx, fsys, parser, grammarFor, f, opts.MaxFileSize); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("analyze workspace: %w", err)
	}
	return nil
}

func loadFile(ctx context.Context, fsys afero.Fs, parser *sitter.Parser,
	grammarFor map[langdetect.Language]*sitter.Language, f *sourceFile, maxSize int64,
) error {
	content, _, err := fsutil.ReadFile(ctx, fsys, f.path)
	if err != nil {
		return err
	}
	f.content = content
	f.lines = lineindex.New(content)
	f.lang = langdetect.ForFile(f.path, content)

	if !utf8.Valid(content) || (maxSize > 0 && int64(len(content)) > maxSize) {
		return nil
	}

	switch grammar, ok := grammarFor[f.lang]; {
	case ok:
		syntax, err := analyzeTree(ctx, parser, grammar, f.lang, content)
		if err != nil {
			return fmt.Errorf("%s: %w", f.path, err)
		}
		f.syntax = syntax
	case f.lang == langdetect.Markdown:
		f.syntax = analyzeMarkdown(content)
	default:
		f.syntax = analyzeLexer(f.path, content)
	}
	if f.syntax != nil {
		logging.FromContext(ctx).Debug("analyzed file", logging.FieldPath, f.path, logging.FieldLanguage, f.lang)
	}
	return nil
}

// libraryFiles lists source files with a grammar below roots, skipping
// hidden directories and files that are already part of the project.
func libraryFiles(fsys afero.Fs, roots []string, project []string) ([]string, error) {
	grammarFor := grammars()
	seen := make(map[string]bool, len(project))
	for _, p := range project {
		seen[p] = true
	}

	var out []string
	for _, root := range roots {
		err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if path != root && strings.HasPrefix(info.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if seen[path] {
				return nil
			}
			if _, ok := grammarFor[langdetect.ByName(path)]; ok {
				seen[path] = true
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk library root %s: %w", root, err)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (e *Engine) file(id engine.FileID) (*sourceFile, error) {
	if int(id) >= len(e.files) {
		return nil, fmt.Errorf("%w: %d", engine.ErrUnknownFile, id)
	}
	return e.files[id], nil
}

// Files returns the project files in path order.
func (e *Engine) Files() []engine.FileID {
	return slices.Clone(e.project)
}

func (e *Engine) Lookup(path string) (engine.FileID, bool) {
	id, ok := e.byPath[path]
	return id, ok
}

func (e *Engine) Analyzed(id engine.FileID) bool {
	f, err := e.file(id)
	return err == nil && f.syntax != nil
}

// Language returns the detected language of a file.
func (e *Engine) Language(id engine.FileID) langdetect.Language {
	f, err := e.file(id)
	if err != nil {
		return langdetect.Plain
	}
	return f.lang
}

func (e *Engine) FilePath(id engine.FileID) (string, error) {
	f, err := e.file(id)
	if err != nil {
		return "", err
	}
	return f.path, nil
}

func (e *Engine) FileContents(id engine.FileID) ([]byte, error) {
	f, err := e.file(id)
	if err != nil {
		return nil, err
	}
	return f.content, nil
}

func (e *Engine) LineIndex(id engine.FileID) (engine.LineIndex, error) {
	f, err := e.file(id)
	if err != nil {
		return nil, err
	}
	return f.lines, nil
}

// analysisOf returns the analysis of a file, or an empty one.
func (e *Engine) analysisOf(ctx context.Context, id engine.FileID) (*analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := e.file(id)
	if err != nil {
		return nil, err
	}
	if f.syntax == nil {
		return &analysis{}, nil
	}
	return f.syntax, nil
}

func (e *Engine) Tokens(ctx context.Context, id engine.FileID) ([]engine.SyntaxToken, error) {
	a, err := e.analysisOf(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.tokens, nil
}

func (e *Engine) Highlight(ctx context.Context, id engine.FileID) ([]engine.HighlightRange, error) {
	a, err := e.analysisOf(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.highlights, nil
}

func (e *Engine) InlayTypeHints(ctx context.Context, id engine.FileID) ([]engine.InlayHint, error) {
	a, err := e.analysisOf(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.hints, nil
}

func (e *Engine) FoldRanges(ctx context.Context, id engine.FileID) ([]engine.Fold, error) {
	a, err := e.analysisOf(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.folds, nil
}
