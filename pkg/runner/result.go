package runner

import (
	"time"

	"github.com/sevenzing/rust-html-generator/pkg/pipeline"
)

// FileOutcome pairs a discovered path with its pipeline result.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil only when the run stopped before the file was processed.
	Result *pipeline.FileResult
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesRendered is the number of files present in the report.
	FilesRendered int

	// FilesAnalyzed is the number of rendered files that were highlighted.
	FilesAnalyzed int

	// FilesSkipped is the number of files left out of the report.
	FilesSkipped int

	// Lines is the number of rendered source lines.
	Lines int

	// Tokens is the number of rendered tokens.
	Tokens int

	// NavigationLinks is the number of tokens with jump data.
	NavigationLinks int

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// Rendered returns the HTML of every rendered file keyed by tree path.
func (r *Result) Rendered() map[string]string {
	out := make(map[string]string, len(r.Files))
	for _, f := range r.Files {
		if f.Result != nil && !f.Result.Skipped {
			out[f.Result.TreePath] = f.Result.HTML
		}
	}
	return out
}

// TreePaths returns the tree paths of rendered files in path order.
func (r *Result) TreePaths() []string {
	out := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		if f.Result != nil && !f.Result.Skipped {
			out = append(out, f.Result.TreePath)
		}
	}
	return out
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	res := outcome.Result
	if res == nil {
		return
	}
	if res.Skipped {
		r.Stats.FilesSkipped++
		return
	}

	r.Stats.FilesRendered++
	if res.Analyzed {
		r.Stats.FilesAnalyzed++
	}
	r.Stats.Lines += res.Lines
	r.Stats.Tokens += res.Tokens
	r.Stats.NavigationLinks += res.Links
}
