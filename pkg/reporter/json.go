package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Output  string           `json:"output"`
	Bytes   int              `json:"bytes"`
	Changed bool             `json:"changed"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path     string `json:"path"`
	Analyzed bool   `json:"analyzed"`
	Skipped  bool   `json:"skipped,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Lines    int    `json:"lines"`
	Tokens   int    `json:"tokens"`
	Links    int    `json:"links"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int   `json:"filesDiscovered"`
	FilesRendered   int   `json:"filesRendered"`
	FilesAnalyzed   int   `json:"filesAnalyzed"`
	FilesSkipped    int   `json:"filesSkipped"`
	Lines           int   `json:"lines"`
	Tokens          int   `json:"tokens"`
	NavigationLinks int   `json:"navigationLinks"`
	DurationMillis  int64 `json:"durationMs"`
	Warnings        int   `json:"warnings"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, run Run) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(buildOutput(run)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func buildOutput(run Run) *JSONOutput {
	stats := run.Report.Stats
	output := &JSONOutput{
		Version: "1.0.0",
		Output:  run.Report.Output,
		Bytes:   run.Report.Bytes,
		Changed: run.Report.Changed,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			FilesDiscovered: stats.FilesDiscovered,
			FilesRendered:   stats.FilesRendered,
			FilesAnalyzed:   stats.FilesAnalyzed,
			FilesSkipped:    stats.FilesSkipped,
			Lines:           stats.Lines,
			Tokens:          stats.Tokens,
			NavigationLinks: stats.NavigationLinks,
			DurationMillis:  stats.Duration.Milliseconds(),
			Warnings:        run.Report.Warnings,
		},
	}

	if run.Result == nil {
		return output
	}

	for _, outcome := range run.Result.Files {
		if outcome.Result == nil {
			continue
		}
		res := outcome.Result
		output.Files = append(output.Files, JSONFileResult{
			Path:     displayPath(outcome),
			Analyzed: res.Analyzed,
			Skipped:  res.Skipped,
			Reason:   res.Reason,
			Lines:    res.Lines,
			Tokens:   res.Tokens,
			Links:    res.Links,
		})
	}

	return output
}
