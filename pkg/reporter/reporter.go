// Package reporter writes the outcome of a generate run in the selected format.
package reporter

import (
	"context"
	"fmt"

	"github.com/sevenzing/rust-html-generator/internal/ui/pretty"
	"github.com/sevenzing/rust-html-generator/pkg/runner"
)

// Run is a finished generate run.
type Run struct {
	// Report describes the written document.
	Report pretty.Report

	// Result holds the per-file outcomes. It may be nil.
	Result *runner.Result
}

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for run.
	Report(ctx context.Context, run Run) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatSummary
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return NewSummaryReporter(opts), nil
	}
}

// displayPath is the path shown for a file: its tree path when it has one.
func displayPath(outcome runner.FileOutcome) string {
	if outcome.Result != nil && outcome.Result.TreePath != "" {
		return outcome.Result.TreePath
	}
	return outcome.Path
}
