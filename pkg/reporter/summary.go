package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/sevenzing/rust-html-generator/internal/ui/pretty"
)

// SummaryReporter prints aggregate statistics only.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, run Run) error {
	var text string
	if r.opts.Compact {
		text = r.styles.FormatSummaryOneLine(run.Report)
	} else {
		text = r.styles.FormatSummary(run.Report, pretty.DividerWidth(r.out))
	}
	if _, err := fmt.Fprint(r.out, text); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
