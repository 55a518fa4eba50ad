package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/sevenzing/rust-html-generator/internal/ui/pretty"
	"github.com/sevenzing/rust-html-generator/pkg/runner"
)

// TextReporter lists every processed file followed by a one-line summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, run Run) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if run.Result == nil || len(run.Result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Warning.Render("No files rendered."))
	} else {
		for _, outcome := range run.Result.Files {
			r.writeFile(outcome)
		}
		fmt.Fprintln(r.bw)
	}

	fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(run.Report))
	return nil
}

func (r *TextReporter) writeFile(outcome runner.FileOutcome) {
	path := r.styles.FilePath.Render(displayPath(outcome))
	res := outcome.Result

	switch {
	case res == nil:
		fmt.Fprintf(r.bw, "%s %s\n", r.styles.Failure.Render("failed  "), path)
	case res.Skipped:
		fmt.Fprintf(r.bw, "%s %s %s\n", r.styles.Warning.Render("skipped "), path, r.styles.Dim.Render(res.Reason))
	default:
		label := "plain   "
		if res.Analyzed {
			label = "rendered"
		}
		fmt.Fprintf(r.bw, "%s %s %s\n", r.styles.Success.Render(label), path,
			r.styles.Dim.Render(fmt.Sprintf("%d lines, %d tokens, %d links", res.Lines, res.Tokens, res.Links)))
	}
}
