package pretty

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/sevenzing/rust-html-generator/pkg/runner"
)

const (
	summaryDividerWidth    = 40
	summaryDividerMaxWidth = 72
	wordFile               = "file"
	wordFiles              = "files"
)

// Report describes a finished generate run.
type Report struct {
	Output   string
	Bytes    int
	Changed  bool
	Stats    runner.Stats
	Warnings int
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats a run as a single line.
// Example: "Wrote output.html (12 files, 3 skipped, 840 links) in 1.2s".
func (s *Styles) FormatSummaryOneLine(r Report) string {
	parts := []string{fmt.Sprintf("%d %s", r.Stats.FilesRendered, plural(r.Stats.FilesRendered, wordFile, wordFiles))}
	if r.Stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", r.Stats.FilesSkipped)))
	}
	parts = append(parts, fmt.Sprintf("%d links", r.Stats.NavigationLinks))

	verb := "Wrote"
	if !r.Changed {
		verb = "Unchanged"
	}

	return s.Success.Render(verb) + " " + s.FilePath.Render(r.Output) +
		" (" + strings.Join(parts, ", ") + ")" +
		s.Dim.Render(" in "+r.Stats.Duration.Round(time.Millisecond).String()) + "\n"
}

// FormatSummary formats a run as a summary block.
func (s *Styles) FormatSummary(r Report, dividerWidth int) string {
	var builder strings.Builder

	row := func(label, value string) {
		builder.WriteString("  " + s.SummaryLabel.Render(fmt.Sprintf("%-18s", label+":")) + value + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", dividerWidth))
	builder.WriteString("\n")

	stats := r.Stats
	row("Files discovered", s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)))
	row("Files rendered", s.SummaryValue.Render(strconv.Itoa(stats.FilesRendered)))
	row("Highlighted", s.SummaryValue.Render(strconv.Itoa(stats.FilesAnalyzed)))
	if stats.FilesSkipped > 0 {
		row("Skipped", s.Warning.Render(strconv.Itoa(stats.FilesSkipped)))
	}

	builder.WriteString("\n")
	row("Lines", s.SummaryValue.Render(strconv.Itoa(stats.Lines)))
	row("Tokens", s.SummaryValue.Render(strconv.Itoa(stats.Tokens)))
	row("Navigation links", s.SummaryValue.Render(strconv.Itoa(stats.NavigationLinks)))
	row("Duration", s.SummaryValue.Render(stats.Duration.Round(time.Millisecond).String()))
	builder.WriteString("\n")

	switch {
	case !r.Changed:
		builder.WriteString(s.Success.Render(r.Output + " is up to date"))
	case r.Warnings > 0:
		builder.WriteString(s.Warning.Render(fmt.Sprintf("Wrote %s (%d bytes) with %d %s",
			r.Output, r.Bytes, r.Warnings, plural(r.Warnings, "warning", "warnings"))))
	default:
		builder.WriteString(s.Success.Render(fmt.Sprintf("Wrote %s (%d bytes)", r.Output, r.Bytes)))
	}
	builder.WriteString("\n")

	return builder.String()
}

// DividerWidth fits the summary divider to the terminal behind w.
func DividerWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return summaryDividerWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return summaryDividerWidth
	}
	return min(width, summaryDividerMaxWidth)
}
