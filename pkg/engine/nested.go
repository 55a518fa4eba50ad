package engine

import (
	"sort"

	"github.com/sevenzing/rust-html-generator/pkg/textrange"
)

// Nested drops highlights that partially overlap an earlier-kept highlight,
// so the result is a properly nested set. Ranges are considered in order of
// start offset, longest first, which keeps outer ranges over inner ones.
// The input slice is not modified.
func Nested(highlights []HighlightRange) []HighlightRange {
	sorted := make([]HighlightRange, len(highlights))
	copy(sorted, highlights)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Range.Start != sorted[j].Range.Start {
			return sorted[i].Range.Start < sorted[j].Range.Start
		}
		return sorted[i].Range.End > sorted[j].Range.End
	})

	kept := make([]HighlightRange, 0, len(sorted))
	// open holds the chain of kept ranges enclosing the current position.
	var open []textrange.Range

	for _, h := range sorted {
		for len(open) > 0 && open[len(open)-1].End <= h.Range.Start {
			open = open[:len(open)-1]
		}
		if len(open) > 0 && !open[len(open)-1].Contains(h.Range) {
			continue
		}
		kept = append(kept, h)
		open = append(open, h.Range)
	}

	return kept
}
