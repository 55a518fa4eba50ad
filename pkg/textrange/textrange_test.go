package textrange_test

import (
	"testing"

	"github.com/sevenzing/rust-html-generator/pkg/textrange"
)

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b textrange.Range
		want textrange.Ordering
	}{
		{"before", textrange.New(0, 2), textrange.New(3, 5), textrange.Less},
		{"touching before", textrange.New(0, 3), textrange.New(3, 5), textrange.Less},
		{"after", textrange.New(6, 8), textrange.New(3, 5), textrange.Greater},
		{"touching after", textrange.New(5, 8), textrange.New(3, 5), textrange.Greater},
		{"overlap", textrange.New(2, 4), textrange.New(3, 5), textrange.Equal},
		{"contained", textrange.New(3, 4), textrange.New(0, 5), textrange.Equal},
		{"identical", textrange.New(3, 5), textrange.New(3, 5), textrange.Equal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := textrange.Compare(tc.a, tc.b); got != tc.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	outer := textrange.New(2, 10)

	if !outer.Contains(outer) {
		t.Error("range should contain itself")
	}
	if !outer.Contains(textrange.New(2, 2)) {
		t.Error("range should contain an empty range at its start")
	}
	if outer.Contains(textrange.New(5, 15)) {
		t.Error("range should not contain [5,15)")
	}
	if outer.ContainsOffset(10) {
		t.Error("end offset is exclusive")
	}
}

func TestPartiallyOverlaps(t *testing.T) {
	t.Parallel()

	if !textrange.PartiallyOverlaps(textrange.New(0, 10), textrange.New(5, 15)) {
		t.Error("[0,10) and [5,15) partially overlap")
	}
	if textrange.PartiallyOverlaps(textrange.New(0, 10), textrange.New(2, 3)) {
		t.Error("nested ranges do not partially overlap")
	}
	if textrange.PartiallyOverlaps(textrange.New(0, 5), textrange.New(5, 10)) {
		t.Error("adjacent ranges do not overlap")
	}
}
