// Package textrange defines half-open byte ranges over file content.
package textrange

import "fmt"

// Range is a half-open [Start, End) interval of byte offsets.
type Range struct {
	Start int
	End   int
}

// New returns the range [start, end).
func New(start, end int) Range {
	return Range{Start: start, End: end}
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether other lies entirely within r.
// A range contains itself.
func (r Range) Contains(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// ContainsOffset reports whether offset falls inside r.
func (r Range) ContainsOffset(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Ordering is the result of comparing two ranges by position.
type Ordering int

const (
	Less Ordering = iota - 1
	Equal
	Greater
)

// Compare orders a relative to b: Less when a ends at or before b starts,
// Greater when a starts at or after b ends, and Equal when they overlap.
func Compare(a, b Range) Ordering {
	switch {
	case a.End <= b.Start:
		return Less
	case a.Start >= b.End:
		return Greater
	default:
		return Equal
	}
}

// PartiallyOverlaps reports whether a and b intersect without either one
// containing the other.
func PartiallyOverlaps(a, b Range) bool {
	if Compare(a, b) != Equal {
		return false
	}
	return !a.Contains(b) && !b.Contains(a)
}

// Slice returns the bytes of content covered by r as a string.
func (r Range) Slice(content []byte) string {
	return string(content[r.Start:r.End])
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
