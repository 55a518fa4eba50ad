package lineindex_test

import (
	"testing"

	"github.com/sevenzing/rust-html-generator/pkg/lineindex"
)

func TestLineCol(t *testing.T) {
	t.Parallel()

	content := []byte("fn x() {}\n// c\n")
	idx := lineindex.New(content)

	tests := []struct {
		offset int
		want   lineindex.LineCol
	}{
		{0, lineindex.LineCol{Line: 0, Col: 0}},
		{3, lineindex.LineCol{Line: 0, Col: 3}},
		{9, lineindex.LineCol{Line: 0, Col: 9}},
		{10, lineindex.LineCol{Line: 1, Col: 0}},
		{14, lineindex.LineCol{Line: 1, Col: 4}},
		{15, lineindex.LineCol{Line: 2, Col: 0}},
		{99, lineindex.LineCol{Line: 2, Col: 0}},
	}

	for _, tc := range tests {
		if got := idx.LineCol(tc.offset); got != tc.want {
			t.Errorf("LineCol(%d) = %+v, want %+v", tc.offset, got, tc.want)
		}
	}

	if idx.LineCount() != 3 {
		t.Errorf("LineCount() = %d, want 3", idx.LineCount())
	}
}

func TestLineCol_CRLF(t *testing.T) {
	t.Parallel()

	idx := lineindex.New([]byte("a\r\nb"))

	if got := idx.LineCol(3); got.Line != 1 || got.Col != 0 {
		t.Errorf("LineCol(3) = %+v, want line 1 col 0", got)
	}

	start, end, ok := idx.LineBounds(0)
	if !ok || start != 0 || end != 1 {
		t.Errorf("LineBounds(0) = (%d, %d, %v), want (0, 1, true)", start, end, ok)
	}
}

func TestOffset(t *testing.T) {
	t.Parallel()

	idx := lineindex.New([]byte("ab\ncd\n"))

	offset, ok := idx.Offset(lineindex.LineCol{Line: 1, Col: 1})
	if !ok || offset != 4 {
		t.Errorf("Offset(1:1) = (%d, %v), want (4, true)", offset, ok)
	}

	if _, ok := idx.Offset(lineindex.LineCol{Line: 7, Col: 0}); ok {
		t.Error("Offset past the last line should fail")
	}
}

func TestEmptyContent(t *testing.T) {
	t.Parallel()

	idx := lineindex.New(nil)
	if idx.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", idx.LineCount())
	}
	if got := idx.LineCol(0); got != (lineindex.LineCol{}) {
		t.Errorf("LineCol(0) = %+v, want zero", got)
	}
}
