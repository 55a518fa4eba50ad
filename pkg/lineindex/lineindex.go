// Package lineindex maps byte offsets to line and column numbers.
package lineindex

import "sort"

// LineCol is a 0-based line and byte column.
type LineCol struct {
	Line int
	Col  int
}

// lineInfo describes one physical line of content.
type lineInfo struct {
	// StartOffset is the byte index of the first byte of the line.
	StartOffset int

	// NewlineStart is the byte index where the line terminator begins
	// (the position of '\r' for CRLF, '\n' for LF, or len(content) for the last line).
	NewlineStart int

	// EndOffset is the byte index just past the line terminator.
	EndOffset int
}

// Index is an immutable offset-to-position table for one file.
// It is safe for concurrent use.
type Index struct {
	size  int
	lines []lineInfo
}

// New builds an index from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func New(content []byte) *Index {
	idx := &Index{size: len(content)}
	lineStart := 0

	for i, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := i
		if i > 0 && content[i-1] == '\r' {
			newlineStart = i - 1
		}
		idx.lines = append(idx.lines, lineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    i + 1,
		})
		lineStart = i + 1
	}

	// The last line exists even when empty, so an offset equal to
	// len(content) after a trailing newline lands on its own line.
	idx.lines = append(idx.lines, lineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return idx
}

// LineCount returns the number of lines, counting a final unterminated line.
func (idx *Index) LineCount() int {
	return len(idx.lines)
}

// LineCol converts a byte offset to a 0-based line and column.
// Offsets past the end of content clamp to the end of the last line.
func (idx *Index) LineCol(offset int) LineCol {
	if offset <= 0 {
		return LineCol{}
	}
	if offset >= idx.size {
		last := len(idx.lines) - 1
		return LineCol{Line: last, Col: idx.size - idx.lines[last].StartOffset}
	}

	line := sort.Search(len(idx.lines), func(i int) bool {
		return idx.lines[i].EndOffset > offset
	})
	if line >= len(idx.lines) {
		line = len(idx.lines) - 1
	}

	return LineCol{Line: line, Col: offset - idx.lines[line].StartOffset}
}

// Offset converts a 0-based line and column back to a byte offset.
// It returns false when the position is out of range.
func (idx *Index) Offset(pos LineCol) (int, bool) {
	if pos.Line < 0 || pos.Line >= len(idx.lines) || pos.Col < 0 {
		return 0, false
	}
	info := idx.lines[pos.Line]
	offset := info.StartOffset + pos.Col
	if offset > info.EndOffset {
		return 0, false
	}
	return offset, true
}

// LineBounds returns the content range of a 0-based line, excluding its terminator.
func (idx *Index) LineBounds(line int) (start, end int, ok bool) {
	if line < 0 || line >= len(idx.lines) {
		return 0, 0, false
	}
	info := idx.lines[line]
	return info.StartOffset, info.NewlineStart, true
}
