// Package linesplit breaks multi-line text spans into per-line pieces.
package linesplit

import (
	"fmt"
	"strings"

	"github.com/sevenzing/rust-html-generator/pkg/textrange"
)

// Piece is one chunk of a split span: either line content or a single "\n".
type Piece struct {
	Range       textrange.Range
	IsLineBreak bool

	// Class is the inherited highlight class. Always empty for line breaks.
	Class string
}

// LengthError reports pieces whose lengths do not add up to the input.
// Split panics with it.
type LengthError struct {
	Want int
	Got  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("split pieces cover %d bytes, input has %d", e.Got, e.Want)
}

// Split partitions text, which starts at byte offset start in its file, into
// alternating content and newline pieces. Empty chunks are dropped and
// offsets are assigned cumulatively, so the pieces cover
// [start, start+len(text)) exactly.
func Split(text string, start int, class string) []Piece {
	pieces := make([]Piece, 0, 2*strings.Count(text, "\n")+1)
	offset := start
	rest := text

	for rest != "" {
		idx := strings.IndexByte(rest, '\n')
		if idx < 0 {
			pieces = append(pieces, Piece{Range: textrange.New(offset, offset+len(rest)), Class: class})
			offset += len(rest)
			break
		}
		if idx > 0 {
			pieces = append(pieces, Piece{Range: textrange.New(offset, offset+idx), Class: class})
			offset += idx
		}
		pieces = append(pieces, Piece{Range: textrange.New(offset, offset+1), IsLineBreak: true})
		offset++
		rest = rest[idx+1:]
	}

	total := 0
	for _, p := range pieces {
		total += p.Range.Len()
	}
	if total != len(text) {
		panic(&LengthError{Want: len(text), Got: total})
	}

	return pieces
}
