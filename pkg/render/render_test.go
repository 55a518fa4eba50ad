package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/sevenzing/rust-html-generator/pkg/engine"
	"github.com/sevenzing/rust-html-generator/pkg/engine/enginetest"
	"github.com/sevenzing/rust-html-generator/pkg/lineindex"
	"github.com/sevenzing/rust-html-generator/pkg/navigation"
	"github.com/sevenzing/rust-html-generator/pkg/render"
	"github.com/sevenzing/rust-html-generator/pkg/textrange"
	"github.com/sevenzing/rust-html-generator/pkg/tokenstream"
)

func TestEndToEnd(t *testing.T) {
	t.Parallel()

	content := "fn x() {}\n// c\n"
	fake := enginetest.New(enginetest.File{
		Path:       "/proj/main.rs",
		Content:    content,
		Highlights: []engine.HighlightRange{{Range: textrange.New(0, 2), Tag: "keyword"}},
		Folds:      []engine.Fold{{Range: textrange.New(0, 14)}},
	})

	tokens, err := tokenstream.NewBuilder(fake, nil).Build(context.Background(), 0)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	idx, err := fake.LineIndex(0)
	if err != nil {
		t.Fatalf("LineIndex() error = %v", err)
	}
	folds, err := fake.FoldRanges(context.Background(), 0)
	if err != nil {
		t.Fatalf("FoldRanges() error = %v", err)
	}

	lines, err := render.Lines(tokens, []byte(content), render.FoldIndex(folds, idx))
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if want := "<span class=\"hovertext keyword\">fn</span> x() {}\n"; lines[0].HTML != want {
		t.Errorf("line 1 = %q, want %q", lines[0].HTML, want)
	}
	if lines[1].HTML != "// c\n" {
		t.Errorf("line 2 = %q, want %q", lines[1].HTML, "// c\n")
	}
	if lines[0].Fold == nil || *lines[0].Fold != (render.FoldRange{StartLine: 1, EndLine: 2}) {
		t.Errorf("line 1 fold = %+v, want {1 2}", lines[0].Fold)
	}
	if lines[1].Fold != nil {
		t.Errorf("line 2 fold = %+v, want nil", lines[1].Fold)
	}
	if lines[0].Number != 1 || lines[1].Number != 2 {
		t.Errorf("line numbers = %d, %d", lines[0].Number, lines[1].Number)
	}
}

func TestToken(t *testing.T) {
	t.Parallel()

	content := []byte("a<b")
	full := textrange.New(0, 3)

	tests := []struct {
		name string
		tok  tokenstream.Token
		want string
	}{
		{
			name: "plain",
			tok:  tokenstream.Token{Range: full},
			want: "a&lt;b",
		},
		{
			name: "class only",
			tok:  tokenstream.Token{Range: full, Class: "variable"},
			want: `<span class="hovertext variable">a&lt;b</span>`,
		},
		{
			name: "hover",
			tok:  tokenstream.Token{Range: full, Class: "type", Hover: "type A<T>", TypeLabel: "ignored"},
			want: `<span class="hovertext type">a&lt;b<span>type A&lt;T&gt;</span></span>`,
		},
		{
			name: "empty tuple hover falls back to type label",
			tok:  tokenstream.Token{Range: full, Class: "variable", Hover: "()", TypeLabel: "int"},
			want: `<span class="hovertext variable">a&lt;b<span>int</span></span>`,
		},
		{
			name: "unknown hover without label",
			tok:  tokenstream.Token{Range: full, Class: "variable", Hover: "{unknown}"},
			want: `<span class="hovertext variable">a&lt;b</span>`,
		},
		{
			name: "jump",
			tok: tokenstream.Token{
				Range: textrange.New(0, 1),
				Class: "function",
				Navigation: &navigation.Navigation{
					Definition: &navigation.JumpTarget{File: "p/a.rs", Loc: navigation.Loc{Line: 3}},
					Origin:     navigation.JumpTarget{File: "p/b.rs", Loc: navigation.Loc{Line: 1}},
				},
			},
			want: `<span class="hovertext function jump" jump-data="{'def':{'file':'p/a.rs','loc':{'line':3}},` +
				`'refs':[],'from':{'file':'p/b.rs','loc':{'line':1}}}">a</span>`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := render.Token(tc.tok, content)
			if err != nil {
				t.Fatalf("Token() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Token() = %s\nwant      %s", got, tc.want)
			}
		})
	}
}

func TestFoldIndex(t *testing.T) {
	t.Parallel()

	idx := lineindex.New([]byte("a\nb\nc\nd\n"))
	folds := []engine.Fold{
		{Range: textrange.New(0, 3)},
		{Range: textrange.New(0, 7)},
		{Range: textrange.New(2, 3)},
		{Range: textrange.New(4, 5)},
	}

	got := render.FoldIndex(folds, idx)

	if len(got) != 1 {
		t.Fatalf("FoldIndex() = %+v, want a single fold", got)
	}
	if got[1] != (render.FoldRange{StartLine: 1, EndLine: 4}) {
		t.Errorf("fold at line 1 = %+v, want {1 4}", got[1])
	}
}

func TestLines_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	tokens := []tokenstream.Token{
		{Range: textrange.New(0, 1)},
		{Range: textrange.New(1, 2), IsLineBreak: true},
		{Range: textrange.New(2, 3)},
	}

	lines, err := render.Lines(tokens, []byte("a\nb"), nil)
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}
	if len(lines) != 2 || lines[0].HTML != "a\n" || lines[1].HTML != "b" {
		t.Errorf("Lines() = %+v, want [\"a\\n\" \"b\"]", lines)
	}
}

func TestPlainLines(t *testing.T) {
	t.Parallel()

	lines := render.PlainLines([]byte("x < y\n\nz\n"))

	want := []string{"x &lt; y\n", "\n", "z\n"}
	if len(lines) != len(want) {
		t.Fatalf("PlainLines() returned %d lines, want %d", len(lines), len(want))
	}
	for i, w := range want {
		if lines[i].HTML != w || lines[i].Number != i+1 || lines[i].Fold != nil {
			t.Errorf("line %d = %+v, want %q", i+1, lines[i], w)
		}
	}
}

func TestPlainLines_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	lines := render.PlainLines([]byte("a\nb"))
	if len(lines) != 2 || lines[0].HTML != "a\n" || lines[1].HTML != "b" {
		t.Errorf("PlainLines() = %+v, want [\"a\\n\" \"b\"]", lines)
	}
}

func TestLines_BreakIsPartOfLine(t *testing.T) {
	t.Parallel()

	content := "a\r\n\nb"
	tokens := []tokenstream.Token{
		{Range: textrange.New(0, 1)},
		{Range: textrange.New(1, 3), IsLineBreak: true},
		{Range: textrange.New(3, 4), IsLineBreak: true},
		{Range: textrange.New(4, 5)},
	}

	lines, err := render.Lines(tokens, []byte(content), nil)
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}

	want := []string{"a\r\n", "\n", "b"}
	if len(lines) != len(want) {
		t.Fatalf("Lines() returned %d lines, want %d", len(lines), len(want))
	}
	var joined strings.Builder
	for i, w := range want {
		if lines[i].HTML != w {
			t.Errorf("line %d = %q, want %q", i+1, lines[i].HTML, w)
		}
		joined.WriteString(lines[i].HTML)
	}
	if joined.String() != content {
		t.Errorf("joined lines = %q, want %q", joined.String(), content)
	}
}
