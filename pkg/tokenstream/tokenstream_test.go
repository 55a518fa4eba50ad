package tokenstream_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevenzing/rust-html-generator/pkg/engine"
	"github.com/sevenzing/rust-html-generator/pkg/engine/enginetest"
	"github.com/sevenzing/rust-html-generator/pkg/navigation"
	"github.com/sevenzing/rust-html-generator/pkg/textrange"
	"github.com/sevenzing/rust-html-generator/pkg/tokenstream"
)

func build(t *testing.T, fake *enginetest.Fake) []tokenstream.Token {
	t.Helper()

	resolver := navigation.NewResolver(fake, navigation.Options{Root: "/proj", ProjectName: "proj"})
	tokens, err := tokenstream.NewBuilder(fake, resolver).Build(context.Background(), 0)
	require.NoError(t, err)
	return tokens
}

func assertCover(t *testing.T, tokens []tokenstream.Token, size int) {
	t.Helper()

	cursor := 0
	for i, tok := range tokens {
		require.Equal(t, cursor, tok.Range.Start, "token %d starts at the wrong offset", i)
		require.False(t, tok.Range.IsEmpty(), "token %d is empty", i)
		cursor = tok.Range.End
	}
	assert.Equal(t, size, cursor, "tokens must cover the whole file")
}

func TestBuild_UntaggedGapsSplitOnNewlines(t *testing.T) {
	t.Parallel()

	content := "fn x() {}\n// c\n"
	fake := enginetest.New(enginetest.File{
		Path:       "/proj/main.rs",
		Content:    content,
		Highlights: []engine.HighlightRange{{Range: textrange.New(0, 2), Tag: "keyword"}},
	})

	tokens := build(t, fake)
	assertCover(t, tokens, len(content))

	require.Len(t, tokens, 5)
	assert.Equal(t, "keyword", tokens[0].Class)
	assert.Nil(t, tokens[0].Navigation)
	assert.Equal(t, textrange.New(2, 9), tokens[1].Range)
	assert.True(t, tokens[2].IsLineBreak)
	assert.Equal(t, textrange.New(10, 14), tokens[3].Range)
	assert.True(t, tokens[4].IsLineBreak)
}

func TestBuild_Annotations(t *testing.T) {
	t.Parallel()

	content := "foo(\"a\\tb\n\")\n"
	focus := textrange.New(5, 8)

	fake := enginetest.New(
		enginetest.File{
			Path:    "/proj/main.go",
			Content: content,
			Tokens: []engine.SyntaxToken{
				{Range: textrange.New(0, 3), Kind: engine.KindIdentifier},
				{Range: textrange.New(3, 4), Kind: engine.KindPunctuation},
				{Range: textrange.New(4, 11), Kind: engine.KindString},
				{Range: textrange.New(11, 12), Kind: engine.KindPunctuation},
				{Range: textrange.New(12, 13), Kind: engine.KindWhitespace},
			},
			Highlights: []engine.HighlightRange{
				{Range: textrange.New(0, 3), Tag: "function.call"},
				{Range: textrange.New(4, 11), Tag: "string"},
				{Range: textrange.New(6, 8), Tag: "escape"},
			},
			Hints:  []engine.InlayHint{{Range: textrange.New(0, 3), Label: "func()"}},
			Hovers: map[textrange.Range]string{textrange.New(0, 3): "func foo()"},
			Definitions: map[textrange.Range][]engine.NavigationTarget{
				textrange.New(0, 3): {{File: 1, FullRange: textrange.New(0, 13), FocusRange: &focus}},
			},
		},
		enginetest.File{Path: "/proj/lib.go", Content: "func foo() {}"},
	)

	tokens := build(t, fake)
	assertCover(t, tokens, len(content))
	require.Len(t, tokens, 9)

	call := tokens[0]
	assert.Equal(t, "function call", call.Class)
	assert.Equal(t, "func foo()", call.Hover)
	assert.Equal(t, "func()", call.TypeLabel)
	require.NotNil(t, call.Navigation)
	require.NotNil(t, call.Navigation.Definition)
	assert.Equal(t, "proj/lib.go", call.Navigation.Definition.File)
	assert.Equal(t, "proj/main.go", call.Navigation.Origin.File)

	assert.Empty(t, tokens[1].Class, "punctuation without highlight renders plain")

	assert.Equal(t, "string", tokens[2].Class)
	assert.Equal(t, "escape", tokens[3].Class)
	assert.Nil(t, tokens[3].Navigation)
	assert.Equal(t, "string", tokens[4].Class)
	assert.True(t, tokens[5].IsLineBreak)
	assert.Empty(t, tokens[5].Class)
	assert.Equal(t, "string", tokens[6].Class)
	assert.True(t, tokens[8].IsLineBreak)

	assert.Equal(t, 1, tokenstream.NavigationCount(tokens))
}

func TestBuild_StringLiteralFallback(t *testing.T) {
	t.Parallel()

	fake := enginetest.New(enginetest.File{
		Path:    "/proj/a.rs",
		Content: `"a"`,
		Tokens:  []engine.SyntaxToken{{Range: textrange.New(0, 3), Kind: engine.KindString}},
	})

	tokens := build(t, fake)
	require.Len(t, tokens, 1)
	assert.Equal(t, "string_literal", tokens[0].Class)
}

func TestBuild_InertTokensAreNotNavigated(t *testing.T) {
	t.Parallel()

	fake := enginetest.New(enginetest.File{
		Path:    "/proj/a.rs",
		Content: "if x",
		Tokens: []engine.SyntaxToken{
			{Range: textrange.New(0, 2), Kind: engine.KindKeyword},
			{Range: textrange.New(2, 3), Kind: engine.KindWhitespace},
			{Range: textrange.New(3, 4), Kind: engine.KindIdentifier},
		},
		Highlights: []engine.HighlightRange{
			{Range: textrange.New(0, 2), Tag: "keyword"},
		},
		Definitions: map[textrange.Range][]engine.NavigationTarget{
			textrange.New(0, 4): {{File: 0, FullRange: textrange.New(3, 4)}},
		},
	})

	tokens := build(t, fake)
	require.Len(t, tokens, 3)
	assert.Nil(t, tokens[0].Navigation, "keywords never navigate")
	assert.Empty(t, tokens[2].Class, "identifier without highlight renders plain")
}

func TestBuild_CommentsHaveNoHover(t *testing.T) {
	t.Parallel()

	fake := enginetest.New(enginetest.File{
		Path:       "/proj/a.rs",
		Content:    "// hi",
		Tokens:     []engine.SyntaxToken{{Range: textrange.New(0, 5), Kind: engine.KindComment}},
		Highlights: []engine.HighlightRange{{Range: textrange.New(0, 5), Tag: "comment"}},
		Hovers:     map[textrange.Range]string{textrange.New(0, 5): "should not appear"},
	})

	tokens := build(t, fake)
	require.Len(t, tokens, 1)
	assert.Empty(t, tokens[0].Hover)
	assert.Zero(t, fake.SemanticQueries())
}

func TestBuild_PartialOverlapIsInvariantError(t *testing.T) {
	t.Parallel()

	fake := enginetest.New(enginetest.File{
		Path:    "/proj/a.rs",
		Content: "abcdefgh",
		Highlights: []engine.HighlightRange{
			{Range: textrange.New(0, 4), Tag: "a"},
			{Range: textrange.New(2, 6), Tag: "b"},
		},
	})

	_, err := tokenstream.NewBuilder(fake, nil).Build(context.Background(), 0)

	var invariant *tokenstream.InvariantError
	require.ErrorAs(t, err, &invariant)
	assert.Equal(t, "/proj/a.rs", invariant.Path)
}

func TestBuild_EngineErrorPropagates(t *testing.T) {
	t.Parallel()

	fake := enginetest.New(enginetest.File{Path: "/proj/a.rs", Content: "x"})
	fake.Err = errors.New("query failed")

	_, err := tokenstream.NewBuilder(fake, nil).Build(context.Background(), 0)
	require.ErrorIs(t, err, fake.Err)
}

func TestTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		tag   tokenstream.Tag
		class string
		inert bool
	}{
		{"empty", tokenstream.Tag{}, "", true},
		{"keyword kind", tokenstream.Tag{Highlight: "keyword", Kind: engine.KindKeyword}, "keyword", true},
		{"dotted identifier", tokenstream.Tag{Highlight: "function.declaration", Kind: engine.KindIdentifier}, "function declaration", false},
		{"bare highlight", tokenstream.Tag{Highlight: "type"}, "type", false},
		{"bare literal highlight", tokenstream.Tag{Highlight: "number"}, "number", true},
		{"unhighlighted string", tokenstream.Tag{Kind: engine.KindString}, "string_literal", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.class, tc.tag.Class())
			assert.Equal(t, tc.inert, tc.tag.Inert())
		})
	}
}
