package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevenzing/rust-html-generator/pkg/filetree"
	"github.com/sevenzing/rust-html-generator/pkg/render"
	"github.com/sevenzing/rust-html-generator/pkg/report"
)

func TestLoadAssets_Default(t *testing.T) {
	t.Parallel()

	assets, err := report.LoadAssets(report.AssetOptions{})
	require.NoError(t, err)

	assert.Contains(t, assets.Styles(), ".tnz-file-tree-branches")
	assert.Contains(t, assets.Styles(), ".line-fold-cell")
	assert.Contains(t, assets.Styles(), "#cf8e6d", "built-in palette should be included")
	assert.Contains(t, assets.Script(), "selectFileWithName")
}

func TestLoadAssets_Theme(t *testing.T) {
	t.Parallel()

	assets, err := report.LoadAssets(report.AssetOptions{Theme: "Monokai"})
	require.NoError(t, err)

	assert.Contains(t, assets.Styles(), ".code-section .keyword")
	assert.Contains(t, assets.Styles(), ".code-section .markup.bold")
	assert.NotContains(t, assets.Styles(), "#cf8e6d", "theme should replace the built-in palette")
}

func TestLoadAssets_UnknownTheme(t *testing.T) {
	t.Parallel()

	_, err := report.LoadAssets(report.AssetOptions{Theme: "no-such-theme"})
	require.ErrorIs(t, err, report.ErrUnknownTheme)
	assert.False(t, report.KnownTheme("no-such-theme"))
	assert.True(t, report.KnownTheme("monokai"))
	assert.NotEmpty(t, report.ThemeNames())
}

func TestRenderCode(t *testing.T) {
	t.Parallel()

	assets, err := report.LoadAssets(report.AssetOptions{})
	require.NoError(t, err)

	out, err := assets.RenderCode([]render.Line{
		{Number: 1, HTML: `<span class="hovertext keyword">fn</span> x() {`, Fold: &render.FoldRange{StartLine: 1, EndLine: 2}},
		{Number: 2, HTML: "}"},
	})
	require.NoError(t, err)

	assert.Contains(t, out, `<tr class="table-line" number="1">`)
	assert.Contains(t, out, `id="LC2"`)
	assert.Contains(t, out, `data-fold-start-line="1" data-fold-end-line="2"`)
	assert.Contains(t, out, `<pre><span class="hovertext keyword">fn</span> x() {</pre>`)
	assert.Equal(t, 1, strings.Count(out, "line-fold arrow--down"))
}

func TestTreeHTML(t *testing.T) {
	t.Parallel()

	tree := filetree.FromPaths([]string{"README.md", "src/a.rs"}, "proj")
	tree.Sort()

	want := `<label class="tnz-file-tree-item dir">` +
		`<input class="tnz-file-tree-cb" type="checkbox" value="proj/" checked>` +
		`<span class="tnz-file-tree-label">proj</span><div class="tnz-file-tree-branches">` +
		`<label class="tnz-file-tree-item dir">` +
		`<input class="tnz-file-tree-cb" type="checkbox" value="proj/src/">` +
		`<span class="tnz-file-tree-label">src</span><div class="tnz-file-tree-branches">` +
		`<label class="tnz-file-tree-item file">` +
		`<input class="tnz-file-tree-cb" type="radio" name="file" value="proj/src/a.rs">` +
		`<span class="tnz-file-tree-label">a.rs</span></label>` +
		`</div></label>` +
		`<label class="tnz-file-tree-item file">` +
		`<input class="tnz-file-tree-cb" type="radio" name="file" value="proj/README.md">` +
		`<span class="tnz-file-tree-label">README.md</span></label>` +
		`</div></label>`

	assert.Equal(t, want, report.TreeHTML(tree))
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	assets, err := report.LoadAssets(report.AssetOptions{})
	require.NoError(t, err)

	tree := filetree.FromPaths([]string{"b.rs", "a.rs"}, "proj")
	tree.Sort()

	files := map[string]string{
		"proj/b.rs": "<pre>second</pre>",
		"proj/a.rs": "<pre>    first</pre>",
	}

	out, err := report.NewAssembler(assets, report.Options{Title: "proj"}).Assemble(tree, files)
	require.NoError(t, err)

	doc := string(out)
	assert.Contains(t, doc, "<title>proj</title>")
	assert.Contains(t, doc, `value="proj/a.rs"`)
	first := strings.Index(doc, `<div id="proj/a.rs" class="invisible">`)
	second := strings.Index(doc, `<div id="proj/b.rs" class="invisible">`)
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second, "file containers should be in path order")
	assert.Contains(t, doc, "selectFileWithName")
	assert.Contains(t, doc, ".tnz-file-tree-branches")

	minified, err := report.NewAssembler(assets, report.Options{Title: "proj", Minify: true}).Assemble(tree, files)
	require.NoError(t, err)

	assert.Less(t, len(minified), len(out))
	assert.Contains(t, string(minified), "proj/a.rs")
	assert.Contains(t, string(minified), "    first", "whitespace inside pre must survive minification")
}
