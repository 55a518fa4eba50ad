package report

import (
	"html/template"
	"strings"

	"github.com/sevenzing/rust-html-generator/pkg/filetree"
)

// TreeHTML renders a sorted tree as nested label/input markup. Files are
// radio inputs named "file" whose value is the full slash path; directories
// are checkboxes whose value is the directory path with a trailing slash.
// The root directory starts expanded.
func TreeHTML(root *filetree.Node) string {
	var b strings.Builder
	writeNode(&b, root, "", true)
	return b.String()
}

func writeNode(b *strings.Builder, node *filetree.Node, prefix string, expanded bool) {
	name := template.HTMLEscapeString(node.Name)
	path := template.HTMLEscapeString(prefix + node.Name)

	if node.IsFile() {
		b.WriteString(`<label class="tnz-file-tree-item file">`)
		b.WriteString(`<input class="tnz-file-tree-cb" type="radio" name="file" value="`)
		b.WriteString(path)
		b.WriteString(`">`)
		b.WriteString(`<span class="tnz-file-tree-label">`)
		b.WriteString(name)
		b.WriteString(`</span></label>`)
		return
	}

	b.WriteString(`<label class="tnz-file-tree-item dir">`)
	b.WriteString(`<input class="tnz-file-tree-cb" type="checkbox" value="`)
	b.WriteString(path)
	b.WriteString(`/"`)
	if expanded {
		b.WriteString(` checked`)
	}
	b.WriteString(`>`)
	b.WriteString(`<span class="tnz-file-tree-label">`)
	b.WriteString(name)
	b.WriteString(`</span><div class="tnz-file-tree-branches">`)
	for _, child := range node.Children {
		writeNode(b, child, prefix+node.Name+"/", false)
	}
	b.WriteString(`</div></label>`)
}
