package report

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"sort"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/sevenzing/rust-html-generator/pkg/filetree"
)

// Options configures an Assembler.
type Options struct {
	// Title is shown in the browser tab before a file is selected.
	Title string

	// Minify runs the finished document through the HTML, CSS and JS
	// minifiers. Comments are stripped.
	Minify bool
}

// Assembler produces the final document.
type Assembler struct {
	assets   *Assets
	opts     Options
	minifier *minify.M
}

// page is the data passed to main.html.
type page struct {
	Title  string
	Tree   template.HTML
	Files  template.HTML
	Styles template.CSS
	Script template.JS
}

// NewAssembler returns an assembler using assets.
func NewAssembler(assets *Assets, opts Options) *Assembler {
	a := &Assembler{assets: assets, opts: opts}
	if opts.Minify {
		a.minifier = newMinifier()
	}
	return a
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	return m
}

// Assemble renders the document. files maps each file's tree path
// ("{project}/{relative path}") to its rendered code table; containers are
// emitted in sorted path order.
func (a *Assembler) Assemble(tree *filetree.Node, files map[string]string) ([]byte, error) {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var containers strings.Builder
	for _, p := range paths {
		containers.WriteString(`<div id="`)
		containers.WriteString(template.HTMLEscapeString(p))
		containers.WriteString(`" class="invisible">`)
		containers.WriteString(files[p])
		containers.WriteString(`</div>`)
	}

	//nolint:gosec // Tree and file markup are escaped by this package and package render.
	data := page{
		Title:  a.opts.Title,
		Tree:   template.HTML(TreeHTML(tree)),
		Files:  template.HTML(containers.String()),
		Styles: template.CSS(a.assets.Styles()),
		Script: template.JS(a.assets.Script()),
	}

	var buf bytes.Buffer
	if err := a.assets.main.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}

	if a.minifier == nil {
		return buf.Bytes(), nil
	}

	out, err := a.minifier.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("minify document: %w", err)
	}
	return out, nil
}
