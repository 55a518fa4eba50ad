// Package report assembles rendered files, the navigation tree and the
// bundled styles and script into one self-contained HTML document.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/sevenzing/rust-html-generator/pkg/render"
)

//go:embed assets
var assetFS embed.FS //nolint:gochecknoglobals // Read-only embedded files.

// Stylesheets in the order they are concatenated. The palette comes first
// so a theme can replace it.
//
//nolint:gochecknoglobals // Read-only list.
var stylesheets = []string{
	"assets/css/keywords.css",
	"assets/css/style.css",
	"assets/css/tree_style.css",
	"assets/css/svgs.css",
	"assets/css/fold.css",
}

const (
	paletteStylesheet = "assets/css/keywords.css"
	scriptFile        = "assets/js/logic.js"
	mainTemplateFile  = "assets/templates/main.html"
	codeTemplateFile  = "assets/templates/code.html"
)

// AssetOptions controls asset loading.
type AssetOptions struct {
	// Theme names a chroma style used instead of the built-in palette.
	// Empty keeps the built-in palette.
	Theme string
}

// Assets holds the parsed templates, styles and script. Load it once per
// run and share it; it is immutable after LoadAssets returns.
type Assets struct {
	main   *template.Template
	code   *template.Template
	styles string
	script string
}

// codeLine is the template view of a render.Line.
type codeLine struct {
	Number int
	Code   template.HTML
	Fold   *render.FoldRange
}

// LoadAssets reads the embedded assets and parses the templates.
func LoadAssets(opts AssetOptions) (*Assets, error) {
	var css strings.Builder
	for _, name := range stylesheets {
		if name == paletteStylesheet && opts.Theme != "" {
			themeCSS, err := ThemeCSS(opts.Theme)
			if err != nil {
				return nil, err
			}
			css.WriteString(themeCSS)
			css.WriteString("\n")
			continue
		}
		data, err := assetFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read asset %s: %w", name, err)
		}
		css.Write(data)
		css.WriteString("\n")
	}

	script, err := assetFS.ReadFile(scriptFile)
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", scriptFile, err)
	}

	mainTmpl, err := template.ParseFS(assetFS, mainTemplateFile)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", mainTemplateFile, err)
	}
	codeTmpl, err := template.ParseFS(assetFS, codeTemplateFile)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", codeTemplateFile, err)
	}

	return &Assets{
		main:   mainTmpl,
		code:   codeTmpl,
		styles: css.String(),
		script: string(script),
	}, nil
}

// Styles returns the concatenated stylesheet.
func (a *Assets) Styles() string {
	return a.styles
}

// Script returns the bundled script.
func (a *Assets) Script() string {
	return a.script
}

// RenderCode renders the line table of one file.
func (a *Assets) RenderCode(lines []render.Line) (string, error) {
	view := make([]codeLine, len(lines))
	for i, l := range lines {
		//nolint:gosec // Line HTML is built from escaped text by package render.
		view[i] = codeLine{Number: l.Number, Code: template.HTML(l.HTML), Fold: l.Fold}
	}

	var buf bytes.Buffer
	if err := a.code.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render code table: %w", err)
	}
	return buf.String(), nil
}
