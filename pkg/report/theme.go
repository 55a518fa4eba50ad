package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownTheme is returned for a theme name chroma does not know.
var ErrUnknownTheme = errors.New("unknown theme")

// emphasisCSS styles Markdown emphasis independently of the palette.
const emphasisCSS = `.code-section .markup.bold {
  font-weight: bold;
}
.code-section .markup.italic {
  font-style: italic;
}
`

// themeRule maps highlight class selectors onto chroma token types, tried
// in order until one has a colour.
type themeRule struct {
	selectors []string
	types     []chroma.TokenType
}

//nolint:gochecknoglobals // Read-only lookup table.
var themeRules = []themeRule{
	{[]string{".keyword", ".boolean"}, []chroma.TokenType{chroma.Keyword}},
	{[]string{".string", ".string_literal", ".markup.code"}, []chroma.TokenType{chroma.LiteralString}},
	{[]string{".escape"}, []chroma.TokenType{chroma.LiteralStringEscape, chroma.LiteralString}},
	{[]string{".number"}, []chroma.TokenType{chroma.LiteralNumber}},
	{[]string{".comment", ".markup.quote"}, []chroma.TokenType{chroma.Comment}},
	{[]string{".function", ".method"}, []chroma.TokenType{chroma.NameFunction, chroma.Name}},
	{[]string{".type", ".markup.heading"}, []chroma.TokenType{chroma.KeywordType, chroma.NameClass, chroma.GenericHeading}},
	{[]string{".field", ".property"}, []chroma.TokenType{chroma.NameProperty, chroma.NameAttribute, chroma.Name}},
	{[]string{".constant"}, []chroma.TokenType{chroma.NameConstant, chroma.KeywordConstant}},
	{[]string{".macro", ".attribute"}, []chroma.TokenType{chroma.NameDecorator, chroma.NameBuiltin}},
	{[]string{".module", ".namespace", ".label"}, []chroma.TokenType{chroma.NameNamespace, chroma.Name}},
	{[]string{".operator"}, []chroma.TokenType{chroma.Operator}},
	{[]string{".punctuation", ".markup.list"}, []chroma.TokenType{chroma.Punctuation, chroma.Text}},
	{[]string{".markup.link"}, []chroma.TokenType{chroma.NameTag, chroma.NameFunction}},
	{[]string{".variable", ".parameter"}, []chroma.TokenType{chroma.NameVariable, chroma.Name, chroma.Text}},
}

// ThemeNames lists the registered chroma styles.
func ThemeNames() []string {
	return styles.Names()
}

// KnownTheme reports whether name is a registered chroma style.
func KnownTheme(name string) bool {
	_, ok := resolveTheme(name)
	return ok
}

// resolveTheme matches name case-insensitively against the registry.
func resolveTheme(name string) (string, bool) {
	lookup := strings.ToLower(strings.TrimSpace(name))
	for _, n := range styles.Names() {
		if strings.ToLower(n) == lookup {
			return n, true
		}
	}
	return "", false
}

// ThemeCSS converts a chroma style into highlight rules for the code view.
func ThemeCSS(name string) (string, error) {
	registered, ok := resolveTheme(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	style := styles.Get(registered)

	fg := pickForeground(style, "#bcbec4", chroma.Text)
	bg := pickBackground(style, "#1e1f22", chroma.Background)

	var b strings.Builder
	fmt.Fprintf(&b, ".code-section {\n  background: %s;\n  color: %s;\n}\n", bg, fg)

	for _, rule := range themeRules {
		entry := firstEntry(style, rule.types)
		color := fg
		if entry.Colour.IsSet() {
			color = entry.Colour.String()
		}

		selectors := make([]string, len(rule.selectors))
		for i, s := range rule.selectors {
			selectors[i] = ".code-section " + s
		}

		b.WriteString(strings.Join(selectors, ",\n"))
		fmt.Fprintf(&b, " {\n  color: %s;\n", color)
		if entry.Bold == chroma.Yes {
			b.WriteString("  font-weight: bold;\n")
		}
		if entry.Italic == chroma.Yes {
			b.WriteString("  font-style: italic;\n")
		}
		b.WriteString("}\n")
	}
	b.WriteString(emphasisCSS)

	return b.String(), nil
}

func firstEntry(style *chroma.Style, types []chroma.TokenType) chroma.StyleEntry {
	for _, tt := range types {
		entry := style.Get(tt)
		if entry.Colour.IsSet() {
			return entry
		}
	}
	return chroma.StyleEntry{}
}

func pickForeground(style *chroma.Style, fallback string, types ...chroma.TokenType) string {
	for _, tt := range types {
		entry := style.Get(tt)
		if entry.Colour.IsSet() {
			return entry.Colour.String()
		}
	}
	return fallback
}

func pickBackground(style *chroma.Style, fallback string, types ...chroma.TokenType) string {
	for _, tt := range types {
		entry := style.Get(tt)
		if entry.Background.IsSet() {
			return entry.Background.String()
		}
	}
	return fallback
}
