package treesitter

import (
	sitter "github.com/smacker/go-tree-sitter"
	bashlang "github.com/smacker/go-tree-sitter/bash"
	clang "github.com/smacker/go-tree-sitter/c"
	cpplang "github.com/smacker/go-tree-sitter/cpp"
	golang "github.com/smacker/go-tree-sitter/golang"
	python "github.com/smacker/go-tree-sitter/python"
	rust "github.com/smacker/go-tree-sitter/rust"
	toml "github.com/smacker/go-tree-sitter/toml"
	tsxlang "github.com/smacker/go-tree-sitter/typescript/tsx"
	tslang "github.com/smacker/go-tree-sitter/typescript/typescript"
	yaml "github.com/smacker/go-tree-sitter/yaml"
	tsjson "github.com/tree-sitter/tree-sitter-json/bindings/go"

	"github.com/sevenzing/rust-html-generator/pkg/langdetect"
)

// grammars returns the tree-sitter grammar for every language with a
// syntax backend. JavaScript is parsed with the TypeScript grammar, which
// accepts plain JavaScript.
func grammars() map[langdetect.Language]*sitter.Language {
	return map[langdetect.Language]*sitter.Language{
		langdetect.Go:         golang.GetLanguage(),
		langdetect.Rust:       rust.GetLanguage(),
		langdetect.Python:     python.GetLanguage(),
		langdetect.JavaScript: tslang.GetLanguage(),
		langdetect.TypeScript: tslang.GetLanguage(),
		langdetect.TSX:        tsxlang.GetLanguage(),
		langdetect.YAML:       yaml.GetLanguage(),
		langdetect.TOML:       toml.GetLanguage(),
		langdetect.JSON:       sitter.NewLanguage(tsjson.Language()),
		langdetect.Bash:       bashlang.GetLanguage(),
		langdetect.C:          clang.GetLanguage(),
		langdetect.CPP:        cpplang.GetLanguage(),
	}
}

// defRule describes a node type that declares a name.
type defRule struct {
	// kind is the highlight tag of the declared name.
	kind string
	// field holds the name node. Declarator chains are followed from it.
	field string
}

//nolint:gochecknoglobals // Read-only lookup table.
var definitionRules = map[langdetect.Language]map[string]defRule{
	langdetect.Go: {
		"function_declaration":  {kind: "function", field: "name"},
		"method_declaration":    {kind: "method", field: "name"},
		"type_spec":             {kind: "type", field: "name"},
		"type_alias":            {kind: "type", field: "name"},
		"const_spec":            {kind: "constant", field: "name"},
		"var_spec":              {kind: "variable", field: "name"},
		"field_declaration":     {kind: "field", field: "name"},
		"parameter_declaration": {kind: "parameter", field: "name"},
		"short_var_declaration": {kind: "variable", field: "left"},
	},
	langdetect.Rust: {
		"function_item":           {kind: "function", field: "name"},
		"function_signature_item": {kind: "function", field: "name"},
		"struct_item":             {kind: "type", field: "name"},
		"enum_item":               {kind: "type", field: "name"},
		"union_item":              {kind: "type", field: "name"},
		"trait_item":              {kind: "type", field: "name"},
		"type_item":               {kind: "type", field: "name"},
		"const_item":              {kind: "constant", field: "name"},
		"static_item":             {kind: "constant", field: "name"},
		"mod_item":                {kind: "module", field: "name"},
		"macro_definition":        {kind: "macro", field: "name"},
		"enum_variant":            {kind: "constant", field: "name"},
		"field_declaration":       {kind: "field", field: "name"},
		"let_declaration":         {kind: "variable", field: "pattern"},
		"parameter":               {kind: "parameter", field: "pattern"},
	},
	langdetect.Python: {
		"function_definition": {kind: "function", field: "name"},
		"class_definition":    {kind: "type", field: "name"},
		"assignment":          {kind: "variable", field: "left"},
	},
	langdetect.JavaScript: jsDefinitionRules(),
	langdetect.TypeScript: jsDefinitionRules(),
	langdetect.TSX:        jsDefinitionRules(),
	langdetect.C:          cDefinitionRules(),
	langdetect.CPP:        cDefinitionRules(),
	langdetect.Bash: {
		"function_definition": {kind: "function", field: "name"},
		"variable_assignment": {kind: "variable", field: "name"},
	},
}

func jsDefinitionRules() map[string]defRule {
	return map[string]defRule{
		"function_declaration":           {kind: "function", field: "name"},
		"generator_function_declaration": {kind: "function", field: "name"},
		"class_declaration":              {kind: "type", field: "name"},
		"method_definition":              {kind: "method", field: "name"},
		"variable_declarator":            {kind: "variable", field: "name"},
		"interface_declaration":          {kind: "type", field: "name"},
		"type_alias_declaration":         {kind: "type", field: "name"},
		"enum_declaration":               {kind: "type", field: "name"},
		"required_parameter":             {kind: "parameter", field: "pattern"},
		"optional_parameter":             {kind: "parameter", field: "pattern"},
	}
}

func cDefinitionRules() map[string]defRule {
	return map[string]defRule{
		"function_definition":   {kind: "function", field: "declarator"},
		"declaration":           {kind: "variable", field: "declarator"},
		"type_definition":       {kind: "type", field: "declarator"},
		"struct_specifier":      {kind: "type", field: "name"},
		"union_specifier":       {kind: "type", field: "name"},
		"enum_specifier":        {kind: "type", field: "name"},
		"class_specifier":       {kind: "type", field: "name"},
		"enumerator":            {kind: "constant", field: "name"},
		"field_declaration":     {kind: "field", field: "declarator"},
		"parameter_declaration": {kind: "parameter", field: "declarator"},
		"preproc_def":           {kind: "macro", field: "name"},
		"preproc_function_def":  {kind: "macro", field: "name"},
		"namespace_definition":  {kind: "module", field: "name"},
	}
}

// functionContext lists parent node types in which an identifier names a
// function or method.
//
//nolint:gochecknoglobals // Read-only lookup table.
var functionContext = map[langdetect.Language]map[string]bool{
	langdetect.Go: {
		"call_expression":     true,
		"selector_expression": true,
	},
	langdetect.Rust: {
		"call_expression":   true,
		"field_expression":  true,
		"scoped_identifier": true,
	},
	langdetect.JavaScript: {"call_expression": true, "member_expression": true},
	langdetect.TypeScript: {"call_expression": true, "member_expression": true},
	langdetect.TSX:        {"call_expression": true, "member_expression": true},
	langdetect.Python:     {"call": true, "attribute": true},
	langdetect.C:          {"call_expression": true},
	langdetect.CPP:        {"call_expression": true, "qualified_identifier": true},
	langdetect.Bash:       {"command_name": true},
}

// localScopes are node types whose descendants declare names that are only
// visible inside the same file.
//
//nolint:gochecknoglobals // Read-only lookup table.
var localScopes = map[string]bool{
	"function_declaration":           true,
	"method_declaration":             true,
	"func_literal":                   true,
	"function_item":                  true,
	"closure_expression":             true,
	"function_definition":            true,
	"lambda":                         true,
	"arrow_function":                 true,
	"function_expression":            true,
	"method_definition":              true,
	"generator_function_declaration": true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var keywordSet = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "case": true,
	"catch": true, "chan": true, "class": true, "const": true, "continue": true,
	"crate": true, "def": true, "default": true, "defer": true, "do": true,
	"dyn": true, "elif": true, "else": true, "enum": true, "export": true,
	"extends": true, "extern": true, "fallthrough": true, "finally": true,
	"fn": true, "for": true, "from": true, "func": true, "function": true,
	"go": true, "goto": true, "if": true, "impl": true, "import": true,
	"in": true, "include": true, "interface": true, "let": true, "loop": true,
	"map": true, "match": true, "mod": true, "module": true, "move": true,
	"mut": true, "namespace": true, "new": true, "package": true, "pass": true,
	"pub": true, "raise": true, "range": true, "ref": true, "return": true,
	"select": true, "self": true, "static": true, "struct": true, "super": true,
	"switch": true, "then": true, "fi": true, "done": true, "esac": true,
	"trait": true, "try": true, "type": true, "typedef": true, "unsafe": true,
	"use": true, "var": true, "where": true, "while": true, "with": true,
	"yield": true, "lambda": true, "not": true, "and": true, "or": true,
	"is": true, "del": true, "global": true, "except": true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var punctuationSet = map[string]bool{
	"(": true, ")": true, "[": true, "]": true, "{": true, "}": true,
	",": true, ";": true, ".": true, ":": true, "::": true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var operatorSet = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"=": true, "==": true, "!=": true, "<": true, "<=": true,
	">": true, ">=": true, "&&": true, "||": true, "!": true,
	"&": true, "|": true, "^": true, "~": true, "->": true,
	"=>": true, ":=": true, "+=": true, "-=": true, "*=": true,
	"/=": true, "<<": true, ">>": true, "&^": true, "<-": true,
	"?": true, "...": true, "..": true, "..=": true, "++": true,
	"--": true, "**": true, "//": true, "===": true, "!==": true,
}
