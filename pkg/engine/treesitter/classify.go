package treesitter

import (
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sevenzing/rust-html-generator/pkg/engine"
	"github.com/sevenzing/rust-html-generator/pkg/langdetect"
)

// isStringNode reports whether a node is a whole string or character
// literal. Such nodes become a single token regardless of their children.
func isStringNode(node *sitter.Node) bool {
	if !node.IsNamed() {
		return false
	}
	t := node.Type()
	switch {
	case strings.HasSuffix(t, "_content"), strings.HasSuffix(t, "_fragment"),
		strings.HasSuffix(t, "_start"), strings.HasSuffix(t, "_end"):
		return false
	case strings.Contains(t, "string"), strings.Contains(t, "char_literal"),
		t == "rune_literal", strings.HasSuffix(t, "_quote_scalar"),
		t == "heredoc_body", t == "template_string":
		return true
	}
	return false
}

func isCommentNode(node *sitter.Node) bool {
	return strings.Contains(node.Type(), "comment")
}

func isEscapeNode(node *sitter.Node) bool {
	return node.Type() == "escape_sequence"
}

func isIdentifierNode(nodeType string) bool {
	return nodeType == "identifier" ||
		strings.HasSuffix(nodeType, "identifier") ||
		nodeType == "variable_name" ||
		nodeType == "metavariable"
}

// classifyLeaf returns the highlight tag and lexical kind of a leaf node.
// An empty tag means the leaf is not highlighted.
func classifyLeaf(lang langdetect.Language, node *sitter.Node, text string) (string, engine.TokenKind) {
	nodeType := node.Type()
	parentType := ""
	grandType := ""
	if parent := node.Parent(); parent != nil {
		parentType = parent.Type()
		if grand := parent.Parent(); grand != nil {
			grandType = grand.Type()
		}
	}
	lexeme := strings.TrimSpace(text)
	lower := strings.ToLower(lexeme)

	switch {
	case lexeme == "":
		return "", engine.KindWhitespace
	case nodeType == "ERROR":
		return "", engine.KindOther
	case strings.Contains(nodeType, "number"), strings.Contains(nodeType, "integer"),
		strings.Contains(nodeType, "float"), strings.Contains(nodeType, "int_literal"),
		strings.Contains(nodeType, "imaginary_literal"):
		return "number", engine.KindNumber
	case lower == "true" || lower == "false":
		return "boolean", engine.KindKeyword
	case lower == "nil" || lower == "null" || lexeme == "None" || nodeType == "iota":
		return "keyword", engine.KindKeyword
	case nodeType == "escape_sequence":
		return "escape", engine.KindString
	}

	if !node.IsNamed() {
		switch {
		case punctuationSet[lexeme]:
			return "punctuation", engine.KindPunctuation
		case operatorSet[lexeme] || looksLikeOperator(lexeme):
			return "operator", engine.KindOperator
		case keywordSet[lower] || isWord(lexeme):
			return "keyword", engine.KindKeyword
		}
		return "", engine.KindOther
	}

	switch {
	case strings.HasSuffix(nodeType, "keyword"), nodeType == "self", nodeType == "super",
		nodeType == "crate", nodeType == "mutable_specifier":
		return "keyword", engine.KindKeyword
	case nodeType == "primitive_type", nodeType == "predefined_type",
		nodeType == "type_identifier", nodeType == "sized_type_specifier":
		return "type", engine.KindIdentifier
	case nodeType == "lifetime", nodeType == "label_name", nodeType == "statement_identifier":
		return "label", engine.KindIdentifier
	case isIdentifierNode(nodeType):
		return classifyIdentifier(lang, nodeType, parentType, grandType, lexeme), engine.KindIdentifier
	}

	if lang == langdetect.TOML || lang == langdetect.YAML {
		if strings.Contains(parentType, "key") || strings.Contains(nodeType, "key") {
			return "field", engine.KindIdentifier
		}
	}

	return "", engine.KindOther
}

func classifyIdentifier(lang langdetect.Language, nodeType, parentType, grandType, lexeme string) string {
	switch {
	case parentType == "macro_invocation", parentType == "macro_definition",
		parentType == "preproc_def", parentType == "preproc_function_def":
		return "macro"
	case nodeType == "field_identifier", nodeType == "property_identifier",
		nodeType == "shorthand_property_identifier":
		if functionContext[lang][parentType] && (grandType == "call_expression" || grandType == "call") {
			return "method"
		}
		return "field"
	case nodeType == "package_identifier", parentType == "mod_item",
		parentType == "scoped_identifier" && lang == langdetect.Rust,
		parentType == "namespace_definition":
		return "module"
	case isFunctionContext(lang, parentType, grandType):
		return "function"
	case isLikelyConstant(lexeme):
		return "constant"
	case parentType == "parameter_declaration", parentType == "parameter",
		parentType == "required_parameter", parentType == "parameters":
		return "parameter"
	}
	return "variable"
}

func isFunctionContext(lang langdetect.Language, parentType, grandType string) bool {
	if parentType == "call_expression" || parentType == "call" || parentType == "command_name" {
		return true
	}
	if grandType == "call_expression" || grandType == "call" {
		return functionContext[lang][parentType]
	}
	return false
}

func isLikelyConstant(s string) bool {
	if len(s) < 2 {
		return false
	}
	hasLetter := false
	for _, r := range s {
		switch {
		case r == '_', unicode.IsDigit(r):
			continue
		case unicode.IsLetter(r):
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		default:
			return false
		}
	}
	return hasLetter
}

func looksLikeOperator(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("+-*/%=!<>&|^~?@", r) {
			return false
		}
	}
	return true
}

func isWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '_' {
			return false
		}
	}
	return s != ""
}

// isFoldable reports whether a node type forms a collapsible region when it
// spans more than one line.
func isFoldable(nodeType string) bool {
	switch {
	case strings.HasSuffix(nodeType, "block"), strings.HasSuffix(nodeType, "body"),
		strings.HasSuffix(nodeType, "declaration_list"), strings.HasSuffix(nodeType, "spec_list"),
		strings.HasSuffix(nodeType, "variant_list"), strings.HasSuffix(nodeType, "field_list"),
		strings.HasSuffix(nodeType, "block_mapping"), strings.HasSuffix(nodeType, "block_sequence"):
		return true
	}
	switch nodeType {
	case "literal_value", "object", "array", "comment", "block_comment",
		"const_declaration", "var_declaration", "import_declaration",
		"use_list", "match_block", "table", "statement_block", "class_body",
		"compound_statement", "enumerator_list", "switch_body":
		return true
	}
	return false
}
