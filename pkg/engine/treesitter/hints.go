package treesitter

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sevenzing/rust-html-generator/pkg/engine"
)

// goHints infers labels for `x := <expr>` where the type of expr is evident
// from its syntax.
func goHints(root *sitter.Node, content []byte) []engine.InlayHint {
	var hints []engine.InlayHint
	visitType(root, "short_var_declaration", func(decl *sitter.Node) {
		left := decl.ChildByFieldName("left")
		right := decl.ChildByFieldName("right")
		if left == nil || right == nil || left.NamedChildCount() != right.NamedChildCount() {
			return
		}
		for i := range int(left.NamedChildCount()) {
			name := left.NamedChild(i)
			if name == nil || name.Type() != "identifier" || name.Content(content) == "_" {
				continue
			}
			if label := goExprType(right.NamedChild(i), content); label != "" {
				hints = append(hints, engine.InlayHint{Range: nodeRange(name), Label: label})
			}
		}
	})
	return hints
}

func goExprType(expr *sitter.Node, content []byte) string {
	if expr == nil {
		return ""
	}
	switch expr.Type() {
	case "int_literal":
		return "int"
	case "float_literal":
		return "float64"
	case "imaginary_literal":
		return "complex128"
	case "rune_literal":
		return "rune"
	case "interpreted_string_literal", "raw_string_literal":
		return "string"
	case "true", "false":
		return "bool"
	case "composite_literal":
		if t := expr.ChildByFieldName("type"); t != nil {
			return t.Content(content)
		}
	case "unary_expression":
		operand := expr.ChildByFieldName("operand")
		if op := expr.ChildByFieldName("operator"); op != nil && op.Content(content) == "&" &&
			operand != nil && operand.Type() == "composite_literal" {
			if t := goExprType(operand, content); t != "" {
				return "*" + t
			}
		}
	case "call_expression":
		fn := expr.ChildByFieldName("function")
		args := expr.ChildByFieldName("arguments")
		if fn == nil || args == nil || args.NamedChildCount() == 0 || args.NamedChild(0) == nil {
			return ""
		}
		switch fn.Content(content) {
		case "make":
			return args.NamedChild(0).Content(content)
		case "new":
			return "*" + args.NamedChild(0).Content(content)
		}
	}
	return ""
}

// rustHints labels `let x = <expr>;` bindings that carry no type annotation.
func rustHints(root *sitter.Node, content []byte) []engine.InlayHint {
	var hints []engine.InlayHint
	visitType(root, "let_declaration", func(decl *sitter.Node) {
		if decl.ChildByFieldName("type") != nil {
			return
		}
		pattern := decl.ChildByFieldName("pattern")
		if pattern == nil || pattern.Type() != "identifier" {
			return
		}
		if label := rustExprType(decl.ChildByFieldName("value"), content); label != "" {
			hints = append(hints, engine.InlayHint{Range: nodeRange(pattern), Label: label})
		}
	})
	return hints
}

func rustExprType(expr *sitter.Node, content []byte) string {
	if expr == nil {
		return ""
	}
	switch expr.Type() {
	case "integer_literal":
		return "i32"
	case "float_literal":
		return "f64"
	case "string_literal", "raw_string_literal":
		return "&str"
	case "char_literal":
		return "char"
	case "boolean_literal":
		return "bool"
	case "struct_expression":
		if name := expr.ChildByFieldName("name"); name != nil {
			return name.Content(content)
		}
	case "reference_expression":
		if inner := rustExprType(expr.ChildByFieldName("value"), content); inner != "" {
			return "&" + inner
		}
	case "call_expression":
		fn := expr.ChildByFieldName("function")
		if fn != nil && fn.Type() == "scoped_identifier" {
			if path := fn.ChildByFieldName("path"); path != nil {
				if name := fn.ChildByFieldName("name"); name != nil && name.Content(content) == "new" {
					return path.Content(content)
				}
			}
		}
	}
	return ""
}

// visitType calls fn for every named node of type nodeType, in source order.
func visitType(node *sitter.Node, nodeType string, fn func(*sitter.Node)) {
	if node == nil {
		return
	}
	if node.Type() == nodeType {
		fn(node)
	}
	for i := range int(node.NamedChildCount()) {
		visitType(node.NamedChild(i), nodeType, fn)
	}
}
