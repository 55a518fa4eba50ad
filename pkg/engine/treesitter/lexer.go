package treesitter

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/sevenzing/rust-html-generator/pkg/engine"
	"github.com/sevenzing/rust-html-generator/pkg/textrange"
)

// analyzeLexer highlights a file with the chroma lexer registered for its
// name. It returns nil when no lexer matches, the lexer is plain text, or
// the lexer output does not line up with content.
func analyzeLexer(path string, content []byte) *analysis {
	lexer := lexers.Match(path)
	if lexer == nil || strings.EqualFold(lexer.Config().Name, "plaintext") {
		return nil
	}
	iter, err := chroma.Coalesce(lexer).Tokenise(&chroma.TokeniseOptions{State: "root"}, string(content))
	if err != nil {
		return nil
	}

	out := &analysis{}
	pos := 0
	for _, tok := range iter.Tokens() {
		if pos >= len(content) {
			break
		}
		if tok.Value == "" {
			continue
		}
		end := min(pos+len(tok.Value), len(content))
		// Lexers may append a final newline; anything else is a mismatch.
		if !bytes.HasPrefix([]byte(tok.Value), content[pos:end]) {
			return nil
		}
		rng := textrange.New(pos, end)
		tag, kind := classifyChroma(tok.Type, tok.Value)
		out.tokens = append(out.tokens, engine.SyntaxToken{Range: rng, Kind: kind})
		if tag != "" {
			out.highlights = append(out.highlights, engine.HighlightRange{Range: rng, Tag: tag})
		}
		pos = end
	}
	if pos != len(content) {
		return nil
	}
	return out
}

// classifyChroma maps a chroma token type onto a highlight tag and kind.
func classifyChroma(tt chroma.TokenType, value string) (string, engine.TokenKind) {
	switch {
	case strings.TrimSpace(value) == "":
		return "", engine.KindWhitespace
	case tt.InCategory(chroma.Comment):
		return "comment", engine.KindComment
	case tt == chroma.LiteralStringEscape:
		return "escape", engine.KindString
	case tt.InSubCategory(chroma.LiteralString):
		return "string", engine.KindString
	case tt.InSubCategory(chroma.LiteralNumber):
		return "number", engine.KindNumber
	case tt == chroma.KeywordType:
		return "type", engine.KindKeyword
	case tt == chroma.KeywordConstant:
		return "boolean", engine.KindKeyword
	case tt.InCategory(chroma.Keyword):
		return "keyword", engine.KindKeyword
	case tt == chroma.NameFunction || tt == chroma.NameFunctionMagic:
		return "function", engine.KindIdentifier
	case tt == chroma.NameClass || tt == chroma.NameException:
		return "type", engine.KindIdentifier
	case tt == chroma.NameBuiltin || tt == chroma.NameBuiltinPseudo:
		return "macro", engine.KindIdentifier
	case tt == chroma.NameAttribute || tt == chroma.NameProperty || tt == chroma.NameTag:
		return "field", engine.KindIdentifier
	case tt == chroma.NameConstant:
		return "constant", engine.KindIdentifier
	case tt == chroma.NameNamespace:
		return "module", engine.KindIdentifier
	case tt.InCategory(chroma.Name):
		return "variable", engine.KindIdentifier
	case tt.InCategory(chroma.Operator):
		return "operator", engine.KindOperator
	case tt.InCategory(chroma.Punctuation):
		return "punctuation", engine.KindPunctuation
	case tt == chroma.GenericHeading || tt == chroma.GenericSubheading:
		return "markup.heading", engine.KindOther
	}
	return "", engine.KindOther
}
