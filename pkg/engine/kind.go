package engine

// TokenKind is the lexical class of a SyntaxToken.
type TokenKind int

// Token kinds. KindNone marks ranges that carry no lexical information.
const (
	KindNone TokenKind = iota
	KindWhitespace
	KindComment
	KindString
	KindNumber
	KindKeyword
	KindPunctuation
	KindOperator
	KindIdentifier
	KindOther
)

func (k TokenKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindWhitespace:
		return "whitespace"
	case KindComment:
		return "comment"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindKeyword:
		return "keyword"
	case KindPunctuation:
		return "punctuation"
	case KindOperator:
		return "operator"
	case KindIdentifier:
		return "identifier"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Trivia reports whether the kind never names anything: whitespace,
// comments, literals, keywords and punctuation.
func (k TokenKind) Trivia() bool {
	switch k {
	case KindWhitespace, KindComment, KindString, KindNumber,
		KindKeyword, KindPunctuation, KindOperator:
		return true
	default:
		return false
	}
}
