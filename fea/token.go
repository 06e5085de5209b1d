package fea

import "fmt"

type TokenKind int

const (
	TokenSpace TokenKind = iota
	TokenComment
	TokenName
	TokenEscapedName // \sub or \123
	TokenClass       // @name
	TokenNumber
	TokenString
	TokenSymbol
	TokenOther
)

func (k TokenKind) String() string {
	switch k {
	case TokenSpace:
		return "space"
	case TokenComment:
		return "comment"
	case TokenName:
		return "name"
	case TokenEscapedName:
		return "escaped_name"
	case TokenClass:
		return "class"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenSymbol:
		return "symbol"
	case TokenOther:
		return "other"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// Token is a slice of the source text. Concatenating the Text of every token
// of a document gives back the source byte for byte.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
	Line   int
	Col    int
}

func (t Token) trivia() bool {
	return t.Kind == TokenSpace || t.Kind == TokenComment
}

func (t Token) is(kind TokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %d:%d", t.Kind, t.Text, t.Line, t.Col)
}
