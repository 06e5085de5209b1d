package fea

import (
	"strings"
)

const (
	nameStartChars        = "_.+*:^~!"
	nameContinuationChars = "._*+-^|~"
	symbolChars           = "{}[]();,'=<>"
)

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isNameStart(c byte) bool {
	return isLetter(c) || strings.IndexByte(nameStartChars, c) >= 0
}

func isNameContinuation(c byte) bool {
	return isLetter(c) || isDigit(c) || strings.IndexByte(nameContinuationChars, c) >= 0
}

type lexer struct {
	src  string
	path string
	pos  int
	line int
	col  int
}

// tokenize splits src into tokens, trivia included. It only fails on an
// unterminated string.
func tokenize(path, src string) ([]Token, error) {
	lx := &lexer{src: src, path: path, line: 1, col: 1}
	var out []Token
	for lx.pos < len(lx.src) {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
	return out, nil
}

func (lx *lexer) next() (Token, error) {
	start, line, col := lx.pos, lx.line, lx.col
	kind := TokenOther
	c := lx.src[lx.pos]

	switch {
	case c == ' ' || c == '\t' || c == '\r' || c == '\n':
		kind = TokenSpace
		lx.advanceWhile(func(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' })
	case c == '#':
		kind = TokenComment
		lx.advanceWhile(func(b byte) bool { return b != '\n' && b != '\r' })
	case c == '"':
		kind = TokenString
		lx.advance()
		end := strings.IndexByte(lx.src[lx.pos:], '"')
		if end < 0 {
			return Token{}, &SyntaxError{Path: lx.path, Line: line, Col: col, Msg: "unterminated string"}
		}
		lx.advanceN(end + 1)
	case c == '@':
		kind = TokenClass
		lx.advance()
		lx.advanceWhile(isNameContinuation)
	case c == '\\':
		kind = TokenEscapedName
		lx.advance()
		lx.advanceWhile(isNameContinuation)
	case c == '0' && lx.peek(1) == 'x':
		kind = TokenNumber
		lx.advanceN(2)
		lx.advanceWhile(isHexDigit)
	case isDigit(c) || (c == '-' && isDigit(lx.peek(1))):
		kind = TokenNumber
		lx.advance()
		lx.advanceWhile(isDigit)
		if lx.peek(0) == '.' && isDigit(lx.peek(1)) {
			lx.advance()
			lx.advanceWhile(isDigit)
		}
	case isNameStart(c):
		kind = TokenName
		lx.advance()
		lx.advanceWhile(isNameContinuation)
	case c == '-' || strings.IndexByte(symbolChars, c) >= 0:
		kind = TokenSymbol
		lx.advance()
	default:
		lx.advance()
	}

	return Token{Kind: kind, Text: lx.src[start:lx.pos], Offset: start, Line: line, Col: col}, nil
}

func (lx *lexer) peek(n int) byte {
	if lx.pos+n >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+n]
}

func (lx *lexer) advance() {
	if lx.src[lx.pos] == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	lx.pos++
}

func (lx *lexer) advanceN(n int) {
	for i := 0; i < n && lx.pos < len(lx.src); i++ {
		lx.advance()
	}
}

func (lx *lexer) advanceWhile(f func(byte) bool) {
	for lx.pos < len(lx.src) && f(lx.src[lx.pos]) {
		lx.advance()
	}
}
