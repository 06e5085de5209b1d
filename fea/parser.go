package fea

import (
	"fmt"
	"strings"
)

// Blocks whose closing brace must repeat the opening tag or label.
var taggedBlocks = map[string]bool{
	"feature":      true,
	"lookup":       true,
	"table":        true,
	"conditionset": true,
	"variation":    true,
}

var statementKinds = map[string]StatementKind{
	"sub":                  StatementSubstitution,
	"substitute":           StatementSubstitution,
	"rsub":                 StatementSubstitution,
	"reversesub":           StatementSubstitution,
	"pos":                  StatementPosition,
	"position":             StatementPosition,
	"enum":                 StatementPosition,
	"enumerate":            StatementPosition,
	"ignore":               StatementIgnore,
	"markClass":            StatementMarkClass,
	"GlyphClassDef":        StatementGDEF,
	"Attach":               StatementGDEF,
	"LigatureCaretByPos":   StatementGDEF,
	"LigatureCaretByIndex": StatementGDEF,
}

// Words that can sit where a glyph could inside a rule without naming one.
var ruleKeywords = map[string]bool{
	"sub": true, "substitute": true, "rsub": true, "reversesub": true,
	"pos": true, "position": true, "enum": true, "enumerate": true,
	"ignore": true, "by": true, "from": true, "NULL": true,
	"mark": true, "base": true, "ligature": true, "ligComponent": true,
	"cursive": true, "anchor": true, "device": true, "contourpoint": true,
	"markClass": true, "lookup": true,
	"GlyphClassDef": true, "Attach": true, "LigatureCaretByPos": true, "LigatureCaretByIndex": true,
}

type ParseOption func(*parser)

// WithPath sets the file name reported in syntax errors.
func WithPath(path string) ParseOption {
	return func(p *parser) {
		p.path = path
	}
}

// WithGlyphNames gives the parser the font's glyph order. Inside a glyph
// class, "a-z" is then read as the range a..z unless a glyph is literally
// named "a-z". Without it hyphenated names are always single glyphs.
func WithGlyphNames(names []string) ParseOption {
	return func(p *parser) {
		p.glyphs = make(map[string]struct{}, len(names))
		for _, n := range names {
			p.glyphs[n] = struct{}{}
		}
	}
}

type parser struct {
	path   string
	glyphs map[string]struct{}
	toks   []Token
	pos    int
}

// Parse reads feature file source into a Document.
func Parse(src string, opts ...ParseOption) (*Document, error) {
	p := &parser{}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	toks, err := tokenize(p.path, src)
	if err != nil {
		return nil, err
	}
	p.toks = toks
	stmts, err := p.parseStatements(nil)
	if err != nil {
		return nil, err
	}
	return &Document{Path: p.path, Statements: stmts, tokens: toks}, nil
}

func (p *parser) errorf(tok Token, format string, args ...any) error {
	return &SyntaxError{Path: p.path, Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eofToken() Token {
	if len(p.toks) == 0 {
		return Token{Line: 1, Col: 1}
	}
	last := p.toks[len(p.toks)-1]
	line, col := last.Line, last.Col
	for i := 0; i < len(last.Text); i++ {
		if last.Text[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Token{Line: line, Col: col}
}

// skipTrivia moves to the next significant token and reports whether there is one.
func (p *parser) skipTrivia() bool {
	for p.pos < len(p.toks) && p.toks[p.pos].trivia() {
		p.pos++
	}
	return p.pos < len(p.toks)
}

// parseStatements reads statements up to EOF, or up to the '}' closing open
// when open is not nil.
func (p *parser) parseStatements(open *Token) ([]*Statement, error) {
	var out []*Statement
	for {
		if !p.skipTrivia() {
			if open != nil {
				return nil, p.errorf(*open, "block opened here is never closed")
			}
			return out, nil
		}
		tok := p.toks[p.pos]
		switch {
		case tok.is(TokenSymbol, "}"):
			if open == nil {
				return nil, p.errorf(tok, "unexpected '}'")
			}
			return out, nil
		case tok.is(TokenSymbol, ";"):
			p.pos++
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
}

func (p *parser) parseStatement() (*Statement, error) {
	first := p.pos
	head := p.toks[first]
	var words []int // significant tokens before ';' or '{'
	depth := map[string]int{"[": 0, "<": 0, "(": 0}

	for ; p.pos < len(p.toks); p.pos++ {
		tok := p.toks[p.pos]
		if tok.trivia() {
			continue
		}
		if tok.Kind == TokenSymbol {
			switch tok.Text {
			case "[", "<", "(":
				depth[tok.Text]++
			case "]", ">", ")":
				open := map[string]string{"]": "[", ">": "<", ")": "("}[tok.Text]
				if depth[open] == 0 {
					return nil, p.errorf(tok, "unbalanced %q", tok.Text)
				}
				depth[open]--
			case ";", "{", "}":
				if depth["["] > 0 || depth["<"] > 0 || depth["("] > 0 {
					return nil, p.errorf(tok, "unexpected %q inside brackets", tok.Text)
				}
				if tok.Text == "}" {
					return nil, p.errorf(tok, "expected ';' before '}'")
				}
				if tok.Text == "{" {
					if len(words) == 0 {
						return nil, p.errorf(tok, "block without a keyword")
					}
					return p.parseBlock(first, words)
				}
				stmt := &Statement{Keyword: head.Text, First: first, Last: p.pos}
				p.pos++
				p.classify(stmt, words)
				return stmt, nil
			}
		}
		words = append(words, p.pos)
	}
	return nil, p.errorf(head, "statement starting with %q is missing ';'", head.Text)
}

// parseBlock is entered with p.pos on '{'.
func (p *parser) parseBlock(first int, words []int) (*Statement, error) {
	open := p.toks[p.pos]
	head := p.toks[first]
	stmt := &Statement{Kind: StatementBlock, Keyword: head.Text, First: first}
	stmt.Name = p.blockName(head.Text, words[1:])
	p.pos++

	if head.Text == "anon" || head.Text == "anonymous" {
		return p.skipAnonymous(stmt, open)
	}

	body, err := p.parseStatements(&open)
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	closing := p.toks[p.pos]
	p.pos++

	var tag []string
	for ; p.pos < len(p.toks); p.pos++ {
		tok := p.toks[p.pos]
		if tok.trivia() {
			continue
		}
		if tok.is(TokenSymbol, ";") {
			stmt.Last = p.pos
			p.pos++
			if taggedBlocks[head.Text] && strings.Join(tag, "") != stmt.Name {
				return nil, p.errorf(closing, "%s %s closed as %q", head.Text, stmt.Name, strings.Join(tag, ""))
			}
			return stmt, nil
		}
		if tok.Kind == TokenSymbol && (tok.Text == "{" || tok.Text == "}") {
			break
		}
		tag = append(tag, tok.Text)
	}
	return nil, p.errorf(closing, "expected ';' after end of %s block", head.Text)
}

// blockName is the feature tag or lookup label; tables may have tags like OS/2
// that lex as several tokens.
func (p *parser) blockName(keyword string, args []int) string {
	if len(args) == 0 {
		return ""
	}
	if keyword == "table" {
		var b strings.Builder
		for _, i := range args {
			b.WriteString(p.toks[i].Text)
		}
		return b.String()
	}
	return p.toks[args[0]].Text
}

// skipAnonymous consumes an anonymous block verbatim up to "} tag ;".
func (p *parser) skipAnonymous(stmt *Statement, open Token) (*Statement, error) {
	for ; p.pos < len(p.toks); p.pos++ {
		if !p.toks[p.pos].is(TokenSymbol, "}") {
			continue
		}
		j := p.nextSignificant(p.pos + 1)
		if j < 0 || p.toks[j].Text != stmt.Name {
			continue
		}
		k := p.nextSignificant(j + 1)
		if k < 0 || !p.toks[k].is(TokenSymbol, ";") {
			continue
		}
		stmt.Last = k
		p.pos = k + 1
		return stmt, nil
	}
	return nil, p.errorf(open, "anonymous block %s is never closed", stmt.Name)
}

func (p *parser) nextSignificant(i int) int {
	for ; i < len(p.toks); i++ {
		if !p.toks[i].trivia() {
			return i
		}
	}
	return -1
}

func (p *parser) classify(stmt *Statement, words []int) {
	head := p.toks[words[0]]
	if head.Kind == TokenClass && len(words) > 1 && p.toks[words[1]].is(TokenSymbol, "=") {
		stmt.Kind = StatementClassDef
		stmt.Name = head.Text
		stmt.Glyphs = p.ruleGlyphs(words[2:])
		return
	}
	kind, ok := statementKinds[head.Text]
	if !ok || head.Kind != TokenName {
		stmt.Kind = StatementOther
		stmt.Glyphs = p.bracketGlyphs(words)
		return
	}
	stmt.Kind = kind
	stmt.Glyphs = p.ruleGlyphs(words)
}

// ruleGlyphs collects glyph leaves of a rule-like statement: every name that
// is not a keyword, a lookup label or inside a <value record>/<anchor>.
func (p *parser) ruleGlyphs(words []int) []GlyphRef {
	var out []GlyphRef
	angle, bracket := 0, 0
	skipNext := false
	for _, i := range words {
		tok := p.toks[i]
		if tok.Kind == TokenSymbol {
			switch tok.Text {
			case "<":
				angle++
			case ">":
				angle--
			case "[":
				bracket++
			case "]":
				bracket--
			}
			continue
		}
		if angle > 0 {
			continue
		}
		if skipNext {
			skipNext = false
			continue
		}
		if tok.Kind == TokenName && ruleKeywords[tok.Text] {
			skipNext = tok.Text == "lookup"
			continue
		}
		out = append(out, p.glyphLeaves(i, bracket > 0)...)
	}
	return out
}

// bracketGlyphs collects names inside [...] only, as in
// "lookupflag UseMarkFilteringSet [acute grave];".
func (p *parser) bracketGlyphs(words []int) []GlyphRef {
	var out []GlyphRef
	bracket := 0
	for _, i := range words {
		tok := p.toks[i]
		switch {
		case tok.is(TokenSymbol, "["):
			bracket++
		case tok.is(TokenSymbol, "]"):
			bracket--
		case bracket > 0:
			out = append(out, p.glyphLeaves(i, true)...)
		}
	}
	return out
}

func (p *parser) glyphLeaves(i int, inClass bool) []GlyphRef {
	tok := p.toks[i]
	switch tok.Kind {
	case TokenEscapedName:
		name := tok.Text[1:]
		if name == "" || isCID(name) {
			return nil
		}
		return []GlyphRef{{Name: name, Token: i, Start: 1, End: len(tok.Text)}}
	case TokenName:
		if inClass {
			if refs := p.splitRange(i); refs != nil {
				return refs
			}
		}
		return []GlyphRef{{Name: tok.Text, Token: i, Start: 0, End: len(tok.Text)}}
	}
	return nil
}

// splitRange reads "a.sc-z.sc" as two endpoints when the font has both
// halves and no glyph with the hyphenated name.
func (p *parser) splitRange(i int) []GlyphRef {
	text := p.toks[i].Text
	if p.glyphs == nil || !strings.Contains(text, "-") {
		return nil
	}
	if _, ok := p.glyphs[text]; ok {
		return nil
	}
	for at := strings.IndexByte(text, '-'); at >= 0; {
		left, right := text[:at], text[at+1:]
		_, okL := p.glyphs[left]
		_, okR := p.glyphs[right]
		if okL && okR {
			return []GlyphRef{
				{Name: left, Token: i, Start: 0, End: at},
				{Name: right, Token: i, Start: at + 1, End: len(text)},
			}
		}
		next := strings.IndexByte(text[at+1:], '-')
		if next < 0 {
			break
		}
		at += next + 1
	}
	return nil
}

func isCID(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
