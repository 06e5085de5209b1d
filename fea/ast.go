package fea

import (
	"fmt"

	"github.com/samber/lo"
)

type StatementKind int

const (
	StatementOther StatementKind = iota
	StatementBlock
	StatementClassDef
	StatementSubstitution
	StatementPosition
	StatementIgnore
	StatementMarkClass
	StatementGDEF
)

func (k StatementKind) String() string {
	switch k {
	case StatementOther:
		return "other"
	case StatementBlock:
		return "block"
	case StatementClassDef:
		return "class_def"
	case StatementSubstitution:
		return "substitution"
	case StatementPosition:
		return "position"
	case StatementIgnore:
		return "ignore"
	case StatementMarkClass:
		return "mark_class"
	case StatementGDEF:
		return "gdef"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// GlyphRef is a glyph name leaf: the bytes Start:End of token Token spell Name.
type GlyphRef struct {
	Name  string
	Token int
	Start int
	End   int
}

// Statement is one ';'-terminated statement or one block. First and Last are
// token indexes, Last being the terminating ';'.
type Statement struct {
	Kind    StatementKind
	Keyword string
	// Name is the block tag/label or the defined class name.
	Name   string
	First  int
	Last   int
	Glyphs []GlyphRef
	Body   []*Statement
}

// Resolver maps a glyph name to the name to write out.
type Resolver func(name string) string

// Document is a parsed feature file. The tree is never edited: renames are
// applied by passing a Resolver to Serialize.
type Document struct {
	Path       string
	Statements []*Statement
	tokens     []Token
}

func (d *Document) Tokens() []Token {
	return d.tokens
}

// Walk visits statements depth first. Returning false from fn skips the body
// of a block.
func (d *Document) Walk(fn func(*Statement) bool) {
	walk(d.Statements, fn)
}

func walk(stmts []*Statement, fn func(*Statement) bool) {
	for _, s := range stmts {
		if fn(s) && len(s.Body) > 0 {
			walk(s.Body, fn)
		}
	}
}

// Glyphs returns every glyph name leaf in source order.
func (d *Document) Glyphs() []GlyphRef {
	var out []GlyphRef
	d.Walk(func(s *Statement) bool {
		out = append(out, s.Glyphs...)
		return true
	})
	return out
}

// GlyphNames returns the distinct glyph names referenced by the document.
func (d *Document) GlyphNames() []string {
	return lo.Uniq(lo.Map(d.Glyphs(), func(g GlyphRef, _ int) string { return g.Name }))
}
