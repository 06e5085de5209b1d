package font

import (
	"github.com/go-faster/errors"
	"github.com/samber/lo"
)

var (
	ErrGlyphNotFound = errors.New("glyph not found")
	ErrGlyphExists   = errors.New("glyph already exists")
	ErrInvalidName   = errors.New("invalid glyph name")
)

// Component places another glyph inside a composite glyph.
type Component struct {
	BaseGlyph string
	XOffset   int
	YOffset   int
}

type Glyph struct {
	Name       string
	Unicodes   []rune
	Width      int
	Components []Component
}

func (g *Glyph) clone() *Glyph {
	c := *g
	c.Unicodes = append([]rune(nil), g.Unicodes...)
	c.Components = append([]Component(nil), g.Components...)
	return &c
}

// KerningPair sides are glyph names or kerning group names.
type KerningPair struct {
	Left  string
	Right string
	Value int
}

type Group struct {
	Name   string
	Glyphs []string
}

// Font is an in-memory font project: an ordered glyph table plus the data
// that refers to glyphs by name (components, groups, kerning, features).
// It is not safe for concurrent use.
type Font struct {
	Path     string
	Features string

	glyphs   []*Glyph
	index    map[string]int
	groups   []Group
	kerning  []KerningPair
	selected map[string]struct{}

	undo     *UndoManager
	changed  bool
	revision int
}

func New() *Font {
	return &Font{
		index:    make(map[string]int),
		selected: make(map[string]struct{}),
		undo:     &UndoManager{},
	}
}

// AddGlyph appends g to the glyph order.
func (f *Font) AddGlyph(g Glyph) error {
	if g.Name == "" {
		return errors.Wrap(ErrInvalidName, "add glyph")
	}
	if _, ok := f.index[g.Name]; ok {
		return errors.Wrapf(ErrGlyphExists, "add %s", g.Name)
	}
	f.index[g.Name] = len(f.glyphs)
	f.glyphs = append(f.glyphs, g.clone())
	return nil
}

// Glyph returns a copy of the named glyph.
func (f *Font) Glyph(name string) (Glyph, bool) {
	i, ok := f.index[name]
	if !ok {
		return Glyph{}, false
	}
	return *f.glyphs[i].clone(), true
}

func (f *Font) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

func (f *Font) Len() int {
	return len(f.glyphs)
}

// Names returns glyph names in glyph order.
func (f *Font) Names() []string {
	return lo.Map(f.glyphs, func(g *Glyph, _ int) string { return g.Name })
}

// SelectedNames returns the selected glyph names in glyph order.
func (f *Font) SelectedNames() []string {
	return lo.Filter(f.Names(), func(n string, _ int) bool {
		_, ok := f.selected[n]
		return ok
	})
}

// Select adds names to the selection. Unknown names are reported.
func (f *Font) Select(names ...string) error {
	for _, n := range names {
		if !f.Has(n) {
			return errors.Wrapf(ErrGlyphNotFound, "select %s", n)
		}
		f.selected[n] = struct{}{}
	}
	return nil
}

func (f *Font) ClearSelection() {
	f.selected = make(map[string]struct{})
}

func (f *Font) SetGroup(name string, glyphs ...string) {
	for i := range f.groups {
		if f.groups[i].Name == name {
			f.groups[i].Glyphs = append([]string(nil), glyphs...)
			return
		}
	}
	f.groups = append(f.groups, Group{Name: name, Glyphs: append([]string(nil), glyphs...)})
}

func (f *Font) Groups() []Group {
	return lo.Map(f.groups, func(g Group, _ int) Group {
		return Group{Name: g.Name, Glyphs: append([]string(nil), g.Glyphs...)}
	})
}

func (f *Font) SetKerning(left, right string, value int) {
	for i := range f.kerning {
		if f.kerning[i].Left == left && f.kerning[i].Right == right {
			f.kerning[i].Value = value
			return
		}
	}
	f.kerning = append(f.kerning, KerningPair{Left: left, Right: right, Value: value})
}

func (f *Font) Kerning() []KerningPair {
	return append([]KerningPair(nil), f.kerning...)
}

// MarkChanged records that the font was edited.
func (f *Font) MarkChanged() {
	f.changed = true
	f.revision++
}

func (f *Font) Changed() bool {
	return f.changed
}

func (f *Font) Revision() int {
	return f.revision
}
