package font

import (
	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNothingToUndo = errors.New("nothing to undo")

// Transaction is one user-visible undo step. It keeps the inverse of each
// edit made while it was open, not a copy of the font.
type Transaction struct {
	ID    uuid.UUID
	Label string
	Glyph string

	steps []undoStep
}

type undoStep interface {
	revert(f *Font)
	// size is the number of references the step holds.
	size() int
}

// slot addresses an element of a nested slice: a component of a glyph or a
// member of a group.
type slot struct {
	owner int
	index int
}

// renameStep is the inverse of Rename: the references it rewrote and whether
// the glyph was selected.
type renameStep struct {
	old, new   string
	selected   bool
	components []slot
	members    []slot
	kernLeft   []int
	kernRight  []int
}

func (s *renameStep) revert(f *Font) {
	i, ok := f.index[s.new]
	if !ok {
		return
	}
	if _, taken := f.index[s.old]; taken {
		return
	}
	f.glyphs[i].Name = s.old
	delete(f.index, s.new)
	f.index[s.old] = i

	delete(f.selected, s.new)
	if s.selected {
		f.selected[s.old] = struct{}{}
	}
	for _, c := range s.components {
		if c.owner < len(f.glyphs) && c.index < len(f.glyphs[c.owner].Components) &&
			f.glyphs[c.owner].Components[c.index].BaseGlyph == s.new {
			f.glyphs[c.owner].Components[c.index].BaseGlyph = s.old
		}
	}
	for _, m := range s.members {
		if m.owner < len(f.groups) && m.index < len(f.groups[m.owner].Glyphs) &&
			f.groups[m.owner].Glyphs[m.index] == s.new {
			f.groups[m.owner].Glyphs[m.index] = s.old
		}
	}
	for _, k := range s.kernLeft {
		if k < len(f.kerning) && f.kerning[k].Left == s.new {
			f.kerning[k].Left = s.old
		}
	}
	for _, k := range s.kernRight {
		if k < len(f.kerning) && f.kerning[k].Right == s.new {
			f.kerning[k].Right = s.old
		}
	}
}

func (s *renameStep) size() int {
	return 1 + len(s.components) + len(s.members) + len(s.kernLeft) + len(s.kernRight)
}

// unicodesStep puts back the codepoints a glyph had before they were replaced.
type unicodesStep struct {
	glyph string
	prev  []rune
}

func (s *unicodesStep) revert(f *Font) {
	if i, ok := f.index[s.glyph]; ok {
		f.glyphs[i].Unicodes = s.prev
	}
}

func (s *unicodesStep) size() int {
	return 1 + len(s.prev)
}

// UndoManager keeps the committed transactions of a font. Scopes opened while
// another one is open join it.
type UndoManager struct {
	history []*Transaction
	open    *Transaction
	depth   int
}

// record adds step to the open transaction. Edits made outside a scope are
// not undoable.
func (u *UndoManager) record(step undoStep) {
	if u.open != nil {
		u.open.steps = append(u.open.steps, step)
	}
}

// retained is the number of references held by the whole history.
func (u *UndoManager) retained() int {
	n := 0
	for _, t := range u.history {
		for _, s := range t.steps {
			n += s.size()
		}
	}
	return n
}

// ScopedUndo opens an undo step for an edit of glyph. Everything changed
// until release is called is reverted together by Undo. release is safe to
// call more than once.
func (f *Font) ScopedUndo(glyph, label string) (release func(), err error) {
	if !f.Has(glyph) {
		return nil, errors.Wrapf(ErrGlyphNotFound, "undo scope for %s", glyph)
	}
	u := f.undo
	if u.open == nil {
		u.open = &Transaction{ID: uuid.New(), Label: label, Glyph: glyph}
	}
	u.depth++

	released := false
	return func() {
		if released {
			return
		}
		released = true
		u.depth--
		if u.depth == 0 {
			u.history = append(u.history, u.open)
			u.open = nil
		}
	}, nil
}

// Undo reverts the most recent committed transaction.
func (f *Font) Undo() (Transaction, error) {
	u := f.undo
	if u.open != nil {
		return Transaction{}, errors.New("undo while a transaction is open")
	}
	if len(u.history) == 0 {
		return Transaction{}, ErrNothingToUndo
	}
	last := u.history[len(u.history)-1]
	u.history = u.history[:len(u.history)-1]
	for i := len(last.steps) - 1; i >= 0; i-- {
		last.steps[i].revert(f)
	}
	f.MarkChanged()
	return Transaction{ID: last.ID, Label: last.Label, Glyph: last.Glyph}, nil
}

// History returns committed transactions, oldest first.
func (f *Font) History() []Transaction {
	out := make([]Transaction, len(f.undo.history))
	for i, t := range f.undo.history {
		out[i] = Transaction{ID: t.ID, Label: t.Label, Glyph: t.Glyph}
	}
	return out
}
