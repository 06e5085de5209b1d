package font

import (
	"github.com/go-faster/errors"
)

// RenameOptions selects which references follow a renamed glyph.
type RenameOptions struct {
	Components bool
	Groups     bool
	Kerning    bool
}

// RenameAll follows every kind of reference.
var RenameAll = RenameOptions{Components: true, Groups: true, Kerning: true}

// Rename gives glyph old the name new, keeping its place in the glyph order.
// The target name must be free.
func (f *Font) Rename(old, new string, opts RenameOptions) error {
	i, ok := f.index[old]
	if !ok {
		return errors.Wrapf(ErrGlyphNotFound, "rename %s", old)
	}
	if new == "" {
		return errors.Wrapf(ErrInvalidName, "rename %s to empty name", old)
	}
	if old == new {
		return nil
	}
	if _, ok := f.index[new]; ok {
		return errors.Wrapf(ErrGlyphExists, "rename %s to %s", old, new)
	}

	step := &renameStep{old: old, new: new}
	f.glyphs[i].Name = new
	delete(f.index, old)
	f.index[new] = i

	if _, ok := f.selected[old]; ok {
		step.selected = true
		delete(f.selected, old)
		f.selected[new] = struct{}{}
	}
	if opts.Components {
		for gi, g := range f.glyphs {
			for c := range g.Components {
				if g.Components[c].BaseGlyph == old {
					g.Components[c].BaseGlyph = new
					step.components = append(step.components, slot{owner: gi, index: c})
				}
			}
		}
	}
	if opts.Groups {
		for gi := range f.groups {
			for m, member := range f.groups[gi].Glyphs {
				if member == old {
					f.groups[gi].Glyphs[m] = new
					step.members = append(step.members, slot{owner: gi, index: m})
				}
			}
		}
	}
	if opts.Kerning {
		for k := range f.kerning {
			if f.kerning[k].Left == old {
				f.kerning[k].Left = new
				step.kernLeft = append(step.kernLeft, k)
			}
			if f.kerning[k].Right == old {
				f.kerning[k].Right = new
				step.kernRight = append(step.kernRight, k)
			}
		}
	}
	f.undo.record(step)
	return nil
}

// ComponentUsers lists the glyphs that use name as a component.
func (f *Font) ComponentUsers(name string) []string {
	var out []string
	for _, g := range f.glyphs {
		for _, c := range g.Components {
			if c.BaseGlyph == name {
				out = append(out, g.Name)
				break
			}
		}
	}
	return out
}
