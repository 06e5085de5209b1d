package font

import (
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Load reads a font project written by Save.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read font")
	}
	f, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	f.Path = path
	return f, nil
}

// Save writes the font to its Path.
func (f *Font) Save() error {
	if f.Path == "" {
		return errors.New("font has no path")
	}
	if err := os.WriteFile(f.Path, f.Encode(), 0644); err != nil {
		return errors.Wrap(err, "write font")
	}
	f.changed = false
	return nil
}

// Encode serializes the font as indented JSON.
func (f *Font) Encode() []byte {
	var e jx.Encoder
	e.SetIdent(2)
	e.ObjStart()

	e.FieldStart("glyphs")
	e.ArrStart()
	for _, g := range f.glyphs {
		encodeGlyph(&e, g)
	}
	e.ArrEnd()

	e.FieldStart("groups")
	e.ArrStart()
	for _, g := range f.groups {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(g.Name)
		e.FieldStart("glyphs")
		encodeStrings(&e, g.Glyphs)
		e.ObjEnd()
	}
	e.ArrEnd()

	e.FieldStart("kerning")
	e.ArrStart()
	for _, k := range f.kerning {
		e.ObjStart()
		e.FieldStart("left")
		e.Str(k.Left)
		e.FieldStart("right")
		e.Str(k.Right)
		e.FieldStart("value")
		e.Int(k.Value)
		e.ObjEnd()
	}
	e.ArrEnd()

	if f.Features != "" {
		e.FieldStart("features")
		e.Str(f.Features)
	}
	if sel := f.SelectedNames(); len(sel) > 0 {
		e.FieldStart("selection")
		encodeStrings(&e, sel)
	}

	e.ObjEnd()
	return e.Bytes()
}

func encodeGlyph(e *jx.Encoder, g *Glyph) {
	e.ObjStart()
	e.FieldStart("name")
	e.Str(g.Name)
	if len(g.Unicodes) > 0 {
		e.FieldStart("unicodes")
		e.ArrStart()
		for _, r := range g.Unicodes {
			e.Int(int(r))
		}
		e.ArrEnd()
	}
	if g.Width != 0 {
		e.FieldStart("width")
		e.Int(g.Width)
	}
	if len(g.Components) > 0 {
		e.FieldStart("components")
		e.ArrStart()
		for _, c := range g.Components {
			e.ObjStart()
			e.FieldStart("base")
			e.Str(c.BaseGlyph)
			if c.XOffset != 0 {
				e.FieldStart("x")
				e.Int(c.XOffset)
			}
			if c.YOffset != 0 {
				e.FieldStart("y")
				e.Int(c.YOffset)
			}
			e.ObjEnd()
		}
		e.ArrEnd()
	}
	e.ObjEnd()
}

func encodeStrings(e *jx.Encoder, ss []string) {
	e.ArrStart()
	for _, s := range ss {
		e.Str(s)
	}
	e.ArrEnd()
}

// Decode parses JSON produced by Encode. Unknown keys are skipped.
func Decode(data []byte) (*Font, error) {
	f := New()
	var selection []string
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "glyphs":
			return d.Arr(func(d *jx.Decoder) error {
				g, err := decodeGlyph(d)
				if err != nil {
					return err
				}
				return f.AddGlyph(g)
			})
		case "groups":
			return d.Arr(func(d *jx.Decoder) error {
				var g Group
				if err := d.Obj(func(d *jx.Decoder, key string) error {
					switch key {
					case "name":
						v, err := d.Str()
						g.Name = v
						return err
					case "glyphs":
						v, err := decodeStrings(d)
						g.Glyphs = v
						return err
					default:
						return d.Skip()
					}
				}); err != nil {
					return err
				}
				f.SetGroup(g.Name, g.Glyphs...)
				return nil
			})
		case "kerning":
			return d.Arr(func(d *jx.Decoder) error {
				var k KerningPair
				if err := d.Obj(func(d *jx.Decoder, key string) error {
					var err error
					switch key {
					case "left":
						k.Left, err = d.Str()
					case "right":
						k.Right, err = d.Str()
					case "value":
						k.Value, err = d.Int()
					default:
						err = d.Skip()
					}
					return err
				}); err != nil {
					return err
				}
				f.SetKerning(k.Left, k.Right, k.Value)
				return nil
			})
		case "features":
			v, err := d.Str()
			f.Features = v
			return err
		case "selection":
			v, err := decodeStrings(d)
			selection = v
			return err
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return nil, err
	}
	if err := f.Select(selection...); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeGlyph(d *jx.Decoder) (Glyph, error) {
	var g Glyph
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			g.Name, err = d.Str()
		case "unicodes":
			err = d.Arr(func(d *jx.Decoder) error {
				v, err := d.Int()
				g.Unicodes = append(g.Unicodes, rune(v))
				return err
			})
		case "width":
			g.Width, err = d.Int()
		case "components":
			err = d.Arr(func(d *jx.Decoder) error {
				var c Component
				if err := d.Obj(func(d *jx.Decoder, key string) error {
					var err error
					switch key {
					case "base":
						c.BaseGlyph, err = d.Str()
					case "x":
						c.XOffset, err = d.Int()
					case "y":
						c.YOffset, err = d.Int()
					default:
						err = d.Skip()
					}
					return err
				}); err != nil {
					return err
				}
				g.Components = append(g.Components, c)
				return nil
			})
		default:
			err = d.Skip()
		}
		return err
	})
	return g, err
}

func decodeStrings(d *jx.Decoder) ([]string, error) {
	var out []string
	err := d.Arr(func(d *jx.Decoder) error {
		s, err := d.Str()
		out = append(out, s)
		return err
	})
	return out, err
}
