package font

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFont(t *testing.T) *Font {
	t.Helper()
	f := New()
	require.NoError(t, f.AddGlyph(Glyph{Name: "a", Unicodes: []rune{'a'}, Width: 500}))
	require.NoError(t, f.AddGlyph(Glyph{Name: "acute", Unicodes: []rune{0xB4}, Width: 300}))
	require.NoError(t, f.AddGlyph(Glyph{Name: "aacute", Unicodes: []rune{0xE1}, Width: 500, Components: []Component{
		{BaseGlyph: "a"},
		{BaseGlyph: "acute", XOffset: 100, YOffset: 20},
	}}))
	require.NoError(t, f.AddGlyph(Glyph{Name: "V", Unicodes: []rune{'V'}, Width: 600}))
	f.SetGroup("public.kern1.a", "a", "aacute")
	f.SetKerning("a", "V", -40)
	f.SetKerning("public.kern1.a", "V", -30)
	f.Features = "feature smcp {\n  sub a by a.sc;\n} smcp;\n"
	return f
}

func TestFont_AddGlyph(t *testing.T) {
	f := testFont(t)
	assert.Equal(t, []string{"a", "acute", "aacute", "V"}, f.Names())
	assert.Equal(t, 4, f.Len())

	err := f.AddGlyph(Glyph{Name: "a"})
	assert.True(t, errors.Is(err, ErrGlyphExists))
	err = f.AddGlyph(Glyph{})
	assert.True(t, errors.Is(err, ErrInvalidName))
}

func TestFont_Rename(t *testing.T) {
	f := testFont(t)
	require.NoError(t, f.Select("a"))

	require.NoError(t, f.Rename("a", "a.sc", RenameAll))

	assert.Equal(t, []string{"a.sc", "acute", "aacute", "V"}, f.Names())
	assert.False(t, f.Has("a"))
	assert.Equal(t, []string{"a.sc"}, f.SelectedNames())

	g, ok := f.Glyph("aacute")
	require.True(t, ok)
	assert.Equal(t, "a.sc", g.Components[0].BaseGlyph)
	assert.Equal(t, "acute", g.Components[1].BaseGlyph)

	assert.Equal(t, []Group{{Name: "public.kern1.a", Glyphs: []string{"a.sc", "aacute"}}}, f.Groups())
	assert.Equal(t, []KerningPair{
		{Left: "a.sc", Right: "V", Value: -40},
		{Left: "public.kern1.a", Right: "V", Value: -30},
	}, f.Kerning())

	renamed, ok := f.Glyph("a.sc")
	require.True(t, ok)
	assert.Equal(t, []rune{'a'}, renamed.Unicodes, "rename alone keeps codepoints")
}

func TestFont_RenameWithoutPropagation(t *testing.T) {
	f := testFont(t)
	require.NoError(t, f.Rename("a", "a.sc", RenameOptions{}))

	g, _ := f.Glyph("aacute")
	assert.Equal(t, "a", g.Components[0].BaseGlyph)
	assert.Equal(t, "a", f.Groups()[0].Glyphs[0])
	assert.Equal(t, "a", f.Kerning()[0].Left)
}

func TestFont_RenameErrors(t *testing.T) {
	f := testFont(t)
	assert.True(t, errors.Is(f.Rename("missing", "x", RenameAll), ErrGlyphNotFound))
	assert.True(t, errors.Is(f.Rename("a", "V", RenameAll), ErrGlyphExists))
	assert.True(t, errors.Is(f.Rename("a", "", RenameAll), ErrInvalidName))
	assert.NoError(t, f.Rename("a", "a", RenameAll))
}

func TestFont_ComponentUsers(t *testing.T) {
	f := testFont(t)
	assert.Equal(t, []string{"aacute"}, f.ComponentUsers("acute"))
	assert.Empty(t, f.ComponentUsers("V"))
}

func TestUnicodesForName(t *testing.T) {
	tests := []struct {
		name     string
		expected []rune
	}{
		{"a", []rune{'a'}},
		{"Z", []rune{'Z'}},
		{"aacute", []rune{0xE1}},
		{"one", []rune{'1'}},
		{"uni0041", []rune{'A'}},
		{"u1F600", []rune{0x1F600}},
		{"uni00e1", nil},
		{"uniD800", nil},
		{"a.sc", nil},
		{"f_i", nil},
		{"uhorn", nil},
		{".notdef", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UnicodesForName(tt.name))
		})
	}
}

func TestFont_Unicodes(t *testing.T) {
	f := testFont(t)
	require.NoError(t, f.SetUnicodes("a", nil))
	g, _ := f.Glyph("a")
	assert.Empty(t, g.Unicodes)

	assigned, err := f.AutoUnicodes("a")
	require.NoError(t, err)
	assert.Equal(t, []rune{'a'}, assigned)
	g, _ = f.Glyph("a")
	assert.Equal(t, []rune{'a'}, g.Unicodes)

	require.NoError(t, f.Rename("a", "a.sc", RenameAll))
	assigned, err = f.AutoUnicodes("a.sc")
	require.NoError(t, err)
	assert.Empty(t, assigned)
	g, _ = f.Glyph("a.sc")
	assert.Empty(t, g.Unicodes)

	_, err = f.AutoUnicodes("nope")
	assert.True(t, errors.Is(err, ErrGlyphNotFound))
	assert.True(t, errors.Is(f.SetUnicodes("nope", nil), ErrGlyphNotFound))
}

func TestFont_Undo(t *testing.T) {
	f := testFont(t)

	release, err := f.ScopedUndo("a", "Change Suffix")
	require.NoError(t, err)
	inner, err := f.ScopedUndo("a", "nested")
	require.NoError(t, err)
	require.NoError(t, f.Rename("a", "a.sc", RenameAll))
	require.NoError(t, f.SetUnicodes("a.sc", nil))
	inner()
	assert.Empty(t, f.History(), "nested scope does not commit")
	release()
	release()

	history := f.History()
	require.Len(t, history, 1)
	assert.Equal(t, "Change Suffix", history[0].Label)
	assert.Equal(t, "a", history[0].Glyph)

	tx, err := f.Undo()
	require.NoError(t, err)
	assert.Equal(t, history[0].ID, tx.ID)
	assert.Equal(t, []string{"a", "acute", "aacute", "V"}, f.Names())
	g, _ := f.Glyph("aacute")
	assert.Equal(t, "a", g.Components[0].BaseGlyph)
	g, _ = f.Glyph("a")
	assert.Equal(t, []rune{'a'}, g.Unicodes)
	assert.True(t, f.Changed())

	_, err = f.Undo()
	assert.True(t, errors.Is(err, ErrNothingToUndo))

	_, err = f.ScopedUndo("missing", "x")
	assert.True(t, errors.Is(err, ErrGlyphNotFound))
}

func TestCodepointLabel(t *testing.T) {
	assert.Equal(t, "U+0078 LATIN SMALL LETTER X", CodepointLabel('x'))
	assert.Equal(t, "U+00E1 LATIN SMALL LETTER A WITH ACUTE", CodepointLabel(0xE1))
	assert.Equal(t, "U+1F600 GRINNING FACE", CodepointLabel(0x1F600))
}

func TestFont_UndoRestoresSelection(t *testing.T) {
	f := testFont(t)
	require.NoError(t, f.Select("a", "V"))

	release, err := f.ScopedUndo("a", "Change Suffix")
	require.NoError(t, err)
	require.NoError(t, f.Rename("a", "a.sc", RenameAll))
	release()
	assert.Equal(t, []string{"a.sc", "V"}, f.SelectedNames())

	_, err = f.Undo()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "V"}, f.SelectedNames())
	assert.Equal(t, []Group{{Name: "public.kern1.a", Glyphs: []string{"a", "aacute"}}}, f.Groups())
	assert.Equal(t, "a", f.Kerning()[0].Left)
}

func TestFont_UndoHistoryGrowsLinearly(t *testing.T) {
	const n = 2000
	f := New()
	for i := 0; i < n; i++ {
		base := fmt.Sprintf("g%d", i)
		require.NoError(t, f.AddGlyph(Glyph{Name: base}))
		require.NoError(t, f.AddGlyph(Glyph{Name: base + ".comp", Components: []Component{{BaseGlyph: base}}}))
		if i%2 == 0 {
			f.SetKerning(base, "g0", -10)
		}
	}

	renamed := 0
	for _, name := range f.Names() {
		release, err := f.ScopedUndo(name, "Change Suffix")
		require.NoError(t, err)
		require.NoError(t, f.Rename(name, name+".ss01", RenameAll))
		_, err = f.AutoUnicodes(name + ".ss01")
		require.NoError(t, err)
		release()
		renamed++
	}

	require.Len(t, f.History(), renamed)
	// Each transaction holds its own references: the rename, one component,
	// at most a kerning side or two and the unicode step. g0 appears as the
	// right side of every kerning pair.
	assert.LessOrEqual(t, f.undo.retained(), 5*renamed+n)

	for i := 0; i < renamed; i++ {
		_, err := f.Undo()
		require.NoError(t, err)
	}
	assert.Equal(t, "g0", f.Names()[0])
	g, _ := f.Glyph("g7.comp")
	assert.Equal(t, "g7", g.Components[0].BaseGlyph)
	for _, k := range f.Kerning() {
		assert.Equal(t, "g0", k.Right)
	}
}

func TestFont_Features(t *testing.T) {
	f := testFont(t)
	assert.True(t, f.HasSource())

	doc, err := f.Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a.sc"}, doc.GlyphNames())

	f.SetSourceText("")
	assert.False(t, f.HasSource())
}

func TestFont_SaveLoad(t *testing.T) {
	f := testFont(t)
	require.NoError(t, f.Select("acute", "V"))
	f.Path = filepath.Join(t.TempDir(), "font.json")
	f.MarkChanged()
	require.NoError(t, f.Save())
	assert.False(t, f.Changed())

	loaded, err := Load(f.Path)
	require.NoError(t, err)
	assert.Equal(t, f.Names(), loaded.Names())
	assert.Equal(t, f.Groups(), loaded.Groups())
	assert.Equal(t, f.Kerning(), loaded.Kerning())
	assert.Equal(t, f.Features, loaded.Features)
	assert.Equal(t, []string{"acute", "V"}, loaded.SelectedNames())

	g, ok := loaded.Glyph("aacute")
	require.True(t, ok)
	assert.Equal(t, []Component{{BaseGlyph: "a"}, {BaseGlyph: "acute", XOffset: 100, YOffset: 20}}, g.Components)
	assert.Equal(t, []rune{0xE1}, g.Unicodes)
	assert.Equal(t, 500, g.Width)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte(`{"glyphs": [{"name": "a"}, {"name": "a"}]}`))
	assert.True(t, errors.Is(err, ErrGlyphExists))

	_, err = Decode([]byte(`{"selection": ["ghost"]}`))
	assert.True(t, errors.Is(err, ErrGlyphNotFound))

	_, err = Decode([]byte(`{"glyphs": [`))
	assert.Error(t, err)

	f, err := Decode([]byte(`{"unknown": {"x": [1, 2]}, "glyphs": [{"name": "a", "extra": true}]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, f.Names())
}

func TestSave_NoPath(t *testing.T) {
	assert.Error(t, New().Save())
}
