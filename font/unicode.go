package font

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/runenames"

	"github.com/yaroher/glyph-suffixer/logger"
)

// glyphList is the part of the Adobe Glyph List used for names that are not
// a single ASCII letter or a uniXXXX/uXXXXX name.
var glyphList = map[string]rune{
	"space": 0x20, "exclam": 0x21, "quotedbl": 0x22, "numbersign": 0x23,
	"dollar": 0x24, "percent": 0x25, "ampersand": 0x26, "quotesingle": 0x27,
	"parenleft": 0x28, "parenright": 0x29, "asterisk": 0x2A, "plus": 0x2B,
	"comma": 0x2C, "hyphen": 0x2D, "period": 0x2E, "slash": 0x2F,
	"zero": 0x30, "one": 0x31, "two": 0x32, "three": 0x33, "four": 0x34,
	"five": 0x35, "six": 0x36, "seven": 0x37, "eight": 0x38, "nine": 0x39,
	"colon": 0x3A, "semicolon": 0x3B, "less": 0x3C, "equal": 0x3D,
	"greater": 0x3E, "question": 0x3F, "at": 0x40,
	"bracketleft": 0x5B, "backslash": 0x5C, "bracketright": 0x5D,
	"asciicircum": 0x5E, "underscore": 0x5F, "grave": 0x60,
	"braceleft": 0x7B, "bar": 0x7C, "braceright": 0x7D, "asciitilde": 0x7E,
	"exclamdown": 0xA1, "cent": 0xA2, "sterling": 0xA3, "yen": 0xA5,
	"section": 0xA7, "dieresis": 0xA8, "copyright": 0xA9, "ordfeminine": 0xAA,
	"guillemotleft": 0xAB, "registered": 0xAE, "degree": 0xB0, "acute": 0xB4,
	"paragraph": 0xB6, "periodcentered": 0xB7, "cedilla": 0xB8,
	"ordmasculine": 0xBA, "guillemotright": 0xBB, "questiondown": 0xBF,
	"Agrave": 0xC0, "Aacute": 0xC1, "Acircumflex": 0xC2, "Atilde": 0xC3,
	"Adieresis": 0xC4, "Aring": 0xC5, "AE": 0xC6, "Ccedilla": 0xC7,
	"Egrave": 0xC8, "Eacute": 0xC9, "Ecircumflex": 0xCA, "Edieresis": 0xCB,
	"Ntilde": 0xD1, "Oacute": 0xD3, "Odieresis": 0xD6, "Oslash": 0xD8,
	"Uacute": 0xDA, "Udieresis": 0xDC, "germandbls": 0xDF,
	"agrave": 0xE0, "aacute": 0xE1, "acircumflex": 0xE2, "atilde": 0xE3,
	"adieresis": 0xE4, "aring": 0xE5, "ae": 0xE6, "ccedilla": 0xE7,
	"egrave": 0xE8, "eacute": 0xE9, "ecircumflex": 0xEA, "edieresis": 0xEB,
	"ntilde": 0xF1, "oacute": 0xF3, "odieresis": 0xF6, "oslash": 0xF8,
	"uacute": 0xFA, "udieresis": 0xFC,
	"dotlessi": 0x131, "OE": 0x152, "oe": 0x153, "florin": 0x192,
	"circumflex": 0x2C6, "caron": 0x2C7, "tilde": 0x2DC,
	"endash": 0x2013, "emdash": 0x2014, "quoteleft": 0x2018, "quoteright": 0x2019,
	"quotesinglbase": 0x201A, "quotedblleft": 0x201C, "quotedblright": 0x201D,
	"quotedblbase": 0x201E, "dagger": 0x2020, "daggerdbl": 0x2021,
	"bullet": 0x2022, "ellipsis": 0x2026, "perthousand": 0x2030,
	"guilsinglleft": 0x2039, "guilsinglright": 0x203A, "Euro": 0x20AC,
	"trademark": 0x2122, "fi": 0xFB01, "fl": 0xFB02,
}

// UnicodesForName derives the codepoints a glyph name stands for. Names with
// a suffix ("a.sc") or ligature names ("f_i") get none.
func UnicodesForName(name string) []rune {
	if len(name) == 1 && ((name[0] >= 'a' && name[0] <= 'z') || (name[0] >= 'A' && name[0] <= 'Z')) {
		return []rune{rune(name[0])}
	}
	if r, ok := glyphList[name]; ok {
		return []rune{r}
	}
	if strings.HasPrefix(name, "uni") && len(name) == 7 {
		if r, ok := parseCodepoint(name[3:]); ok {
			return []rune{r}
		}
	}
	if strings.HasPrefix(name, "u") && len(name) >= 5 && len(name) <= 7 {
		if r, ok := parseCodepoint(name[1:]); ok {
			return []rune{r}
		}
	}
	return nil
}

func parseCodepoint(hex string) (rune, bool) {
	if strings.ToUpper(hex) != hex {
		return 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || v > 0x10FFFF || (v >= 0xD800 && v <= 0xDFFF) {
		return 0, false
	}
	return rune(v), true
}

// SetUnicodes replaces the codepoints of a glyph. nil clears them.
func (f *Font) SetUnicodes(name string, unicodes []rune) error {
	i, ok := f.index[name]
	if !ok {
		return errors.Wrapf(ErrGlyphNotFound, "set unicodes of %s", name)
	}
	f.undo.record(&unicodesStep{glyph: name, prev: f.glyphs[i].Unicodes})
	f.glyphs[i].Unicodes = append([]rune(nil), unicodes...)
	return nil
}

// AutoUnicodes assigns the codepoints derived from the glyph's name and
// returns them.
func (f *Font) AutoUnicodes(name string) ([]rune, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, errors.Wrapf(ErrGlyphNotFound, "auto unicodes of %s", name)
	}
	f.undo.record(&unicodesStep{glyph: name, prev: f.glyphs[i].Unicodes})
	f.glyphs[i].Unicodes = UnicodesForName(name)
	for _, r := range f.glyphs[i].Unicodes {
		logger.Debug("unicode assigned", zap.String("glyph", name), zap.String("codepoint", CodepointLabel(r)))
	}
	return append([]rune(nil), f.glyphs[i].Unicodes...), nil
}

// CodepointLabel formats r as "U+00E1 LATIN SMALL LETTER A WITH ACUTE".
func CodepointLabel(r rune) string {
	label := fmt.Sprintf("U+%04X", r)
	if name := runenames.Name(r); name != "" {
		label += " " + name
	}
	return label
}
