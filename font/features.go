package font

import (
	"path/filepath"

	"github.com/yaroher/glyph-suffixer/fea"
)

const featuresFile = "features.fea"

// HasSource reports whether the font carries feature code.
func (f *Font) HasSource() bool {
	return f.Features != ""
}

// Parse parses the feature code against the current glyph order.
func (f *Font) Parse() (*fea.Document, error) {
	path := featuresFile
	if f.Path != "" {
		path = filepath.Join(filepath.Dir(f.Path), featuresFile)
	}
	return fea.Parse(f.Features, fea.WithPath(path), fea.WithGlyphNames(f.Names()))
}

func (f *Font) SetSourceText(text string) {
	f.Features = text
}
