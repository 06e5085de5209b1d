package fea

import (
	"sort"
	"strings"
)

// Serialize writes the document back out, passing every glyph name leaf
// through resolve. Everything else, whitespace and comments included, is
// copied from the source unchanged. A nil resolve reproduces the source.
func (d *Document) Serialize(resolve Resolver) string {
	if resolve == nil {
		resolve = func(name string) string { return name }
	}
	byToken := make(map[int][]GlyphRef)
	for _, g := range d.Glyphs() {
		byToken[g.Token] = append(byToken[g.Token], g)
	}

	var b strings.Builder
	for i, tok := range d.tokens {
		refs := byToken[i]
		if len(refs) == 0 {
			b.WriteString(tok.Text)
			continue
		}
		sort.Slice(refs, func(a, c int) bool { return refs[a].Start < refs[c].Start })
		last := 0
		for _, r := range refs {
			b.WriteString(tok.Text[last:r.Start])
			b.WriteString(resolve(r.Name))
			last = r.End
		}
		b.WriteString(tok.Text[last:])
	}
	return b.String()
}

func (d *Document) String() string {
	return d.Serialize(nil)
}

// MapResolver resolves through m, leaving names it does not contain alone.
func MapResolver(m map[string]string) Resolver {
	return func(name string) string {
		if n, ok := m[name]; ok {
			return n
		}
		return name
	}
}
