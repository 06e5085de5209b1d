package suffix

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Pair is a single planned rename.
type Pair struct {
	Old string
	New string
}

func (p Pair) String() string {
	return fmt.Sprintf("%s -> %s", p.Old, p.New)
}

// Mapping is an ordered old name -> new name table. Each old name appears once.
// It is computed against the font as it was before any rename and is not
// modified while being applied.
type Mapping struct {
	pairs []Pair
	index map[string]int
}

func NewMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// Add appends old -> new. It reports false and keeps the first entry when old
// is already mapped.
func (m *Mapping) Add(old, new string) bool {
	if _, ok := m.index[old]; ok {
		return false
	}
	m.index[old] = len(m.pairs)
	m.pairs = append(m.pairs, Pair{Old: old, New: new})
	return true
}

func (m *Mapping) Get(old string) (string, bool) {
	if m == nil {
		return "", false
	}
	i, ok := m.index[old]
	if !ok {
		return "", false
	}
	return m.pairs[i].New, true
}

// Resolve maps name through the table, returning it unchanged when absent.
func (m *Mapping) Resolve(name string) string {
	if n, ok := m.Get(name); ok {
		return n
	}
	return name
}

func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Pairs returns a copy of the entries in insertion order.
func (m *Mapping) Pairs() []Pair {
	if m == nil {
		return nil
	}
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out
}

func (m *Mapping) OldNames() []string {
	return lo.Map(m.Pairs(), func(p Pair, _ int) string { return p.Old })
}

func (m *Mapping) NewNames() []string {
	return lo.Map(m.Pairs(), func(p Pair, _ int) string { return p.New })
}

// Map returns the table as a plain map.
func (m *Mapping) Map() map[string]string {
	return lo.SliceToMap(m.Pairs(), func(p Pair) (string, string) { return p.Old, p.New })
}

func (m *Mapping) String() string {
	return strings.Join(lo.Map(m.Pairs(), func(p Pair, _ int) string { return p.String() }), ", ")
}
