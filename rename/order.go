package rename

import "github.com/yaroher/glyph-suffixer/suffix"

// applyOrder keeps mapping order except that an entry whose target is the
// source of a later entry waits until that source has moved, so
// {a: a.ss01, a.ss01: a.ss01.ss01} renames a.ss01 first instead of pushing it
// aside. Entries caught in a cycle are emitted in mapping order; the collision
// step breaks the cycle.
func applyOrder(pairs []suffix.Pair) []suffix.Pair {
	pending := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		pending[p.Old] = struct{}{}
	}

	out := make([]suffix.Pair, 0, len(pairs))
	remaining := pairs
	for len(remaining) > 0 {
		var next []suffix.Pair
		for _, p := range remaining {
			if _, blocked := pending[p.New]; blocked && p.New != p.Old {
				next = append(next, p)
				continue
			}
			out = append(out, p)
			delete(pending, p.Old)
		}
		if len(next) == len(remaining) {
			out = append(out, next[0])
			delete(pending, next[0].Old)
			next = next[1:]
		}
		remaining = next
	}
	return out
}
