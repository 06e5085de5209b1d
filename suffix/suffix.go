package suffix

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Extract returns the part of name after its first dot. Names without a dot,
// or whose only dot is the leading one (".notdef"), have no suffix.
func Extract(name string) (string, bool) {
	i := strings.Index(name, ".")
	if i <= 0 {
		return "", false
	}
	return name[i+1:], true
}

// Base returns name without its suffix.
func Base(name string) string {
	i := strings.Index(name, ".")
	if i <= 0 {
		return name
	}
	return name[:i]
}

// Normalize drops a single leading dot so ".sc" and "sc" mean the same thing.
func Normalize(s string) string {
	return strings.TrimPrefix(s, ".")
}

// Existing lists the distinct suffixes used by names, sorted.
func Existing(names []string) []string {
	found := lo.FilterMap(names, func(n string, _ int) (string, bool) {
		return Extract(n)
	})
	out := lo.Uniq(found)
	sort.Strings(out)
	return out
}

// Current returns the suffix of the first name that has one.
func Current(names []string) (string, bool) {
	for _, n := range names {
		if s, ok := Extract(n); ok {
			return s, true
		}
	}
	return "", false
}
