package presets

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"github.com/samber/lo"

	"github.com/yaroher/glyph-suffixer/suffix"
)

// Defaults are the suffixes offered before the user has entered any.
var Defaults = []string{
	"case", "dnom", "fina", "hist", "init", "isol", "locl", "lnum", "medi", "numr", "onum", "ordn", "tnum",
	"pcap", "salt", "sinf", "smcp", "ss01", "ss02", "ss03", "ss04", "ss05", "ss06", "ss07", "ss08",
	"ss09", "ss10", "ss11", "ss12", "ss13", "ss14", "ss15", "ss16", "ss17", "ss18", "ss19", "ss20",
	"subs", "sups", "swsh", "titl", "zero",
}

// Parse reads the whitespace separated preset list.
func Parse(s string) []string {
	return strings.Fields(s)
}

func Format(list []string) string {
	return strings.Join(list, " ")
}

// Load reads the presets at path, falling back to Defaults when the file
// does not exist yet.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return append([]string(nil), Defaults...), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read presets")
	}
	return Parse(string(data)), nil
}

func Save(path string, list []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create presets dir")
	}
	if err := os.WriteFile(path, []byte(Format(list)+"\n"), 0644); err != nil {
		return errors.Wrap(err, "write presets")
	}
	return nil
}

// Merge adds entered to list, keeping it sorted. It reports whether the list
// changed; empty and already known suffixes leave it alone.
func Merge(list []string, entered string) ([]string, bool) {
	entered = suffix.Normalize(strings.TrimSpace(entered))
	if entered == "" || lo.Contains(list, entered) {
		return list, false
	}
	out := append(append([]string(nil), list...), entered)
	sort.Strings(out)
	return out, true
}
