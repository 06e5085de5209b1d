package help

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// NormalizeKey folds oldSuffix, old-suffix and Old Suffix into old_suffix.
func NormalizeKey(s string) string {
	return strcase.ToSnake(strings.TrimSpace(s))
}

func StringOrDefault(s string, d string) string {
	if s != "" {
		return s
	}
	return d
}

// ParseBool accepts the spellings people type into a parameter string.
func ParseBool(s string, d bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return d
	}
}
