package rename

import "sort"

type DiagnosticLevel string

const (
	DiagInfo  DiagnosticLevel = "info"
	DiagWarn  DiagnosticLevel = "warn"
	DiagError DiagnosticLevel = "error"
)

type Diagnostic struct {
	Level   DiagnosticLevel
	Message string
	Subject string
}

func hasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Level == DiagError {
			return true
		}
	}
	return false
}

func levelRank(l DiagnosticLevel) int {
	switch l {
	case DiagError:
		return 0
	case DiagWarn:
		return 1
	default:
		return 2
	}
}

// sortDiagnostics puts errors first, keeping the order within a level.
func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		return levelRank(diags[i].Level) < levelRank(diags[j].Level)
	})
}
