package suffix

import (
	"strings"

	"github.com/samber/lo"

	"github.com/yaroher/glyph-suffixer/logger"
	"go.uber.org/zap"
)

type Mode string

const (
	ModeAppend  Mode = "append"
	ModeReplace Mode = "replace"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAppend:
		return ModeAppend, nil
	case ModeReplace:
		return ModeReplace, nil
	default:
		return "", &ValidationError{Code: CodeUnknownMode, Message: "unknown suffix mode " + s}
	}
}

// Request describes one suffix operation. OldSuffix is only read in replace
// mode. An empty NewSuffix in replace mode strips OldSuffix together with the
// dot in front of it.
type Request struct {
	Mode      Mode
	OldSuffix string
	NewSuffix string
}

// Normalized returns the request with leading dots removed from both suffixes.
func (r Request) Normalized() Request {
	r.OldSuffix = Normalize(r.OldSuffix)
	r.NewSuffix = Normalize(r.NewSuffix)
	return r
}

// Validate rejects requests that would do nothing useful.
func (r Request) Validate() error {
	r = r.Normalized()
	switch r.Mode {
	case ModeReplace:
		if r.OldSuffix == r.NewSuffix {
			return &ValidationError{Code: CodeNoOpReplace, Message: "cannot replace a suffix with itself"}
		}
		if r.OldSuffix == "" {
			return &ValidationError{Code: CodeEmptyReplace, Message: "cannot replace an empty suffix"}
		}
	case ModeAppend:
		if r.NewSuffix == "" {
			return &ValidationError{Code: CodeEmptyAppend, Message: "cannot append empty suffix"}
		}
	default:
		return &ValidationError{Code: CodeUnknownMode, Message: "unknown suffix mode " + string(r.Mode)}
	}
	return nil
}

// BuildMapping computes the renames for scope. Nothing is built when the
// request does not validate. Duplicate names in scope are collapsed.
func BuildMapping(scope []string, req Request) (*Mapping, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.Normalized()
	l := logger.Logger.Named("BuildMapping")

	m := NewMapping()
	for _, name := range lo.Uniq(scope) {
		newName, ok := rename(name, req)
		if !ok {
			continue
		}
		m.Add(name, newName)
		l.Debug("planned", zap.String("old", name), zap.String("new", newName))
	}
	return m, nil
}

func rename(name string, req Request) (string, bool) {
	switch req.Mode {
	case ModeAppend:
		return name + "." + req.NewSuffix, true
	case ModeReplace:
		// Plain string match: "disc" ends with "sc" too.
		if !strings.HasSuffix(name, req.OldSuffix) {
			return "", false
		}
		if req.NewSuffix != "" {
			return name[:len(name)-len(req.OldSuffix)] + req.NewSuffix, true
		}
		cut := len(req.OldSuffix) + 1
		if len(name) <= cut {
			return "", false
		}
		return name[:len(name)-cut], true
	}
	return "", false
}
