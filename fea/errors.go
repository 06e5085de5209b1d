package fea

import "fmt"

// SyntaxError points at the token where parsing stopped.
type SyntaxError struct {
	Path string
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}
