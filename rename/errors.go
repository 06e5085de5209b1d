package rename

import (
	"fmt"

	"github.com/yaroher/glyph-suffixer/suffix"
)

// DocumentParseError means the feature code could not be parsed. No glyph has
// been renamed when it is returned.
type DocumentParseError struct {
	Err error
}

func (e *DocumentParseError) Error() string {
	return fmt.Sprintf("parse feature code: %v", e.Err)
}

func (e *DocumentParseError) Unwrap() error {
	return e.Err
}

// CollisionResolutionError means every "<name>.copy_<n>" up to Limit is taken.
type CollisionResolutionError struct {
	Name  string
	Limit int
}

func (e *CollisionResolutionError) Error() string {
	return fmt.Sprintf("no free name for the glyph occupying %s: %s.copy_1 to %s.copy_%d are all taken", e.Name, e.Name, e.Name, e.Limit)
}

// EntryError is the failure of a single mapping entry. Other entries are
// still applied.
type EntryError struct {
	Pair suffix.Pair
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("rename %s: %v", e.Pair, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}
