package suffix

import (
	"fmt"

	"github.com/go-faster/errors"
)

type ErrorCode string

const (
	// CodeNoOpReplace: replace mode with identical old and new suffix.
	CodeNoOpReplace ErrorCode = "no-op-replace"
	// CodeEmptyAppend: append mode without a suffix to append.
	CodeEmptyAppend ErrorCode = "empty-append"
	// CodeEmptyReplace: replace mode without the suffix to look for.
	CodeEmptyReplace ErrorCode = "empty-replace"
	CodeUnknownMode  ErrorCode = "unknown-mode"
)

// ValidationError is a rejected request. It is reported to the user as is and
// nothing has been changed when it is returned.
type ValidationError struct {
	Code    ErrorCode
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsValidation reports whether err is a ValidationError with one of codes
// (any code when none are given).
func IsValidation(err error, codes ...ErrorCode) bool {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	if len(codes) == 0 {
		return true
	}
	for _, c := range codes {
		if ve.Code == c {
			return true
		}
	}
	return false
}
