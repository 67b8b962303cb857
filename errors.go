package canvasdex

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID     = "invalid"     // caller supplied bad input
	ENOTFOUND    = "not_found"   // entity does not exist
	EUNAVAILABLE = "unavailable" // remote endpoint restricted or unreachable
	EINTERNAL    = "internal"    // unexpected internal error
)

// Error represents an application error with a machine-readable code.
type Error struct {
	// Code is one of the constants above.
	Code string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("canvasdex error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps err and returns its code, if it is an application error.
// Non-application errors report EINTERNAL; nil reports an empty code.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps err and returns its message, if it is an application
// error. Non-application errors report a generic message; nil reports "".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf constructs an application error with a formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
