package errs

import (
	"errors"
	"fmt"
)

// Application error codes. They are loosely mapped onto HTTP status codes
// by the http package, but carry meaning of their own: services and handlers
// communicate failure kinds through them, never through raw status codes.
const (
	// ECONFLICT is returned when a write collides with existing state,
	// e.g. registering an email address that is already taken.
	ECONFLICT = "conflict"
	// EINTERNAL is returned for unexpected store or system failures.
	// The real cause is logged, the caller only sees a generic message.
	EINTERNAL = "internal"
	// EINVALID is returned for malformed or rejected input: missing fields,
	// a password that is too short, a non-numeric tag filter token, or an
	// attempt to follow oneself.
	EINVALID = "invalid"
	// ENOTFOUND is returned when a requested resource does not exist.
	ENOTFOUND = "not_found"
	// EUNAUTHENTICATED is returned when no valid identity accompanies
	// a request that needs one: a missing, expired or revoked token.
	EUNAUTHENTICATED = "unauthenticated"
	// EUNAUTHORIZED is returned when the requester may not perform the
	// action, e.g. mutating another author's post or writing while
	// unauthenticated.
	EUNAUTHORIZED = "unauthorized"
)

// Error is the application error type. Code is machine-readable,
// Message is human-readable and safe to show to the end user.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("app error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an *Error with the given code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode extracts the code of an error. Non-application errors report
// EINTERNAL, since anything unexpected bubbling up from the store or the
// runtime is by definition internal.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage extracts the user-facing message of an error. Non-application
// errors get a generic message so that internals never leak to the caller.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
