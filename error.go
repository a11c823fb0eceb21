package recordscout

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// The pipeline failure taxonomy maps one code to each failure mode so callers
// can branch on ErrorCode without parsing messages.
const (
	ECONFIG       = "config"       // credentials or model missing
	EPARSE        = "parse"        // model response is not valid JSON
	EINSUFFICIENT = "insufficient" // model found neither artist nor title
	ENETWORK      = "network"      // search, catalog or inference request failed
	ENORESULT     = "no_result"    // no catalog URL in search results
	EEXTRACTION   = "extraction"   // no usable text extracted
	ERESTRICTED   = "restricted"   // page cannot be scripted
	ETRANSPORT    = "transport"    // cross-context communication failed
	EUNKNOWN      = "unknown"      // uncaught fault

	EINVALID    = "invalid"
	ENOTFOUND   = "not_found"
	EINTERNAL   = "internal"
	ENORECEIVER = "no_receiver" // receiving end does not exist
)

// Error represents an application-specific error. Message is safe to show
// to the user; Err holds the underlying cause for diagnostics.
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap returns an Error with a given code and message that records err as its cause.
func Wrap(code string, err error, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
