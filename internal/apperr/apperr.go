// Package apperr provides the typed failures raised by strict-mode coercion
// helpers. Each error carries a Kind (error or warning) and a Name that
// identifies the failure class for diagnostics.
package apperr

import "fmt"

// Kind represents the severity class of an error.
type Kind int

const (
	// KindUnknown is the kind reported for errors that are not *Error.
	KindUnknown Kind = iota
	// KindError is a hard failure.
	KindError
	// KindWarning is a recoverable failure raised only when the caller asked for strictness.
	KindWarning
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Failure class names.
const (
	NameError      = "BaseError"
	NameWarning    = "BaseWarning"
	NameNotAnArray = "NotAnArrayWarning"
)

// Error is a typed failure with an optional underlying cause.
type Error struct {
	Kind    Kind
	Name    string
	Message string
	Err     error // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Name, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a hard error.
func NewError(message string) *Error {
	return &Error{Kind: KindError, Name: NameError, Message: message}
}

// NewWarning creates a warning.
func NewWarning(message string) *Error {
	return &Error{Kind: KindWarning, Name: NameWarning, Message: message}
}

// WrapWarning creates a warning around an underlying error.
func WrapWarning(message string, err error) *Error {
	return &Error{Kind: KindWarning, Name: NameWarning, Message: message, Err: err}
}

// NotAnArray creates the warning raised when a value cannot be read as a list.
// The message carries the audited value.
func NotAnArray(audited string) *Error {
	return &Error{
		Kind:    KindWarning,
		Name:    NameNotAnArray,
		Message: "The given value is not an array:" + audited,
	}
}

// GetKind extracts the error kind from an error.
// Returns KindUnknown if the error is not an *Error.
func GetKind(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUnknown
}

// Is checks if err is an *Error with the given name.
func Is(err error, name string) bool {
	e, ok := err.(*Error)
	return ok && e.Name == name
}
