package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryInvariant Category = "invariant"
	CategoryDispatch  Category = "dispatch"
	CategoryEngine    Category = "engine"
	CategoryConfig    Category = "config"
	CategoryLoad      Category = "load"
	CategoryScript    Category = "script"
	CategoryCLI       Category = "cli"
)

// MirrorError is a structured error with a code, explanation and suggestion.
type MirrorError struct {
	// Code is a unique error identifier (e.g., "M001").
	Code string

	// Category is the error type (invariant, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *MirrorError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *MirrorError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a MirrorError with the same code.
func (e *MirrorError) Is(target error) bool {
	t, ok := target.(*MirrorError)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *MirrorError) WithSuggestion(s string) *MirrorError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detailed explanation of the error.
func (e *MirrorError) WithDetail(d string) *MirrorError {
	e.Detail = d
	return e
}

// WithDetailf replaces the detailed explanation with a formatted string.
func (e *MirrorError) WithDetailf(format string, args ...any) *MirrorError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *MirrorError) Wrap(err error) *MirrorError {
	e.Wrapped = err
	return e
}

// New creates a MirrorError from a registered error code.
func New(code string) *MirrorError {
	template, ok := registry[code]
	if !ok {
		return &MirrorError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &MirrorError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new MirrorError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *MirrorError {
	return &MirrorError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a MirrorError.
func FromError(err error, code string) *MirrorError {
	if err == nil {
		return nil
	}
	if me, ok := err.(*MirrorError); ok {
		return me
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err is, or wraps, a MirrorError with the given code.
func HasCode(err error, code string) bool {
	for err != nil {
		if me, ok := err.(*MirrorError); ok && me.Code == code {
			return true
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				if HasCode(inner, code) {
					return true
				}
			}
			return false
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		default:
			return false
		}
	}
	return false
}
