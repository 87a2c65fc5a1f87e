// Package errors provides error handling for ome-nbo-formatter.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing messages
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrSourceModel) {
//	    // schema graph missing or untraversable
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Combining errors
var (
	CombineErrors = crdb.CombineErrors
	Join          = crdb.Join
)

// Common sentinel errors for use across the formatter.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrSourceModel indicates the parsed schema graph cannot be
	// traversed at all (nil schema, missing type registry). The
	// conversion core never propagates anything else; recoverable
	// lookup failures are absorbed where they occur.
	ErrSourceModel = New("source model not traversable")

	// ErrProfileInvalid indicates a conversion profile failed validation
	ErrProfileInvalid = New("invalid conversion profile")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")
)

// IsSourceModelError checks if an error is or wraps ErrSourceModel
func IsSourceModelError(err error) bool {
	return err != nil && Is(err, ErrSourceModel)
}

// IsProfileError checks if an error is or wraps ErrProfileInvalid
func IsProfileError(err error) bool {
	return err != nil && Is(err, ErrProfileInvalid)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewSourceModelError creates a source-model error with a formatted message
func NewSourceModelError(format string, args ...interface{}) error {
	return Wrap(ErrSourceModel, Newf(format, args...).Error())
}

// NewProfileError creates a profile-validation error with a formatted message
func NewProfileError(format string, args ...interface{}) error {
	return Wrap(ErrProfileInvalid, Newf(format, args...).Error())
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}
