package consent

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of consent error.
type ErrorCode string

const (
	// ErrCodeNotFound is used when no consent exists with the requested id
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeIntegrity is used when a sealed consent no longer matches its checksum.
	// This is fatal: the write is rejected and must not be retried.
	ErrCodeIntegrity ErrorCode = "INTEGRITY"

	// ErrCodeFinalised is used when a write targets a consent in a finalised status
	ErrCodeFinalised ErrorCode = "FINALISED"

	// ErrCodeStatusInvalid is used when the consent status does not allow the operation (e.g. reading data from a received consent)
	ErrCodeStatusInvalid ErrorCode = "STATUS_INVALID"

	// ErrCodeExpired is used when the consent validity period has ended
	ErrCodeExpired ErrorCode = "EXPIRED"

	// ErrCodeAccessExceeded is used when the daily access frequency has been used up
	ErrCodeAccessExceeded ErrorCode = "ACCESS_EXCEEDED"

	ErrCodeValidation ErrorCode = "VALIDATION"
	ErrCodeInternal   ErrorCode = "INTERNAL"
)

// ConsentError represents a structured error from the consent package.
type ConsentError struct {
	// code is the consent error code
	code ErrorCode

	// message is a human-readable error message
	message string

	// wrapped is the optional underlying error
	wrapped error
}

func (e *ConsentError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *ConsentError) Code() ErrorCode { return e.code }
func (e *ConsentError) Unwrap() error   { return e.wrapped }

// HasCode reports whether err is a ConsentError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var consentErr *ConsentError
	return errors.As(err, &consentErr) && consentErr.code == code
}

// NewNotFoundError creates an error for an unknown consent id.
func NewNotFoundError(consentID string) error {
	return &ConsentError{code: ErrCodeNotFound, message: fmt.Sprintf("consent %s not found", consentID)}
}

// NewIntegrityError creates an error for a sealed consent whose access grant does not match its checksum.
//
// The returned error will have code ErrCodeIntegrity.
func NewIntegrityError(msg string) error {
	return &ConsentError{code: ErrCodeIntegrity, message: msg}
}

// NewFinalisedError creates an error for a write to a finalised consent.
func NewFinalisedError(msg string) error {
	return &ConsentError{code: ErrCodeFinalised, message: msg}
}

// NewStatusInvalidError creates an error for an operation that is not allowed in the current consent status.
func NewStatusInvalidError(msg string) error {
	return &ConsentError{code: ErrCodeStatusInvalid, message: msg}
}

// NewExpiredError creates an error for a consent whose validity has ended.
func NewExpiredError(msg string) error {
	return &ConsentError{code: ErrCodeExpired, message: msg}
}

// NewAccessExceededError creates an error for a consent whose daily access frequency is used up.
func NewAccessExceededError(msg string) error {
	return &ConsentError{code: ErrCodeAccessExceeded, message: msg}
}

// NewValidationError creates a validation error for invalid input.
// Use this for errors related to missing required fields or values outside their allowed range.
//
// The returned error will have code ErrCodeValidation.
func NewValidationError(msg string) error {
	return &ConsentError{code: ErrCodeValidation, message: msg}
}

// WrapValidationError wraps an existing error as a validation error.
func WrapValidationError(err error, msg string) error {
	return &ConsentError{code: ErrCodeValidation, message: msg, wrapped: err}
}

// NewInternalError creates an internal error for unexpected failures.
func NewInternalError(msg string) error {
	return &ConsentError{code: ErrCodeInternal, message: msg}
}

// WrapInternalError wraps an existing error as an internal error.
// Use this for storage failures or other errors that should not normally occur.
//
// The returned error will have code ErrCodeInternal.
func WrapInternalError(err error, msg string) error {
	return &ConsentError{code: ErrCodeInternal, message: msg, wrapped: err}
}
