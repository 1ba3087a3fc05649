package sca

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of SCA error.
type ErrorCode string

const (
	ErrCodeAuthorisationNotFound ErrorCode = "AUTHORISATION_NOT_FOUND"

	// ErrCodeAuthorisationFinalised is used when an authorisation in a terminal status is advanced
	ErrCodeAuthorisationFinalised ErrorCode = "AUTHORISATION_FINALISED"

	// ErrCodeConfiguration is used when no processor is wired for a business domain and authorisation type,
	// or no stage exists for a non-terminal status. These indicate a wiring defect and are never expected at runtime.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"

	// ErrCodeIllegalTransition is used when a stage produced a status that is not reachable from the current one.
	// Nothing is persisted.
	ErrCodeIllegalTransition ErrorCode = "ILLEGAL_TRANSITION"

	// ErrCodeConcurrentUpdate is used when the authorisation was changed by another request since it was loaded
	ErrCodeConcurrentUpdate ErrorCode = "CONCURRENT_UPDATE"

	ErrCodeValidation ErrorCode = "VALIDATION"
	ErrCodeInternal   ErrorCode = "INTERNAL"
)

// ScaError represents a structured error from the sca package.
type ScaError struct {
	// code is the SCA error code
	code ErrorCode

	// message is a human-readable error message
	message string

	// wrapped is the optional underlying error
	wrapped error
}

func (e *ScaError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *ScaError) Code() ErrorCode { return e.code }
func (e *ScaError) Unwrap() error   { return e.wrapped }

// HasCode reports whether err is a ScaError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var scaErr *ScaError
	return errors.As(err, &scaErr) && scaErr.code == code
}

func NewAuthorisationNotFoundError(authorisationID string) error {
	return &ScaError{code: ErrCodeAuthorisationNotFound, message: fmt.Sprintf("authorisation %s not found", authorisationID)}
}

func NewAuthorisationFinalisedError(msg string) error {
	return &ScaError{code: ErrCodeAuthorisationFinalised, message: msg}
}

// NewConfigurationError creates an error for a wiring defect.
//
// The returned error will have code ErrCodeConfiguration.
func NewConfigurationError(msg string) error {
	return &ScaError{code: ErrCodeConfiguration, message: msg}
}

func NewIllegalTransitionError(msg string) error {
	return &ScaError{code: ErrCodeIllegalTransition, message: msg}
}

func NewConcurrentUpdateError(msg string) error {
	return &ScaError{code: ErrCodeConcurrentUpdate, message: msg}
}

// NewValidationError creates a validation error for invalid input.
func NewValidationError(msg string) error {
	return &ScaError{code: ErrCodeValidation, message: msg}
}

// WrapInternalError wraps an existing error as an internal error.
// Use this for storage and ASPSP transport failures.
//
// The returned error will have code ErrCodeInternal.
func WrapInternalError(err error, msg string) error {
	return &ScaError{code: ErrCodeInternal, message: msg, wrapped: err}
}
