package crypto

import (
	"errors"
	"fmt"
)

// Error is implemented by the errors returned from this package.
type Error interface {
	error
	Code() ErrorCode
	Unwrap() error
}

type ErrorCode string

const (
	// ErrCodeValidation: the input cannot be digested or signed (empty payload, value that is not JSON, unusable key)
	ErrCodeValidation ErrorCode = "validation"

	// ErrCodeInvalidChecksum: a consent digest could not be calculated or a stored checksum is malformed
	ErrCodeInvalidChecksum ErrorCode = "invalid_checksum"

	// ErrCodeInvalidSignature: a detached request signature does not match its payload
	ErrCodeInvalidSignature ErrorCode = "invalid_signature"

	ErrCodeInternal ErrorCode = "internal"
)

// CryptoError is returned by the digest, checksum and request signing helpers.
// The consent package turns these into integrity failures; callers outside it only need Code().
type CryptoError struct {
	code    ErrorCode
	message string
	wrapped error
}

func (e *CryptoError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *CryptoError) Code() ErrorCode { return e.code }
func (e *CryptoError) Unwrap() error   { return e.wrapped }

// HasCode reports whether err is a CryptoError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var cryptoErr *CryptoError
	return errors.As(err, &cryptoErr) && cryptoErr.code == code
}

func NewValidationError(msg string) error {
	return &CryptoError{code: ErrCodeValidation, message: msg}
}

func WrapValidationError(err error, msg string) error {
	return &CryptoError{code: ErrCodeValidation, message: msg, wrapped: err}
}

// NewChecksumError is used when a consent checksum cannot be produced or parsed.
func NewChecksumError(msg string) error {
	return &CryptoError{code: ErrCodeInvalidChecksum, message: msg}
}

func WrapChecksumError(err error, msg string) error {
	return &CryptoError{code: ErrCodeInvalidChecksum, message: msg, wrapped: err}
}

// WrapSignatureError is used when a detached JWS fails verification.
func WrapSignatureError(err error, msg string) error {
	return &CryptoError{code: ErrCodeInvalidSignature, message: msg, wrapped: err}
}

func NewInternalError(msg string) error {
	return &CryptoError{code: ErrCodeInternal, message: msg}
}

// WrapInternalError is for canonicalisation and signing failures that indicate a bug rather than bad input.
func WrapInternalError(err error, msg string) error {
	return &CryptoError{code: ErrCodeInternal, message: msg, wrapped: err}
}
