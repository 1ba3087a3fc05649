package payment

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeFinalised     ErrorCode = "FINALISED"
	ErrCodeStatusChanged ErrorCode = "STATUS_CHANGED"
	ErrCodeValidation    ErrorCode = "VALIDATION"
	ErrCodeInternal      ErrorCode = "INTERNAL"
)

// PaymentError represents a structured error from the payment package.
type PaymentError struct {
	code    ErrorCode
	message string
	wrapped error
}

func (e *PaymentError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *PaymentError) Code() ErrorCode { return e.code }
func (e *PaymentError) Unwrap() error   { return e.wrapped }

// HasCode reports whether err is a PaymentError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var paymentErr *PaymentError
	return errors.As(err, &paymentErr) && paymentErr.code == code
}

func NewNotFoundError(paymentID string) error {
	return &PaymentError{code: ErrCodeNotFound, message: fmt.Sprintf("payment %s not found", paymentID)}
}

// NewFinalisedError is used when the payment status no longer allows the change.
func NewFinalisedError(msg string) error {
	return &PaymentError{code: ErrCodeFinalised, message: msg}
}

// NewStatusChangedError is used when the payment no longer has the status a transition expected.
func NewStatusChangedError(msg string) error {
	return &PaymentError{code: ErrCodeStatusChanged, message: msg}
}

func NewValidationError(msg string) error {
	return &PaymentError{code: ErrCodeValidation, message: msg}
}

func WrapValidationError(err error, msg string) error {
	return &PaymentError{code: ErrCodeValidation, message: msg, wrapped: err}
}

func WrapInternalError(err error, msg string) error {
	return &PaymentError{code: ErrCodeInternal, message: msg, wrapped: err}
}
