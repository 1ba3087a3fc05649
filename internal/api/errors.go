package api

// errors.go defines the errors raised by the HTTP layer itself (malformed requests, unknown paths, limits)

import "fmt"

// ApiError represents a structured error from the api package.
type ApiError struct {
	// code is the api error code
	code ErrorCode

	// message is a human-readable error message
	message string

	// wrapped is the optional underlying error
	wrapped error
}

func (e *ApiError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *ApiError) Code() ErrorCode { return e.code }
func (e *ApiError) Unwrap() error   { return e.wrapped }

// ErrorCode is used in errors raised by the HTTP layer.
type ErrorCode string

const (
	// ErrCodeMalformedRequest is used when the request body or a parameter cannot be parsed
	ErrCodeMalformedRequest ErrorCode = "MALFORMED_REQUEST"

	// ErrCodeNotFound is used when the path names a resource that does not exist under that path
	// (e.g. a payment requested under the wrong payment service)
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeServiceInvalid is used for an unknown payment service in the path
	ErrCodeServiceInvalid ErrorCode = "SERVICE_INVALID"

	// ErrCodeProductUnknown is used for an unsupported payment product in the path
	ErrCodeProductUnknown ErrorCode = "PRODUCT_UNKNOWN"

	// ErrCodeRateLimitExceeded is only used in the middleware
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"

	// ErrCodeRequestTooLarge is only used in the middleware
	ErrCodeRequestTooLarge ErrorCode = "REQUEST_TOO_LARGE"

	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

func NewMalformedRequestError(msg string) error {
	return &ApiError{code: ErrCodeMalformedRequest, message: msg}
}

func WrapMalformedRequestError(err error, msg string) error {
	return &ApiError{code: ErrCodeMalformedRequest, message: msg, wrapped: err}
}

func NewNotFoundError(msg string) error {
	return &ApiError{code: ErrCodeNotFound, message: msg}
}

func NewServiceInvalidError(msg string) error {
	return &ApiError{code: ErrCodeServiceInvalid, message: msg}
}

func NewProductUnknownError(msg string) error {
	return &ApiError{code: ErrCodeProductUnknown, message: msg}
}

// NewRateLimitError creates a rate limit exceeded error.
// Use this when the client has exceeded the rate limit.
func NewRateLimitError(msg string) error {
	return &ApiError{code: ErrCodeRateLimitExceeded, message: msg}
}

// NewRequestTooLargeError creates a request too large error.
// Use this when the request body exceeds the maximum allowed size.
func NewRequestTooLargeError(msg string) error {
	return &ApiError{code: ErrCodeRequestTooLarge, message: msg}
}

func WrapInternalError(err error, msg string) error {
	return &ApiError{code: ErrCodeInternalError, message: msg, wrapped: err}
}
