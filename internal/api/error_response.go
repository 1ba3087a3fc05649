package api

// error_response.go maps errors from the lower level packages to the error response returned to the TPP.

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/consent"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/crypto"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/logger"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/payment"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/sca"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// TPP message codes that have no counterpart in xs2a.MessageErrorCode
const (
	codeConsentUnknown403  xs2a.MessageErrorCode = "CONSENT_UNKNOWN_403"
	codeResourceUnknown404 xs2a.MessageErrorCode = "RESOURCE_UNKNOWN_404"
	codeServiceInvalid     xs2a.MessageErrorCode = "SERVICE_INVALID"
	codeProductUnknown     xs2a.MessageErrorCode = "PRODUCT_UNKNOWN"
	codeRateLimitExceeded  xs2a.MessageErrorCode = "RATE_LIMIT_EXCEEDED"
	codeRequestTooLarge    xs2a.MessageErrorCode = "REQUEST_TOO_LARGE"
)

// ErrorResponse is the error body returned to the TPP
type ErrorResponse struct {

	// The HTTP method used to make the request e.g. GET, POST, etc
	HTTPMethod string `json:"httpMethod"`

	// The URI that was requested
	RequestURI string `json:"requestUri"`

	// The HTTP status code returned
	StatusCode int `json:"statusCode"`

	// A standard short description corresponding to the HTTP status code
	StatusCodeText string `json:"statusCodeText"`

	// A unique identifier to the HTTP request within the scope of the API provider
	ProviderCorrelationReference string `json:"providerCorrelationReference,omitempty"`

	// The DateTime corresponding to the error occurring
	ErrorDateTime string `json:"errorDateTime"`

	TppMessages []TppMessage `json:"tppMessages"`
}

// TppMessage carries one message code for the TPP
type TppMessage struct {
	Category string                `json:"category" example:"ERROR"`
	Code     xs2a.MessageErrorCode `json:"code" example:"FORMAT_ERROR"`
	Text     string                `json:"text,omitempty"`
}

// mappedError is the outcome of mapping a package error
type mappedError struct {
	status int
	code   xs2a.MessageErrorCode
	text   string
}

// MapErrorToResponse maps api, consent, payment, sca and crypto errors to an error response.
//
// Server side faults get a generic text; the full error is logged by RespondWithErrorResponse.
func MapErrorToResponse(err error, r *http.Request) *ErrorResponse {
	requestID := middleware.GetReqID(r.Context())

	m, ok := mapError(err)
	if !ok {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Error("BUG: Unmapped error type in MapErrorToResponse",
			slog.String("error_type", fmt.Sprintf("%T", err)),
			slog.String("error", err.Error()),
			slog.String("request_id", requestID),
		)
		m = internalError()
	}

	return newErrorResponse(r, requestID, m)
}

func newErrorResponse(r *http.Request, requestID string, m mappedError) *ErrorResponse {
	return &ErrorResponse{
		HTTPMethod:                   r.Method,
		RequestURI:                   r.RequestURI,
		StatusCode:                   m.status,
		StatusCodeText:               http.StatusText(m.status),
		ProviderCorrelationReference: requestID,
		ErrorDateTime:                time.Now().UTC().Format(time.RFC3339),
		TppMessages: []TppMessage{
			{
				Category: "ERROR",
				Code:     m.code,
				Text:     m.text,
			},
		},
	}
}

func internalError() mappedError {
	return mappedError{http.StatusInternalServerError, xs2a.CodeInternalServerError, "an internal error occurred"}
}

func mapError(err error) (mappedError, bool) {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return mapApiError(apiErr), true
	}

	var scaErr *sca.ScaError
	if errors.As(err, &scaErr) {
		return mapScaError(scaErr), true
	}

	var consentErr *consent.ConsentError
	if errors.As(err, &consentErr) {
		return mapConsentError(consentErr), true
	}

	var paymentErr *payment.PaymentError
	if errors.As(err, &paymentErr) {
		return mapPaymentError(paymentErr), true
	}

	// checksum failures are server side faults, never the TPP's
	var cryptoErr *crypto.CryptoError
	if errors.As(err, &cryptoErr) {
		return internalError(), true
	}

	return mappedError{}, false
}

func mapApiError(err *ApiError) mappedError {
	switch err.Code() {
	case ErrCodeMalformedRequest:
		return mappedError{http.StatusBadRequest, xs2a.CodeFormatError, err.Error()}
	case ErrCodeNotFound:
		return mappedError{http.StatusNotFound, codeResourceUnknown404, err.Error()}
	case ErrCodeServiceInvalid:
		return mappedError{http.StatusMethodNotAllowed, codeServiceInvalid, err.Error()}
	case ErrCodeProductUnknown:
		return mappedError{http.StatusNotFound, codeProductUnknown, err.Error()}
	case ErrCodeRateLimitExceeded:
		return mappedError{http.StatusTooManyRequests, codeRateLimitExceeded, err.Error()}
	case ErrCodeRequestTooLarge:
		return mappedError{http.StatusRequestEntityTooLarge, codeRequestTooLarge, err.Error()}
	}
	return internalError()
}

func mapScaError(err *sca.ScaError) mappedError {
	switch err.Code() {
	case sca.ErrCodeAuthorisationNotFound:
		return mappedError{http.StatusNotFound, codeResourceUnknown404, err.Error()}
	case sca.ErrCodeAuthorisationFinalised:
		return mappedError{http.StatusConflict, xs2a.CodeStatusInvalid, err.Error()}
	case sca.ErrCodeConcurrentUpdate:
		return mappedError{http.StatusConflict, xs2a.CodeStatusInvalid, "the authorisation was updated concurrently, retry the request"}
	case sca.ErrCodeValidation:
		return mappedError{http.StatusBadRequest, xs2a.CodeFormatError, err.Error()}
	}
	return internalError()
}

func mapConsentError(err *consent.ConsentError) mappedError {
	switch err.Code() {
	case consent.ErrCodeNotFound:
		return mappedError{http.StatusForbidden, codeConsentUnknown403, err.Error()}
	case consent.ErrCodeFinalised:
		return mappedError{http.StatusConflict, xs2a.CodeStatusInvalid, err.Error()}
	case consent.ErrCodeStatusInvalid:
		return mappedError{http.StatusUnauthorized, xs2a.CodeConsentInvalid, err.Error()}
	case consent.ErrCodeExpired:
		return mappedError{http.StatusUnauthorized, xs2a.CodeConsentExpired, err.Error()}
	case consent.ErrCodeAccessExceeded:
		return mappedError{http.StatusTooManyRequests, xs2a.CodeAccessExceeded, err.Error()}
	case consent.ErrCodeValidation:
		return mappedError{http.StatusBadRequest, xs2a.CodeFormatError, err.Error()}
	}
	// integrity failures included: the consent was not written
	return internalError()
}

func mapPaymentError(err *payment.PaymentError) mappedError {
	switch err.Code() {
	case payment.ErrCodeNotFound:
		return mappedError{http.StatusNotFound, codeResourceUnknown404, err.Error()}
	case payment.ErrCodeFinalised, payment.ErrCodeStatusChanged:
		return mappedError{http.StatusConflict, xs2a.CodeStatusInvalid, err.Error()}
	case payment.ErrCodeValidation:
		return mappedError{http.StatusBadRequest, xs2a.CodeFormatError, err.Error()}
	}
	return internalError()
}

// ErrorHolderToResponse builds the error response for a business rule failure reported by an authorisation step.
func ErrorHolderToResponse(holder *xs2a.ErrorHolder, r *http.Request) *ErrorResponse {
	return newErrorResponse(r, middleware.GetReqID(r.Context()), mappedError{
		status: holder.Type.HTTPStatus(),
		code:   holder.Code,
		text:   holder.Text,
	})
}
