package xs2a

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ErrorType combines the service and the HTTP status class of a TPP message, e.g. AIS_401.
type ErrorType string

const (
	ErrorTypeAIS400  ErrorType = "AIS_400"
	ErrorTypeAIS401  ErrorType = "AIS_401"
	ErrorTypeAIS403  ErrorType = "AIS_403"
	ErrorTypeAIS404  ErrorType = "AIS_404"
	ErrorTypeAIS500  ErrorType = "AIS_500"
	ErrorTypePIS400  ErrorType = "PIS_400"
	ErrorTypePIS401  ErrorType = "PIS_401"
	ErrorTypePIS403  ErrorType = "PIS_403"
	ErrorTypePIS404  ErrorType = "PIS_404"
	ErrorTypePIS500  ErrorType = "PIS_500"
	ErrorTypePIIS400 ErrorType = "PIIS_400"
	ErrorTypePIIS401 ErrorType = "PIIS_401"
	ErrorTypePIIS403 ErrorType = "PIIS_403"
	ErrorTypePIIS404 ErrorType = "PIIS_404"
	ErrorTypePIIS500 ErrorType = "PIIS_500"
)

// ErrorTypeFor builds the error type for a service and HTTP status code.
func ErrorTypeFor(service ServiceType, httpStatus int) ErrorType {
	return ErrorType(fmt.Sprintf("%s_%d", service, httpStatus))
}

// HTTPStatus returns the HTTP status code encoded in the error type.
func (t ErrorType) HTTPStatus() int {
	i := strings.LastIndex(string(t), "_")
	if i < 0 {
		return http.StatusInternalServerError
	}
	status, err := strconv.Atoi(string(t[i+1:]))
	if err != nil {
		return http.StatusInternalServerError
	}
	return status
}

// MessageErrorCode is the TPP message code of a business rule failure.
type MessageErrorCode string

const (
	CodeFormatError           MessageErrorCode = "FORMAT_ERROR"
	CodeFormatErrorNoPsu      MessageErrorCode = "FORMAT_ERROR_NO_PSU"
	CodePsuCredentialsInvalid MessageErrorCode = "PSU_CREDENTIALS_INVALID"
	CodeScaMethodUnknown      MessageErrorCode = "SCA_METHOD_UNKNOWN"
	CodeScaInvalid            MessageErrorCode = "SCA_INVALID"
	CodeConsentUnknown        MessageErrorCode = "CONSENT_UNKNOWN_400"
	CodeConsentInvalid        MessageErrorCode = "CONSENT_INVALID"
	CodeConsentExpired        MessageErrorCode = "CONSENT_EXPIRED"
	CodeAccessExceeded        MessageErrorCode = "ACCESS_EXCEEDED"
	CodeResourceUnknown       MessageErrorCode = "RESOURCE_UNKNOWN_400"
	CodeStatusInvalid         MessageErrorCode = "STATUS_INVALID"
	CodePaymentFailed         MessageErrorCode = "PAYMENT_FAILED"
	CodeCancellationInvalid   MessageErrorCode = "CANCELLATION_INVALID"
	CodeServiceBlocked        MessageErrorCode = "SERVICE_BLOCKED"
	CodeInternalServerError   MessageErrorCode = "INTERNAL_SERVER_ERROR"
)

// ErrorHolder describes a business rule failure: which TPP message to send and why.
// It is a value carried on a response, not an error.
type ErrorHolder struct {
	Type ErrorType        `json:"type"`
	Code MessageErrorCode `json:"code"`
	Text string           `json:"text,omitempty"`
}

// NewErrorHolder creates an error holder for the service and HTTP status.
func NewErrorHolder(service ServiceType, httpStatus int, code MessageErrorCode, text string) *ErrorHolder {
	return &ErrorHolder{
		Type: ErrorTypeFor(service, httpStatus),
		Code: code,
		Text: text,
	}
}

func (h *ErrorHolder) String() string {
	if h == nil {
		return ""
	}
	if h.Text == "" {
		return fmt.Sprintf("%s %s", h.Type, h.Code)
	}
	return fmt.Sprintf("%s %s: %s", h.Type, h.Code, h.Text)
}
