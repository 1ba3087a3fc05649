// Package api defines the JSON surface of the XS2A server: request and response types,
// the error response format and the helpers handlers use to write responses.
//
// Errors from the consent, payment and sca packages are mapped onto one error response
// (see MapErrorToResponse). Business rule failures reported by an authorisation step are
// not errors; they are written with RespondWithErrorHolder.
package api
