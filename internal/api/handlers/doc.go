// Package handlers implements the XS2A endpoints: consents, payments, their authorisations
// and the account list read with a valid consent.
//
// Handlers parse and check the request, call the consent, payment or sca services and write the
// response with the helpers in the api package. They hold no state of their own.
package handlers
