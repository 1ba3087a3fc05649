// Package sca runs the Strong Customer Authentication (SCA) state machine for consents and payments.
//
// An Authorisation records one SCA attempt for a parent consent or payment. Each call to
// AuthorisationService.Advance runs the stage matching the authorisation's current status:
//
//	received -> psuIdentified -> psuAuthenticated -> scaMethodSelected -> started -> finalised
//
// failed and exempted can be reached from every non-terminal status. finalised, failed and
// exempted are terminal; later calls fail with ErrCodeAuthorisationFinalised.
//
// The stage logic is shared by the four business domains (AIS consents, PIS payment creation,
// PIS payment cancellation and PIIS consents). Each domain supplies its own rules for the parent
// object and for the side effect fired when SCA completes (authorise the consent, execute or
// cancel the payment). The Dispatcher selects the domain processor for a
// (business domain, authorisation type) pair.
//
// Every result is checked against the transition table before it is persisted, so a stage can never
// move an authorisation along an illegal edge.
//
// Business rule failures (wrong password, unknown SCA method, wrong TAN) are not errors: they are
// persisted as a status (failed, or unchanged for a retryable attempt) plus an xs2a.ErrorHolder.
// Returned errors are reserved for storage failures, ASPSP transport failures and wiring defects.
package sca
