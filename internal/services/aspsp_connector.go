// To add support for a new ASPSP:
//  1. Create a new type that implements the AspspConnector interface
//  2. Add a case for it in NewAspspConnector() based on the connector name

package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/config"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/crypto"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/payment"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// ResultStatus is the outcome of an ASPSP authentication step.
type ResultStatus string

const (
	ResultSuccess ResultStatus = "SUCCESS"

	// ResultFailure means the step failed and the authorisation cannot continue
	ResultFailure ResultStatus = "FAILURE"

	// ResultAttemptFailure means the step failed but the PSU may try again
	ResultAttemptFailure ResultStatus = "ATTEMPT_FAILURE"
)

// ScaRequest identifies the authorisation being processed and carries the PSU evidence for the step.
type ScaRequest struct {
	Service               xs2a.ServiceType `json:"service"`
	ParentID              string           `json:"parentId"`
	AuthorisationID       string           `json:"authorisationId"`
	Cancellation          bool             `json:"cancellation,omitempty"`
	Psu                   xs2a.PsuIdData   `json:"psu"`
	Password              string           `json:"password,omitempty"`
	AuthenticationMethod  string           `json:"authenticationMethodId,omitempty"`
	ScaAuthenticationData string           `json:"scaAuthenticationData,omitempty"`
	ConfirmationCode      string           `json:"confirmationCode,omitempty"`
}

// AuthorisePsuResult is the result of checking the PSU credentials.
type AuthorisePsuResult struct {
	Status ResultStatus `json:"status"`

	// ScaExempted is set when the ASPSP applies an SCA exemption
	ScaExempted bool `json:"scaExempted,omitempty"`
}

// ChallengeResult is the result of sending an authorisation code or starting a decoupled authorisation.
type ChallengeResult struct {
	Status     ResultStatus        `json:"status"`
	Challenge  *xs2a.ChallengeData `json:"challengeData,omitempty"`
	PsuMessage string              `json:"psuMessage,omitempty"`

	// ConfirmationCode is issued by the ASPSP for a decoupled authorisation and shown to the PSU only.
	// The TPP has to send it back once the PSU has confirmed.
	ConfirmationCode string `json:"confirmationCode,omitempty"`
}

// VerifyResult is the result of verifying the SCA data or the final confirmation.
// ConsentStatus is only set for consent authorisations.
type VerifyResult struct {
	Status                ResultStatus       `json:"status"`
	ConsentStatus         xs2a.ConsentStatus `json:"consentStatus,omitempty"`
	MultilevelScaRequired bool               `json:"multilevelScaRequired,omitempty"`
}

// PaymentResult is the result of executing or cancelling a payment.
type PaymentResult struct {
	Status            ResultStatus           `json:"status"`
	TransactionStatus xs2a.TransactionStatus `json:"transactionStatus"`
}

// AspspConnector is the interface to the ASPSP.
//
// Business outcomes (wrong password, wrong TAN) are reported in the result status.
// A returned error means the ASPSP could not be reached or answered with something unexpected.
type AspspConnector interface {
	// AuthorisePsu checks the PSU identification and password
	AuthorisePsu(ctx context.Context, req ScaRequest) (AuthorisePsuResult, error)

	// AvailableScaMethods returns the SCA methods the PSU can use, in the order they are offered
	AvailableScaMethods(ctx context.Context, req ScaRequest) ([]xs2a.AuthenticationObject, error)

	// RequestAuthorisationCode sends an authorisation code (TAN) using an embedded method
	RequestAuthorisationCode(ctx context.Context, req ScaRequest) (ChallengeResult, error)

	// StartDecoupledAuthorisation asks the PSU to authorise out of band
	StartDecoupledAuthorisation(ctx context.Context, req ScaRequest) (ChallengeResult, error)

	// VerifyScaAuthorisation verifies the TAN entered by the PSU
	VerifyScaAuthorisation(ctx context.Context, req ScaRequest) (VerifyResult, error)

	// ConfirmAuthorisation completes an authorisation that waited for a confirmation
	ConfirmAuthorisation(ctx context.Context, req ScaRequest) (VerifyResult, error)

	ExecutePayment(ctx context.Context, p *payment.Payment) (PaymentResult, error)

	CancelPayment(ctx context.Context, p *payment.Payment) (PaymentResult, error)
}

// NewAspspConnector creates an AspspConnector based on the configuration.
func NewAspspConnector(cfg *config.ServerEnvironment) (AspspConnector, error) {
	switch cfg.AspspConnector {
	case "sandbox":
		return NewAspspConnectorSandbox(cfg.SandboxOTP), nil

	case "remote":
		var signer *crypto.RequestSigner
		if cfg.AspspSigningKeyPath != "" {
			var err error
			signer, err = crypto.LoadRequestSigner(cfg.AspspSigningKeyPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load aspsp signing key: %w", err)
			}
		}
		return NewAspspConnectorRemote(cfg.AspspBaseURL, &http.Client{Timeout: cfg.AspspTimeout}, signer), nil

	default:
		return nil, fmt.Errorf("unsupported aspsp connector: %s", cfg.AspspConnector)
	}
}
