package api

// types.go defines the request and response bodies of the API.

import (
	"github.com/information-sharing-networks/xs2a-demo/app/internal/payment"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// Links are the hrefs of the resources the TPP can call next
type Links map[string]Href

type Href struct {
	Href string `json:"href"`
}

// ConsentRequest is the body of POST /v1/consents
type ConsentRequest struct {
	Access                   xs2a.AccountAccess `json:"access"`
	RecurringIndicator       bool               `json:"recurringIndicator"`
	ValidUntil               string             `json:"validUntil" example:"2026-12-31"`
	FrequencyPerDay          int                `json:"frequencyPerDay" example:"4"`
	CombinedServiceIndicator bool               `json:"combinedServiceIndicator"`
}

// FundsConfirmationConsentRequest is the body of POST /v1/consents/confirmation-of-funds
type FundsConfirmationConsentRequest struct {
	Account xs2a.AccountReference `json:"account"`

	// CardNumber and CardInformation are stored for information only
	CardNumber      string `json:"cardNumber,omitempty"`
	CardInformation string `json:"cardInformation,omitempty"`
}

type ConsentCreatedResponse struct {
	ConsentStatus xs2a.ConsentStatus `json:"consentStatus" example:"received"`
	ConsentID     string             `json:"consentId"`
	Links         Links              `json:"_links"`
}

type ConsentResponse struct {
	ConsentID                string             `json:"consentId"`
	ConsentType              string             `json:"consentType" example:"AIS"`
	ConsentStatus            xs2a.ConsentStatus `json:"consentStatus" example:"valid"`
	Access                   xs2a.AccountAccess `json:"access"`
	RecurringIndicator       bool               `json:"recurringIndicator"`
	ValidUntil               string             `json:"validUntil,omitempty" example:"2026-12-31"`
	FrequencyPerDay          int                `json:"frequencyPerDay"`
	CombinedServiceIndicator bool               `json:"combinedServiceIndicator"`
	MultilevelScaRequired    bool               `json:"multilevelScaRequired"`
	LastActionDate           string             `json:"lastActionDate" example:"2026-10-18"`
	Links                    Links              `json:"_links"`
}

type ConsentStatusResponse struct {
	ConsentStatus xs2a.ConsentStatus `json:"consentStatus" example:"valid"`
}

// PaymentRequest is the body of POST /v1/{payment-service}/{payment-product}
type PaymentRequest struct {
	DebtorAccount                     xs2a.AccountReference `json:"debtorAccount"`
	InstructedAmount                  payment.Amount        `json:"instructedAmount"`
	CreditorAccount                   xs2a.AccountReference `json:"creditorAccount"`
	CreditorName                      string                `json:"creditorName"`
	RemittanceInformationUnstructured string                `json:"remittanceInformationUnstructured,omitempty"`
}

type PaymentCreatedResponse struct {
	TransactionStatus xs2a.TransactionStatus `json:"transactionStatus" example:"RCVD"`
	PaymentID         string                 `json:"paymentId"`
	Links             Links                  `json:"_links"`
}

type PaymentStatusResponse struct {
	TransactionStatus xs2a.TransactionStatus `json:"transactionStatus" example:"ACSC"`
}

// AuthorisationRequest is the body of the start and update authorisation calls.
// Which fields are needed depends on the current sca status of the authorisation.
type AuthorisationRequest struct {
	PsuData                *PsuData `json:"psuData,omitempty"`
	AuthenticationMethodID string   `json:"authenticationMethodId,omitempty"`
	ScaAuthenticationData  string   `json:"scaAuthenticationData,omitempty"`
	ConfirmationCode       string   `json:"confirmationCode,omitempty"`
}

// PsuData carries the PSU password. The PSU identity is sent in the PSU-ID headers.
type PsuData struct {
	Password string `json:"password,omitempty"`
}

type AuthorisationResponse struct {
	AuthorisationID   string                      `json:"authorisationId"`
	ScaStatus         xs2a.ScaStatus              `json:"scaStatus" example:"psuAuthenticated"`
	ScaMethods        []xs2a.AuthenticationObject `json:"scaMethods,omitempty"`
	ChosenScaMethod   *xs2a.AuthenticationObject  `json:"chosenScaMethod,omitempty"`
	ChallengeData     *xs2a.ChallengeData         `json:"challengeData,omitempty"`
	PsuMessage        string                      `json:"psuMessage,omitempty"`
	ConfirmationCode  string                      `json:"confirmationCode,omitempty"`
	TransactionStatus xs2a.TransactionStatus      `json:"transactionStatus,omitempty"`
	Links             Links                       `json:"_links"`
}

type ScaStatusResponse struct {
	ScaStatus xs2a.ScaStatus `json:"scaStatus" example:"finalised"`
}

type AuthorisationListResponse struct {
	AuthorisationIDs []string `json:"authorisationIds"`
}

// AccountListResponse is returned by GET /v1/accounts
type AccountListResponse struct {
	Accounts []xs2a.AccountReference `json:"accounts"`

	// AccessesLeftToday is the remaining daily access frequency of the consent
	AccessesLeftToday int `json:"accessesLeftToday"`
}
