package sca

import (
	"fmt"
	"slices"
	"time"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// AuthorisationType identifies what an authorisation authorises.
type AuthorisationType string

const (
	AuthorisationTypeAISConsent      AuthorisationType = "AIS_CONSENT"
	AuthorisationTypePISCreation     AuthorisationType = "PIS_CREATION"
	AuthorisationTypePISCancellation AuthorisationType = "PIS_CANCELLATION"
	AuthorisationTypePIISConsent     AuthorisationType = "PIIS_CONSENT"
)

func (t AuthorisationType) Validate() error {
	switch t {
	case AuthorisationTypeAISConsent, AuthorisationTypePISCreation, AuthorisationTypePISCancellation, AuthorisationTypePIISConsent:
		return nil
	}
	return fmt.Errorf("unknown authorisation type %q", string(t))
}

// ServiceType returns the business domain the authorisation type belongs to.
func (t AuthorisationType) ServiceType() xs2a.ServiceType {
	switch t {
	case AuthorisationTypeAISConsent:
		return xs2a.ServiceTypeAIS
	case AuthorisationTypePIISConsent:
		return xs2a.ServiceTypePIIS
	default:
		return xs2a.ServiceTypePIS
	}
}

// Authorisation is one SCA attempt for a consent or a payment.
//
// Authorisations are values: the With* methods return an updated copy and leave the receiver unchanged.
// Version is the optimistic concurrency token; the store increments it on every update.
// The PSU password is never part of an authorisation.
type Authorisation struct {
	ID       string
	ParentID string
	Type     AuthorisationType

	ScaStatus   xs2a.ScaStatus
	ScaApproach xs2a.ScaApproach
	PsuData     xs2a.PsuIdData

	ChosenScaMethod       *xs2a.AuthenticationObject
	AvailableScaMethods   []xs2a.AuthenticationObject
	ScaAuthenticationData string
	ConfirmationCode      string

	// LastError is the business rule failure reported by the last step, if any
	LastError *xs2a.ErrorHolder

	// ClaimedUntil is set while a step runs. Other steps are refused until the step is stored or the claim lapses.
	ClaimedUntil time.Time

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy of the authorisation.
func (a Authorisation) Clone() Authorisation {
	out := a
	out.AvailableScaMethods = slices.Clone(a.AvailableScaMethods)
	if a.ChosenScaMethod != nil {
		m := *a.ChosenScaMethod
		out.ChosenScaMethod = &m
	}
	if a.LastError != nil {
		e := *a.LastError
		out.LastError = &e
	}
	return out
}

// IsClaimed reports whether a step holds the authorisation at now.
func (a Authorisation) IsClaimed(now time.Time) bool {
	return !a.ClaimedUntil.IsZero() && now.Before(a.ClaimedUntil)
}

func (a Authorisation) WithScaStatus(status xs2a.ScaStatus) Authorisation {
	out := a.Clone()
	out.ScaStatus = status
	return out
}

func (a Authorisation) WithPsuData(psu xs2a.PsuIdData) Authorisation {
	out := a.Clone()
	out.PsuData = psu
	return out
}

func (a Authorisation) WithAvailableScaMethods(methods []xs2a.AuthenticationObject) Authorisation {
	out := a.Clone()
	out.AvailableScaMethods = slices.Clone(methods)
	return out
}

// WithChosenScaMethod records the selected method and derives the SCA approach from it.
func (a Authorisation) WithChosenScaMethod(method xs2a.AuthenticationObject) Authorisation {
	out := a.Clone()
	out.ChosenScaMethod = &method
	out.ScaApproach = xs2a.ScaApproachEmbedded
	if method.Decoupled {
		out.ScaApproach = xs2a.ScaApproachDecoupled
	}
	return out
}

func (a Authorisation) WithScaAuthenticationData(data string) Authorisation {
	out := a.Clone()
	out.ScaAuthenticationData = data
	return out
}

func (a Authorisation) WithConfirmationCode(code string) Authorisation {
	out := a.Clone()
	out.ConfirmationCode = code
	return out
}

// WithLastError replaces the last reported failure. A nil holder clears it.
func (a Authorisation) WithLastError(holder *xs2a.ErrorHolder) Authorisation {
	out := a.Clone()
	out.LastError = nil
	if holder != nil {
		h := *holder
		out.LastError = &h
	}
	return out
}

// Evidence is the input the PSU supplies with one authorisation call.
// Every field is optional; which ones are needed depends on the current status.
type Evidence struct {
	PsuData xs2a.PsuIdData `json:"psuData"`

	// Password is only used to authenticate the PSU and is never stored
	Password string `json:"password,omitempty"`

	AuthenticationMethodID string `json:"authenticationMethodId,omitempty"`
	ScaAuthenticationData  string `json:"scaAuthenticationData,omitempty"`
	ConfirmationCode       string `json:"confirmationCode,omitempty"`
}
