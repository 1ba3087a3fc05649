package sca

import (
	"context"
	"time"
)

// Store persists authorisations.
//
// Unknown ids return a ScaError with code ErrCodeAuthorisationNotFound.
type Store interface {
	// CreateAuthorisation stores a new authorisation with Version 1
	CreateAuthorisation(ctx context.Context, a Authorisation) (Authorisation, error)

	GetAuthorisation(ctx context.Context, id string) (Authorisation, error)

	// ClaimAuthorisation sets ClaimedUntil to until and increments the version, provided the stored
	// version equals expectedVersion and no claim is live at now.
	// Otherwise it returns a ScaError with code ErrCodeConcurrentUpdate and nothing is written.
	ClaimAuthorisation(ctx context.Context, id string, expectedVersion int64, now, until time.Time) (Authorisation, error)

	// UpdateAuthorisation replaces the stored authorisation when its version still equals expectedVersion,
	// clears the claim and returns the stored value with the incremented version.
	// A version mismatch returns a ScaError with code ErrCodeConcurrentUpdate and nothing is written.
	UpdateAuthorisation(ctx context.Context, a Authorisation, expectedVersion int64) (Authorisation, error)

	// ListAuthorisations returns the authorisations of a parent consent or payment, oldest first
	ListAuthorisations(ctx context.Context, parentID string) ([]Authorisation, error)
}
