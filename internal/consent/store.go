package consent

import (
	"context"
	"time"
)

// UpdateFunc receives a copy of the stored consent and returns the consent to persist.
// Returning an error aborts the update and nothing is written.
type UpdateFunc func(stored *Consent) (*Consent, error)

// Store persists consents.
//
// Implementations return a ConsentError with code ErrCodeNotFound for unknown ids.
type Store interface {
	CreateConsent(ctx context.Context, c *Consent) error

	GetConsent(ctx context.Context, id string) (*Consent, error)

	// UpdateConsent loads the consent, calls fn and persists the result.
	// The load, fn and the write must be atomic relative to other writers of the same consent
	// (e.g. a transaction holding a row lock).
	UpdateConsent(ctx context.Context, id string, fn UpdateFunc) (*Consent, error)

	// ListExpiredConsentIDs returns the ids of consents that are not finalised and whose
	// validity ended before the given day.
	ListExpiredConsentIDs(ctx context.Context, day time.Time) ([]string, error)
}
