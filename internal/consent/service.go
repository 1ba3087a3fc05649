package consent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// Service implements the consent operations. Every write is checked by the IntegrityGuard.
type Service struct {
	store  Store
	guard  *IntegrityGuard
	logger *slog.Logger
	now    func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock sets the function used to read the current time (tests).
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(store Store, guard *IntegrityGuard, logger *slog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		guard:  guard,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest holds the TPP supplied values of a new consent.
type CreateRequest struct {
	Type                     Type
	TppID                    string
	PsuData                  xs2a.PsuIdData
	Access                   xs2a.AccountAccess
	RecurringIndicator       bool
	CombinedServiceIndicator bool
	ValidUntil               time.Time
	FrequencyPerDay          int
}

func (s *Service) validateCreateRequest(req CreateRequest) error {
	if err := req.Type.Validate(); err != nil {
		return WrapValidationError(err, "invalid consent type")
	}
	if req.Access.IsEmpty() {
		return NewValidationError("access is required")
	}

	switch req.Type {
	case TypeAIS:
		if req.ValidUntil.IsZero() {
			return NewValidationError("validUntil is required")
		}
		if req.ValidUntil.Before(startOfDay(s.now())) {
			return NewValidationError("validUntil must not be in the past")
		}
		if req.RecurringIndicator && req.FrequencyPerDay < 1 {
			return NewValidationError("frequencyPerDay must be at least 1 for recurring consents")
		}
	default:
		// funds confirmation consents name exactly one account
		if len(req.Access.Accounts) != 1 {
			return NewValidationError("a funds confirmation consent must name exactly one account")
		}
	}
	return nil
}

// Create stores a new consent in status received.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Consent, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	frequency := req.FrequencyPerDay
	if !req.RecurringIndicator || frequency < 1 {
		frequency = 1
	}

	now := s.now()
	c := &Consent{
		ID:                       uuid.NewString(),
		Type:                     req.Type,
		Status:                   xs2a.ConsentStatusReceived,
		TppID:                    req.TppID,
		RecurringIndicator:       req.RecurringIndicator,
		CombinedServiceIndicator: req.CombinedServiceIndicator,
		ValidUntil:               req.ValidUntil,
		FrequencyPerDay:          frequency,
		TppAccess:                req.Access.Clone(),
		UsageCounters:            map[string]int{},
		CreatedAt:                now,
		StatusChangedAt:          now,
	}
	if !req.ValidUntil.IsZero() {
		c.ValidUntil = startOfDay(req.ValidUntil)
	}
	if !req.PsuData.IsEmpty() {
		c.PsuData = []xs2a.PsuIdData{req.PsuData}
	}

	sealed, err := s.guard.WriteConsent(c, "")
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateConsent(ctx, sealed); err != nil {
		return nil, err
	}

	s.logger.Info("consent created",
		slog.String("consent_id", sealed.ID),
		slog.String("consent_type", string(sealed.Type)),
	)
	return sealed, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Consent, error) {
	return s.store.GetConsent(ctx, id)
}

func (s *Service) GetStatus(ctx context.Context, id string) (xs2a.ConsentStatus, error) {
	c, err := s.store.GetConsent(ctx, id)
	if err != nil {
		return "", err
	}
	return c.Status, nil
}

// write applies mutate to a copy of the stored consent inside the store's update boundary.
//
// Finalised consents are read only. The stored checksum is always carried over, so mutate
// cannot replace the seal; the guard decides whether it is verified or recalculated.
func (s *Service) write(ctx context.Context, id string, mutate func(c *Consent) error) (*Consent, error) {
	return s.store.UpdateConsent(ctx, id, func(stored *Consent) (*Consent, error) {
		if stored.Status.IsFinalised() {
			return nil, NewFinalisedError(fmt.Sprintf("consent %s is %s and can no longer be changed", stored.ID, stored.Status))
		}

		next := stored.Clone()
		if err := mutate(next); err != nil {
			return nil, err
		}

		next.ID = stored.ID
		next.CreatedAt = stored.CreatedAt
		next.Checksum = slices.Clone(stored.Checksum)
		if next.Status != stored.Status {
			next.StatusChangedAt = s.now()
		}

		return s.guard.WriteConsent(next, stored.Status)
	})
}

// UpdateStatus sets the consent status.
func (s *Service) UpdateStatus(ctx context.Context, id string, status xs2a.ConsentStatus) (*Consent, error) {
	if err := status.Validate(); err != nil {
		return nil, WrapValidationError(err, "invalid consent status")
	}
	c, err := s.write(ctx, id, func(c *Consent) error {
		c.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("consent status updated",
		slog.String("consent_id", id),
		slog.String("status", string(status)),
	)
	return c, nil
}

// Authorise records the outcome of a finalised authorisation: the consent becomes valid, or
// partially authorised when further PSUs still have to authorise it.
func (s *Service) Authorise(ctx context.Context, id string, status xs2a.ConsentStatus, multilevelScaRequired bool) (*Consent, error) {
	if status != xs2a.ConsentStatusValid && status != xs2a.ConsentStatusPartiallyAuthorised {
		return nil, NewValidationError(fmt.Sprintf("an authorisation cannot move a consent to %s", status))
	}
	return s.write(ctx, id, func(c *Consent) error {
		c.Status = status
		c.MultilevelScaRequired = c.MultilevelScaRequired || multilevelScaRequired
		return nil
	})
}

// Reject marks the consent as rejected, e.g. when the PSU has no usable SCA method.
func (s *Service) Reject(ctx context.Context, id string) (*Consent, error) {
	return s.UpdateStatus(ctx, id, xs2a.ConsentStatusRejected)
}

// Revoke terminates the consent on request of the TPP.
func (s *Service) Revoke(ctx context.Context, id string) (*Consent, error) {
	return s.UpdateStatus(ctx, id, xs2a.ConsentStatusTerminatedByTpp)
}

// UpdateTppAccess replaces the access requested by the TPP.
// Changing the access of a sealed consent fails with an integrity error.
func (s *Service) UpdateTppAccess(ctx context.Context, id string, access xs2a.AccountAccess) (*Consent, error) {
	return s.write(ctx, id, func(c *Consent) error {
		c.TppAccess = access.Clone()
		return nil
	})
}

// UpdateAspspAccess replaces the access granted by the ASPSP.
func (s *Service) UpdateAspspAccess(ctx context.Context, id string, access xs2a.AccountAccess) (*Consent, error) {
	return s.write(ctx, id, func(c *Consent) error {
		c.AspspAccess = access.Clone()
		return nil
	})
}

// AddPsu adds a PSU to the consent (multilevel SCA).
func (s *Service) AddPsu(ctx context.Context, id string, psu xs2a.PsuIdData) (*Consent, error) {
	if psu.IsEmpty() {
		return nil, NewValidationError("psu data is required")
	}
	return s.write(ctx, id, func(c *Consent) error {
		for _, existing := range c.PsuData {
			if existing.SamePsu(psu) {
				return nil
			}
		}
		c.PsuData = append(c.PsuData, psu)
		return nil
	})
}

// AddAuthorisation links an authorisation to the consent.
func (s *Service) AddAuthorisation(ctx context.Context, id, authorisationID string) (*Consent, error) {
	return s.write(ctx, id, func(c *Consent) error {
		if !slices.Contains(c.Authorisations, authorisationID) {
			c.Authorisations = append(c.Authorisations, authorisationID)
		}
		return nil
	})
}

// RemoveAuthorisation unlinks an authorisation, e.g. one that could not be stored after it was linked.
func (s *Service) RemoveAuthorisation(ctx context.Context, id, authorisationID string) (*Consent, error) {
	return s.write(ctx, id, func(c *Consent) error {
		c.Authorisations = slices.DeleteFunc(c.Authorisations, func(existing string) bool {
			return existing == authorisationID
		})
		return nil
	})
}

// RegisterUsage records one access to account data and returns the calls left today.
//
// The consent must be valid and not expired. The daily counter starts at FrequencyPerDay.
func (s *Service) RegisterUsage(ctx context.Context, id string) (int, error) {
	today := s.now()
	key := today.Format(DateLayout)
	remaining := 0

	_, err := s.write(ctx, id, func(c *Consent) error {
		if c.Status != xs2a.ConsentStatusValid {
			return NewStatusInvalidError(fmt.Sprintf("consent %s is %s", c.ID, c.Status))
		}
		if c.IsExpiredOn(today) {
			return NewExpiredError(fmt.Sprintf("consent %s expired on %s", c.ID, c.ValidUntilDate()))
		}

		left, ok := c.UsageCounters[key]
		if !ok {
			left = c.FrequencyPerDay
		}
		if left <= 0 {
			return NewAccessExceededError(fmt.Sprintf("consent %s has no accesses left today", c.ID))
		}

		// only today's counter is relevant
		maps.DeleteFunc(c.UsageCounters, func(day string, _ int) bool { return day != key })
		if c.UsageCounters == nil {
			c.UsageCounters = map[string]int{}
		}
		remaining = left - 1
		c.UsageCounters[key] = remaining
		return nil
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// ExpireConsents moves every consent whose validity has ended to expired and returns how many were expired.
//
// A failure on one consent does not stop the others; all failures are returned together.
func (s *Service) ExpireConsents(ctx context.Context) (int, error) {
	today := s.now()

	ids, err := s.store.ListExpiredConsentIDs(ctx, today)
	if err != nil {
		return 0, err
	}

	var errs []error
	expired := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		changed := false
		_, err := s.write(ctx, id, func(c *Consent) error {
			if !c.IsExpiredOn(today) {
				return nil
			}
			c.Status = xs2a.ConsentStatusExpired
			changed = true
			return nil
		})
		if err != nil {
			// finalised in the meantime
			if HasCode(err, ErrCodeFinalised) {
				continue
			}
			s.logger.Warn("failed to expire consent",
				slog.String("consent_id", id),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Errorf("consent %s: %w", id, err))
			continue
		}
		if changed {
			expired++
		}
	}

	return expired, errors.Join(errs...)
}

// ChecksumReport describes the stored checksum of a consent.
type ChecksumReport struct {
	ConsentID string
	Status    xs2a.ConsentStatus
	Version   string
	Known     bool
	Sealed    bool
	Valid     bool
}

// VerifyChecksum checks the stored checksum of a consent without writing it.
func (s *Service) VerifyChecksum(ctx context.Context, id string) (ChecksumReport, error) {
	c, err := s.store.GetConsent(ctx, id)
	if err != nil {
		return ChecksumReport{}, err
	}

	report := ChecksumReport{
		ConsentID: c.ID,
		Status:    c.Status,
		Sealed:    len(c.Checksum) > 0,
	}
	if !report.Sealed {
		return report, nil
	}

	report.Version, _ = ChecksumVersion(c.Checksum)
	alg, found := s.guard.registry.SelectFor(c.Checksum)
	report.Known = found
	if found {
		report.Valid = alg.Verify(c, c.Checksum)
	}
	return report, nil
}
