package sca

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/consent"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/payment"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// DefaultClaimTimeout bounds how long a step may hold an authorisation before another request can take it over.
const DefaultClaimTimeout = 2 * time.Minute

// AuthorisationService starts and advances authorisations and persists every step.
type AuthorisationService struct {
	store        Store
	processor    *Processor
	consents     *consent.Service
	payments     *payment.PaymentService
	logger       *slog.Logger
	now          func() time.Time
	claimTimeout time.Duration
}

func NewAuthorisationService(store Store, processor *Processor, consents *consent.Service, payments *payment.PaymentService, logger *slog.Logger) *AuthorisationService {
	return &AuthorisationService{
		store:        store,
		processor:    processor,
		consents:     consents,
		payments:     payments,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
		claimTimeout: DefaultClaimTimeout,
	}
}

// AuthorisationResult is the outcome of Start or Advance: the persisted authorisation plus
// the data the stage handed back for the PSU.
type AuthorisationResult struct {
	Authorisation Authorisation
	Response      ProcessorResponse
}

// linkParent adds the authorisation to its consent or payment
func (s *AuthorisationService) linkParent(ctx context.Context, parentID string, authType AuthorisationType, authorisationID string) error {
	switch authType {
	case AuthorisationTypeAISConsent, AuthorisationTypePIISConsent:
		c, err := s.consents.Get(ctx, parentID)
		if err != nil {
			return err
		}
		if c.Type.ServiceType() != authType.ServiceType() {
			return consent.NewNotFoundError(parentID)
		}
		_, err = s.consents.AddAuthorisation(ctx, parentID, authorisationID)
		return err
	case AuthorisationTypePISCreation:
		_, err := s.payments.AddAuthorisation(ctx, parentID, authorisationID, false)
		return err
	case AuthorisationTypePISCancellation:
		_, err := s.payments.AddAuthorisation(ctx, parentID, authorisationID, true)
		return err
	}
	return NewValidationError(fmt.Sprintf("unknown authorisation type %q", authType))
}

// unlinkParent removes an authorisation that could not be stored from its consent or payment
func (s *AuthorisationService) unlinkParent(ctx context.Context, parentID string, authType AuthorisationType, authorisationID string) error {
	switch authType {
	case AuthorisationTypeAISConsent, AuthorisationTypePIISConsent:
		_, err := s.consents.RemoveAuthorisation(ctx, parentID, authorisationID)
		return err
	case AuthorisationTypePISCreation:
		_, err := s.payments.RemoveAuthorisation(ctx, parentID, authorisationID, false)
		return err
	case AuthorisationTypePISCancellation:
		_, err := s.payments.RemoveAuthorisation(ctx, parentID, authorisationID, true)
		return err
	}
	return nil
}

// Start creates an authorisation in status received for a consent or payment.
//
// When the evidence identifies the PSU the received stage runs straight away,
// so the returned authorisation is then psuIdentified (or failed).
// Unknown or finalised parents return the consent or payment error.
func (s *AuthorisationService) Start(ctx context.Context, parentID string, authType AuthorisationType, evidence Evidence) (AuthorisationResult, error) {
	if err := authType.Validate(); err != nil {
		return AuthorisationResult{}, NewValidationError(err.Error())
	}

	now := s.now()
	a := Authorisation{
		ID:        uuid.NewString(),
		ParentID:  parentID,
		Type:      authType,
		ScaStatus: xs2a.ScaStatusReceived,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.linkParent(ctx, parentID, authType, a.ID); err != nil {
		return AuthorisationResult{}, err
	}

	stored, err := s.store.CreateAuthorisation(ctx, a)
	if err != nil {
		if unlinkErr := s.unlinkParent(context.WithoutCancel(ctx), parentID, authType, a.ID); unlinkErr != nil {
			s.logger.Error("failed to unlink authorisation that was not stored",
				slog.String("authorisation_id", a.ID),
				slog.String("parent_id", parentID),
				slog.String("error", unlinkErr.Error()),
			)
		}
		return AuthorisationResult{}, err
	}
	a = stored

	s.logger.Info("authorisation started",
		slog.String("authorisation_id", a.ID),
		slog.String("parent_id", parentID),
		slog.String("authorisation_type", string(authType)),
	)

	if evidence.PsuData.IsEmpty() {
		return AuthorisationResult{
			Authorisation: a,
			Response:      ProcessorResponse{ScaStatus: a.ScaStatus, ResponseType: ResponseTypeStart},
		}, nil
	}

	return s.advance(ctx, a, authType.ServiceType(), evidence, ResponseTypeStart)
}

// Advance runs the stage for the current status of the authorisation and persists the result.
//
// businessDomain is the domain the request was addressed to; an authorisation of another domain is
// reported as not found. Terminal authorisations return ErrCodeAuthorisationFinalised.
// Concurrent calls for the same authorisation are rejected before the stage runs: the step claims the
// authorisation first, and a request that finds it claimed (or loses the claim) gets ErrCodeConcurrentUpdate
// without calling the ASPSP or touching the consent or payment.
func (s *AuthorisationService) Advance(ctx context.Context, authorisationID string, businessDomain xs2a.ServiceType, evidence Evidence) (AuthorisationResult, error) {
	a, err := s.store.GetAuthorisation(ctx, authorisationID)
	if err != nil {
		return AuthorisationResult{}, err
	}
	if a.Type.ServiceType() != businessDomain {
		return AuthorisationResult{}, NewAuthorisationNotFoundError(authorisationID)
	}
	if a.ScaStatus.IsFinalised() {
		return AuthorisationResult{}, NewAuthorisationFinalisedError(
			fmt.Sprintf("authorisation %s is %s and cannot be changed", a.ID, a.ScaStatus))
	}

	return s.advance(ctx, a, businessDomain, evidence, ResponseTypeUpdate)
}

func (s *AuthorisationService) advance(ctx context.Context, a Authorisation, businessDomain xs2a.ServiceType, evidence Evidence, responseType ResponseType) (AuthorisationResult, error) {
	now := s.now()
	if a.IsClaimed(now) {
		return AuthorisationResult{}, NewConcurrentUpdateError(
			fmt.Sprintf("authorisation %s is being updated by another request", a.ID))
	}
	claimed, err := s.store.ClaimAuthorisation(ctx, a.ID, a.Version, now, now.Add(s.claimTimeout))
	if err != nil {
		return AuthorisationResult{}, err
	}

	res, err := s.processor.Apply(ctx, ProcessorRequest{
		Authorisation:  claimed,
		BusinessDomain: businessDomain,
		Evidence:       evidence,
		ResponseType:   responseType,
	})
	if err != nil {
		s.release(ctx, claimed)
		return AuthorisationResult{}, err
	}

	next := res.applyTo(claimed)
	next.ClaimedUntil = time.Time{}
	next.UpdatedAt = s.now()

	stored, err := s.store.UpdateAuthorisation(ctx, next, claimed.Version)
	if err != nil {
		return AuthorisationResult{}, err
	}

	attrs := []any{
		slog.String("authorisation_id", a.ID),
		slog.String("from", string(a.ScaStatus)),
		slog.String("to", string(stored.ScaStatus)),
	}
	if res.ErrorHolder != nil {
		attrs = append(attrs, slog.String("error", res.ErrorHolder.String()))
		s.logger.Warn("authorisation step failed", attrs...)
	} else {
		s.logger.Info("authorisation advanced", attrs...)
	}

	return AuthorisationResult{Authorisation: stored, Response: res}, nil
}

// release drops the claim of a step that failed without a result, leaving the authorisation as it was
func (s *AuthorisationService) release(ctx context.Context, claimed Authorisation) {
	unclaimed := claimed.Clone()
	unclaimed.ClaimedUntil = time.Time{}
	if _, err := s.store.UpdateAuthorisation(context.WithoutCancel(ctx), unclaimed, claimed.Version); err != nil {
		s.logger.Error("failed to release authorisation claim",
			slog.String("authorisation_id", claimed.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *AuthorisationService) Get(ctx context.Context, authorisationID string) (Authorisation, error) {
	return s.store.GetAuthorisation(ctx, authorisationID)
}

// GetScaStatus returns the SCA status of an authorisation of the given business domain.
func (s *AuthorisationService) GetScaStatus(ctx context.Context, authorisationID string, businessDomain xs2a.ServiceType) (xs2a.ScaStatus, error) {
	a, err := s.store.GetAuthorisation(ctx, authorisationID)
	if err != nil {
		return "", err
	}
	if a.Type.ServiceType() != businessDomain {
		return "", NewAuthorisationNotFoundError(authorisationID)
	}
	return a.ScaStatus, nil
}

// List returns the authorisations of the given type for a consent or payment.
// An empty authType returns every authorisation of the parent.
func (s *AuthorisationService) List(ctx context.Context, parentID string, authType AuthorisationType) ([]Authorisation, error) {
	all, err := s.store.ListAuthorisations(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if authType == "" {
		return all, nil
	}
	out := make([]Authorisation, 0, len(all))
	for _, a := range all {
		if a.Type == authType {
			out = append(out, a)
		}
	}
	return out, nil
}
