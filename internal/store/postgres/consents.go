package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/consent"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/database"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
	"github.com/jackc/pgx/v5"
)

func (s *Store) CreateConsent(ctx context.Context, c *consent.Consent) error {
	id, ok := parseID(c.ID)
	if !ok {
		return consent.NewValidationError(fmt.Sprintf("consent id %q is not a uuid", c.ID))
	}
	row, err := consentColumns(c)
	if err != nil {
		return consent.WrapInternalError(err, "failed to encode consent")
	}

	err = s.queries.CreateConsent(ctx, database.CreateConsentParams{
		ID:                       id,
		ConsentType:              string(c.Type),
		Status:                   string(c.Status),
		TppID:                    c.TppID,
		PsuData:                  row.psuData,
		RecurringIndicator:       c.RecurringIndicator,
		CombinedServiceIndicator: c.CombinedServiceIndicator,
		ValidUntil:               row.validUntil,
		FrequencyPerDay:          int32(c.FrequencyPerDay),
		TppAccess:                row.tppAccess,
		AspspAccess:              row.aspspAccess,
		MultilevelScaRequired:    c.MultilevelScaRequired,
		Checksum:                 c.Checksum,
		Authorisations:           nonNil(c.Authorisations),
		UsageCounters:            row.usageCounters,
		CreatedAt:                c.CreatedAt,
		StatusChangedAt:          c.StatusChangedAt,
	})
	if err != nil {
		return consent.WrapInternalError(err, "failed to create consent")
	}
	return nil
}

func (s *Store) GetConsent(ctx context.Context, id string) (*consent.Consent, error) {
	consentID, ok := parseID(id)
	if !ok {
		return nil, consent.NewNotFoundError(id)
	}
	row, err := s.queries.GetConsent(ctx, consentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, consent.NewNotFoundError(id)
		}
		return nil, consent.WrapInternalError(err, "failed to get consent")
	}
	return consentFromRow(row)
}

func (s *Store) UpdateConsent(ctx context.Context, id string, fn consent.UpdateFunc) (*consent.Consent, error) {
	consentID, ok := parseID(id)
	if !ok {
		return nil, consent.NewNotFoundError(id)
	}

	var updated *consent.Consent
	err := s.inTx(ctx, func(q *database.Queries) error {
		row, err := q.GetConsentForUpdate(ctx, consentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return consent.NewNotFoundError(id)
			}
			return consent.WrapInternalError(err, "failed to lock consent")
		}
		stored, err := consentFromRow(row)
		if err != nil {
			return err
		}

		next, err := fn(stored)
		if err != nil {
			return err
		}

		cols, err := consentColumns(next)
		if err != nil {
			return consent.WrapInternalError(err, "failed to encode consent")
		}
		err = q.UpdateConsent(ctx, database.UpdateConsentParams{
			ID:                       consentID,
			Status:                   string(next.Status),
			PsuData:                  cols.psuData,
			RecurringIndicator:       next.RecurringIndicator,
			CombinedServiceIndicator: next.CombinedServiceIndicator,
			ValidUntil:               cols.validUntil,
			FrequencyPerDay:          int32(next.FrequencyPerDay),
			TppAccess:                cols.tppAccess,
			AspspAccess:              cols.aspspAccess,
			MultilevelScaRequired:    next.MultilevelScaRequired,
			Checksum:                 next.Checksum,
			Authorisations:           nonNil(next.Authorisations),
			UsageCounters:            cols.usageCounters,
			StatusChangedAt:          next.StatusChangedAt,
		})
		if err != nil {
			return consent.WrapInternalError(err, "failed to update consent")
		}
		updated = next
		return nil
	})
	if err != nil {
		var consentErr *consent.ConsentError
		if errors.As(err, &consentErr) {
			return nil, err
		}
		return nil, consent.WrapInternalError(err, "consent update failed")
	}
	return updated, nil
}

func (s *Store) ListExpiredConsentIDs(ctx context.Context, day time.Time) ([]string, error) {
	ids, err := s.queries.ListExpiredConsentIDs(ctx, day)
	if err != nil {
		return nil, consent.WrapInternalError(err, "failed to list expired consents")
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out, nil
}

type encodedConsent struct {
	psuData       []byte
	tppAccess     []byte
	aspspAccess   []byte
	usageCounters []byte
	validUntil    *time.Time
}

func consentColumns(c *consent.Consent) (encodedConsent, error) {
	var (
		out encodedConsent
		err error
	)
	psuData := c.PsuData
	if psuData == nil {
		psuData = []xs2a.PsuIdData{}
	}
	if out.psuData, err = marshalJSON(psuData); err != nil {
		return out, fmt.Errorf("psu data: %w", err)
	}
	if out.tppAccess, err = marshalJSON(c.TppAccess); err != nil {
		return out, fmt.Errorf("tpp access: %w", err)
	}
	if out.aspspAccess, err = marshalJSON(c.AspspAccess); err != nil {
		return out, fmt.Errorf("aspsp access: %w", err)
	}
	counters := c.UsageCounters
	if counters == nil {
		counters = map[string]int{}
	}
	if out.usageCounters, err = marshalJSON(counters); err != nil {
		return out, fmt.Errorf("usage counters: %w", err)
	}
	if !c.ValidUntil.IsZero() {
		v := c.ValidUntil.UTC()
		out.validUntil = &v
	}
	return out, nil
}

func consentFromRow(row database.Consent) (*consent.Consent, error) {
	c := &consent.Consent{
		ID:                       row.ID.String(),
		Type:                     consent.Type(row.ConsentType),
		Status:                   xs2a.ConsentStatus(row.Status),
		TppID:                    row.TppID,
		RecurringIndicator:       row.RecurringIndicator,
		CombinedServiceIndicator: row.CombinedServiceIndicator,
		FrequencyPerDay:          int(row.FrequencyPerDay),
		MultilevelScaRequired:    row.MultilevelScaRequired,
		Checksum:                 row.Checksum,
		Authorisations:           row.Authorisations,
		CreatedAt:                row.CreatedAt,
		StatusChangedAt:          row.StatusChangedAt,
	}
	if row.ValidUntil != nil {
		c.ValidUntil = row.ValidUntil.UTC()
	}
	if err := unmarshalJSON(row.PsuData, &c.PsuData); err != nil {
		return nil, consent.WrapInternalError(err, "stored psu data is not valid json")
	}
	if err := unmarshalJSON(row.TppAccess, &c.TppAccess); err != nil {
		return nil, consent.WrapInternalError(err, "stored tpp access is not valid json")
	}
	if err := unmarshalJSON(row.AspspAccess, &c.AspspAccess); err != nil {
		return nil, consent.WrapInternalError(err, "stored aspsp access is not valid json")
	}
	if err := unmarshalJSON(row.UsageCounters, &c.UsageCounters); err != nil {
		return nil, consent.WrapInternalError(err, "stored usage counters are not valid json")
	}
	return c, nil
}
