// Package memory is an in-memory implementation of the consent, payment and authorisation stores.
//
// It is used in tests and when the server runs with STORE_BACKEND=memory. Data is lost on restart.
// Updates hold the store lock while the update function runs, which gives the same
// serialization guarantee the postgres store gets from row locks.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/consent"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/payment"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/sca"
)

type Store struct {
	mu             sync.RWMutex
	consents       map[string]*consent.Consent
	payments       map[string]*payment.Payment
	authorisations map[string]sca.Authorisation
}

func New() *Store {
	return &Store{
		consents:       make(map[string]*consent.Consent),
		payments:       make(map[string]*payment.Payment),
		authorisations: make(map[string]sca.Authorisation),
	}
}

var (
	_ consent.Store = (*Store)(nil)
	_ payment.Store = (*Store)(nil)
	_ sca.Store     = (*Store)(nil)
)

func (s *Store) CreateConsent(ctx context.Context, c *consent.Consent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.consents[c.ID]; exists {
		return consent.NewInternalError(fmt.Sprintf("consent %s already exists", c.ID))
	}
	s.consents[c.ID] = c.Clone()
	return nil
}

func (s *Store) GetConsent(ctx context.Context, id string) (*consent.Consent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.consents[id]
	if !ok {
		return nil, consent.NewNotFoundError(id)
	}
	return c.Clone(), nil
}

func (s *Store) UpdateConsent(ctx context.Context, id string, fn consent.UpdateFunc) (*consent.Consent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.consents[id]
	if !ok {
		return nil, consent.NewNotFoundError(id)
	}
	next, err := fn(stored.Clone())
	if err != nil {
		return nil, err
	}
	s.consents[id] = next.Clone()
	return next, nil
}

func (s *Store) ListExpiredConsentIDs(ctx context.Context, day time.Time) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for id, c := range s.consents {
		if !c.Status.IsFinalised() && c.IsExpiredOn(day) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *Store) CreatePayment(ctx context.Context, p *payment.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.payments[p.ID]; exists {
		return payment.WrapInternalError(fmt.Errorf("duplicate id %s", p.ID), "payment already exists")
	}
	s.payments[p.ID] = p.Clone()
	return nil
}

func (s *Store) GetPayment(ctx context.Context, id string) (*payment.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, payment.NewNotFoundError(id)
	}
	return p.Clone(), nil
}

func (s *Store) UpdatePayment(ctx context.Context, id string, fn payment.UpdateFunc) (*payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.payments[id]
	if !ok {
		return nil, payment.NewNotFoundError(id)
	}
	next, err := fn(stored.Clone())
	if err != nil {
		return nil, err
	}
	s.payments[id] = next.Clone()
	return next, nil
}

func (s *Store) CreateAuthorisation(ctx context.Context, a sca.Authorisation) (sca.Authorisation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.authorisations[a.ID]; exists {
		return sca.Authorisation{}, sca.WrapInternalError(fmt.Errorf("duplicate id %s", a.ID), "authorisation already exists")
	}
	a.Version = 1
	s.authorisations[a.ID] = a.Clone()
	return a, nil
}

func (s *Store) GetAuthorisation(ctx context.Context, id string) (sca.Authorisation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.authorisations[id]
	if !ok {
		return sca.Authorisation{}, sca.NewAuthorisationNotFoundError(id)
	}
	return a.Clone(), nil
}

func (s *Store) ClaimAuthorisation(ctx context.Context, id string, expectedVersion int64, now, until time.Time) (sca.Authorisation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.authorisations[id]
	if !ok {
		return sca.Authorisation{}, sca.NewAuthorisationNotFoundError(id)
	}
	if stored.Version != expectedVersion {
		return sca.Authorisation{}, sca.NewConcurrentUpdateError(
			fmt.Sprintf("authorisation %s was updated concurrently (version %d, expected %d)", id, stored.Version, expectedVersion))
	}
	if stored.IsClaimed(now) {
		return sca.Authorisation{}, sca.NewConcurrentUpdateError(
			fmt.Sprintf("authorisation %s is being updated by another request", id))
	}
	stored.ClaimedUntil = until
	stored.Version++
	s.authorisations[id] = stored.Clone()
	return stored, nil
}

func (s *Store) UpdateAuthorisation(ctx context.Context, a sca.Authorisation, expectedVersion int64) (sca.Authorisation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.authorisations[a.ID]
	if !ok {
		return sca.Authorisation{}, sca.NewAuthorisationNotFoundError(a.ID)
	}
	if stored.Version != expectedVersion {
		return sca.Authorisation{}, sca.NewConcurrentUpdateError(
			fmt.Sprintf("authorisation %s was updated concurrently (version %d, expected %d)", a.ID, stored.Version, expectedVersion))
	}
	a.Version = expectedVersion + 1
	a.ClaimedUntil = time.Time{}
	s.authorisations[a.ID] = a.Clone()
	return a, nil
}

func (s *Store) ListAuthorisations(ctx context.Context, parentID string) ([]sca.Authorisation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []sca.Authorisation
	for _, a := range s.authorisations {
		if a.ParentID == parentID {
			out = append(out, a.Clone())
		}
	}
	slices.SortFunc(out, func(x, y sca.Authorisation) int {
		if c := x.CreatedAt.Compare(y.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(x.ID, y.ID)
	})
	return out, nil
}
