package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/database"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/sca"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
	"github.com/jackc/pgx/v5"
)

func (s *Store) CreateAuthorisation(ctx context.Context, a sca.Authorisation) (sca.Authorisation, error) {
	id, ok := parseID(a.ID)
	if !ok {
		return sca.Authorisation{}, sca.NewValidationError(fmt.Sprintf("authorisation id %q is not a uuid", a.ID))
	}
	parentID, ok := parseID(a.ParentID)
	if !ok {
		return sca.Authorisation{}, sca.NewValidationError(fmt.Sprintf("parent id %q is not a uuid", a.ParentID))
	}
	cols, err := authorisationColumns(a)
	if err != nil {
		return sca.Authorisation{}, sca.WrapInternalError(err, "failed to encode authorisation")
	}

	row, err := s.queries.CreateAuthorisation(ctx, database.CreateAuthorisationParams{
		ID:                    id,
		ParentID:              parentID,
		AuthorisationType:     string(a.Type),
		ScaStatus:             string(a.ScaStatus),
		ScaApproach:           string(a.ScaApproach),
		PsuData:               cols.psuData,
		ChosenScaMethod:       cols.chosenScaMethod,
		AvailableScaMethods:   cols.availableScaMethods,
		ScaAuthenticationData: a.ScaAuthenticationData,
		ConfirmationCode:      a.ConfirmationCode,
		LastError:             cols.lastError,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	})
	if err != nil {
		return sca.Authorisation{}, sca.WrapInternalError(err, "failed to create authorisation")
	}
	return authorisationFromRow(row)
}

func (s *Store) GetAuthorisation(ctx context.Context, id string) (sca.Authorisation, error) {
	authID, ok := parseID(id)
	if !ok {
		return sca.Authorisation{}, sca.NewAuthorisationNotFoundError(id)
	}
	row, err := s.queries.GetAuthorisation(ctx, authID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sca.Authorisation{}, sca.NewAuthorisationNotFoundError(id)
		}
		return sca.Authorisation{}, sca.WrapInternalError(err, "failed to get authorisation")
	}
	return authorisationFromRow(row)
}

func (s *Store) UpdateAuthorisation(ctx context.Context, a sca.Authorisation, expectedVersion int64) (sca.Authorisation, error) {
	authID, ok := parseID(a.ID)
	if !ok {
		return sca.Authorisation{}, sca.NewAuthorisationNotFoundError(a.ID)
	}
	cols, err := authorisationColumns(a)
	if err != nil {
		return sca.Authorisation{}, sca.WrapInternalError(err, "failed to encode authorisation")
	}

	row, err := s.queries.UpdateAuthorisation(ctx, database.UpdateAuthorisationParams{
		ID:                    authID,
		ScaStatus:             string(a.ScaStatus),
		ScaApproach:           string(a.ScaApproach),
		PsuData:               cols.psuData,
		ChosenScaMethod:       cols.chosenScaMethod,
		AvailableScaMethods:   cols.availableScaMethods,
		ScaAuthenticationData: a.ScaAuthenticationData,
		ConfirmationCode:      a.ConfirmationCode,
		LastError:             cols.lastError,
		UpdatedAt:             a.UpdatedAt,
		ExpectedVersion:       expectedVersion,
	})
	if err == nil {
		return authorisationFromRow(row)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return sca.Authorisation{}, sca.WrapInternalError(err, "failed to update authorisation")
	}

	// no row matched: either the authorisation does not exist or its version moved on
	current, err := s.GetAuthorisation(ctx, a.ID)
	if err != nil {
		return sca.Authorisation{}, err
	}
	return sca.Authorisation{}, sca.NewConcurrentUpdateError(
		fmt.Sprintf("authorisation %s was updated concurrently (version %d, expected %d)", a.ID, current.Version, expectedVersion))
}

func (s *Store) ClaimAuthorisation(ctx context.Context, id string, expectedVersion int64, now, until time.Time) (sca.Authorisation, error) {
	authID, ok := parseID(id)
	if !ok {
		return sca.Authorisation{}, sca.NewAuthorisationNotFoundError(id)
	}

	row, err := s.queries.ClaimAuthorisation(ctx, database.ClaimAuthorisationParams{
		ClaimedUntil:    until,
		ID:              authID,
		ExpectedVersion: expectedVersion,
		Now:             now,
	})
	if err == nil {
		return authorisationFromRow(row)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return sca.Authorisation{}, sca.WrapInternalError(err, "failed to claim authorisation")
	}

	current, err := s.GetAuthorisation(ctx, id)
	if err != nil {
		return sca.Authorisation{}, err
	}
	if current.Version == expectedVersion {
		return sca.Authorisation{}, sca.NewConcurrentUpdateError(
			fmt.Sprintf("authorisation %s is being updated by another request", id))
	}
	return sca.Authorisation{}, sca.NewConcurrentUpdateError(
		fmt.Sprintf("authorisation %s was updated concurrently (version %d, expected %d)", id, current.Version, expectedVersion))
}

func (s *Store) ListAuthorisations(ctx context.Context, parentID string) ([]sca.Authorisation, error) {
	id, ok := parseID(parentID)
	if !ok {
		return nil, nil
	}
	rows, err := s.queries.ListAuthorisationsByParent(ctx, id)
	if err != nil {
		return nil, sca.WrapInternalError(err, "failed to list authorisations")
	}
	out := make([]sca.Authorisation, 0, len(rows))
	for _, row := range rows {
		a, err := authorisationFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

type encodedAuthorisation struct {
	psuData             []byte
	chosenScaMethod     []byte
	availableScaMethods []byte
	lastError           []byte
}

func authorisationColumns(a sca.Authorisation) (encodedAuthorisation, error) {
	var (
		out encodedAuthorisation
		err error
	)
	if out.psuData, err = marshalJSON(a.PsuData); err != nil {
		return out, fmt.Errorf("psu data: %w", err)
	}
	methods := a.AvailableScaMethods
	if methods == nil {
		methods = []xs2a.AuthenticationObject{}
	}
	if out.availableScaMethods, err = marshalJSON(methods); err != nil {
		return out, fmt.Errorf("available sca methods: %w", err)
	}
	if a.ChosenScaMethod != nil {
		if out.chosenScaMethod, err = marshalJSON(a.ChosenScaMethod); err != nil {
			return out, fmt.Errorf("chosen sca method: %w", err)
		}
	}
	if a.LastError != nil {
		if out.lastError, err = marshalJSON(a.LastError); err != nil {
			return out, fmt.Errorf("last error: %w", err)
		}
	}
	return out, nil
}

func authorisationFromRow(row database.Authorisation) (sca.Authorisation, error) {
	a := sca.Authorisation{
		ID:                    row.ID.String(),
		ParentID:              row.ParentID.String(),
		Type:                  sca.AuthorisationType(row.AuthorisationType),
		ScaStatus:             xs2a.ScaStatus(row.ScaStatus),
		ScaApproach:           xs2a.ScaApproach(row.ScaApproach),
		ScaAuthenticationData: row.ScaAuthenticationData,
		ConfirmationCode:      row.ConfirmationCode,
		Version:               row.Version,
		CreatedAt:             row.CreatedAt,
		UpdatedAt:             row.UpdatedAt,
	}
	if row.ClaimedUntil != nil {
		a.ClaimedUntil = *row.ClaimedUntil
	}
	if err := unmarshalJSON(row.PsuData, &a.PsuData); err != nil {
		return sca.Authorisation{}, sca.WrapInternalError(err, "stored psu data is not valid json")
	}
	if err := unmarshalJSON(row.AvailableScaMethods, &a.AvailableScaMethods); err != nil {
		return sca.Authorisation{}, sca.WrapInternalError(err, "stored sca methods are not valid json")
	}
	if len(row.ChosenScaMethod) > 0 {
		var m xs2a.AuthenticationObject
		if err := unmarshalJSON(row.ChosenScaMethod, &m); err != nil {
			return sca.Authorisation{}, sca.WrapInternalError(err, "stored chosen sca method is not valid json")
		}
		a.ChosenScaMethod = &m
	}
	if len(row.LastError) > 0 {
		var h xs2a.ErrorHolder
		if err := unmarshalJSON(row.LastError, &h); err != nil {
			return sca.Authorisation{}, sca.WrapInternalError(err, "stored error is not valid json")
		}
		a.LastError = &h
	}
	return a, nil
}
