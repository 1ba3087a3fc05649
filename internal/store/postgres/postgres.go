// Package postgres implements the consent, payment and authorisation stores on PostgreSQL.
//
// Read-modify-write updates run in a transaction that locks the row with SELECT ... FOR UPDATE,
// so concurrent updates of the same consent or payment are serialized.
// Authorisations use optimistic concurrency instead: a step first claims the row (version compare-and-set
// plus a claimed_until lease) and its result is only written when the version still matches the claim.
// No transaction is held while a step talks to the ASPSP.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/consent"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/database"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/payment"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/sca"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool    *pgxpool.Pool
	queries *database.Queries
	logger  *slog.Logger
}

func New(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	return &Store{
		pool:    pool,
		queries: database.New(pool),
		logger:  logger,
	}
}

var (
	_ consent.Store = (*Store)(nil)
	_ payment.Store = (*Store)(nil)
	_ sca.Store     = (*Store)(nil)
)

// Queries returns the queries bound to the pool (used by the readiness check).
func (s *Store) Queries() *database.Queries {
	return s.queries
}

// inTx runs fn in a transaction and commits when fn returns nil.
func (s *Store) inTx(ctx context.Context, fn func(q *database.Queries) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			s.logger.Error("Failed to rollback transaction",
				slog.String("error", err.Error()),
			)
		}
	}()

	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// parseID returns false for ids that are not uuids. No row can have such an id.
func parseID(id string) (uuid.UUID, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return u, true
}

func marshalJSON(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// unmarshalJSON leaves out unchanged when the column is NULL or empty.
func unmarshalJSON(data []byte, out any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// nonNil makes sure TEXT[] NOT NULL columns are never written as NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
