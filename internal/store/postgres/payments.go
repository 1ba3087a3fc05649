package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/database"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/payment"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
	"github.com/jackc/pgx/v5"
)

func (s *Store) CreatePayment(ctx context.Context, p *payment.Payment) error {
	id, ok := parseID(p.ID)
	if !ok {
		return payment.NewValidationError(fmt.Sprintf("payment id %q is not a uuid", p.ID))
	}
	psuData, err := marshalJSON(p.PsuData)
	if err != nil {
		return payment.WrapInternalError(err, "failed to encode psu data")
	}
	debtor, err := marshalJSON(p.DebtorAccount)
	if err != nil {
		return payment.WrapInternalError(err, "failed to encode debtor account")
	}
	creditor, err := marshalJSON(p.CreditorAccount)
	if err != nil {
		return payment.WrapInternalError(err, "failed to encode creditor account")
	}

	err = s.queries.CreatePayment(ctx, database.CreatePaymentParams{
		ID:                         id,
		PaymentService:             string(p.PaymentService),
		PaymentProduct:             p.PaymentProduct,
		TppID:                      p.TppID,
		PsuData:                    psuData,
		DebtorAccount:              debtor,
		CreditorAccount:            creditor,
		CreditorName:               p.CreditorName,
		Currency:                   p.InstructedAmount.Currency,
		Amount:                     p.InstructedAmount.Amount,
		RemittanceInformation:      p.RemittanceInformation,
		TransactionStatus:          string(p.TransactionStatus),
		Authorisations:             nonNil(p.Authorisations),
		CancellationAuthorisations: nonNil(p.CancellationAuthorisations),
		CreatedAt:                  p.CreatedAt,
		StatusChangedAt:            p.StatusChangedAt,
	})
	if err != nil {
		return payment.WrapInternalError(err, "failed to create payment")
	}
	return nil
}

func (s *Store) GetPayment(ctx context.Context, id string) (*payment.Payment, error) {
	paymentID, ok := parseID(id)
	if !ok {
		return nil, payment.NewNotFoundError(id)
	}
	row, err := s.queries.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payment.NewNotFoundError(id)
		}
		return nil, payment.WrapInternalError(err, "failed to get payment")
	}
	return paymentFromRow(row)
}

func (s *Store) UpdatePayment(ctx context.Context, id string, fn payment.UpdateFunc) (*payment.Payment, error) {
	paymentID, ok := parseID(id)
	if !ok {
		return nil, payment.NewNotFoundError(id)
	}

	var updated *payment.Payment
	err := s.inTx(ctx, func(q *database.Queries) error {
		row, err := q.GetPaymentForUpdate(ctx, paymentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return payment.NewNotFoundError(id)
			}
			return payment.WrapInternalError(err, "failed to lock payment")
		}
		stored, err := paymentFromRow(row)
		if err != nil {
			return err
		}

		next, err := fn(stored)
		if err != nil {
			return err
		}

		psuData, err := marshalJSON(next.PsuData)
		if err != nil {
			return payment.WrapInternalError(err, "failed to encode psu data")
		}
		err = q.UpdatePayment(ctx, database.UpdatePaymentParams{
			ID:                         paymentID,
			PsuData:                    psuData,
			TransactionStatus:          string(next.TransactionStatus),
			Authorisations:             nonNil(next.Authorisations),
			CancellationAuthorisations: nonNil(next.CancellationAuthorisations),
			StatusChangedAt:            next.StatusChangedAt,
		})
		if err != nil {
			return payment.WrapInternalError(err, "failed to update payment")
		}
		updated = next
		return nil
	})
	if err != nil {
		var paymentErr *payment.PaymentError
		if errors.As(err, &paymentErr) {
			return nil, err
		}
		return nil, payment.WrapInternalError(err, "payment update failed")
	}
	return updated, nil
}

func paymentFromRow(row database.Payment) (*payment.Payment, error) {
	p := &payment.Payment{
		ID:             row.ID.String(),
		PaymentService: payment.Service(row.PaymentService),
		PaymentProduct: row.PaymentProduct,
		TppID:          row.TppID,
		CreditorName:   row.CreditorName,
		InstructedAmount: payment.Amount{
			Currency: row.Currency,
			Amount:   row.Amount,
		},
		RemittanceInformation:      row.RemittanceInformation,
		TransactionStatus:          xs2a.TransactionStatus(row.TransactionStatus),
		Authorisations:             row.Authorisations,
		CancellationAuthorisations: row.CancellationAuthorisations,
		CreatedAt:                  row.CreatedAt,
		StatusChangedAt:            row.StatusChangedAt,
	}
	if err := unmarshalJSON(row.PsuData, &p.PsuData); err != nil {
		return nil, payment.WrapInternalError(err, "stored psu data is not valid json")
	}
	if err := unmarshalJSON(row.DebtorAccount, &p.DebtorAccount); err != nil {
		return nil, payment.WrapInternalError(err, "stored debtor account is not valid json")
	}
	if err := unmarshalJSON(row.CreditorAccount, &p.CreditorAccount); err != nil {
		return nil, payment.WrapInternalError(err, "stored creditor account is not valid json")
	}
	return p, nil
}
