package payment

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

type PaymentService struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

func NewPaymentService(store Store, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// InitiateRequest holds the TPP supplied values of a new payment.
type InitiateRequest struct {
	PaymentService        Service
	PaymentProduct        string
	TppID                 string
	PsuData               xs2a.PsuIdData
	DebtorAccount         xs2a.AccountReference
	CreditorAccount       xs2a.AccountReference
	CreditorName          string
	InstructedAmount      Amount
	RemittanceInformation string
}

func validateInitiateRequest(req InitiateRequest) error {
	if err := req.PaymentService.Validate(); err != nil {
		return WrapValidationError(err, "invalid payment service")
	}
	if strings.TrimSpace(req.PaymentProduct) == "" {
		return NewValidationError("payment product is required")
	}
	if req.DebtorAccount.ReferenceType() == "" {
		return NewValidationError("debtorAccount is required")
	}
	if req.CreditorAccount.ReferenceType() == "" {
		return NewValidationError("creditorAccount is required")
	}
	if req.InstructedAmount.Currency == "" || req.InstructedAmount.Amount == "" {
		return NewValidationError("instructedAmount is required")
	}
	return nil
}

// Initiate stores a new payment in status RCVD.
func (s *PaymentService) Initiate(ctx context.Context, req InitiateRequest) (*Payment, error) {
	if err := validateInitiateRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	p := &Payment{
		ID:                    uuid.NewString(),
		PaymentService:        req.PaymentService,
		PaymentProduct:        req.PaymentProduct,
		TppID:                 req.TppID,
		PsuData:               req.PsuData,
		DebtorAccount:         req.DebtorAccount,
		CreditorAccount:       req.CreditorAccount,
		CreditorName:          req.CreditorName,
		InstructedAmount:      req.InstructedAmount,
		RemittanceInformation: req.RemittanceInformation,
		TransactionStatus:     xs2a.TransactionStatusReceived,
		CreatedAt:             now,
		StatusChangedAt:       now,
	}
	if err := s.store.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("payment initiated",
		slog.String("payment_id", p.ID),
		slog.String("payment_service", string(p.PaymentService)),
		slog.String("payment_product", p.PaymentProduct),
	)
	return p, nil
}

func (s *PaymentService) Get(ctx context.Context, id string) (*Payment, error) {
	return s.store.GetPayment(ctx, id)
}

// UpdateTransactionStatus sets the transaction status. Finalised payments cannot change status.
func (s *PaymentService) UpdateTransactionStatus(ctx context.Context, id string, status xs2a.TransactionStatus) (*Payment, error) {
	if err := status.Validate(); err != nil {
		return nil, WrapValidationError(err, "invalid transaction status")
	}
	p, err := s.store.UpdatePayment(ctx, id, func(stored *Payment) (*Payment, error) {
		if stored.TransactionStatus.IsFinalised() {
			return nil, NewFinalisedError(fmt.Sprintf("payment %s has final status %s", stored.ID, stored.TransactionStatus))
		}
		next := stored.Clone()
		if next.TransactionStatus != status {
			next.TransactionStatus = status
			next.StatusChangedAt = s.now()
		}
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment status updated",
		slog.String("payment_id", id),
		slog.String("transaction_status", string(status)),
	)
	return p, nil
}

// TransitionTransactionStatus moves the payment from one status to another.
// It fails with ErrCodeStatusChanged when the stored status is no longer from, so two writers
// racing for the same transition cannot both succeed.
func (s *PaymentService) TransitionTransactionStatus(ctx context.Context, id string, from, to xs2a.TransactionStatus) (*Payment, error) {
	if err := to.Validate(); err != nil {
		return nil, WrapValidationError(err, "invalid transaction status")
	}
	p, err := s.store.UpdatePayment(ctx, id, func(stored *Payment) (*Payment, error) {
		if stored.TransactionStatus.IsFinalised() {
			return nil, NewFinalisedError(fmt.Sprintf("payment %s has final status %s", stored.ID, stored.TransactionStatus))
		}
		if stored.TransactionStatus != from {
			return nil, NewStatusChangedError(fmt.Sprintf("payment %s has status %s, expected %s", stored.ID, stored.TransactionStatus, from))
		}
		next := stored.Clone()
		if next.TransactionStatus != to {
			next.TransactionStatus = to
			next.StatusChangedAt = s.now()
		}
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment status updated",
		slog.String("payment_id", id),
		slog.String("from", string(from)),
		slog.String("transaction_status", string(to)),
	)
	return p, nil
}

// AddAuthorisation links an authorisation to the payment. cancellation selects the cancellation list.
func (s *PaymentService) AddAuthorisation(ctx context.Context, id, authorisationID string, cancellation bool) (*Payment, error) {
	return s.store.UpdatePayment(ctx, id, func(stored *Payment) (*Payment, error) {
		if stored.TransactionStatus.IsFinalised() {
			return nil, NewFinalisedError(fmt.Sprintf("payment %s has final status %s", stored.ID, stored.TransactionStatus))
		}
		next := stored.Clone()
		list := &next.Authorisations
		if cancellation {
			list = &next.CancellationAuthorisations
		}
		if !slices.Contains(*list, authorisationID) {
			*list = append(*list, authorisationID)
		}
		return next, nil
	})
}

// RemoveAuthorisation unlinks an authorisation, e.g. one that could not be stored after it was linked.
func (s *PaymentService) RemoveAuthorisation(ctx context.Context, id, authorisationID string, cancellation bool) (*Payment, error) {
	return s.store.UpdatePayment(ctx, id, func(stored *Payment) (*Payment, error) {
		next := stored.Clone()
		list := &next.Authorisations
		if cancellation {
			list = &next.CancellationAuthorisations
		}
		*list = slices.DeleteFunc(*list, func(existing string) bool {
			return existing == authorisationID
		})
		return next, nil
	})
}
