package payment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/payment"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/store/memory"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

func newTestService() *payment.PaymentService {
	return payment.NewPaymentService(memory.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validRequest() payment.InitiateRequest {
	return payment.InitiateRequest{
		PaymentService:   payment.ServiceSingle,
		PaymentProduct:   "sepa-credit-transfers",
		TppID:            "tpp-1",
		DebtorAccount:    xs2a.AccountReference{Iban: "DE89370400440532013000"},
		CreditorAccount:  xs2a.AccountReference{Iban: "DE02100100109307118603"},
		CreditorName:     "Merchant",
		InstructedAmount: payment.Amount{Currency: "EUR", Amount: "123.45"},
	}
}

func TestInitiate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p, err := svc.Initiate(ctx, validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" || p.TransactionStatus != xs2a.TransactionStatusReceived {
		t.Errorf("got %+v", p)
	}
	if !p.StatusChangedAt.Equal(p.CreatedAt) {
		t.Error("status change time differs from creation time")
	}

	got, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.InstructedAmount != p.InstructedAmount {
		t.Errorf("got amount %+v, want %+v", got.InstructedAmount, p.InstructedAmount)
	}
}

func TestInitiateValidation(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name   string
		modify func(r *payment.InitiateRequest)
	}{
		{"unknown payment service", func(r *payment.InitiateRequest) { r.PaymentService = "instant-payments" }},
		{"missing product", func(r *payment.InitiateRequest) { r.PaymentProduct = " " }},
		{"missing debtor", func(r *payment.InitiateRequest) { r.DebtorAccount = xs2a.AccountReference{} }},
		{"missing creditor", func(r *payment.InitiateRequest) { r.CreditorAccount = xs2a.AccountReference{} }},
		{"missing amount", func(r *payment.InitiateRequest) { r.InstructedAmount.Amount = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.modify(&req)
			_, err := svc.Initiate(context.Background(), req)
			if !payment.HasCode(err, payment.ErrCodeValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestUpdateTransactionStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	p, _ := svc.Initiate(ctx, validRequest())

	if _, err := svc.UpdateTransactionStatus(ctx, p.ID, "DONE"); !payment.HasCode(err, payment.ErrCodeValidation) {
		t.Errorf("unknown status: got %v", err)
	}

	if _, err := svc.UpdateTransactionStatus(ctx, p.ID, xs2a.TransactionStatusAcceptedTechnicalValidation); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := svc.UpdateTransactionStatus(ctx, p.ID, xs2a.TransactionStatusCancelled); err != nil {
		t.Fatalf("update: %v", err)
	}

	// finalised payments keep their status
	if _, err := svc.UpdateTransactionStatus(ctx, p.ID, xs2a.TransactionStatusAcceptedSettlementCompleted); !payment.HasCode(err, payment.ErrCodeFinalised) {
		t.Errorf("got %v, want finalised error", err)
	}
	if _, err := svc.AddAuthorisation(ctx, p.ID, "auth-1", false); !payment.HasCode(err, payment.ErrCodeFinalised) {
		t.Errorf("got %v, want finalised error", err)
	}

	if _, err := svc.UpdateTransactionStatus(ctx, "missing", xs2a.TransactionStatusCancelled); !payment.HasCode(err, payment.ErrCodeNotFound) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestTransitionTransactionStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	p, _ := svc.Initiate(ctx, validRequest())

	// the first writer takes the payment out of RCVD, the second finds it gone
	if _, err := svc.TransitionTransactionStatus(ctx, p.ID, xs2a.TransactionStatusReceived, xs2a.TransactionStatusAcceptedTechnicalValidation); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if _, err := svc.TransitionTransactionStatus(ctx, p.ID, xs2a.TransactionStatusReceived, xs2a.TransactionStatusAcceptedTechnicalValidation); !payment.HasCode(err, payment.ErrCodeStatusChanged) {
		t.Errorf("got %v, want status changed error", err)
	}

	tests := []struct {
		name     string
		from     xs2a.TransactionStatus
		to       xs2a.TransactionStatus
		wantCode payment.ErrorCode
	}{
		{"unknown target", xs2a.TransactionStatusAcceptedTechnicalValidation, "DONE", payment.ErrCodeValidation},
		{"wrong source", xs2a.TransactionStatusReceived, xs2a.TransactionStatusRejected, payment.ErrCodeStatusChanged},
		{"settle", xs2a.TransactionStatusAcceptedTechnicalValidation, xs2a.TransactionStatusAcceptedSettlementCompleted, ""},
		{"after settlement", xs2a.TransactionStatusAcceptedSettlementCompleted, xs2a.TransactionStatusCancelled, payment.ErrCodeFinalised},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.TransitionTransactionStatus(ctx, p.ID, tt.from, tt.to)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !payment.HasCode(err, tt.wantCode) {
				t.Errorf("got %v, want %s", err, tt.wantCode)
			}
		})
	}

	got, _ := svc.Get(ctx, p.ID)
	if got.TransactionStatus != xs2a.TransactionStatusAcceptedSettlementCompleted {
		t.Errorf("got %s, want ACSC", got.TransactionStatus)
	}
}

func TestRemoveAuthorisation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	p, _ := svc.Initiate(ctx, validRequest())

	if _, err := svc.AddAuthorisation(ctx, p.ID, "auth-1", false); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddAuthorisation(ctx, p.ID, "auth-2", false); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, err := svc.RemoveAuthorisation(ctx, p.ID, "auth-1", false)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(got.Authorisations) != 1 || got.Authorisations[0] != "auth-2" {
		t.Errorf("got authorisations %v, want [auth-2]", got.Authorisations)
	}
}

func TestAddAuthorisation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	p, _ := svc.Initiate(ctx, validRequest())

	for range 2 {
		if _, err := svc.AddAuthorisation(ctx, p.ID, "auth-1", false); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	got, err := svc.AddAuthorisation(ctx, p.ID, "auth-2", true)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(got.Authorisations) != 1 || len(got.CancellationAuthorisations) != 1 {
		t.Errorf("got authorisations %v cancellation %v", got.Authorisations, got.CancellationAuthorisations)
	}
}
