package services

import (
	"context"
	"testing"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/payment"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

func TestSandboxAuthorisePsu(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		psuID      string
		password   string
		wantStatus ResultStatus
		wantExempt bool
	}{
		{"correct password", "psu-1", SandboxPassword, ResultSuccess, false},
		{"wrong password", "psu-1", "nope", ResultAttemptFailure, false},
		{"blocked psu", SandboxPsuBlocked, SandboxPassword, ResultFailure, false},
		{"exempted psu", SandboxPsuExempted, SandboxPassword, ResultSuccess, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewAspspConnectorSandbox("123456")
			res, err := s.AuthorisePsu(ctx, ScaRequest{
				AuthorisationID: "auth-1",
				Psu:             xs2a.PsuIdData{PsuID: tt.psuID},
				Password:        tt.password,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Status != tt.wantStatus {
				t.Errorf("got status %s, want %s", res.Status, tt.wantStatus)
			}
			if res.ScaExempted != tt.wantExempt {
				t.Errorf("got exempted %v, want %v", res.ScaExempted, tt.wantExempt)
			}
		})
	}
}

func TestSandboxAttemptsAreLimited(t *testing.T) {
	ctx := context.Background()
	s := NewAspspConnectorSandbox("123456")
	req := ScaRequest{AuthorisationID: "auth-1", Psu: xs2a.PsuIdData{PsuID: "psu-1"}, ScaAuthenticationData: "000000"}

	for i := 1; i < SandboxMaxAttempts; i++ {
		res, err := s.VerifyScaAuthorisation(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != ResultAttemptFailure {
			t.Fatalf("attempt %d: got %s, want %s", i, res.Status, ResultAttemptFailure)
		}
	}

	res, _ := s.VerifyScaAuthorisation(ctx, req)
	if res.Status != ResultFailure {
		t.Errorf("final attempt: got %s, want %s", res.Status, ResultFailure)
	}

	// a different authorisation has its own counter
	req.AuthorisationID = "auth-2"
	res, _ = s.VerifyScaAuthorisation(ctx, req)
	if res.Status != ResultAttemptFailure {
		t.Errorf("other authorisation: got %s, want %s", res.Status, ResultAttemptFailure)
	}
}

func TestSandboxVerifyScaAuthorisation(t *testing.T) {
	ctx := context.Background()
	s := NewAspspConnectorSandbox("123456")

	tests := []struct {
		name           string
		service        xs2a.ServiceType
		psuID          string
		wantConsent    xs2a.ConsentStatus
		wantMultilevel bool
	}{
		{"ais consent", xs2a.ServiceTypeAIS, "psu-1", xs2a.ConsentStatusValid, false},
		{"multilevel consent", xs2a.ServiceTypeAIS, SandboxPsuMultilevel, xs2a.ConsentStatusPartiallyAuthorised, true},
		{"payment", xs2a.ServiceTypePIS, "psu-1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.VerifyScaAuthorisation(ctx, ScaRequest{
				Service:               tt.service,
				AuthorisationID:       "auth-1",
				Psu:                   xs2a.PsuIdData{PsuID: tt.psuID},
				ScaAuthenticationData: "123456",
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Status != ResultSuccess {
				t.Fatalf("got status %s, want %s", res.Status, ResultSuccess)
			}
			if res.ConsentStatus != tt.wantConsent {
				t.Errorf("got consent status %q, want %q", res.ConsentStatus, tt.wantConsent)
			}
			if res.MultilevelScaRequired != tt.wantMultilevel {
				t.Errorf("got multilevel %v, want %v", res.MultilevelScaRequired, tt.wantMultilevel)
			}
		})
	}
}

func TestSandboxAvailableScaMethods(t *testing.T) {
	ctx := context.Background()
	s := NewAspspConnectorSandbox("123456")

	tests := []struct {
		psuID string
		want  int
	}{
		{SandboxPsuNoSca, 0},
		{SandboxPsuSingleSca, 1},
		{SandboxPsuDecoupled, 1},
		{"psu-1", 3},
	}

	for _, tt := range tests {
		t.Run(tt.psuID, func(t *testing.T) {
			methods, err := s.AvailableScaMethods(ctx, ScaRequest{Psu: xs2a.PsuIdData{PsuID: tt.psuID}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(methods) != tt.want {
				t.Errorf("got %d methods, want %d", len(methods), tt.want)
			}
		})
	}
}

func TestSandboxChallenges(t *testing.T) {
	ctx := context.Background()
	s := NewAspspConnectorSandbox("123456")

	res, _ := s.RequestAuthorisationCode(ctx, ScaRequest{AuthenticationMethod: SandboxMethodSMS.AuthenticationMethodID})
	if res.Status != ResultSuccess || res.Challenge == nil || res.Challenge.OtpMaxLength != 6 {
		t.Errorf("sms challenge: got %+v", res)
	}

	res, _ = s.RequestAuthorisationCode(ctx, ScaRequest{AuthenticationMethod: SandboxMethodPush.AuthenticationMethodID})
	if res.Status != ResultFailure {
		t.Errorf("code for decoupled method: got %s, want %s", res.Status, ResultFailure)
	}

	res, _ = s.StartDecoupledAuthorisation(ctx, ScaRequest{AuthenticationMethod: SandboxMethodPush.AuthenticationMethodID})
	if res.Status != ResultSuccess || res.PsuMessage == "" {
		t.Errorf("decoupled start: got %+v", res)
	}
}

func TestSandboxExecutePayment(t *testing.T) {
	ctx := context.Background()
	s := NewAspspConnectorSandbox("123456")

	tests := []struct {
		name       string
		service    payment.Service
		amount     string
		wantStatus xs2a.TransactionStatus
	}{
		{"single payment", payment.ServiceSingle, "12.50", xs2a.TransactionStatusAcceptedSettlementCompleted},
		{"bulk payment", payment.ServiceBulk, "12.50", xs2a.TransactionStatusAcceptedTechnicalValidation},
		{"rejected amount", payment.ServiceSingle, SandboxRejectedAmount, xs2a.TransactionStatusRejected},
		{"unparseable amount", payment.ServiceSingle, "ten", xs2a.TransactionStatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.ExecutePayment(ctx, &payment.Payment{
				ID:               "pay-1",
				PaymentService:   tt.service,
				InstructedAmount: payment.Amount{Currency: "EUR", Amount: tt.amount},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.TransactionStatus != tt.wantStatus {
				t.Errorf("got %s, want %s", res.TransactionStatus, tt.wantStatus)
			}
		})
	}
}

func TestSandboxCancelPayment(t *testing.T) {
	ctx := context.Background()
	s := NewAspspConnectorSandbox("123456")

	tests := []struct {
		name       string
		amount     string
		wantResult ResultStatus
		wantStatus xs2a.TransactionStatus
	}{
		{"cancellable", "12.50", ResultSuccess, xs2a.TransactionStatusCancelled},
		{"refused", SandboxNonCancellableAmount, ResultFailure, xs2a.TransactionStatusAcceptedTechnicalValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.CancelPayment(ctx, &payment.Payment{
				ID:                "pay-1",
				TransactionStatus: xs2a.TransactionStatusAcceptedTechnicalValidation,
				InstructedAmount:  payment.Amount{Currency: "EUR", Amount: tt.amount},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Status != tt.wantResult || res.TransactionStatus != tt.wantStatus {
				t.Errorf("got %s/%s, want %s/%s", res.Status, res.TransactionStatus, tt.wantResult, tt.wantStatus)
			}
		})
	}
}

func TestSandboxDecoupledConfirmation(t *testing.T) {
	ctx := context.Background()
	s := NewAspspConnectorSandbox("123456")
	req := ScaRequest{
		Service:              xs2a.ServiceTypeAIS,
		AuthorisationID:      "auth-1",
		AuthenticationMethod: SandboxMethodPush.AuthenticationMethodID,
	}

	if _, ok := s.ApprovePush(req.AuthorisationID); ok {
		t.Fatal("approved a push that was never sent")
	}

	started, err := s.StartDecoupledAuthorisation(ctx, req)
	if err != nil || started.ConfirmationCode == "" {
		t.Fatalf("start: got %+v, %v", started, err)
	}

	// the PSU has not opened the app yet, even with the right code
	req.ConfirmationCode = started.ConfirmationCode
	res, _ := s.ConfirmAuthorisation(ctx, req)
	if res.Status != ResultAttemptFailure {
		t.Fatalf("unapproved push: got %s, want %s", res.Status, ResultAttemptFailure)
	}

	code, ok := s.ApprovePush(req.AuthorisationID)
	if !ok || code != started.ConfirmationCode {
		t.Fatalf("approve: got %q, %v", code, ok)
	}

	req.ConfirmationCode = "guessed"
	res, _ = s.ConfirmAuthorisation(ctx, req)
	if res.Status != ResultAttemptFailure {
		t.Errorf("wrong code: got %s, want %s", res.Status, ResultAttemptFailure)
	}

	req.ConfirmationCode = code
	res, _ = s.ConfirmAuthorisation(ctx, req)
	if res.Status != ResultSuccess || res.ConsentStatus != xs2a.ConsentStatusValid {
		t.Errorf("approved push: got %+v", res)
	}
}
