package consent_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/consent"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/store/memory"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

var (
	ibanA = xs2a.AccountReference{Iban: "DE89370400440532013000", Currency: "EUR"}
	ibanB = xs2a.AccountReference{Iban: "DE02100100109307118603", Currency: "EUR"}
	ibanC = xs2a.AccountReference{Iban: "DE75512108001245126199", Currency: "EUR"}
)

// clock is a settable time source
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (*consent.Service, *memory.Store, *clock) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	clk := &clock{now: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)}
	guard := consent.NewIntegrityGuard(consent.DefaultRegistry(), logger)
	return consent.NewService(store, guard, logger, consent.WithClock(clk.Now)), store, clk
}

func aisRequest(validUntil time.Time, accounts ...xs2a.AccountReference) consent.CreateRequest {
	return consent.CreateRequest{
		Type:               consent.TypeAIS,
		TppID:              "tpp-1",
		Access:             xs2a.AccountAccess{Accounts: accounts, Balances: accounts},
		RecurringIndicator: true,
		ValidUntil:         validUntil,
		FrequencyPerDay:    2,
	}
}

func TestCreate(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, aisRequest(clk.now.AddDate(0, 1, 0), ibanA))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Status != xs2a.ConsentStatusReceived {
		t.Errorf("got status %s, want %s", c.Status, xs2a.ConsentStatusReceived)
	}
	if !c.StatusChangedAt.Equal(c.CreatedAt) {
		t.Errorf("status change time %v differs from creation time %v", c.StatusChangedAt, c.CreatedAt)
	}
	if len(c.Checksum) != 0 {
		t.Errorf("received consent must not be sealed, got checksum %q", c.Checksum)
	}
	if c.FrequencyPerDay != 2 {
		t.Errorf("got frequency %d, want 2", c.FrequencyPerDay)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, clk := newTestService(t)

	tests := []struct {
		name string
		req  consent.CreateRequest
	}{
		{"unknown type", consent.CreateRequest{Type: "FX", Access: xs2a.AccountAccess{Accounts: []xs2a.AccountReference{ibanA}}}},
		{"empty access", aisRequest(clk.now.AddDate(0, 1, 0))},
		{"valid until in the past", aisRequest(clk.now.AddDate(0, 0, -1), ibanA)},
		{"missing valid until", aisRequest(time.Time{}, ibanA)},
		{"recurring without frequency", func() consent.CreateRequest {
			r := aisRequest(clk.now.AddDate(0, 1, 0), ibanA)
			r.FrequencyPerDay = 0
			return r
		}()},
		{"piis with two accounts", consent.CreateRequest{
			Type:   consent.TypePIISTpp,
			Access: xs2a.AccountAccess{Accounts: []xs2a.AccountReference{ibanA, ibanB}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			if !consent.HasCode(err, consent.ErrCodeValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

// Access may change freely until the consent is authorised; afterwards the seal protects it.
func TestSealedAccessCannotChange(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, aisRequest(clk.now.AddDate(0, 1, 0), ibanA))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.UpdateTppAccess(ctx, c.ID, xs2a.AccountAccess{Accounts: []xs2a.AccountReference{ibanA, ibanB}}); err != nil {
		t.Fatalf("unsealed update: %v", err)
	}

	valid, err := svc.Authorise(ctx, c.ID, xs2a.ConsentStatusValid, false)
	if err != nil {
		t.Fatalf("authorise: %v", err)
	}
	if len(valid.Checksum) == 0 {
		t.Fatal("valid consent was not sealed")
	}

	report, err := svc.VerifyChecksum(ctx, c.ID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !report.Sealed || !report.Known || !report.Valid || report.Version != "v2" {
		t.Errorf("got report %+v", report)
	}

	// unchanged access passes verification
	if _, err := svc.AddPsu(ctx, c.ID, xs2a.PsuIdData{PsuID: "psu-1"}); err != nil {
		t.Fatalf("write with unchanged access: %v", err)
	}

	_, err = svc.UpdateTppAccess(ctx, c.ID, xs2a.AccountAccess{Accounts: []xs2a.AccountReference{ibanA, ibanB, ibanC}})
	if !consent.HasCode(err, consent.ErrCodeIntegrity) {
		t.Fatalf("got %v, want integrity error", err)
	}

	got, _ := svc.Get(ctx, c.ID)
	if len(got.TppAccess.Accounts) != 2 {
		t.Errorf("rejected write was persisted: %v", got.TppAccess.Accounts)
	}
}

func TestFinalisedConsentIsReadOnly(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	c, _ := svc.Create(ctx, aisRequest(clk.now.AddDate(0, 1, 0), ibanA))
	if _, err := svc.Reject(ctx, c.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, c.ID, xs2a.ConsentStatusValid); !consent.HasCode(err, consent.ErrCodeFinalised) {
		t.Errorf("got %v, want finalised error", err)
	}
	if _, err := svc.AddAuthorisation(ctx, c.ID, "auth-1"); !consent.HasCode(err, consent.ErrCodeFinalised) {
		t.Errorf("got %v, want finalised error", err)
	}

	status, err := svc.GetStatus(ctx, c.ID)
	if err != nil || status != xs2a.ConsentStatusRejected {
		t.Errorf("got %s, %v", status, err)
	}
}

func TestStatusChangeTimestamp(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	c, _ := svc.Create(ctx, aisRequest(clk.now.AddDate(0, 1, 0), ibanA))
	created := c.CreatedAt

	clk.now = clk.now.Add(time.Minute)
	c, _ = svc.AddAuthorisation(ctx, c.ID, "auth-1")
	if !c.StatusChangedAt.Equal(created) {
		t.Errorf("status change time moved without a status change")
	}

	clk.now = clk.now.Add(time.Minute)
	c, _ = svc.Authorise(ctx, c.ID, xs2a.ConsentStatusValid, false)
	if !c.StatusChangedAt.Equal(clk.now) {
		t.Errorf("got status change time %v, want %v", c.StatusChangedAt, clk.now)
	}
	if !c.CreatedAt.Equal(created) {
		t.Errorf("creation time changed")
	}
}

func TestAuthoriseRejectsOtherStatuses(t *testing.T) {
	svc, _, clk := newTestService(t)
	c, _ := svc.Create(context.Background(), aisRequest(clk.now.AddDate(0, 1, 0), ibanA))

	if _, err := svc.Authorise(context.Background(), c.ID, xs2a.ConsentStatusRevokedByPsu, false); !consent.HasCode(err, consent.ErrCodeValidation) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestRegisterUsage(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	c, _ := svc.Create(ctx, aisRequest(clk.now.AddDate(0, 1, 0), ibanA))

	if _, err := svc.RegisterUsage(ctx, c.ID); !consent.HasCode(err, consent.ErrCodeStatusInvalid) {
		t.Fatalf("received consent: got %v, want status invalid", err)
	}

	if _, err := svc.Authorise(ctx, c.ID, xs2a.ConsentStatusValid, false); err != nil {
		t.Fatalf("authorise: %v", err)
	}

	for _, want := range []int{1, 0} {
		left, err := svc.RegisterUsage(ctx, c.ID)
		if err != nil {
			t.Fatalf("register usage: %v", err)
		}
		if left != want {
			t.Errorf("got %d accesses left, want %d", left, want)
		}
	}
	if _, err := svc.RegisterUsage(ctx, c.ID); !consent.HasCode(err, consent.ErrCodeAccessExceeded) {
		t.Errorf("got %v, want access exceeded", err)
	}

	// a new day resets the counter and drops the old one
	clk.now = clk.now.AddDate(0, 0, 1)
	left, err := svc.RegisterUsage(ctx, c.ID)
	if err != nil || left != 1 {
		t.Errorf("next day: got %d, %v", left, err)
	}
	got, _ := svc.Get(ctx, c.ID)
	if len(got.UsageCounters) != 1 {
		t.Errorf("got usage counters %v", got.UsageCounters)
	}

	// the seal still holds after usage was recorded
	report, _ := svc.VerifyChecksum(ctx, c.ID)
	if !report.Valid {
		t.Errorf("got report %+v", report)
	}
}

func TestExpireConsents(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	short, _ := svc.Create(ctx, aisRequest(clk.now.AddDate(0, 0, 1), ibanA))
	long, _ := svc.Create(ctx, aisRequest(clk.now.AddDate(0, 1, 0), ibanB))
	if _, err := svc.Authorise(ctx, short.ID, xs2a.ConsentStatusValid, false); err != nil {
		t.Fatalf("authorise: %v", err)
	}

	// the consent is still valid on its last day
	n, err := svc.ExpireConsents(ctx)
	if err != nil || n != 0 {
		t.Fatalf("same day: got %d, %v", n, err)
	}

	clk.now = clk.now.AddDate(0, 0, 2)
	n, err = svc.ExpireConsents(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d expired, want 1", n)
	}

	got, _ := svc.Get(ctx, short.ID)
	if got.Status != xs2a.ConsentStatusExpired {
		t.Errorf("got status %s, want %s", got.Status, xs2a.ConsentStatusExpired)
	}
	got, _ = svc.Get(ctx, long.ID)
	if got.Status != xs2a.ConsentStatusReceived {
		t.Errorf("got status %s, want %s", got.Status, xs2a.ConsentStatusReceived)
	}

	// expired consents are finalised and not picked up again
	n, _ = svc.ExpireConsents(ctx)
	if n != 0 {
		t.Errorf("second pass expired %d consents", n)
	}
}

func TestExpiryWorker(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c, _ := svc.Create(ctx, aisRequest(clk.now, ibanA))
	clk.now = clk.now.AddDate(0, 0, 1)

	w := consent.NewExpiryWorker(svc, time.Hour, logger)
	w.Start(ctx)

	// the first pass runs immediately
	deadline := time.Now().Add(2 * time.Second)
	for {
		got, _ := svc.Get(ctx, c.ID)
		if got.Status == xs2a.ConsentStatusExpired {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("consent not expired, status %s", got.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}
	w.Stop()
}

func TestExpiryWorkerDisabled(t *testing.T) {
	svc, _, _ := newTestService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	w := consent.NewExpiryWorker(svc, 0, logger)
	w.Start(context.Background())
	w.Stop()
}
