package services

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/config"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/crypto"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/payment"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

func newTestRemote(t *testing.T, handler http.HandlerFunc) *AspspConnectorRemote {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAspspConnectorRemote(srv.URL, &http.Client{Timeout: 2 * time.Second}, nil)
}

func TestRemoteAuthorisePsu(t *testing.T) {
	var got ScaRequest
	remote := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/psu/authorise" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(AuthorisePsuResult{Status: ResultSuccess, ScaExempted: true})
	})

	res, err := remote.AuthorisePsu(context.Background(), ScaRequest{
		Service:         xs2a.ServiceTypeAIS,
		ParentID:        "consent-1",
		AuthorisationID: "auth-1",
		Psu:             xs2a.PsuIdData{PsuID: "psu-1"},
		Password:        "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != ResultSuccess || !res.ScaExempted {
		t.Errorf("got %+v", res)
	}
	if got.Psu.PsuID != "psu-1" || got.Password != "secret" || got.ParentID != "consent-1" {
		t.Errorf("request not forwarded: %+v", got)
	}
}

func TestRemoteAvailableScaMethods(t *testing.T) {
	remote := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(scaMethodsResponse{ScaMethods: []xs2a.AuthenticationObject{SandboxMethodSMS, SandboxMethodPush}})
	})

	methods, err := remote.AvailableScaMethods(context.Background(), ScaRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(methods) != 2 || !methods[1].Decoupled {
		t.Errorf("got %+v", methods)
	}
}

func TestRemoteStartDecoupledAuthorisation(t *testing.T) {
	remote := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sca/decoupled" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(ChallengeResult{Status: ResultSuccess, PsuMessage: "check the app", ConfirmationCode: "app-code"})
	})

	res, err := remote.StartDecoupledAuthorisation(context.Background(), ScaRequest{AuthorisationID: "auth-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != ResultSuccess || res.ConfirmationCode != "app-code" {
		t.Errorf("got %+v", res)
	}
}

func TestRemoteExecutePayment(t *testing.T) {
	var got paymentRequest
	remote := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payments/execute" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(PaymentResult{Status: ResultSuccess, TransactionStatus: xs2a.TransactionStatusAcceptedSettlementCompleted})
	})

	res, err := remote.ExecutePayment(context.Background(), &payment.Payment{
		ID:               "pay-1",
		PaymentService:   payment.ServiceSingle,
		PaymentProduct:   "sepa-credit-transfers",
		InstructedAmount: payment.Amount{Currency: "EUR", Amount: "10.00"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TransactionStatus != xs2a.TransactionStatusAcceptedSettlementCompleted {
		t.Errorf("got %s", res.TransactionStatus)
	}
	if got.PaymentID != "pay-1" || got.InstructedAmount.Amount != "10.00" {
		t.Errorf("payment not forwarded: %+v", got)
	}
}

func TestRemoteErrorStatus(t *testing.T) {
	remote := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	})

	if _, err := remote.VerifyScaAuthorisation(context.Background(), ScaRequest{}); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestRemoteSignsRequests(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	key, err := jwk.Import(priv)
	if err != nil {
		t.Fatalf("failed to import key: %v", err)
	}
	signer, err := crypto.NewRequestSigner(key)
	if err != nil {
		t.Fatalf("NewRequestSigner() error = %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("failed to read body: %v", err)
		}
		if err := crypto.VerifyDetached(r.Header.Get("X-JWS-Signature"), body, key); err != nil {
			t.Errorf("request signature does not verify: %v", err)
		}
		_ = json.NewEncoder(w).Encode(VerifyResult{Status: ResultSuccess})
	}))
	t.Cleanup(srv.Close)

	remote := NewAspspConnectorRemote(srv.URL, &http.Client{Timeout: 2 * time.Second}, signer)
	res, err := remote.VerifyScaAuthorisation(context.Background(), ScaRequest{AuthorisationID: "auth-1", ScaAuthenticationData: "123456"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != ResultSuccess {
		t.Errorf("got %+v", res)
	}
}

func TestNewAspspConnector(t *testing.T) {
	tests := []struct {
		name      string
		connector string
		wantErr   bool
	}{
		{"sandbox", "sandbox", false},
		{"remote", "remote", false},
		{"unknown", "carrier-pigeon", true},
		{"remote with missing signing key", "remote-signed", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.ServerEnvironment{
				AspspConnector: strings.TrimSuffix(tt.connector, "-signed"),
				AspspBaseURL:   "http://localhost:9999",
				AspspTimeout:   time.Second,
				SandboxOTP:     "123456",
			}
			if strings.HasSuffix(tt.connector, "-signed") {
				cfg.AspspSigningKeyPath = filepath.Join(t.TempDir(), "missing.jwk")
			}
			_, err := NewAspspConnector(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("got err %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
