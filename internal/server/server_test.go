package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/config"
)

const testOTP = "123456"

func newTestServer(t *testing.T, confirmationRequired bool) http.Handler {
	t.Helper()

	cfg := &config.ServerEnvironment{
		Environment:                       "test",
		Host:                              "127.0.0.1",
		Port:                              8080,
		RequestTimeout:                    5 * time.Second,
		MaxRequestBodyBytes:               64 * 1024,
		StoreBackend:                      "memory",
		AspspConnector:                    "sandbox",
		SandboxOTP:                        testOTP,
		AuthorisationConfirmationRequired: confirmationRequired,
	}

	srv, err := NewServer(nil, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return srv.Router()
}

func do(t *testing.T, h http.Handler, method, path string, headers map[string]string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
	return m
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("got status %d, want %d (body: %s)", rr.Code, want, rr.Body.String())
	}
}

func expectField(t *testing.T, m map[string]any, field, want string) {
	t.Helper()
	if got, _ := m[field].(string); got != want {
		t.Fatalf("%s = %q, want %q", field, got, want)
	}
}

// firstTppMessageCode returns the code of the first tpp message of an error response
func firstTppMessageCode(t *testing.T, m map[string]any) string {
	t.Helper()
	msgs, ok := m["tppMessages"].([]any)
	if !ok || len(msgs) == 0 {
		t.Fatalf("error response has no tppMessages: %v", m)
	}
	msg, _ := msgs[0].(map[string]any)
	code, _ := msg["code"].(string)
	return code
}

func consentRequest() map[string]any {
	return map[string]any{
		"access": map[string]any{
			"accounts": []map[string]any{{"iban": "DE89370400440532013000", "currency": "EUR"}},
		},
		"recurringIndicator": false,
		"validUntil":         time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		"frequencyPerDay":    1,
	}
}

func paymentRequest(amount string) map[string]any {
	return map[string]any{
		"debtorAccount":    map[string]any{"iban": "DE89370400440532013000"},
		"instructedAmount": map[string]any{"currency": "EUR", "amount": amount},
		"creditorAccount":  map[string]any{"iban": "DE02100100109307118603"},
		"creditorName":     "Merchant",
	}
}

func TestCommonEndpoints(t *testing.T) {
	h := newTestServer(t, false)

	tests := []struct {
		name     string
		path     string
		wantCode int
		contains string
	}{
		{"liveness", "/health/live", http.StatusOK, "OK"},
		{"readiness without database", "/health/ready", http.StatusOK, "ready"},
		{"version", "/version", http.StatusOK, "xs2a-server"},
		{"openapi document", "/swagger/doc.json", http.StatusOK, "/v1/consents"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, tt.path, nil, nil)
			expectStatus(t, rr, tt.wantCode)
			if !strings.Contains(rr.Body.String(), tt.contains) {
				t.Errorf("body %q does not contain %q", rr.Body.String(), tt.contains)
			}
			if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Error("security headers not set")
			}
		})
	}
}

func TestAccountConsentAuthorisation(t *testing.T) {
	h := newTestServer(t, false)

	rr := do(t, h, http.MethodPost, "/v1/consents", map[string]string{"TPP-ID": "tpp-1"}, consentRequest())
	expectStatus(t, rr, http.StatusCreated)
	created := decode(t, rr)
	expectField(t, created, "consentStatus", "received")
	consentID := created["consentId"].(string)
	consentPath := "/v1/consents/" + consentID

	// accounts cannot be read before the consent is authorised
	rr = do(t, h, http.MethodGet, "/v1/accounts", map[string]string{"Consent-ID": consentID}, nil)
	expectStatus(t, rr, http.StatusUnauthorized)
	if code := firstTppMessageCode(t, decode(t, rr)); code != "CONSENT_INVALID" {
		t.Errorf("error code = %s, want CONSENT_INVALID", code)
	}

	rr = do(t, h, http.MethodPost, consentPath+"/authorisations", map[string]string{"PSU-ID": "single-sca"}, nil)
	expectStatus(t, rr, http.StatusCreated)
	auth := decode(t, rr)
	expectField(t, auth, "scaStatus", "psuIdentified")
	authPath := consentPath + "/authorisations/" + auth["authorisationId"].(string)

	// the PSU has a single embedded method, so it is selected straight after authentication
	rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"psuData": map[string]any{"password": "12345"}})
	expectStatus(t, rr, http.StatusOK)
	auth = decode(t, rr)
	expectField(t, auth, "scaStatus", "scaMethodSelected")
	if auth["challengeData"] == nil {
		t.Error("expected challenge data for the selected method")
	}

	rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"scaAuthenticationData": testOTP})
	expectStatus(t, rr, http.StatusOK)
	expectField(t, decode(t, rr), "scaStatus", "finalised")

	rr = do(t, h, http.MethodGet, consentPath+"/status", nil, nil)
	expectStatus(t, rr, http.StatusOK)
	expectField(t, decode(t, rr), "consentStatus", "valid")

	rr = do(t, h, http.MethodGet, authPath, nil, nil)
	expectStatus(t, rr, http.StatusOK)
	expectField(t, decode(t, rr), "scaStatus", "finalised")

	// a finalised authorisation cannot be changed
	rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"scaAuthenticationData": testOTP})
	expectStatus(t, rr, http.StatusConflict)

	rr = do(t, h, http.MethodGet, "/v1/accounts", map[string]string{"Consent-ID": consentID}, nil)
	expectStatus(t, rr, http.StatusOK)
	accounts := decode(t, rr)
	if list, _ := accounts["accounts"].([]any); len(list) != 1 {
		t.Errorf("got %d accounts, want 1", len(list))
	}

	// one-off consents allow a single access per day
	rr = do(t, h, http.MethodGet, "/v1/accounts", map[string]string{"Consent-ID": consentID}, nil)
	expectStatus(t, rr, http.StatusTooManyRequests)

	rr = do(t, h, http.MethodGet, "/admin/consents/"+consentID+"/checksum", nil, nil)
	expectStatus(t, rr, http.StatusOK)
	report := decode(t, rr)
	if report["sealed"] != true || report["valid"] != true {
		t.Errorf("checksum report = %v, want a sealed and valid consent", report)
	}

	rr = do(t, h, http.MethodGet, consentPath+"/authorisations", nil, nil)
	expectStatus(t, rr, http.StatusOK)
	if ids, _ := decode(t, rr)["authorisationIds"].([]any); len(ids) != 1 {
		t.Errorf("got %d authorisation ids, want 1", len(ids))
	}

	rr = do(t, h, http.MethodDelete, consentPath, nil, nil)
	expectStatus(t, rr, http.StatusNoContent)

	rr = do(t, h, http.MethodGet, consentPath+"/status", nil, nil)
	expectStatus(t, rr, http.StatusOK)
	expectField(t, decode(t, rr), "consentStatus", "terminatedByTpp")
}

func TestAuthorisationWrongTanFailsAfterMaxAttempts(t *testing.T) {
	h := newTestServer(t, false)

	rr := do(t, h, http.MethodPost, "/v1/consents", nil, consentRequest())
	expectStatus(t, rr, http.StatusCreated)
	consentPath := "/v1/consents/" + decode(t, rr)["consentId"].(string)

	rr = do(t, h, http.MethodPost, consentPath+"/authorisations", map[string]string{"PSU-ID": "psu-1"}, nil)
	expectStatus(t, rr, http.StatusCreated)
	authPath := consentPath + "/authorisations/" + decode(t, rr)["authorisationId"].(string)

	rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"psuData": map[string]any{"password": "12345"}})
	expectStatus(t, rr, http.StatusOK)
	auth := decode(t, rr)
	expectField(t, auth, "scaStatus", "psuAuthenticated")
	if methods, _ := auth["scaMethods"].([]any); len(methods) != 3 {
		t.Fatalf("got %d sca methods, want 3", len(methods))
	}

	rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"authenticationMethodId": "chip-otp"})
	expectStatus(t, rr, http.StatusOK)
	expectField(t, decode(t, rr), "scaStatus", "scaMethodSelected")

	steps := []struct {
		wantScaStatus string
	}{
		{"scaMethodSelected"},
		{"scaMethodSelected"},
		{"failed"},
	}
	for i, step := range steps {
		rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"scaAuthenticationData": "000000"})
		expectStatus(t, rr, http.StatusUnauthorized)
		if code := firstTppMessageCode(t, decode(t, rr)); code != "SCA_INVALID" {
			t.Errorf("attempt %d: error code = %s, want SCA_INVALID", i+1, code)
		}

		rr = do(t, h, http.MethodGet, authPath, nil, nil)
		expectStatus(t, rr, http.StatusOK)
		expectField(t, decode(t, rr), "scaStatus", step.wantScaStatus)
	}

	rr = do(t, h, http.MethodGet, consentPath+"/status", nil, nil)
	expectStatus(t, rr, http.StatusOK)
	expectField(t, decode(t, rr), "consentStatus", "received")
}

func TestDecoupledConsentAuthorisation(t *testing.T) {
	h := newTestServer(t, false)

	rr := do(t, h, http.MethodPost, "/v1/consents", nil, consentRequest())
	expectStatus(t, rr, http.StatusCreated)
	consentPath := "/v1/consents/" + decode(t, rr)["consentId"].(string)

	rr = do(t, h, http.MethodPost, consentPath+"/authorisations", map[string]string{"PSU-ID": "decoupled"}, nil)
	expectStatus(t, rr, http.StatusCreated)
	authID := decode(t, rr)["authorisationId"].(string)
	authPath := consentPath + "/authorisations/" + authID

	rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"psuData": map[string]any{"password": "12345"}})
	expectStatus(t, rr, http.StatusOK)
	expectField(t, decode(t, rr), "scaStatus", "psuAuthenticated")

	rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"authenticationMethodId": "push-app"})
	expectStatus(t, rr, http.StatusOK)
	selected := decode(t, rr)
	expectField(t, selected, "scaStatus", "scaMethodSelected")
	if _, ok := selected["confirmationCode"]; ok {
		t.Fatal("the push confirmation code must not be returned to the TPP")
	}

	rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{})
	expectStatus(t, rr, http.StatusOK)
	started := decode(t, rr)
	expectField(t, started, "scaStatus", "started")
	if _, ok := started["confirmationCode"]; ok {
		t.Fatal("the push confirmation code must not be returned to the TPP")
	}

	// the PSU has not confirmed in the app yet
	rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"confirmationCode": "guessed"})
	expectStatus(t, rr, http.StatusUnauthorized)
	rr = do(t, h, http.MethodGet, authPath, nil, nil)
	expectStatus(t, rr, http.StatusOK)
	expectField(t, decode(t, rr), "scaStatus", "started")

	rr = do(t, h, http.MethodPost, "/admin/sandbox/decoupled/"+authID+"/approve", nil, nil)
	expectStatus(t, rr, http.StatusOK)
	code, _ := decode(t, rr)["confirmation_code"].(string)
	if code == "" {
		t.Fatal("expected the code shown in the app")
	}

	rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"confirmationCode": code})
	expectStatus(t, rr, http.StatusOK)
	expectField(t, decode(t, rr), "scaStatus", "finalised")

	rr = do(t, h, http.MethodGet, consentPath+"/status", nil, nil)
	expectStatus(t, rr, http.StatusOK)
	expectField(t, decode(t, rr), "consentStatus", "valid")

	rr = do(t, h, http.MethodPost, "/admin/sandbox/decoupled/"+authID+"/approve", nil, nil)
	expectStatus(t, rr, http.StatusNotFound)
}

func TestPaymentAuthorisation(t *testing.T) {
	tests := []struct {
		name                  string
		confirmationRequired  bool
		amount                string
		wantTransactionStatus string
	}{
		{"payment executed", false, "123.50", "ACSC"},
		{"payment executed after confirmation", true, "10.00", "ACSC"},
		{"payment rejected by the bank", false, "999999.99", "RJCT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, tt.confirmationRequired)

			rr := do(t, h, http.MethodPost, "/v1/payments/sepa-credit-transfers", map[string]string{"PSU-ID": "single-sca"}, paymentRequest(tt.amount))
			expectStatus(t, rr, http.StatusCreated)
			created := decode(t, rr)
			expectField(t, created, "transactionStatus", "RCVD")
			paymentPath := "/v1/payments/sepa-credit-transfers/" + created["paymentId"].(string)

			rr = do(t, h, http.MethodPost, paymentPath+"/authorisations", map[string]string{"PSU-ID": "single-sca"}, map[string]any{})
			expectStatus(t, rr, http.StatusCreated)
			authPath := paymentPath + "/authorisations/" + decode(t, rr)["authorisationId"].(string)

			rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"psuData": map[string]any{"password": "12345"}})
			expectStatus(t, rr, http.StatusOK)
			expectField(t, decode(t, rr), "scaStatus", "scaMethodSelected")

			rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"scaAuthenticationData": testOTP})
			if tt.confirmationRequired {
				expectStatus(t, rr, http.StatusOK)
				started := decode(t, rr)
				expectField(t, started, "scaStatus", "started")
				code, _ := started["confirmationCode"].(string)
				if code == "" {
					t.Fatal("expected a confirmation code")
				}
				rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"confirmationCode": code})
			}

			if tt.wantTransactionStatus == "RJCT" {
				expectStatus(t, rr, http.StatusBadRequest)
				if code := firstTppMessageCode(t, decode(t, rr)); code != "PAYMENT_FAILED" {
					t.Errorf("error code = %s, want PAYMENT_FAILED", code)
				}
				rr = do(t, h, http.MethodGet, authPath, nil, nil)
				expectStatus(t, rr, http.StatusOK)
				expectField(t, decode(t, rr), "scaStatus", "failed")
			} else {
				expectStatus(t, rr, http.StatusOK)
				res := decode(t, rr)
				expectField(t, res, "scaStatus", "finalised")
				expectField(t, res, "transactionStatus", tt.wantTransactionStatus)
			}

			rr = do(t, h, http.MethodGet, paymentPath+"/status", nil, nil)
			expectStatus(t, rr, http.StatusOK)
			expectField(t, decode(t, rr), "transactionStatus", tt.wantTransactionStatus)
		})
	}
}

func TestPaymentCancellation(t *testing.T) {
	h := newTestServer(t, false)

	rr := do(t, h, http.MethodPost, "/v1/payments/sepa-credit-transfers", nil, paymentRequest("5.00"))
	expectStatus(t, rr, http.StatusCreated)
	paymentPath := "/v1/payments/sepa-credit-transfers/" + decode(t, rr)["paymentId"].(string)

	rr = do(t, h, http.MethodPost, paymentPath+"/cancellation-authorisations", map[string]string{"PSU-ID": "single-sca"}, nil)
	expectStatus(t, rr, http.StatusCreated)
	authPath := paymentPath + "/cancellation-authorisations/" + decode(t, rr)["authorisationId"].(string)

	rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"psuData": map[string]any{"password": "12345"}})
	expectStatus(t, rr, http.StatusOK)
	rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"scaAuthenticationData": testOTP})
	expectStatus(t, rr, http.StatusOK)
	expectField(t, decode(t, rr), "transactionStatus", "CANC")

	// the cancellation authorisation is not visible as a payment authorisation
	rr = do(t, h, http.MethodGet, strings.Replace(authPath, "cancellation-authorisations", "authorisations", 1), nil, nil)
	expectStatus(t, rr, http.StatusNotFound)
}

func TestPaymentCancellationRefusedByTheBank(t *testing.T) {
	h := newTestServer(t, false)

	rr := do(t, h, http.MethodPost, "/v1/payments/sepa-credit-transfers", nil, paymentRequest("888888.88"))
	expectStatus(t, rr, http.StatusCreated)
	paymentPath := "/v1/payments/sepa-credit-transfers/" + decode(t, rr)["paymentId"].(string)

	rr = do(t, h, http.MethodPost, paymentPath+"/cancellation-authorisations", map[string]string{"PSU-ID": "single-sca"}, nil)
	expectStatus(t, rr, http.StatusCreated)
	authPath := paymentPath + "/cancellation-authorisations/" + decode(t, rr)["authorisationId"].(string)

	rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"psuData": map[string]any{"password": "12345"}})
	expectStatus(t, rr, http.StatusOK)
	rr = do(t, h, http.MethodPut, authPath, nil, map[string]any{"scaAuthenticationData": testOTP})
	expectStatus(t, rr, http.StatusMethodNotAllowed)
	if code := firstTppMessageCode(t, decode(t, rr)); code != "CANCELLATION_INVALID" {
		t.Errorf("error code = %s, want CANCELLATION_INVALID", code)
	}

	rr = do(t, h, http.MethodGet, authPath, nil, nil)
	expectStatus(t, rr, http.StatusOK)
	expectField(t, decode(t, rr), "scaStatus", "failed")

	rr = do(t, h, http.MethodGet, paymentPath+"/status", nil, nil)
	expectStatus(t, rr, http.StatusOK)
	expectField(t, decode(t, rr), "transactionStatus", "RCVD")
}

func TestRequestErrors(t *testing.T) {
	h := newTestServer(t, false)

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		wantCode int
		wantTpp  string
	}{
		{"unknown consent", http.MethodGet, "/v1/consents/4f8c0d63-7d3c-4d6c-9b63-2d0b7e4e2a11", nil, http.StatusForbidden, "CONSENT_UNKNOWN_403"},
		{"consent without access", http.MethodPost, "/v1/consents", map[string]any{"validUntil": "2099-01-01"}, http.StatusBadRequest, "FORMAT_ERROR"},
		{"unknown payment service", http.MethodPost, "/v1/standing-orders/sepa-credit-transfers", paymentRequest("1.00"), http.StatusMethodNotAllowed, "SERVICE_INVALID"},
		{"unknown payment product", http.MethodPost, "/v1/payments/cheques", paymentRequest("1.00"), http.StatusNotFound, "PRODUCT_UNKNOWN"},
		{"unknown payment", http.MethodGet, "/v1/payments/sepa-credit-transfers/4f8c0d63-7d3c-4d6c-9b63-2d0b7e4e2a11/status", nil, http.StatusNotFound, "RESOURCE_UNKNOWN_404"},
		{"accounts without consent id", http.MethodGet, "/v1/accounts", nil, http.StatusBadRequest, "FORMAT_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, tt.method, tt.path, nil, tt.body)
			expectStatus(t, rr, tt.wantCode)
			if code := firstTppMessageCode(t, decode(t, rr)); code != tt.wantTpp {
				t.Errorf("error code = %s, want %s", code, tt.wantTpp)
			}
		})
	}
}
