//go:build integration

// functions that are useful in integration tests

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

type apiResponse struct {
	statusCode int
	body       map[string]any
	raw        []byte
}

// field returns a top level string field of the response body
func (r apiResponse) field(name string) string {
	s, _ := r.body[name].(string)
	return s
}

// tppMessageCode returns the code of the first tpp message of an error response
func (r apiResponse) tppMessageCode() string {
	msgs, _ := r.body["tppMessages"].([]any)
	if len(msgs) == 0 {
		return ""
	}
	msg, _ := msgs[0].(map[string]any)
	code, _ := msg["code"].(string)
	return code
}

// sendRequest sends a JSON request to the test server and decodes the (optional) JSON response
func sendRequest(t *testing.T, env *testEnv, method, path string, headers map[string]string, body any) apiResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, env.baseURL+path, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	res := apiResponse{statusCode: resp.StatusCode, raw: raw}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &res.body); err != nil {
			t.Fatalf("failed to decode response %q: %v", raw, err)
		}
	}
	return res
}

func expectStatus(t *testing.T, res apiResponse, want int) {
	t.Helper()
	if res.statusCode != want {
		t.Fatalf("got status %d, want %d (body: %s)", res.statusCode, want, res.raw)
	}
}

func consentRequest(frequencyPerDay int) map[string]any {
	return map[string]any{
		"access": map[string]any{
			"accounts": []map[string]any{{"iban": "DE89370400440532013000", "currency": "EUR"}},
		},
		"recurringIndicator": frequencyPerDay > 1,
		"validUntil":         time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		"frequencyPerDay":    frequencyPerDay,
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

// createConsent creates an account consent and returns its id
func createConsent(t *testing.T, env *testEnv, frequencyPerDay int) string {
	t.Helper()
	res := sendRequest(t, env, http.MethodPost, "/v1/consents", map[string]string{"TPP-ID": "tpp-integration"}, consentRequest(frequencyPerDay))
	expectStatus(t, res, http.StatusCreated)
	return res.field("consentId")
}

// authoriseConsent runs the single-sca authorisation of a consent to the end
func authoriseConsent(t *testing.T, env *testEnv, consentID string) {
	t.Helper()
	consentPath := "/v1/consents/" + consentID

	res := sendRequest(t, env, http.MethodPost, consentPath+"/authorisations", map[string]string{"PSU-ID": "single-sca"}, nil)
	expectStatus(t, res, http.StatusCreated)
	authPath := consentPath + "/authorisations/" + res.field("authorisationId")

	res = sendRequest(t, env, http.MethodPut, authPath, nil, map[string]any{"psuData": map[string]any{"password": "12345"}})
	expectStatus(t, res, http.StatusOK)

	res = sendRequest(t, env, http.MethodPut, authPath, nil, map[string]any{"scaAuthenticationData": sandboxOTP})
	expectStatus(t, res, http.StatusOK)
	if got := res.field("scaStatus"); got != "finalised" {
		t.Fatalf("scaStatus = %s, want finalised", got)
	}
}

// getConsentRow reads the stored consent directly from the database
func getConsentRow(t *testing.T, queries *database.Queries, consentID string) database.Consent {
	t.Helper()
	id, err := uuid.Parse(consentID)
	if err != nil {
		t.Fatalf("consent id %q is not a uuid: %v", consentID, err)
	}
	row, err := queries.GetConsent(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to read consent %s: %v", consentID, err)
	}
	return row
}

// cleanupDatabase truncates the xs2a tables to reset the database state between tests
func cleanupDatabase(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		TRUNCATE TABLE authorisations CASCADE;
		TRUNCATE TABLE payments CASCADE;
		TRUNCATE TABLE consents CASCADE;
	`)
	if err != nil {
		t.Fatalf("Failed to cleanup database: %v", err)
	}
}
