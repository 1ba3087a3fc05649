//go:build integration

package integration

import (
	"net/http"
	"testing"
)

// a confirmation code that does not match fails the authorisation and leaves the payment untouched
func TestWrongConfirmationCodeFailsAuthorisation(t *testing.T) {
	env := startInProcessServer(t, true)
	defer env.shutdown()

	psu := map[string]string{"PSU-ID": "single-sca"}
	res := sendRequest(t, env, http.MethodPost, "/v1/payments/sepa-credit-transfers", psu, paymentRequest("8.00"))
	expectStatus(t, res, http.StatusCreated)
	paymentPath := "/v1/payments/sepa-credit-transfers/" + res.field("paymentId")

	res = sendRequest(t, env, http.MethodPost, paymentPath+"/authorisations", psu, nil)
	expectStatus(t, res, http.StatusCreated)
	authPath := paymentPath + "/authorisations/" + res.field("authorisationId")

	res = sendRequest(t, env, http.MethodPut, authPath, nil, map[string]any{"psuData": map[string]any{"password": "12345"}})
	expectStatus(t, res, http.StatusOK)
	res = sendRequest(t, env, http.MethodPut, authPath, nil, map[string]any{"scaAuthenticationData": sandboxOTP})
	expectStatus(t, res, http.StatusOK)

	res = sendRequest(t, env, http.MethodPut, authPath, nil, map[string]any{"confirmationCode": "not-the-code"})
	expectStatus(t, res, http.StatusUnauthorized)
	if code := res.tppMessageCode(); code != "SCA_INVALID" {
		t.Errorf("error code = %s, want SCA_INVALID", code)
	}

	res = sendRequest(t, env, http.MethodGet, authPath, nil, nil)
	expectStatus(t, res, http.StatusOK)
	if got := res.field("scaStatus"); got != "failed" {
		t.Errorf("scaStatus = %s, want failed", got)
	}

	res = sendRequest(t, env, http.MethodGet, paymentPath+"/status", nil, nil)
	expectStatus(t, res, http.StatusOK)
	if got := res.field("transactionStatus"); got != "RCVD" {
		t.Errorf("transactionStatus = %s, want RCVD", got)
	}
}
