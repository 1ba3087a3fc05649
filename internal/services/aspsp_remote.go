package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/crypto"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/payment"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// AspspConnectorRemote calls an ASPSP adapter over HTTP.
//
//	POST {baseURL}/psu/authorise          ScaRequest -> AuthorisePsuResult
//	POST {baseURL}/sca/methods            ScaRequest -> {"scaMethods": [...]}
//	POST {baseURL}/sca/code               ScaRequest -> ChallengeResult
//	POST {baseURL}/sca/decoupled          ScaRequest -> ChallengeResult
//	POST {baseURL}/sca/verify             ScaRequest -> VerifyResult
//	POST {baseURL}/sca/confirm            ScaRequest -> VerifyResult
//	POST {baseURL}/payments/execute       paymentRequest -> PaymentResult
//	POST {baseURL}/payments/cancel        paymentRequest -> PaymentResult
//
// Every endpoint answers 200 with the result body. Any other status is treated as a transport failure.
//
// When a signer is set every request body is signed and the detached JWS is sent in the
// X-JWS-Signature header.
type AspspConnectorRemote struct {
	baseURL    string
	httpClient *http.Client
	signer     *crypto.RequestSigner
}

// NewAspspConnectorRemote creates a connector for the adapter at baseURL. signer may be nil.
func NewAspspConnectorRemote(baseURL string, httpClient *http.Client, signer *crypto.RequestSigner) *AspspConnectorRemote {
	return &AspspConnectorRemote{
		baseURL:    baseURL,
		httpClient: httpClient,
		signer:     signer,
	}
}

// paymentRequest is the payment as sent to the ASPSP adapter
type paymentRequest struct {
	PaymentID             string                `json:"paymentId"`
	PaymentService        payment.Service       `json:"paymentService"`
	PaymentProduct        string                `json:"paymentProduct"`
	Psu                   xs2a.PsuIdData        `json:"psu"`
	DebtorAccount         xs2a.AccountReference `json:"debtorAccount"`
	CreditorAccount       xs2a.AccountReference `json:"creditorAccount"`
	CreditorName          string                `json:"creditorName"`
	InstructedAmount      payment.Amount        `json:"instructedAmount"`
	RemittanceInformation string                `json:"remittanceInformationUnstructured,omitempty"`
}

type scaMethodsResponse struct {
	ScaMethods []xs2a.AuthenticationObject `json:"scaMethods"`
}

// call posts the request body to the adapter path and decodes the 200 response into out
func (c *AspspConnectorRemote) call(ctx context.Context, path string, in any, out any) error {
	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("failed to build aspsp url: %w", err)
	}

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode aspsp request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.signer != nil {
		signature, err := c.signer.SignDetached(body)
		if err != nil {
			return fmt.Errorf("failed to sign aspsp request: %w", err)
		}
		req.Header.Set("X-JWS-Signature", signature)
	}

	// #nosec G704 -- BaseURL is from server config
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call aspsp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("aspsp %s returned status %d: %s", path, resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode aspsp response: %w", err)
	}
	return nil
}

func (c *AspspConnectorRemote) AuthorisePsu(ctx context.Context, req ScaRequest) (AuthorisePsuResult, error) {
	var res AuthorisePsuResult
	err := c.call(ctx, "/psu/authorise", req, &res)
	return res, err
}

func (c *AspspConnectorRemote) AvailableScaMethods(ctx context.Context, req ScaRequest) ([]xs2a.AuthenticationObject, error) {
	var res scaMethodsResponse
	if err := c.call(ctx, "/sca/methods", req, &res); err != nil {
		return nil, err
	}
	return res.ScaMethods, nil
}

func (c *AspspConnectorRemote) RequestAuthorisationCode(ctx context.Context, req ScaRequest) (ChallengeResult, error) {
	var res ChallengeResult
	err := c.call(ctx, "/sca/code", req, &res)
	return res, err
}

func (c *AspspConnectorRemote) StartDecoupledAuthorisation(ctx context.Context, req ScaRequest) (ChallengeResult, error) {
	var res ChallengeResult
	err := c.call(ctx, "/sca/decoupled", req, &res)
	return res, err
}

func (c *AspspConnectorRemote) VerifyScaAuthorisation(ctx context.Context, req ScaRequest) (VerifyResult, error) {
	var res VerifyResult
	err := c.call(ctx, "/sca/verify", req, &res)
	return res, err
}

func (c *AspspConnectorRemote) ConfirmAuthorisation(ctx context.Context, req ScaRequest) (VerifyResult, error) {
	var res VerifyResult
	err := c.call(ctx, "/sca/confirm", req, &res)
	return res, err
}

func (c *AspspConnectorRemote) ExecutePayment(ctx context.Context, p *payment.Payment) (PaymentResult, error) {
	var res PaymentResult
	err := c.call(ctx, "/payments/execute", newPaymentRequest(p), &res)
	return res, err
}

func (c *AspspConnectorRemote) CancelPayment(ctx context.Context, p *payment.Payment) (PaymentResult, error) {
	var res PaymentResult
	err := c.call(ctx, "/payments/cancel", newPaymentRequest(p), &res)
	return res, err
}

func newPaymentRequest(p *payment.Payment) paymentRequest {
	return paymentRequest{
		PaymentID:             p.ID,
		PaymentService:        p.PaymentService,
		PaymentProduct:        p.PaymentProduct,
		Psu:                   p.PsuData,
		DebtorAccount:         p.DebtorAccount,
		CreditorAccount:       p.CreditorAccount,
		CreditorName:          p.CreditorName,
		InstructedAmount:      p.InstructedAmount,
		RemittanceInformation: p.RemittanceInformation,
	}
}
