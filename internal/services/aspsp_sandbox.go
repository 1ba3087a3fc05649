package services

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/payment"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// Sandbox PSU ids with special behaviour. Any other PSU id is a regular customer offered all SCA methods.
const (
	SandboxPsuBlocked    = "blocked"
	SandboxPsuExempted   = "exempted"
	SandboxPsuNoSca      = "no-sca"
	SandboxPsuSingleSca  = "single-sca"
	SandboxPsuDecoupled  = "decoupled"
	SandboxPsuMultilevel = "multilevel"

	SandboxPassword = "12345"

	// SandboxMaxAttempts is the number of wrong passwords or TANs accepted before the step fails
	SandboxMaxAttempts = 3

	// SandboxRejectedAmount is the instructed amount the sandbox bank rejects
	SandboxRejectedAmount = "999999.99"

	// SandboxNonCancellableAmount is the instructed amount of payments the sandbox bank refuses to cancel
	SandboxNonCancellableAmount = "888888.88"
)

// sandbox SCA methods
var (
	SandboxMethodSMS = xs2a.AuthenticationObject{
		AuthenticationType:     "SMS_OTP",
		AuthenticationMethodID: "sms-otp",
		Name:                   "SMS to +49 170 *****12",
	}
	SandboxMethodChip = xs2a.AuthenticationObject{
		AuthenticationType:     "CHIP_OTP",
		AuthenticationVersion:  "1.0",
		AuthenticationMethodID: "chip-otp",
		Name:                   "chipTAN",
	}
	SandboxMethodPush = xs2a.AuthenticationObject{
		AuthenticationType:     "PUSH_OTP",
		AuthenticationMethodID: "push-app",
		Name:                   "Banking app",
		Decoupled:              true,
	}
)

// AspspConnectorSandbox is an in-process ASPSP used in dev and tests.
//
// The PSU password is always SandboxPassword and every TAN is the configured OTP.
// Wrong passwords and TANs are counted per authorisation; the attempt that reaches SandboxMaxAttempts fails the step.
//
// Decoupled authorisations wait for ApprovePush, which stands in for the PSU confirming in the banking app.
type AspspConnectorSandbox struct {
	otp string

	mu       sync.Mutex
	attempts map[string]int
	pushes   map[string]*sandboxPush // by authorisation id
}

type sandboxPush struct {
	code     string
	approved bool
}

func NewAspspConnectorSandbox(otp string) *AspspConnectorSandbox {
	return &AspspConnectorSandbox{
		otp:      otp,
		attempts: make(map[string]int),
		pushes:   make(map[string]*sandboxPush),
	}
}

// failedAttempt records a wrong password or TAN and returns the result status for it
func (s *AspspConnectorSandbox) failedAttempt(key string) ResultStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts[key]++
	if s.attempts[key] >= SandboxMaxAttempts {
		delete(s.attempts, key)
		return ResultFailure
	}
	return ResultAttemptFailure
}

func (s *AspspConnectorSandbox) resetAttempts(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, key)
}

func attemptKey(step string, req ScaRequest) string {
	return step + ":" + req.AuthorisationID
}

func (s *AspspConnectorSandbox) AuthorisePsu(ctx context.Context, req ScaRequest) (AuthorisePsuResult, error) {
	if req.Psu.PsuID == SandboxPsuBlocked {
		return AuthorisePsuResult{Status: ResultFailure}, nil
	}

	key := attemptKey("password", req)
	if req.Password != SandboxPassword {
		return AuthorisePsuResult{Status: s.failedAttempt(key)}, nil
	}
	s.resetAttempts(key)

	return AuthorisePsuResult{
		Status:      ResultSuccess,
		ScaExempted: req.Psu.PsuID == SandboxPsuExempted,
	}, nil
}

func (s *AspspConnectorSandbox) AvailableScaMethods(ctx context.Context, req ScaRequest) ([]xs2a.AuthenticationObject, error) {
	switch req.Psu.PsuID {
	case SandboxPsuNoSca:
		return nil, nil
	case SandboxPsuSingleSca:
		return []xs2a.AuthenticationObject{SandboxMethodSMS}, nil
	case SandboxPsuDecoupled:
		return []xs2a.AuthenticationObject{SandboxMethodPush}, nil
	default:
		return []xs2a.AuthenticationObject{SandboxMethodSMS, SandboxMethodChip, SandboxMethodPush}, nil
	}
}

func (s *AspspConnectorSandbox) RequestAuthorisationCode(ctx context.Context, req ScaRequest) (ChallengeResult, error) {
	method, ok := sandboxMethod(req.AuthenticationMethod)
	if !ok || method.Decoupled {
		return ChallengeResult{Status: ResultFailure}, nil
	}

	return ChallengeResult{
		Status: ResultSuccess,
		Challenge: &xs2a.ChallengeData{
			OtpMaxLength:          len(s.otp),
			OtpFormat:             "integer",
			AdditionalInformation: "Enter the code sent using " + method.Name,
		},
	}, nil
}

func (s *AspspConnectorSandbox) StartDecoupledAuthorisation(ctx context.Context, req ScaRequest) (ChallengeResult, error) {
	method, ok := sandboxMethod(req.AuthenticationMethod)
	if !ok || !method.Decoupled {
		return ChallengeResult{Status: ResultFailure}, nil
	}

	push := &sandboxPush{code: uuid.NewString()}
	s.mu.Lock()
	s.pushes[req.AuthorisationID] = push
	s.mu.Unlock()

	return ChallengeResult{
		Status:           ResultSuccess,
		PsuMessage:       "Please check your banking app and confirm the request",
		ConfirmationCode: push.code,
	}, nil
}

// ApprovePush simulates the PSU approving a decoupled authorisation in the banking app.
// It returns the confirmation code the app shows to the PSU, or false when no push is pending.
func (s *AspspConnectorSandbox) ApprovePush(authorisationID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	push, ok := s.pushes[authorisationID]
	if !ok {
		return "", false
	}
	push.approved = true
	return push.code, true
}

func (s *AspspConnectorSandbox) VerifyScaAuthorisation(ctx context.Context, req ScaRequest) (VerifyResult, error) {
	key := attemptKey("tan", req)
	if req.ScaAuthenticationData != s.otp {
		return VerifyResult{Status: s.failedAttempt(key)}, nil
	}
	s.resetAttempts(key)

	return s.authorised(req), nil
}

// ConfirmAuthorisation completes an embedded authorisation straight away.
// A decoupled one is only confirmed after ApprovePush, and with the code the app showed.
func (s *AspspConnectorSandbox) ConfirmAuthorisation(ctx context.Context, req ScaRequest) (VerifyResult, error) {
	s.mu.Lock()
	push, ok := s.pushes[req.AuthorisationID]
	s.mu.Unlock()
	if !ok {
		return s.authorised(req), nil
	}

	if !push.approved {
		return VerifyResult{Status: ResultAttemptFailure}, nil
	}
	if req.ConfirmationCode != push.code {
		return VerifyResult{Status: s.failedAttempt(attemptKey("push", req))}, nil
	}

	s.mu.Lock()
	delete(s.pushes, req.AuthorisationID)
	s.mu.Unlock()
	s.resetAttempts(attemptKey("push", req))
	return s.authorised(req), nil
}

func (s *AspspConnectorSandbox) authorised(req ScaRequest) VerifyResult {
	res := VerifyResult{Status: ResultSuccess}
	if req.Service == xs2a.ServiceTypePIS {
		return res
	}
	res.ConsentStatus = xs2a.ConsentStatusValid
	if req.Psu.PsuID == SandboxPsuMultilevel {
		res.ConsentStatus = xs2a.ConsentStatusPartiallyAuthorised
		res.MultilevelScaRequired = true
	}
	return res
}

func (s *AspspConnectorSandbox) ExecutePayment(ctx context.Context, p *payment.Payment) (PaymentResult, error) {
	if p.InstructedAmount.Amount == SandboxRejectedAmount {
		return PaymentResult{Status: ResultFailure, TransactionStatus: xs2a.TransactionStatusRejected}, nil
	}
	if _, err := strconv.ParseFloat(p.InstructedAmount.Amount, 64); err != nil {
		return PaymentResult{Status: ResultFailure, TransactionStatus: xs2a.TransactionStatusRejected}, nil
	}

	status := xs2a.TransactionStatusAcceptedSettlementCompleted
	if p.PaymentService != payment.ServiceSingle {
		// bulk and periodic payments are accepted now and settled later
		status = xs2a.TransactionStatusAcceptedTechnicalValidation
	}
	return PaymentResult{Status: ResultSuccess, TransactionStatus: status}, nil
}

func (s *AspspConnectorSandbox) CancelPayment(ctx context.Context, p *payment.Payment) (PaymentResult, error) {
	if p.InstructedAmount.Amount == SandboxNonCancellableAmount {
		return PaymentResult{Status: ResultFailure, TransactionStatus: p.TransactionStatus}, nil
	}
	return PaymentResult{Status: ResultSuccess, TransactionStatus: xs2a.TransactionStatusCancelled}, nil
}

func sandboxMethod(id string) (xs2a.AuthenticationObject, bool) {
	return xs2a.FindMethod([]xs2a.AuthenticationObject{SandboxMethodSMS, SandboxMethodChip, SandboxMethodPush}, id)
}
