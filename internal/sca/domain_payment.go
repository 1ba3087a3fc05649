package sca

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/payment"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/services"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// paymentRules are the domain rules of payment initiation and payment cancellation authorisations.
// The two only differ in the side effect fired once SCA completes.
type paymentRules struct {
	cancel    bool
	payments  *payment.PaymentService
	connector services.AspspConnector
	logger    *slog.Logger
}

// NewPISCreationProcessor creates the processor for payment initiation authorisations.
// Completing SCA executes the payment.
func NewPISCreationProcessor(payments *payment.PaymentService, connector services.AspspConnector, cfg FlowConfig, logger *slog.Logger) DomainProcessor {
	rules := &paymentRules{
		payments:  payments,
		connector: connector,
		logger:    logger,
	}
	return newDomainFlow(rules, connector, cfg, logger)
}

// NewPISCancellationProcessor creates the processor for payment cancellation authorisations.
// Completing SCA cancels the payment.
func NewPISCancellationProcessor(payments *payment.PaymentService, connector services.AspspConnector, cfg FlowConfig, logger *slog.Logger) DomainProcessor {
	rules := &paymentRules{
		cancel:    true,
		payments:  payments,
		connector: connector,
		logger:    logger,
	}
	return newDomainFlow(rules, connector, cfg, logger)
}

func (r *paymentRules) serviceType() xs2a.ServiceType { return xs2a.ServiceTypePIS }
func (r *paymentRules) cancellation() bool            { return r.cancel }
func (r *paymentRules) autoSelect() bool              { return true }

func (r *paymentRules) holder(httpStatus int, code xs2a.MessageErrorCode, text string) *xs2a.ErrorHolder {
	return xs2a.NewErrorHolder(xs2a.ServiceTypePIS, httpStatus, code, text)
}

func (r *paymentRules) statusHolder(p *payment.Payment) *xs2a.ErrorHolder {
	if r.cancel {
		return r.holder(http.StatusMethodNotAllowed, xs2a.CodeCancellationInvalid,
			fmt.Sprintf("payment %s has status %s and cannot be cancelled", p.ID, p.TransactionStatus))
	}
	return r.holder(http.StatusConflict, xs2a.CodeStatusInvalid,
		fmt.Sprintf("payment %s has status %s", p.ID, p.TransactionStatus))
}

func (r *paymentRules) getPayment(ctx context.Context, id string) (*payment.Payment, *xs2a.ErrorHolder, error) {
	p, err := r.payments.Get(ctx, id)
	if payment.HasCode(err, payment.ErrCodeNotFound) {
		return nil, r.holder(http.StatusBadRequest, xs2a.CodeResourceUnknown, fmt.Sprintf("payment %s not found", id)), nil
	}
	if err != nil {
		return nil, nil, err
	}
	return p, nil, nil
}

func (r *paymentRules) checkParent(ctx context.Context, a Authorisation) (*xs2a.ErrorHolder, error) {
	p, holder, err := r.getPayment(ctx, a.ParentID)
	if err != nil || holder != nil {
		return holder, err
	}
	if p.TransactionStatus.IsFinalised() {
		return r.statusHolder(p), nil
	}
	// a payment can only be initiated once
	if !r.cancel && p.TransactionStatus != xs2a.TransactionStatusReceived {
		return r.statusHolder(p), nil
	}
	return nil, nil
}

func (r *paymentRules) linkPsu(ctx context.Context, a Authorisation, psu xs2a.PsuIdData) (*xs2a.ErrorHolder, error) {
	p, holder, err := r.getPayment(ctx, a.ParentID)
	if err != nil || holder != nil {
		return holder, err
	}
	if !p.PsuData.IsEmpty() && !p.PsuData.SamePsu(psu) {
		return r.holder(http.StatusUnauthorized, xs2a.CodePsuCredentialsInvalid, "PSU does not match the payment PSU"), nil
	}
	return nil, nil
}

// complete fires the ASPSP side effect once SCA is done.
// The payment status is moved with compare-and-set transitions, so of two authorisations racing on the
// same payment only one gets to execute or cancel it. Any refusal by the ASPSP fails the authorisation.
func (r *paymentRules) complete(ctx context.Context, a Authorisation, target xs2a.ScaStatus, _ services.VerifyResult) (ProcessorResponse, error) {
	p, holder, err := r.getPayment(ctx, a.ParentID)
	if err != nil {
		return ProcessorResponse{}, err
	}
	if holder != nil {
		return ProcessorResponse{ScaStatus: xs2a.ScaStatusFailed, ErrorHolder: holder}, nil
	}

	if r.cancel {
		return r.cancelPayment(ctx, a, p, target)
	}
	return r.executePayment(ctx, a, p, target)
}

func (r *paymentRules) executePayment(ctx context.Context, a Authorisation, p *payment.Payment, target xs2a.ScaStatus) (ProcessorResponse, error) {
	// RCVD -> ACTC claims the payment for this authorisation before anything is sent to the ASPSP
	claimed, err := r.payments.TransitionTransactionStatus(ctx, p.ID,
		xs2a.TransactionStatusReceived, xs2a.TransactionStatusAcceptedTechnicalValidation)
	if payment.HasCode(err, payment.ErrCodeStatusChanged) || payment.HasCode(err, payment.ErrCodeFinalised) {
		return r.staleParent(ctx, p)
	}
	if err != nil {
		return ProcessorResponse{}, err
	}

	result, err := r.connector.ExecutePayment(ctx, claimed)
	if err != nil {
		// nothing reached the ASPSP, give the payment back so the PSU can retry
		if _, revertErr := r.payments.TransitionTransactionStatus(context.WithoutCancel(ctx), p.ID,
			xs2a.TransactionStatusAcceptedTechnicalValidation, xs2a.TransactionStatusReceived); revertErr != nil {
			r.logger.Error("failed to release payment after aspsp error",
				slog.String("payment_id", p.ID),
				slog.String("error", revertErr.Error()),
			)
		}
		return ProcessorResponse{}, WrapInternalError(err, "failed to submit payment to the aspsp")
	}

	res := ProcessorResponse{ScaStatus: target}
	status := result.TransactionStatus
	if result.Status != services.ResultSuccess {
		res = ProcessorResponse{
			ScaStatus:   xs2a.ScaStatusFailed,
			ErrorHolder: r.holder(http.StatusBadRequest, xs2a.CodePaymentFailed, "the ASPSP rejected the payment"),
		}
		status = xs2a.TransactionStatusRejected
	}
	if status == "" {
		status = xs2a.TransactionStatusAcceptedTechnicalValidation
	}

	if status != xs2a.TransactionStatusAcceptedTechnicalValidation {
		if _, err := r.payments.TransitionTransactionStatus(ctx, p.ID, xs2a.TransactionStatusAcceptedTechnicalValidation, status); err != nil {
			return ProcessorResponse{}, err
		}
	}

	r.logSubmitted(a, p, status)
	return res, nil
}

func (r *paymentRules) cancelPayment(ctx context.Context, a Authorisation, p *payment.Payment, target xs2a.ScaStatus) (ProcessorResponse, error) {
	result, err := r.connector.CancelPayment(ctx, p)
	if err != nil {
		return ProcessorResponse{}, WrapInternalError(err, "failed to submit cancellation to the aspsp")
	}
	if result.Status != services.ResultSuccess {
		// the payment keeps its status
		return ProcessorResponse{
			ScaStatus:   xs2a.ScaStatusFailed,
			ErrorHolder: r.holder(http.StatusMethodNotAllowed, xs2a.CodeCancellationInvalid, "the ASPSP refused to cancel the payment"),
		}, nil
	}

	status := result.TransactionStatus
	if status == "" {
		status = xs2a.TransactionStatusCancelled
	}
	_, err = r.payments.TransitionTransactionStatus(ctx, p.ID, p.TransactionStatus, status)
	if payment.HasCode(err, payment.ErrCodeStatusChanged) || payment.HasCode(err, payment.ErrCodeFinalised) {
		return r.staleParent(ctx, p)
	}
	if err != nil {
		return ProcessorResponse{}, err
	}

	r.logSubmitted(a, p, status)
	return ProcessorResponse{ScaStatus: target}, nil
}

// staleParent fails the authorisation when another request moved the payment on first.
func (r *paymentRules) staleParent(ctx context.Context, p *payment.Payment) (ProcessorResponse, error) {
	current, err := r.payments.Get(ctx, p.ID)
	if err != nil {
		return ProcessorResponse{}, err
	}
	return ProcessorResponse{ScaStatus: xs2a.ScaStatusFailed, ErrorHolder: r.statusHolder(current)}, nil
}

func (r *paymentRules) logSubmitted(a Authorisation, p *payment.Payment, status xs2a.TransactionStatus) {
	r.logger.Info("payment submitted to the aspsp",
		slog.String("payment_id", p.ID),
		slog.String("authorisation_id", a.ID),
		slog.Bool("cancellation", r.cancel),
		slog.String("transaction_status", string(status)),
	)
}

// onNoScaMethods exempts the payment from SCA
func (r *paymentRules) onNoScaMethods(ctx context.Context, a Authorisation) (bool, error) {
	return true, nil
}
