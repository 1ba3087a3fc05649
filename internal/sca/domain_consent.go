package sca

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/consent"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/services"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// consentRules are the domain rules of AIS and PIIS consent authorisations.
// SCA completion authorises the consent through the consent service, so the integrity guard seals it.
type consentRules struct {
	service      xs2a.ServiceType
	consentTypes []consent.Type
	selectSingle bool
	consents     *consent.Service
	logger       *slog.Logger
}

// NewAISProcessor creates the processor for AIS consent authorisations.
func NewAISProcessor(consents *consent.Service, connector services.AspspConnector, cfg FlowConfig, logger *slog.Logger) DomainProcessor {
	rules := &consentRules{
		service:      xs2a.ServiceTypeAIS,
		consentTypes: []consent.Type{consent.TypeAIS},
		selectSingle: true,
		consents:     consents,
		logger:       logger,
	}
	return newDomainFlow(rules, connector, cfg, logger)
}

// NewPIISProcessor creates the processor for PIIS consent authorisations.
// PIIS authorisations never select an SCA method automatically.
func NewPIISProcessor(consents *consent.Service, connector services.AspspConnector, cfg FlowConfig, logger *slog.Logger) DomainProcessor {
	rules := &consentRules{
		service:      xs2a.ServiceTypePIIS,
		consentTypes: []consent.Type{consent.TypePIISAspsp, consent.TypePIISTpp},
		selectSingle: false,
		consents:     consents,
		logger:       logger,
	}
	return newDomainFlow(rules, connector, cfg, logger)
}

func (r *consentRules) serviceType() xs2a.ServiceType { return r.service }
func (r *consentRules) cancellation() bool            { return false }
func (r *consentRules) autoSelect() bool              { return r.selectSingle }

func (r *consentRules) holder(httpStatus int, code xs2a.MessageErrorCode, text string) *xs2a.ErrorHolder {
	return xs2a.NewErrorHolder(r.service, httpStatus, code, text)
}

// consentFailure converts the consent errors an authorisation can run into into error holders.
// Other errors are returned unchanged; integrity errors in particular must reach the caller.
func (r *consentRules) consentFailure(err error, consentID string) (*xs2a.ErrorHolder, error) {
	switch {
	case consent.HasCode(err, consent.ErrCodeNotFound):
		return r.holder(http.StatusBadRequest, xs2a.CodeConsentUnknown, fmt.Sprintf("consent %s not found", consentID)), nil
	case consent.HasCode(err, consent.ErrCodeFinalised):
		return r.holder(http.StatusConflict, xs2a.CodeStatusInvalid, fmt.Sprintf("consent %s is finalised", consentID)), nil
	}
	return nil, err
}

func (r *consentRules) checkParent(ctx context.Context, a Authorisation) (*xs2a.ErrorHolder, error) {
	c, err := r.consents.Get(ctx, a.ParentID)
	if err != nil {
		return r.consentFailure(err, a.ParentID)
	}
	if !slices.Contains(r.consentTypes, c.Type) {
		return r.holder(http.StatusBadRequest, xs2a.CodeConsentUnknown, fmt.Sprintf("consent %s is not a %s consent", c.ID, r.service)), nil
	}
	if c.Status != xs2a.ConsentStatusReceived && c.Status != xs2a.ConsentStatusPartiallyAuthorised {
		return r.holder(http.StatusConflict, xs2a.CodeStatusInvalid, fmt.Sprintf("consent %s is %s", c.ID, c.Status)), nil
	}
	return nil, nil
}

func (r *consentRules) linkPsu(ctx context.Context, a Authorisation, psu xs2a.PsuIdData) (*xs2a.ErrorHolder, error) {
	if _, err := r.consents.AddPsu(ctx, a.ParentID, psu); err != nil {
		return r.consentFailure(err, a.ParentID)
	}
	return nil, nil
}

func (r *consentRules) complete(ctx context.Context, a Authorisation, target xs2a.ScaStatus, result services.VerifyResult) (ProcessorResponse, error) {
	status := result.ConsentStatus
	if status == "" {
		status = xs2a.ConsentStatusValid
	}

	c, err := r.consents.Authorise(ctx, a.ParentID, status, result.MultilevelScaRequired)
	if err != nil {
		holder, err := r.consentFailure(err, a.ParentID)
		if err != nil {
			return ProcessorResponse{}, err
		}
		return ProcessorResponse{ScaStatus: xs2a.ScaStatusFailed, ErrorHolder: holder}, nil
	}

	r.logger.Info("consent authorised",
		slog.String("consent_id", c.ID),
		slog.String("authorisation_id", a.ID),
		slog.String("consent_status", string(c.Status)),
	)
	return ProcessorResponse{ScaStatus: target}, nil
}

// onNoScaMethods rejects the consent: it cannot be authorised without SCA
func (r *consentRules) onNoScaMethods(ctx context.Context, a Authorisation) (bool, error) {
	if _, err := r.consents.Reject(ctx, a.ParentID); err != nil && !consent.HasCode(err, consent.ErrCodeFinalised) {
		return false, err
	}
	r.logger.Info("consent rejected, psu has no sca method",
		slog.String("consent_id", a.ParentID),
		slog.String("authorisation_id", a.ID),
	)
	return false, nil
}
