package sca

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/services"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// domainRules is what differs between business domains. The stage logic in domainFlow is shared.
type domainRules interface {
	serviceType() xs2a.ServiceType

	// cancellation reports whether the authorisation cancels its parent payment
	cancellation() bool

	// autoSelect reports whether a single embedded SCA method is selected without asking the PSU
	autoSelect() bool

	// checkParent returns an error holder when the parent consent or payment cannot be authorised
	checkParent(ctx context.Context, a Authorisation) (*xs2a.ErrorHolder, error)

	// linkPsu records the identified PSU on the parent, or returns an error holder when the PSU
	// does not match the one the parent belongs to
	linkPsu(ctx context.Context, a Authorisation, psu xs2a.PsuIdData) (*xs2a.ErrorHolder, error)

	// complete fires the side effect of a successful SCA (target finalised) or an exemption
	// (target exempted) and returns the resulting response
	complete(ctx context.Context, a Authorisation, target xs2a.ScaStatus, result services.VerifyResult) (ProcessorResponse, error)

	// onNoScaMethods is called when the PSU has no SCA method. It reports whether the request
	// is exempted from SCA instead of failing.
	onNoScaMethods(ctx context.Context, a Authorisation) (exempt bool, err error)
}

// domainFlow implements DomainProcessor for one business domain.
type domainFlow struct {
	rules                domainRules
	connector            services.AspspConnector
	confirmationRequired bool
	newConfirmationCode  func() string
	logger               *slog.Logger
}

// FlowConfig holds the settings shared by all domain processors.
type FlowConfig struct {
	// ConfirmationRequired adds a final confirmation step (started) after the TAN has been verified
	ConfirmationRequired bool

	// NewConfirmationCode generates confirmation codes. Defaults to random uuids.
	NewConfirmationCode func() string
}

func newDomainFlow(rules domainRules, connector services.AspspConnector, cfg FlowConfig, logger *slog.Logger) *domainFlow {
	newCode := cfg.NewConfirmationCode
	if newCode == nil {
		newCode = uuid.NewString
	}
	return &domainFlow{
		rules:                rules,
		connector:            connector,
		confirmationRequired: cfg.ConfirmationRequired,
		newConfirmationCode:  newCode,
		logger:               logger,
	}
}

func failedResponse(service xs2a.ServiceType, httpStatus int, code xs2a.MessageErrorCode, text string) ProcessorResponse {
	return ProcessorResponse{
		ScaStatus:   xs2a.ScaStatusFailed,
		ErrorHolder: xs2a.NewErrorHolder(service, httpStatus, code, text),
	}
}

func (f *domainFlow) failed(httpStatus int, code xs2a.MessageErrorCode, text string) ProcessorResponse {
	return failedResponse(f.rules.serviceType(), httpStatus, code, text)
}

// retry keeps the current status so the PSU can try the step again
func (f *domainFlow) retry(req ProcessorRequest, httpStatus int, code xs2a.MessageErrorCode, text string) ProcessorResponse {
	return ProcessorResponse{
		ScaStatus:   req.Authorisation.ScaStatus,
		ErrorHolder: xs2a.NewErrorHolder(f.rules.serviceType(), httpStatus, code, text),
	}
}

func (f *domainFlow) scaRequest(req ProcessorRequest, psu xs2a.PsuIdData) services.ScaRequest {
	a := req.Authorisation
	return services.ScaRequest{
		Service:               f.rules.serviceType(),
		ParentID:              a.ParentID,
		AuthorisationID:       a.ID,
		Cancellation:          f.rules.cancellation(),
		Psu:                   psu,
		Password:              req.Evidence.Password,
		AuthenticationMethod:  req.Evidence.AuthenticationMethodID,
		ScaAuthenticationData: req.Evidence.ScaAuthenticationData,
		ConfirmationCode:      req.Evidence.ConfirmationCode,
	}
}

// checkParent fails the authorisation when its parent can no longer be authorised.
// ok is false when the returned response or error must be used as the stage result.
func (f *domainFlow) checkParent(ctx context.Context, a Authorisation) (res ProcessorResponse, ok bool, err error) {
	holder, err := f.rules.checkParent(ctx, a)
	if err != nil {
		return ProcessorResponse{}, false, err
	}
	if holder != nil {
		return ProcessorResponse{ScaStatus: xs2a.ScaStatusFailed, ErrorHolder: holder}, false, nil
	}
	return ProcessorResponse{}, true, nil
}

func (f *domainFlow) exempt(ctx context.Context, a Authorisation) (ProcessorResponse, error) {
	f.logger.Info("sca exempted",
		slog.String("authorisation_id", a.ID),
		slog.String("parent_id", a.ParentID),
	)
	return f.rules.complete(ctx, a, xs2a.ScaStatusExempted, services.VerifyResult{
		Status:        services.ResultSuccess,
		ConsentStatus: xs2a.ConsentStatusValid,
	})
}

// OnReceived identifies the PSU.
func (f *domainFlow) OnReceived(ctx context.Context, req ProcessorRequest) (ProcessorResponse, error) {
	a := req.Authorisation
	if res, ok, err := f.checkParent(ctx, a); !ok {
		return res, err
	}

	psu := req.Evidence.PsuData
	if psu.IsEmpty() {
		psu = a.PsuData
	}
	if psu.IsEmpty() {
		return f.failed(http.StatusBadRequest, xs2a.CodeFormatErrorNoPsu, "PSU identification is required"), nil
	}

	holder, err := f.rules.linkPsu(ctx, a, psu)
	if err != nil {
		return ProcessorResponse{}, err
	}
	if holder != nil {
		return ProcessorResponse{ScaStatus: xs2a.ScaStatusFailed, ErrorHolder: holder}, nil
	}

	return ProcessorResponse{
		ScaStatus: xs2a.ScaStatusPsuIdentified,
		PsuData:   psu,
	}, nil
}

// OnPsuIdentified authenticates the PSU and looks up the SCA methods.
func (f *domainFlow) OnPsuIdentified(ctx context.Context, req ProcessorRequest) (ProcessorResponse, error) {
	a := req.Authorisation
	if res, ok, err := f.checkParent(ctx, a); !ok {
		return res, err
	}

	psu := a.PsuData
	if supplied := req.Evidence.PsuData; !supplied.IsEmpty() {
		if !psu.IsEmpty() && !psu.SamePsu(supplied) {
			return f.failed(http.StatusUnauthorized, xs2a.CodePsuCredentialsInvalid, "PSU does not match the identified PSU"), nil
		}
		psu = supplied
	}
	if psu.IsEmpty() {
		return f.failed(http.StatusBadRequest, xs2a.CodeFormatErrorNoPsu, "PSU identification is required"), nil
	}
	if req.Evidence.Password == "" {
		return f.retry(req, http.StatusBadRequest, xs2a.CodeFormatError, "password is required"), nil
	}

	auth, err := f.connector.AuthorisePsu(ctx, f.scaRequest(req, psu))
	if err != nil {
		return ProcessorResponse{}, WrapInternalError(err, "failed to authorise psu")
	}
	switch auth.Status {
	case services.ResultFailure:
		return f.failed(http.StatusUnauthorized, xs2a.CodePsuCredentialsInvalid, "PSU authentication failed"), nil
	case services.ResultAttemptFailure:
		return f.retry(req, http.StatusUnauthorized, xs2a.CodePsuCredentialsInvalid, "wrong PSU credentials"), nil
	}

	if auth.ScaExempted {
		return f.exempt(ctx, a)
	}

	methods, err := f.connector.AvailableScaMethods(ctx, f.scaRequest(req, psu))
	if err != nil {
		return ProcessorResponse{}, WrapInternalError(err, "failed to get sca methods")
	}

	switch {
	case len(methods) == 0:
		exempt, err := f.rules.onNoScaMethods(ctx, a)
		if err != nil {
			return ProcessorResponse{}, err
		}
		if exempt {
			return f.exempt(ctx, a)
		}
		return f.failed(http.StatusBadRequest, xs2a.CodeScaMethodUnknown, "PSU has no SCA method"), nil

	case len(methods) == 1 && f.rules.autoSelect() && !methods[0].Decoupled:
		f.logger.Debug("single sca method selected automatically",
			slog.String("authorisation_id", a.ID),
			slog.String("sca_method", methods[0].AuthenticationMethodID),
		)
		res, err := f.selectMethod(ctx, req, psu, methods[0])
		if err != nil {
			return ProcessorResponse{}, err
		}
		res.PsuData = psu
		res.AvailableScaMethods = methods
		return res, nil
	}

	return ProcessorResponse{
		ScaStatus:           xs2a.ScaStatusPsuAuthenticated,
		PsuData:             psu,
		AvailableScaMethods: methods,
	}, nil
}

// OnPsuAuthenticated selects the SCA method chosen by the PSU.
func (f *domainFlow) OnPsuAuthenticated(ctx context.Context, req ProcessorRequest) (ProcessorResponse, error) {
	a := req.Authorisation
	if res, ok, err := f.checkParent(ctx, a); !ok {
		return res, err
	}

	methodID := req.Evidence.AuthenticationMethodID
	if methodID == "" {
		return f.retry(req, http.StatusBadRequest, xs2a.CodeFormatError, "authenticationMethodId is required"), nil
	}
	method, ok := xs2a.FindMethod(a.AvailableScaMethods, methodID)
	if !ok {
		return f.failed(http.StatusBadRequest, xs2a.CodeScaMethodUnknown, "unknown SCA method "+methodID), nil
	}

	return f.selectMethod(ctx, req, a.PsuData, method)
}

// selectMethod sends the TAN for an embedded method or starts a decoupled authorisation
func (f *domainFlow) selectMethod(ctx context.Context, req ProcessorRequest, psu xs2a.PsuIdData, method xs2a.AuthenticationObject) (ProcessorResponse, error) {
	sreq := f.scaRequest(req, psu)
	sreq.AuthenticationMethod = method.AuthenticationMethodID

	var (
		challenge services.ChallengeResult
		err       error
	)
	if method.Decoupled {
		challenge, err = f.connector.StartDecoupledAuthorisation(ctx, sreq)
	} else {
		challenge, err = f.connector.RequestAuthorisationCode(ctx, sreq)
	}
	if err != nil {
		return ProcessorResponse{}, WrapInternalError(err, "failed to start sca method")
	}

	switch challenge.Status {
	case services.ResultFailure:
		return f.failed(http.StatusBadRequest, xs2a.CodeScaMethodUnknown, "SCA method could not be used"), nil
	case services.ResultAttemptFailure:
		return f.retry(req, http.StatusBadRequest, xs2a.CodeScaMethodUnknown, "SCA method is temporarily unavailable"), nil
	}

	res := ProcessorResponse{
		ScaStatus:       xs2a.ScaStatusScaMethodSelected,
		ChosenScaMethod: &method,
		ChallengeData:   challenge.Challenge,
		PsuMessage:      challenge.PsuMessage,
	}
	if method.Decoupled {
		res.AspspConfirmationCode = challenge.ConfirmationCode
	}
	return res, nil
}

// OnScaMethodSelected verifies the TAN, or waits for the out of band confirmation of a decoupled method.
func (f *domainFlow) OnScaMethodSelected(ctx context.Context, req ProcessorRequest) (ProcessorResponse, error) {
	a := req.Authorisation
	if res, ok, err := f.checkParent(ctx, a); !ok {
		return res, err
	}

	if a.ChosenScaMethod == nil {
		return f.failed(http.StatusBadRequest, xs2a.CodeScaMethodUnknown, "no SCA method selected"), nil
	}

	// the ASPSP issued the confirmation code when the push was sent
	if a.ChosenScaMethod.Decoupled {
		return ProcessorResponse{
			ScaStatus:  xs2a.ScaStatusStarted,
			PsuMessage: "Please confirm the request in your banking app",
		}, nil
	}

	data := req.Evidence.ScaAuthenticationData
	if data == "" {
		return f.retry(req, http.StatusBadRequest, xs2a.CodeFormatError, "scaAuthenticationData is required"), nil
	}

	sreq := f.scaRequest(req, a.PsuData)
	sreq.AuthenticationMethod = a.ChosenScaMethod.AuthenticationMethodID
	verified, err := f.connector.VerifyScaAuthorisation(ctx, sreq)
	if err != nil {
		return ProcessorResponse{}, WrapInternalError(err, "failed to verify sca authorisation")
	}
	switch verified.Status {
	case services.ResultFailure:
		return f.failed(http.StatusUnauthorized, xs2a.CodeScaInvalid, "SCA authentication failed"), nil
	case services.ResultAttemptFailure:
		return f.retry(req, http.StatusUnauthorized, xs2a.CodeScaInvalid, "wrong authentication data"), nil
	}

	if f.confirmationRequired {
		return ProcessorResponse{
			ScaStatus:             xs2a.ScaStatusStarted,
			ScaAuthenticationData: data,
			ConfirmationCode:      f.newConfirmationCode(),
		}, nil
	}

	res, err := f.rules.complete(ctx, a, xs2a.ScaStatusFinalised, verified)
	if err != nil {
		return ProcessorResponse{}, err
	}
	res.ScaAuthenticationData = data
	return res, nil
}

// OnStarted checks the confirmation code and completes the authorisation.
func (f *domainFlow) OnStarted(ctx context.Context, req ProcessorRequest) (ProcessorResponse, error) {
	a := req.Authorisation
	if res, ok, err := f.checkParent(ctx, a); !ok {
		return res, err
	}

	code := req.Evidence.ConfirmationCode
	if code == "" {
		return f.retry(req, http.StatusBadRequest, xs2a.CodeFormatError, "confirmationCode is required"), nil
	}

	decoupled := a.ChosenScaMethod != nil && a.ChosenScaMethod.Decoupled
	// a decoupled authorisation is only confirmed by the ASPSP once the PSU acted in the app
	if !decoupled && subtle.ConstantTimeCompare([]byte(code), []byte(a.ConfirmationCode)) != 1 {
		return f.failed(http.StatusUnauthorized, xs2a.CodeScaInvalid, "confirmation code does not match"), nil
	}

	confirmed, err := f.connector.ConfirmAuthorisation(ctx, f.scaRequest(req, a.PsuData))
	if err != nil {
		return ProcessorResponse{}, WrapInternalError(err, "failed to confirm authorisation")
	}
	switch confirmed.Status {
	case services.ResultFailure:
		return f.failed(http.StatusUnauthorized, xs2a.CodeScaInvalid, "confirmation rejected"), nil
	case services.ResultAttemptFailure:
		return f.retry(req, http.StatusUnauthorized, xs2a.CodeScaInvalid, "confirmation not yet available"), nil
	}
	if decoupled && a.ConfirmationCode != "" && subtle.ConstantTimeCompare([]byte(code), []byte(a.ConfirmationCode)) != 1 {
		return f.failed(http.StatusUnauthorized, xs2a.CodeScaInvalid, "confirmation code does not match"), nil
	}

	return f.rules.complete(ctx, a, xs2a.ScaStatusFinalised, confirmed)
}
