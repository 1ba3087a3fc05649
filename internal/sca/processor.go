package sca

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// ResponseType tells the HTTP layer whether a call created the authorisation or advanced an existing one.
type ResponseType string

const (
	ResponseTypeStart  ResponseType = "START"
	ResponseTypeUpdate ResponseType = "UPDATE"
)

// ProcessorRequest is the input of one stage.
type ProcessorRequest struct {
	Authorisation  Authorisation
	BusinessDomain xs2a.ServiceType
	Evidence       Evidence
	ResponseType   ResponseType
}

// ProcessorResponse is the outcome of one stage: the next SCA status plus whatever the stage wants
// to hand back to the PSU or record on the authorisation.
type ProcessorResponse struct {
	ScaStatus    xs2a.ScaStatus
	ResponseType ResponseType

	PsuData               xs2a.PsuIdData
	AvailableScaMethods   []xs2a.AuthenticationObject
	ChosenScaMethod       *xs2a.AuthenticationObject
	ChallengeData         *xs2a.ChallengeData
	PsuMessage            string
	ScaAuthenticationData string
	ConfirmationCode      string

	// AspspConfirmationCode is the code the ASPSP showed the PSU for a decoupled method.
	// It is stored on the authorisation but never returned to the TPP.
	AspspConfirmationCode string

	// ErrorHolder is set for business rule failures. It accompanies either failed or an unchanged status.
	ErrorHolder *xs2a.ErrorHolder
}

// applyTo returns the authorisation updated with the response.
func (r ProcessorResponse) applyTo(a Authorisation) Authorisation {
	out := a.WithScaStatus(r.ScaStatus).WithLastError(r.ErrorHolder)
	if !r.PsuData.IsEmpty() {
		out = out.WithPsuData(r.PsuData)
	}
	if r.AvailableScaMethods != nil {
		out = out.WithAvailableScaMethods(r.AvailableScaMethods)
	}
	if r.ChosenScaMethod != nil {
		out = out.WithChosenScaMethod(*r.ChosenScaMethod)
	}
	if r.ScaAuthenticationData != "" {
		out = out.WithScaAuthenticationData(r.ScaAuthenticationData)
	}
	if r.ConfirmationCode != "" {
		out = out.WithConfirmationCode(r.ConfirmationCode)
	}
	if r.AspspConfirmationCode != "" {
		out = out.WithConfirmationCode(r.AspspConfirmationCode)
	}
	return out
}

// stageFunc runs the domain step for one SCA status
type stageFunc func(DomainProcessor, context.Context, ProcessorRequest) (ProcessorResponse, error)

// stages maps each non-terminal status to its domain step.
// New statuses are supported by adding an entry here and a method to DomainProcessor.
var stages = map[xs2a.ScaStatus]stageFunc{
	xs2a.ScaStatusReceived:          DomainProcessor.OnReceived,
	xs2a.ScaStatusPsuIdentified:     DomainProcessor.OnPsuIdentified,
	xs2a.ScaStatusPsuAuthenticated:  DomainProcessor.OnPsuAuthenticated,
	xs2a.ScaStatusScaMethodSelected: DomainProcessor.OnScaMethodSelected,
	xs2a.ScaStatusStarted:           DomainProcessor.OnStarted,
}

// Processor runs the stage matching the current status of an authorisation.
type Processor struct {
	dispatcher *Dispatcher
	stages     map[xs2a.ScaStatus]stageFunc
	logger     *slog.Logger
}

func NewProcessor(dispatcher *Dispatcher, logger *slog.Logger) *Processor {
	return &Processor{
		dispatcher: dispatcher,
		stages:     stages,
		logger:     logger,
	}
}

// Apply runs one stage and returns its response.
//
// The response status is checked against the transition table; a stage that produces an illegal
// status is a programming error and returns ErrCodeIllegalTransition.
// Apply does not persist anything.
func (p *Processor) Apply(ctx context.Context, req ProcessorRequest) (ProcessorResponse, error) {
	current := req.Authorisation.ScaStatus

	stage, ok := p.stages[current]
	if !ok {
		if current.IsFinalised() {
			return ProcessorResponse{}, NewAuthorisationFinalisedError(
				fmt.Sprintf("authorisation %s is %s and cannot be changed", req.Authorisation.ID, current))
		}
		p.logger.Error("BUG: no sca stage for status",
			slog.String("authorisation_id", req.Authorisation.ID),
			slog.String("sca_status", string(current)),
		)
		return ProcessorResponse{}, NewConfigurationError(fmt.Sprintf("no sca stage for status %q", current))
	}

	domain, err := p.dispatcher.Resolve(req.BusinessDomain, req.Authorisation.Type)
	if err != nil {
		return ProcessorResponse{}, err
	}

	res, err := stage(domain, ctx, req)
	if err != nil {
		return ProcessorResponse{}, err
	}
	res.ResponseType = req.ResponseType

	if !IsValidScaTransition(current, res.ScaStatus) {
		p.logger.Error("BUG: sca stage produced an illegal transition",
			slog.String("authorisation_id", req.Authorisation.ID),
			slog.String("from", string(current)),
			slog.String("to", string(res.ScaStatus)),
		)
		return ProcessorResponse{}, NewIllegalTransitionError(
			fmt.Sprintf("illegal sca transition from %s to %s", current, res.ScaStatus))
	}

	return res, nil
}
