package sca

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// DomainProcessor implements the SCA stages for one business domain.
// There is one method per non-terminal SCA status.
type DomainProcessor interface {
	OnReceived(ctx context.Context, req ProcessorRequest) (ProcessorResponse, error)
	OnPsuIdentified(ctx context.Context, req ProcessorRequest) (ProcessorResponse, error)
	OnPsuAuthenticated(ctx context.Context, req ProcessorRequest) (ProcessorResponse, error)
	OnScaMethodSelected(ctx context.Context, req ProcessorRequest) (ProcessorResponse, error)
	OnStarted(ctx context.Context, req ProcessorRequest) (ProcessorResponse, error)
}

type route struct {
	domain   xs2a.ServiceType
	authType AuthorisationType
}

// Dispatcher selects the domain processor for a business domain and authorisation type.
type Dispatcher struct {
	processors map[route]DomainProcessor
	logger     *slog.Logger
}

// NewDispatcher wires the four supported (business domain, authorisation type) pairs:
//
//	AIS  + AIS_CONSENT
//	PIS  + PIS_CREATION
//	PIS  + PIS_CANCELLATION
//	PIIS + PIIS_CONSENT
func NewDispatcher(logger *slog.Logger, ais, pisCreation, pisCancellation, piis DomainProcessor) *Dispatcher {
	return &Dispatcher{
		processors: map[route]DomainProcessor{
			{xs2a.ServiceTypeAIS, AuthorisationTypeAISConsent}:      ais,
			{xs2a.ServiceTypePIS, AuthorisationTypePISCreation}:     pisCreation,
			{xs2a.ServiceTypePIS, AuthorisationTypePISCancellation}: pisCancellation,
			{xs2a.ServiceTypePIIS, AuthorisationTypePIISConsent}:    piis,
		},
		logger: logger,
	}
}

// Resolve returns the processor for the pair.
//
// Any other pair, or a pair wired to a nil processor, is a configuration error: callers validate
// the business domain against the authorisation type before getting here.
func (d *Dispatcher) Resolve(domain xs2a.ServiceType, authType AuthorisationType) (DomainProcessor, error) {
	p, ok := d.processors[route{domain, authType}]
	if !ok || p == nil {
		d.logger.Error("BUG: no sca processor configured",
			slog.String("business_domain", string(domain)),
			slog.String("authorisation_type", string(authType)),
		)
		return nil, NewConfigurationError(fmt.Sprintf("no sca processor configured for %s/%s", domain, authType))
	}
	return p, nil
}
