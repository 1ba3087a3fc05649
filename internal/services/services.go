package services

// services provides external service integrations for the XS2A server (ASPSP connector etc.)

import (
	"github.com/information-sharing-networks/xs2a-demo/app/internal/config"
)

// Services aggregates all external service integrations used by the XS2A server.
type Services struct {
	AspspConnector AspspConnector
}

// NewServices creates the external service integrations selected in the configuration.
func NewServices(cfg *config.ServerEnvironment) (*Services, error) {
	connector, err := NewAspspConnector(cfg)
	if err != nil {
		return nil, err
	}
	return &Services{
		AspspConnector: connector,
	}, nil
}
