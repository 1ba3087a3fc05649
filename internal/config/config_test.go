package config

import (
	"strings"
	"testing"
)

func validConfig() *ServerEnvironment {
	return &ServerEnvironment{
		Environment:         "dev",
		Port:                8080,
		StoreBackend:        "postgres",
		DatabaseURL:         "postgres://localhost:5432/xs2a",
		DBMaxConnections:    4,
		AspspConnector:      "sandbox",
		MaxRequestBodyBytes: 1024,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *ServerEnvironment)
		wantErr string
	}{
		{"valid", func(cfg *ServerEnvironment) {}, ""},
		{"bad port", func(cfg *ServerEnvironment) { cfg.Port = 0 }, "PORT"},
		{"bad environment", func(cfg *ServerEnvironment) { cfg.Environment = "qa" }, "ENVIRONMENT"},
		{"unknown store", func(cfg *ServerEnvironment) { cfg.StoreBackend = "mongo" }, "STORE_BACKEND"},
		{"postgres without url", func(cfg *ServerEnvironment) { cfg.DatabaseURL = "" }, "DATABASE_URL"},
		{"memory without url", func(cfg *ServerEnvironment) {
			cfg.StoreBackend = "memory"
			cfg.DatabaseURL = ""
		}, ""},
		{"memory in prod", func(cfg *ServerEnvironment) {
			cfg.StoreBackend = "memory"
			cfg.Environment = "prod"
		}, "not allowed"},
		{"min connections above max", func(cfg *ServerEnvironment) { cfg.DBMinConnections = 5 }, "DB_MIN_CONNECTIONS"},
		{"unknown connector", func(cfg *ServerEnvironment) { cfg.AspspConnector = "psd2hub" }, "ASPSP_CONNECTOR"},
		{"remote without url", func(cfg *ServerEnvironment) { cfg.AspspConnector = "remote" }, "ASPSP_BASE_URL"},
		{"negative expiry interval", func(cfg *ServerEnvironment) { cfg.ConsentExpiryInterval = -1 }, "CONSENT_EXPIRY_INTERVAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestNewServerConfigDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("ENVIRONMENT", "test")

	cfg, err := NewServerConfig()
	if err != nil {
		t.Fatalf("NewServerConfig() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.AspspConnector != "sandbox" {
		t.Errorf("AspspConnector = %q, want sandbox", cfg.AspspConnector)
	}
	if cfg.AuthorisationConfirmationRequired {
		t.Error("AuthorisationConfirmationRequired should default to false")
	}
}
