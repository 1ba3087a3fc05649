package config

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
)

// Environment variables with defaults
type ServerEnvironment struct {

	// http server settings
	Environment           string        `env:"ENVIRONMENT,default=dev"`
	Host                  string        `env:"HOST,default=0.0.0.0"`
	Port                  int           `env:"PORT,default=8080"`
	LogLevel              string        `env:"LOG_LEVEL,default=debug"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT,default=10s"`
	ReadTimeout           time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout          time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout           time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	RequestTimeout        time.Duration `env:"REQUEST_TIMEOUT,default=30s"`
	RateLimitRPS          int32         `env:"RATE_LIMIT_RPS,default=100"`
	RateLimitBurst        int32         `env:"RATE_LIMIT_BURST,default=200"`
	MaxRequestBodyBytes   int64         `env:"MAX_REQUEST_BODY_BYTES,default=1048576"`

	// storage: "postgres" or "memory" (memory is for local development and tests only)
	StoreBackend string `env:"STORE_BACKEND,default=postgres"`

	// database settings
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConnections    int32         `env:"DB_MAX_CONNECTIONS,default=4"`
	DBMinConnections    int32         `env:"DB_MIN_CONNECTIONS,default=0"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME,default=60m"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME,default=30m"`
	DBConnectTimeout    time.Duration `env:"DB_CONNECT_TIMEOUT,default=5s"`
	DatabasePingTimeout time.Duration `env:"DATABASE_PING_TIMEOUT,default=10s"`

	// ASPSP connector: "sandbox" (built-in simulated bank) or "remote" (HTTP adapter at ASPSP_BASE_URL)
	AspspConnector string        `env:"ASPSP_CONNECTOR,default=sandbox"`
	AspspBaseURL   string        `env:"ASPSP_BASE_URL"`
	AspspTimeout   time.Duration `env:"ASPSP_TIMEOUT,default=10s"`
	SandboxOTP     string        `env:"SANDBOX_OTP,default=123456"`

	// optional JWK set file with the private key used to sign requests to the remote ASPSP adapter
	AspspSigningKeyPath string `env:"ASPSP_SIGNING_KEY_PATH"`

	// SCA settings
	AuthorisationConfirmationRequired bool `env:"AUTHORISATION_CONFIRMATION_REQUIRED,default=false"`

	// consent expiry background job (0 disables it)
	ConsentExpiryInterval time.Duration `env:"CONSENT_EXPIRY_INTERVAL,default=1h"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"prod":    true,
	"staging": true,
}

var validStoreBackends = map[string]bool{
	"postgres": true,
	"memory":   true,
}

var validAspspConnectors = map[string]bool{
	"sandbox": true,
	"remote":  true,
}

// NewServerConfig loads environment variables and returns a ServerEnvironment struct that contains the values
func NewServerConfig() (*ServerEnvironment, error) {
	var cfg ServerEnvironment

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateConfig checks for required env variables
func validateConfig(cfg *ServerEnvironment) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid ENVIRONMENT: %s", cfg.Environment)
	}

	if !validStoreBackends[cfg.StoreBackend] {
		return fmt.Errorf("invalid STORE_BACKEND: %s (use postgres or memory)", cfg.StoreBackend)
	}
	if cfg.StoreBackend == "postgres" && cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=postgres")
	}
	if cfg.StoreBackend == "memory" && (cfg.Environment == "prod" || cfg.Environment == "staging") {
		return fmt.Errorf("STORE_BACKEND=memory is not allowed in %s", cfg.Environment)
	}

	// Validate database pool configuration
	if cfg.DBMaxConnections < 1 {
		return fmt.Errorf("DB_MAX_CONNECTIONS must be at least 1")
	}
	if cfg.DBMinConnections < 0 {
		return fmt.Errorf("DB_MIN_CONNECTIONS must be 0 or greater")
	}
	if cfg.DBMinConnections > cfg.DBMaxConnections {
		return fmt.Errorf("DB_MIN_CONNECTIONS (%d) cannot be greater than DB_MAX_CONNECTIONS (%d)",
			cfg.DBMinConnections, cfg.DBMaxConnections)
	}

	if !validAspspConnectors[cfg.AspspConnector] {
		return fmt.Errorf("invalid ASPSP_CONNECTOR: %s (use sandbox or remote)", cfg.AspspConnector)
	}
	if cfg.AspspConnector == "remote" && cfg.AspspBaseURL == "" {
		return fmt.Errorf("ASPSP_BASE_URL is required when ASPSP_CONNECTOR=remote")
	}

	if cfg.MaxRequestBodyBytes < 1 {
		return fmt.Errorf("MAX_REQUEST_BODY_BYTES must be at least 1")
	}
	if cfg.ConsentExpiryInterval < 0 {
		return fmt.Errorf("CONSENT_EXPIRY_INTERVAL must be 0 (disabled) or greater")
	}

	return nil
}
