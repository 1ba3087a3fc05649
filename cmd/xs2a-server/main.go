package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/config"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/logger"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/server"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/store/postgres"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/version"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

//	@title			xs2a-server
//	@description	xs2a-server is a demo implementation of the PSD2 access to account (XS2A) interface:
//	@description	account information and funds confirmation consents, payment initiation, and the
//	@description	SCA authorisations of all of them.
//	@description
//	@description	## Common Error Responses
//	@description	All endpoints may return:
//	@description	- `413` Request body exceeds size limit
//	@description	- `429` Rate limit exceeded
//	@description	- `500` Internal server error
//	@description
//	@description	Error bodies carry `tppMessages` with the XS2A message code (e.g. `FORMAT_ERROR`, `CONSENT_UNKNOWN_403`).
//	@description
//	@description	## Authorisation flow
//	@description	Start an authorisation on a consent or payment, then update it with the PSU password,
//	@description	the chosen SCA method and the TAN. The `_links` of each response name the next step.
//	@description
//	@description	## Sandbox bank
//	@description	With ASPSP_CONNECTOR=sandbox the PSU password is `12345` and every TAN is SANDBOX_OTP.
//	@description	The PSU ids `single-sca`, `decoupled`, `no-sca`, `exempted`, `multilevel` and `blocked`
//	@description	trigger the matching flows.
//	@description
//	@description	## Authentication & Authorization
//	@description	TPP authentication (eIDAS certificates, request signing) is out of scope for the demo;
//	@description	the TPP-ID header is recorded but not verified.
//	@license.name	MIT

//	@servers.url			http://localhost:8080
//	@servers.description	Development server

//	@accept		json
//	@produce	json

//	@tag.name			AIS
//	@tag.description	Account information consents

//	@tag.name			PIIS
//	@tag.description	Funds confirmation consents

//	@tag.name			PIS
//	@tag.description	Payment initiation

//	@tag.name			Authorisations
//	@tag.description	SCA authorisations of consents, payments and payment cancellations

//	@tag.name			Common
//	@tag.description	Server API endpoints (health, readiness, version, docs)

//	@tag.name			Admin
//	@tag.description	Consent checksum checks and the consent expiry job. These endpoints are unprotected and for use in development and testing only.

func main() {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "xs2a-server",
		Short: "XS2A API server",
		Long:  `xs2a-server serves the XS2A consent, payment and authorisation endpoints`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending database migrations before starting")

	v := version.Get()
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(migrate bool) error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err.Error())
		os.Exit(1)
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	appLogger.Info("Configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("HOST", cfg.Host),
		slog.Int("PORT", cfg.Port),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.String("STORE_BACKEND", cfg.StoreBackend),
		slog.String("ASPSP_CONNECTOR", cfg.AspspConnector),
		slog.Bool("ASPSP_REQUEST_SIGNING", cfg.AspspSigningKeyPath != ""),
		slog.Bool("AUTHORISATION_CONFIRMATION_REQUIRED", cfg.AuthorisationConfirmationRequired),
		slog.Duration("CONSENT_EXPIRY_INTERVAL", cfg.ConsentExpiryInterval),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if cfg.StoreBackend == "postgres" {
		pool, err = postgres.NewPool(ctx, cfg)
		if err != nil {
			appLogger.Error("Unable to connect to the database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		appLogger.Info("connected to PostgreSQL")

		if migrate {
			schemaVersion, err := postgres.Migrate(ctx, pool)
			if err != nil {
				appLogger.Error("Failed to apply migrations", slog.String("error", err.Error()))
				os.Exit(1)
			}
			appLogger.Info("database migrations applied", slog.Int64("schema_version", schemaVersion))
		}
	}

	appLogger.Info("Starting server", slog.String("version", version.Get().Version))

	server, err := server.NewServer(pool, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer server.DatabaseShutdown()

	if err := server.Start(ctx); err != nil {
		appLogger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("server shutdown complete")
	return nil
}
