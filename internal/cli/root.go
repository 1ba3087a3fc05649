package cli

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/config"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/consent"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/logger"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/store/postgres"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/version"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

// commands annotated with offlineAnnotation do not load the server configuration
const offlineAnnotation = "offline"

var (
	cfg       *config.ServerEnvironment
	appLogger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "xs2a-cli",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "XS2A demo operations CLI",
	Long: `Operations CLI for the XS2A demo server: database migrations, consent checksum checks
and the consent expiry job.

Commands that use the database read the same environment variables as xs2a-server (DATABASE_URL etc).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[offlineAnnotation] == "true" {
			appLogger = logger.InitLogger(logger.ParseLogLevel("info"), "dev")
			return nil
		}

		var err error
		cfg, err = config.NewServerConfig()
		if err != nil {
			log.Printf("failed to load configuration: %v", err.Error())
			return err
		}
		if cfg.StoreBackend != "postgres" {
			return fmt.Errorf("%s needs STORE_BACKEND=postgres", cmd.CommandPath())
		}

		appLogger = logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
		return nil
	},
}

func Execute() {
	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(consentCmd)
	rootCmd.AddCommand(checksumCmd)
}

// openPool connects to the configured database. The caller closes the pool.
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	appLogger.Debug("connected to PostgreSQL")
	return pool, nil
}

// newConsentService builds the consent service on the postgres store
func newConsentService(pool *pgxpool.Pool) *consent.Service {
	registry := consent.DefaultRegistry()
	return consent.NewService(postgres.New(pool, appLogger), consent.NewIntegrityGuard(registry, appLogger), appLogger)
}
