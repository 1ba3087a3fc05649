package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apihandlers "github.com/information-sharing-networks/xs2a-demo/app/internal/api/handlers"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/config"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/consent"
	_ "github.com/information-sharing-networks/xs2a-demo/app/internal/docs"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/logger"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/payment"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/sca"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/server/handlers"
	appmiddleware "github.com/information-sharing-networks/xs2a-demo/app/internal/server/middleware"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/services"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/store/memory"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/store/postgres"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/version"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
	"github.com/jackc/pgx/v5/pgxpool"
)

// storage is satisfied by both the postgres and the memory store.
type storage interface {
	consent.Store
	payment.Store
	sca.Store
}

type Server struct {
	pool   *pgxpool.Pool
	config *config.ServerEnvironment
	logger *slog.Logger
	router *chi.Mux

	dbChecker      handlers.DatabaseChecker
	consents       *consent.Service
	payments       *payment.PaymentService
	authorisations *sca.AuthorisationService
	expiryWorker   *consent.ExpiryWorker

	// sandbox is set when the sandbox ASPSP is configured
	sandbox *services.AspspConnectorSandbox
}

// NewServer wires the stores, services and routes.
// pool is nil when the server runs with the memory store.
func NewServer(
	pool *pgxpool.Pool,
	cfg *config.ServerEnvironment,
	logger *slog.Logger,
) (*Server, error) {
	server := &Server{
		pool:   pool,
		config: cfg,
		logger: logger,
		router: chi.NewRouter(),
	}

	if err := server.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	server.setupMiddleware()
	server.registerRoutes()

	return server, nil
}

// Router exposes the http handler (used by tests that drive the server through httptest).
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) initServices() error {
	var store storage
	if s.pool != nil {
		pgStore := postgres.New(s.pool, s.logger)
		s.dbChecker = pgStore.Queries()
		store = pgStore
		s.logger.Info("using postgres store")
	} else {
		if s.config.StoreBackend == "postgres" {
			return fmt.Errorf("the postgres store needs a database pool")
		}
		store = memory.New()
		s.logger.Warn("using in-memory store: data will be lost on restart")
	}

	svc, err := services.NewServices(s.config)
	if err != nil {
		return err
	}
	s.logger.Info("ASPSP connector configured",
		slog.String("connector", s.config.AspspConnector))
	if sandbox, ok := svc.AspspConnector.(*services.AspspConnectorSandbox); ok {
		s.sandbox = sandbox
	}

	s.consents = consent.NewService(store, consent.NewIntegrityGuard(consent.DefaultRegistry(), s.logger), s.logger)
	s.payments = payment.NewPaymentService(store, s.logger)

	flow := sca.FlowConfig{
		ConfirmationRequired: s.config.AuthorisationConfirmationRequired,
	}
	dispatcher := sca.NewDispatcher(s.logger,
		sca.NewAISProcessor(s.consents, svc.AspspConnector, flow, s.logger),
		sca.NewPISCreationProcessor(s.payments, svc.AspspConnector, flow, s.logger),
		sca.NewPISCancellationProcessor(s.payments, svc.AspspConnector, flow, s.logger),
		sca.NewPIISProcessor(s.consents, svc.AspspConnector, flow, s.logger),
	)
	s.authorisations = sca.NewAuthorisationService(store, sca.NewProcessor(dispatcher, s.logger), s.consents, s.payments, s.logger)

	s.expiryWorker = consent.NewExpiryWorker(s.consents, s.config.ConsentExpiryInterval, s.logger)
	return nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(appmiddleware.XRequestID)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(appmiddleware.TppLogAttrs)
	s.router.Use(middleware.Recoverer)
	s.router.Use(appmiddleware.SecurityHeaders(s.config.Environment))
	s.router.Use(appmiddleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
	if s.config.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.config.RequestTimeout))
	}
}

func (s *Server) registerRoutes() {
	consentHandler := apihandlers.NewConsentHandler(s.consents)
	paymentHandler := apihandlers.NewPaymentHandler(s.payments)
	authHandler := apihandlers.NewAuthorisationHandler(s.authorisations, s.consents, s.payments)

	s.router.Get("/health/live", handlers.HandleHealth)
	s.router.Get("/health/ready", handlers.HandleReadiness(s.dbChecker))
	s.router.Get("/version", handlers.HandleVersion(version.Get()))
	s.router.Get("/swagger/doc.json", handlers.HandleSwaggerDoc)

	s.router.Route("/v1", func(r chi.Router) {
		r.Use(appmiddleware.RequestSizeLimit(s.config.MaxRequestBodyBytes))

		r.Get("/accounts", consentHandler.HandleListAccounts)

		r.Route("/consents", func(r chi.Router) {
			r.Post("/", consentHandler.HandleCreateConsent)

			r.Route("/confirmation-of-funds", func(r chi.Router) {
				r.Post("/", consentHandler.HandleCreateFundsConfirmationConsent)
				s.consentRoutes(r, xs2a.ServiceTypePIIS, sca.AuthorisationTypePIISConsent, consentHandler, authHandler)
			})

			s.consentRoutes(r, xs2a.ServiceTypeAIS, sca.AuthorisationTypeAISConsent, consentHandler, authHandler)
		})

		r.Route("/{paymentService}/{paymentProduct}", func(r chi.Router) {
			r.Post("/", paymentHandler.HandleInitiatePayment)

			r.Route("/{paymentId}", func(r chi.Router) {
				r.Get("/status", paymentHandler.HandleGetPaymentStatus)
				authorisationRoutes(r, "/authorisations", sca.AuthorisationTypePISCreation, authHandler)
				authorisationRoutes(r, "/cancellation-authorisations", sca.AuthorisationTypePISCancellation, authHandler)
			})
		})
	})

	s.router.Route("/admin", func(r chi.Router) {
		r.Get("/consents/{consentId}/checksum", handlers.HandleVerifyConsentChecksum(s.consents))
		r.Post("/consents/expire", handlers.HandleExpireConsents(s.consents))
		if s.sandbox != nil {
			r.Post("/sandbox/decoupled/{authorisationId}/approve", handlers.HandleApproveSandboxPush(s.sandbox))
		}
	})
}

func (s *Server) consentRoutes(r chi.Router, service xs2a.ServiceType, authType sca.AuthorisationType, consentHandler *apihandlers.ConsentHandler, authHandler *apihandlers.AuthorisationHandler) {
	r.Route("/{consentId}", func(r chi.Router) {
		r.Get("/", consentHandler.HandleGetConsent(service))
		r.Delete("/", consentHandler.HandleDeleteConsent(service))
		r.Get("/status", consentHandler.HandleGetConsentStatus(service))
		authorisationRoutes(r, "/authorisations", authType, authHandler)
	})
}

func authorisationRoutes(r chi.Router, prefix string, authType sca.AuthorisationType, h *apihandlers.AuthorisationHandler) {
	r.Route(prefix, func(r chi.Router) {
		r.Post("/", h.HandleStartAuthorisation(authType))
		r.Get("/", h.HandleListAuthorisations(authType))
		r.Put("/{authorisationId}", h.HandleUpdateAuthorisation(authType))
		r.Get("/{authorisationId}", h.HandleGetScaStatus(authType))
	})
}

func (s *Server) Start(ctx context.Context) error {
	serverAddr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	s.expiryWorker.Start(ctx)
	defer s.expiryWorker.Stop()

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("service listening",
			slog.String("environment", s.config.Environment),
			slog.String("address", serverAddr))

		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownTimeout := s.config.ServerShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("shutting down HTTP server")

	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Warn("HTTP server shutdown error",
			slog.String("error", err.Error()))
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

func (s *Server) DatabaseShutdown() {
	if s.pool != nil {
		s.pool.Close()
		s.logger.Info("database connection closed")
	}
}
