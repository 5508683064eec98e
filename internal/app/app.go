package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"ppecli/internal/config"
	apierrors "ppecli/internal/errors"
	"ppecli/internal/infrastructure"
	customMiddleware "ppecli/internal/middleware"
	"ppecli/internal/services"
	handlers "ppecli/internal/transport/http"
	"ppecli/pkg/contracts"
)

const AppName = "PPE Export Parity"

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	PPEService    handlers.PPEServiceInterface
	HealthService *services.HealthService
}

// BuildPPEService wires the configured quote and premium providers into a
// PPE service. providers may be nil, in which case runs are not traced.
func BuildPPEService(ctx context.Context, cfg *config.Config, logger *slog.Logger, providers *infrastructure.OTelProviders) (*services.PPEService, error) {
	fetcher, err := services.NewFetcher(cfg.Quotes, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize quote provider: %w", err)
	}
	source, err := services.NewPremiumSource(ctx, cfg.Premiums, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize premium provider: %w", err)
	}

	opts := []services.PPEOption{
		services.WithCollectOptions(services.CollectOptions(cfg.Quotes)...),
	}
	if providers != nil {
		metrics, err := infrastructure.NewPPEMetrics(providers.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PPE metrics: %w", err)
		}
		opts = append(opts, services.WithTracer(providers.Tracer), services.WithMetrics(metrics))
	}

	return services.NewPPEService(cfg.Run, fetcher, source, logger, opts...)
}

// NewApplication builds every service from cfg and wires the HTTP server
func NewApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, providers *infrastructure.OTelProviders) (*Application, error) {
	svc, err := BuildPPEService(ctx, cfg, logger, providers)
	if err != nil {
		return nil, err
	}
	health := services.NewHealthService(contracts.Version, services.ConfigChecks(cfg), logger)
	return New(cfg, logger, providers, svc, health)
}

// New creates an application around already constructed services
func New(cfg *config.Config, logger *slog.Logger, providers *infrastructure.OTelProviders, svc handlers.PPEServiceInterface, health *services.HealthService) (*Application, error) {
	if cfg == nil || svc == nil || health == nil {
		return nil, errors.New("config, PPE service and health service are required")
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	a := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: providers,
		PPEService:    svc,
		HealthService: health,
	}
	if err := a.setupRouter(); err != nil {
		return nil, err
	}
	a.createServer()
	return a, nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() error {
	r := chi.NewRouter()
	errorHandler := apierrors.NewErrorHandler(a.Logger, false)

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StripSlashes)
	r.Use(apierrors.NewErrorMiddleware(errorHandler, a.Logger).Handler)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	var exporter http.Handler
	if a.OTelProviders != nil {
		otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
		if err != nil {
			return fmt.Errorf("failed to create OpenTelemetry middleware: %w", err)
		}
		r.Use(otelMiddleware.Handler)
		exporter = a.OTelProviders.PrometheusHTTP
	}

	// scraped by Prometheus, not subject to CORS or rate limiting
	r.Handle("/metrics", handlers.NewMetricsHandler(exporter, errorHandler))

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.SecurityHeaders)
		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(a.getCORSConfig()))
		}
		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r, errorHandler)
	})

	a.Router = r
	return nil
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router, errorHandler *apierrors.ErrorHandler) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		// a run fans out to one quote request per ticker
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout))
			r.Mount("/v1/ppe", handlers.NewPPEHandler(a.PPEService, a.Logger, errorHandler).Routes())
		})
	})
}

func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxAge:         300,
		Logger:         a.Logger,
	}
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully
func (a *Application) Serve(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", contracts.GetVersionString()),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	if err := a.performStartupHealthCheck(ctx); err != nil {
		a.Logger.WarnContext(ctx, "Startup health check warnings", slog.String("warnings", err.Error()))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.WithoutCancel(ctx))
	})

	return g.Wait()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until SIGINT or SIGTERM
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Serve(ctx)
}

// performStartupHealthCheck runs the readiness checks once so that missing
// quote or premium files show up in the log before the first request
func (a *Application) performStartupHealthCheck(ctx context.Context) error {
	status := a.HealthService.ReadinessCheck(ctx)
	if status.Status == "ready" {
		a.Logger.InfoContext(ctx, "Startup health check passed")
		return nil
	}

	var warnings []string
	for name, svc := range status.Services {
		if svc.Status != "ready" {
			warnings = append(warnings, fmt.Sprintf("%s: %s", name, svc.Message))
		}
	}
	sort.Strings(warnings)
	return fmt.Errorf("startup health check warnings: %s", strings.Join(warnings, "; "))
}
