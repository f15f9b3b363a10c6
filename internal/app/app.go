package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"housepulse/internal/config"
	"housepulse/internal/geo"
	"housepulse/internal/infrastructure"
	customMiddleware "housepulse/internal/middleware"
	"housepulse/internal/observability"
	"housepulse/internal/reconcile"
	"housepulse/internal/services"
	"housepulse/internal/sources"
	handlers "housepulse/internal/transport/http"
	"housepulse/pkg/contracts"
)

const (
	VERSION = contracts.Version
	AppName = "HousePulse - Housing Market Analytics"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	MarketService *services.MarketDataService
	Logger        *slog.Logger
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", VERSION))

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices wires the load cycle collaborators into the market
// data service.
func (a *Application) initializeServices() error {
	catalog, err := geo.LoadCatalog(a.Config.Geo.CBSACoordinates, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to load coordinate catalog: %w", err)
	}

	geocoder := geo.NewGeocoder(
		a.Config.Geo.GeocoderURL,
		a.Config.Geo.GeocoderRPS,
		a.Config.Geo.GeocoderTimeout,
		a.Logger,
	)

	reconciler := reconcile.NewReconciler(a.Logger,
		reconcile.WithMinConfidence(a.Config.Analysis.MinConfidence))

	fetcher := sources.NewFetcher(
		a.Config.Sources.National,
		a.Config.Sources.State,
		a.Config.Sources.Metro,
		a.Config.Sources.FetchTimeout,
		a.Logger,
	)

	a.MarketService = services.NewMarketDataService(fetcher, catalog, geocoder, reconciler, a.Logger)
	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.Metrics(observability.DefaultMetrics))
	r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
		AllowedOrigins: []string{"*"},
		Logger:         a.Logger,
	}))
	r.Use(customMiddleware.Compress(5))

	a.setupAPIRoutes(r)

	// Prometheus endpoint outside the API group
	r.Handle("/metrics", observability.Handler())

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		healthHandler := handlers.NewHealthHandler(a.MarketService, VERSION, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		marketHandler := handlers.NewMarketHandler(a.MarketService, a.Logger)
		r.Mount("/", marketHandler.Routes())

		reloadHandler := handlers.NewReloadHandler(a.MarketService, a.Logger)
		r.Post("/reload", reloadHandler.Reload)
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts the HTTP server and kicks off the initial load cycle.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", VERSION),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	// Initial load runs in the background so the server answers health
	// checks immediately; data routes return 503 until it completes.
	go func() {
		loadCtx, loadCancel := context.WithTimeout(ctx, a.Config.Sources.FetchTimeout+5*time.Minute)
		defer loadCancel()
		if _, err := a.MarketService.Load(loadCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Initial data load failed",
				slog.String("error", err.Error()),
				slog.String("hint", "POST /api/reload to retry"))
		}
	}()

	a.Logger.InfoContext(ctx, "Application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	infrastructure.CloseLogFile()
	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
