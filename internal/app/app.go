// Package app wires configuration, logging, metrics, services, and the HTTP
// router into a runnable server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"liqreport/internal/config"
	"liqreport/internal/exporter"
	"liqreport/internal/infrastructure"
	"liqreport/internal/ingest"
	customMiddleware "liqreport/internal/middleware"
	"liqreport/internal/pricing"
	"liqreport/internal/services"
	handlers "liqreport/internal/transport/http"
)

// Version is the reported build version. Overridden at build time with
// -ldflags "-X liqreport/internal/app.Version=...".
var Version = "dev"

// Application is the dependency container for the report server.
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	ReportService *services.ReportService
	Printer       handlers.Printer
}

// NewApplication builds the application from configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.String("environment", cfg.Environment))

	otelProviders, err := infrastructure.InitializeOTel(Version, cfg.Environment, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

func (a *Application) initializeServices() error {
	renderer, err := exporter.NewHTMLRenderer(a.Logger)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	var sheets services.SheetSource
	if a.Config.SheetImportEnabled() {
		importer, err := ingest.NewSheetImporter(context.Background(),
			a.Config.Sheets.APIKey, a.Config.Sheets.FetchTimeout, a.Logger)
		if err != nil {
			return fmt.Errorf("create sheet importer: %w", err)
		}
		sheets = importer
	} else {
		a.Logger.Info("sheet import disabled, no API key configured")
	}

	var prices services.PriceSource
	if a.Config.PriceLookup.Enabled {
		prices = pricing.NewClient(a.Config.PriceLookup.BaseURL,
			a.Config.PriceLookup.Timeout, a.Logger)
	}

	a.ReportService = services.NewReportService(sheets, prices, renderer, a.Logger)

	if a.Config.PDF.Enabled {
		a.Printer = exporter.NewPDFPrinter(a.Config.PDF.Timeout, a.Logger)
	}

	return nil
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.Compress(5))

	if requestMetrics, err := customMiddleware.NewRequestMetrics(a.OTelProviders.Meter); err != nil {
		a.Logger.Error("failed to create request metrics", slog.String("error", err.Error()))
	} else {
		r.Use(requestMetrics.Handler)
	}

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
		}))
	}
	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		healthHandler := handlers.NewHealthHandler(Version)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/version", healthHandler.Version)

		reportHandler := handlers.NewReportHandler(a.ReportService, a.Printer, a.Logger)
		r.Mount("/reports", reportHandler.Routes())
	})

	metricsHandler := handlers.NewMetricsHandler(a.OTelProviders.Registry)
	r.Get("/metrics", metricsHandler.GetMetrics)

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start begins serving. It returns immediately; server errors cancel the
// passed context.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "server listening",
		slog.Int("port", a.Config.Server.Port),
		slog.Bool("sheet_import", a.Config.SheetImportEnabled()),
		slog.Bool("pdf", a.Config.PDF.Enabled))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	return nil
}

// Stop gracefully shuts the server and observability down.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "metrics shutdown error", slog.String("error", err.Error()))
		}
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}

	a.Logger.InfoContext(ctx, "shutdown complete")
	return nil
}

// Run serves until interrupted, then shuts down gracefully.
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
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
