package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"log-analyzer/internal/aggregators"
	"log-analyzer/internal/analyzers"
	"log-analyzer/internal/classifiers"
	internalhttp "log-analyzer/internal/http"
	"log-analyzer/internal/locators"
	"log-analyzer/internal/models"
	"log-analyzer/internal/parsers"
	"log-analyzer/internal/rankers"
	"log-analyzer/internal/readers"
	"log-analyzer/internal/renderers"
	"log-analyzer/internal/shared/configs"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/stores"
)

const appName = "log-analyzer"

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	logCloser io.Closer
	server    *http.Server

	analysisService analyzers.AnalysisService
	tableRenderer   renderers.TableRenderer
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, logCloser, err := loggers.New(config.Log.Level, config.Log.File)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, appName).
		Logger()

	// Initialize storages
	logStorage, err := filestorages.NewFileStorage(config.LogDir)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("failed to initialize log storage: %w", err)
	}
	reportStorage, err := filestorages.NewFileStorage(config.ReportDir)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("failed to initialize report storage: %w", err)
	}

	// Initialize analysis service
	reportStore := stores.NewReportStore(reportStorage, renderers.NewHTMLRenderer())
	analysisService := analyzers.NewAnalysisService(
		locators.NewLogLocator(logStorage),
		readers.NewLogReader(logStorage),
		parsers.NewLineParser(),
		aggregators.NewAggregator(config.AcceptableParsedShare, classifiers.NewClientClassifier()),
		rankers.NewReportBuilder(),
		reportStore,
		config.ReportSize,
	)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(analysisService, reportStore, httpLogger)

	// Create HTTP server, only started in serve mode
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:          config,
		appLogger:       appLogger,
		logCloser:       logCloser,
		server:          server,
		analysisService: analysisService,
		tableRenderer:   renderers.NewTableRenderer(),
	}, nil
}

// Run performs a single analysis run, then pushes the run metrics when a Pushgateway is
// configured. A failed push is logged and does not fail the run.
func (app *App) Run(ctx context.Context) (*models.RunResult, error) {
	logger := app.appLogger.With().Str(loggers.FieldComponent, "batch").Logger()
	logger.Info().
		Msgf("Starting %s run (log_dir=%s, report_dir=%s, report_size=%d, acceptable_parsed_share=%.3f)",
			appName,
			app.config.LogDir,
			app.config.ReportDir,
			app.config.ReportSize,
			app.config.AcceptableParsedShare)

	result, err := app.analysisService.Analyze(logger.WithContext(ctx))

	if url := app.config.Metrics.PushgatewayURL; url != "" {
		if pushErr := metrics.PushDefault(url, app.config.Metrics.Job); pushErr != nil {
			logger.Warn().Err(pushErr).Msg("failed to push metrics")
		}
	}
	return result, err
}

// PrintSummary writes the top rows of a freshly generated report as a text table. Nothing is
// written for runs that did not generate a report.
func (app *App) PrintSummary(w io.Writer, result *models.RunResult, limit int) {
	if result == nil || result.Outcome != models.OutcomeReportGenerated {
		return
	}
	_, _ = fmt.Fprintf(w, "%s (%d of %d lines parsed)\n", result.ReportKey, result.ParsedRecords, result.TotalRecords)
	app.tableRenderer.Render(w, result.Rows, limit)
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting %s service on port %d (log_level=%s, log_dir=%s, report_dir=%s)",
			appName,
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.LogDir,
			app.config.ReportDir)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")
	return nil
}

// Close releases the log file, if any. The app must not be used afterwards.
func (app *App) Close() error {
	return app.logCloser.Close()
}
