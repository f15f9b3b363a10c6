package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"housepulse/internal/config"
	"housepulse/internal/exporter"
	"housepulse/internal/geo"
	"housepulse/internal/infrastructure"
	"housepulse/internal/reconcile"
	"housepulse/internal/services"
	"housepulse/internal/sources"
)

func main() {
	national := flag.String("national", "", "national export location (URL or file, overrides config)")
	state := flag.String("state", "", "state export location (URL or file, overrides config)")
	metro := flag.String("metro", "", "metro export location (URL or file, overrides config)")
	workbook := flag.Bool("xlsx", false, "also write an Excel workbook")
	history := flag.Bool("history", false, "also write full observation history reports")
	flag.Parse()

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	paths, err := cfg.ResolvePaths()
	if err != nil {
		logger.Error("Failed to resolve paths", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create required directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *national != "" {
		cfg.Sources.National = *national
	}
	if *state != "" {
		cfg.Sources.State = *state
	}
	if *metro != "" {
		cfg.Sources.Metro = *metro
	}

	logger.Info("Starting market data processing",
		slog.String("national", cfg.Sources.National),
		slog.String("state", cfg.Sources.State),
		slog.String("metro", cfg.Sources.Metro))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := geo.LoadCatalog(cfg.Geo.CBSACoordinates, logger)
	if err != nil {
		logger.Error("Failed to load coordinate catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}

	service := services.NewMarketDataService(
		sources.NewFetcher(cfg.Sources.National, cfg.Sources.State, cfg.Sources.Metro, cfg.Sources.FetchTimeout, logger),
		catalog,
		geo.NewGeocoder(cfg.Geo.GeocoderURL, cfg.Geo.GeocoderRPS, cfg.Geo.GeocoderTimeout, logger),
		reconcile.NewReconciler(logger, reconcile.WithMinConfidence(cfg.Analysis.MinConfidence)),
		logger,
	)

	snapshot, err := service.Load(ctx)
	if err != nil {
		logger.Error("Load cycle failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	summaryExporter := exporter.NewSummaryExporter(paths)
	files, err := summaryExporter.ExportAll(snapshot)
	if err != nil {
		logger.Error("Failed to write summary reports", slog.String("error", err.Error()))
		os.Exit(1)
	}
	for _, file := range files {
		logger.Info("Summary report written", slog.String("file", file))
	}

	if *history {
		files, err := exporter.NewHistoryExporter(paths).ExportAll(snapshot)
		if err != nil {
			logger.Error("Failed to write history reports", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, file := range files {
			logger.Info("History report written", slog.String("file", file))
		}
	}

	if *workbook {
		path, err := exporter.NewWorkbookExporter(paths).Export(snapshot, "")
		if err != nil {
			logger.Error("Failed to write workbook", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Workbook written", slog.String("path", path))
	}

	logger.Info("Processing complete",
		slog.Int("states", len(snapshot.States)),
		slog.Int("metros", len(snapshot.Metros)),
		slog.Int("unmapped", len(snapshot.Unmapped)))
}
