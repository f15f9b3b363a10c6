package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"housepulse/internal/beta"
	"housepulse/internal/config"
	"housepulse/internal/dataprocessing"
	"housepulse/internal/infrastructure"
	"housepulse/internal/sources"
	"housepulse/internal/timeseries"
	"housepulse/pkg/contracts/domain"
)

func main() {
	scope := flag.String("scope", "metro", "geography scope to report on (state or metro)")
	metricName := flag.String("metric", string(domain.MetricActiveListingCount), "metric to report betas for")
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

	geoType := domain.GeoType(*scope)
	if geoType != domain.GeoState && geoType != domain.GeoMetro {
		logger.Error("Invalid scope", slog.String("scope", *scope), slog.String("hint", "use state or metro"))
		os.Exit(1)
	}

	metric := domain.Metric(*metricName)
	found := false
	for _, m := range domain.BetaMetrics() {
		if m == metric {
			found = true
			break
		}
	}
	if !found {
		logger.Error("Metric does not support beta", slog.String("metric", *metricName))
		os.Exit(1)
	}

	ctx := context.Background()
	fetcher := sources.NewFetcher(cfg.Sources.National, cfg.Sources.State, cfg.Sources.Metro, cfg.Sources.FetchTimeout, logger)
	payloads, err := fetcher.FetchAll(ctx)
	if err != nil {
		logger.Error("Failed to fetch exports", slog.String("error", err.Error()))
		os.Exit(1)
	}

	national, err := buildStore(payloads[domain.GeoNational], domain.GeoNational, logger)
	if err != nil {
		logger.Error("Failed to build national store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	ids := national.GeoIDs()
	if len(ids) != 1 {
		logger.Error("National export must contain exactly one geography", slog.Int("found", len(ids)))
		os.Exit(1)
	}
	nationalSeries, _ := national.Series(ids[0])

	local, err := buildStore(payloads[geoType], geoType, logger)
	if err != nil {
		logger.Error("Failed to build store", slog.String("scope", *scope), slog.String("error", err.Error()))
		os.Exit(1)
	}

	calculator := beta.NewCalculator(logger)
	results, err := calculator.Compute(ctx, local, nationalSeries)
	if err != nil {
		logger.Error("Beta computation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	printReport(results, metric)
}

func buildStore(payload *sources.Payload, geoType domain.GeoType, logger *slog.Logger) (*timeseries.Store, error) {
	result, err := dataprocessing.ParseObservations(bytes.NewReader(payload.Body), geoType, logger)
	if err != nil {
		return nil, err
	}
	return timeseries.NewStore(geoType, result.Observations, logger), nil
}

func printReport(results []beta.Result, metric domain.Metric) {
	fmt.Printf("%-60s %10s %10s %10s\n", "geography", "beta_1y", "beta_3y", "beta_5y")

	rows := make(map[string]map[int]*float64)
	var order []string
	for _, result := range results {
		if result.Metric != metric {
			continue
		}
		if _, ok := rows[result.GeoID]; !ok {
			rows[result.GeoID] = make(map[int]*float64)
			order = append(order, result.GeoID)
		}
		rows[result.GeoID][result.WindowMonths] = result.Beta
	}

	for _, geoID := range order {
		fmt.Printf("%-60s %10s %10s %10s\n",
			geoID,
			formatBeta(rows[geoID][beta.Window1Y.Months()]),
			formatBeta(rows[geoID][beta.Window3Y.Months()]),
			formatBeta(rows[geoID][beta.Window5Y.Months()]))
	}
}

func formatBeta(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}
