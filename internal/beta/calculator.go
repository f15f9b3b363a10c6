package beta

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"housepulse/internal/timeseries"
	"housepulse/pkg/contracts/domain"
)

// Calculator derives rolling market betas for every geography in a store
// against a national baseline series.
type Calculator struct {
	windows []Window
	metrics []domain.Metric
	logger  *slog.Logger
}

// NewCalculator creates a calculator for the standard windows and beta metrics.
func NewCalculator(logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{
		windows: Windows(),
		metrics: domain.BetaMetrics(),
		logger:  logger,
	}
}

// Compute calculates betas for every (geography, metric, window) combination
// in the store. Insufficiency of any kind is represented as a Result with a
// nil beta; per-geography problems never abort the batch.
//
// Computation is batched by geography so the aligned calendar - which depends
// only on which months exist on both sides, not on the metric - is derived
// once per geography and reused across all metrics and windows.
func (c *Calculator) Compute(ctx context.Context, store *timeseries.Store, national *timeseries.Series) ([]Result, error) {
	if national == nil || national.Len() == 0 {
		return nil, fmt.Errorf("no national baseline series available")
	}

	start := time.Now()
	geoIDs := store.GeoIDs()

	c.logger.InfoContext(ctx, "starting beta calculation",
		"geography_type", string(store.GeoType()),
		"geographies", len(geoIDs),
		"metrics", len(c.metrics),
		"windows", len(c.windows))

	var results []Result
	for _, geoID := range geoIDs {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("beta calculation cancelled: %w", ctx.Err())
		default:
		}

		series, ok := store.Series(geoID)
		if !ok {
			continue
		}
		results = append(results, c.computeGeography(series, national)...)
	}

	c.logger.InfoContext(ctx, "beta calculation completed",
		"geography_type", string(store.GeoType()),
		"results", len(results),
		"duration", time.Since(start))

	return results, nil
}

// ComputeSeries calculates betas for a single geography series against the
// national baseline, one Result per (metric, window).
func (c *Calculator) ComputeSeries(local, national *timeseries.Series) []Result {
	return c.computeGeography(local, national)
}

func (c *Calculator) computeGeography(local, national *timeseries.Series) []Result {
	aligned := AlignedCalendar(local, national)

	results := make([]Result, 0, len(c.metrics)*len(c.windows))
	for _, metric := range c.metrics {
		for _, window := range c.windows {
			results = append(results, Result{
				GeoID:        local.GeoID,
				Metric:       metric,
				WindowMonths: window.Months(),
				Beta:         betaForWindow(local, national, metric, window, aligned),
			})
		}
	}
	return results
}

// ComputeBeta is the pure single-value form: the beta of one geography's
// metric against the national series over one window. Exposed for callers
// that do not batch.
func ComputeBeta(local, national *timeseries.Series, metric domain.Metric, window Window) *float64 {
	return betaForWindow(local, national, metric, window, AlignedCalendar(local, national))
}

// betaForWindow computes Cov(local, national) / Var(national) over the
// window's most recent aligned months.
func betaForWindow(local, national *timeseries.Series, metric domain.Metric, window Window, aligned []domain.YearMonth) *float64 {
	if len(aligned) < window.Months() {
		return nil // insufficient aligned history, never padded
	}

	localReturns, nationalReturns := pairedReturns(local, national, metric, aligned[:window.Months()])
	if len(localReturns) < MinReturnObservations {
		return nil
	}

	variance := sampleVariance(nationalReturns)
	if variance == 0 {
		return nil // flat national series inside the window
	}

	b := sampleCovariance(localReturns, nationalReturns) / variance
	return &b
}
