package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"housepulse/internal/beta"
	"housepulse/internal/dataprocessing"
	"housepulse/internal/geo"
	"housepulse/internal/observability"
	"housepulse/internal/reconcile"
	"housepulse/internal/sources"
	"housepulse/internal/timeseries"
	"housepulse/pkg/contracts/domain"
)

// Snapshot is the immutable result of one load cycle. All derived figures
// are computed during Load; readers never trigger recomputation so there is
// no shared mutable cache to invalidate.
type Snapshot struct {
	LoadedAt time.Time

	National *domain.GeographySummary
	States   map[string]*domain.GeographySummary
	Metros   map[string]*domain.GeographySummary

	Stores map[domain.GeoType]*timeseries.Store

	// Placed holds map placements keyed by the geography's raw label.
	Placed   map[string]domain.PlacedGeography
	Unmapped []string
}

// MarketDataService orchestrates the load cycle: fetch the three exports,
// parse them, build the time series stores, derive changes and betas, and
// reconcile metro labels against the coordinate catalog. The latest snapshot
// is swapped in atomically; concurrent readers always see a complete one.
type MarketDataService struct {
	fetcher    *sources.Fetcher
	catalog    *geo.Catalog
	geocoder   *geo.Geocoder
	reconciler *reconcile.Reconciler
	calculator *beta.Calculator
	metrics    *observability.Metrics
	logger     *slog.Logger

	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewMarketDataService creates the service from its collaborators. catalog,
// geocoder and metrics may be nil; the corresponding behaviors degrade
// gracefully.
func NewMarketDataService(
	fetcher *sources.Fetcher,
	catalog *geo.Catalog,
	geocoder *geo.Geocoder,
	reconciler *reconcile.Reconciler,
	logger *slog.Logger,
) *MarketDataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarketDataService{
		fetcher:    fetcher,
		catalog:    catalog,
		geocoder:   geocoder,
		reconciler: reconciler,
		calculator: beta.NewCalculator(logger),
		metrics:    observability.DefaultMetrics,
		logger:     logger.With(slog.String("service", "market_data")),
	}
}

// Snapshot returns the latest complete snapshot, or nil if no load cycle has
// succeeded yet.
func (s *MarketDataService) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Load runs one complete load cycle and installs the resulting snapshot.
// On failure the previous snapshot, if any, stays in place.
func (s *MarketDataService) Load(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	s.logger.InfoContext(ctx, "load cycle started")

	snapshot, err := s.buildSnapshot(ctx)
	if err != nil {
		observability.RecordLoadCycle("failure", time.Since(start).Seconds())
		s.logger.ErrorContext(ctx, "load cycle failed", "error", err, "duration", time.Since(start))
		return nil, err
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	observability.RecordLoadCycle("success", time.Since(start).Seconds())
	s.metrics.LastSuccessfulLoad.SetToCurrentTime()

	s.logger.InfoContext(ctx, "load cycle completed",
		"states", len(snapshot.States),
		"metros", len(snapshot.Metros),
		"unmapped", len(snapshot.Unmapped),
		"duration", time.Since(start))
	return snapshot, nil
}

func (s *MarketDataService) buildSnapshot(ctx context.Context) (*Snapshot, error) {
	payloads, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market exports: %w", err)
	}

	stores := make(map[domain.GeoType]*timeseries.Store, len(payloads))
	for _, geoType := range []domain.GeoType{domain.GeoNational, domain.GeoState, domain.GeoMetro} {
		payload := payloads[geoType]
		result, err := dataprocessing.ParseObservations(bytes.NewReader(payload.Body), geoType, s.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s export: %w", geoType, err)
		}
		observability.RecordParse(string(geoType), len(result.Observations), result.DroppedRows)
		stores[geoType] = timeseries.NewStore(geoType, result.Observations, s.logger)
		s.metrics.GeographiesLoaded.WithLabelValues(string(geoType)).Set(float64(stores[geoType].Len()))
	}

	national, err := nationalSeries(stores[domain.GeoNational])
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		LoadedAt: time.Now(),
		States:   make(map[string]*domain.GeographySummary),
		Metros:   make(map[string]*domain.GeographySummary),
		Stores:   stores,
		Placed:   make(map[string]domain.PlacedGeography),
	}

	snapshot.National = s.summarize(national, national)

	for _, store := range []*timeseries.Store{stores[domain.GeoState], stores[domain.GeoMetro]} {
		for _, geoID := range store.GeoIDs() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			series, _ := store.Series(geoID)
			summary := s.summarize(series, national)
			switch store.GeoType() {
			case domain.GeoState:
				snapshot.States[geoID] = summary
			case domain.GeoMetro:
				snapshot.Metros[geoID] = summary
			}
		}
	}

	s.place(ctx, snapshot, stores[domain.GeoMetro])
	return snapshot, nil
}

// nationalSeries extracts the single national baseline series. An empty or
// ambiguous national export aborts the load cycle; every beta downstream
// depends on this series.
func nationalSeries(store *timeseries.Store) (*timeseries.Series, error) {
	ids := store.GeoIDs()
	if len(ids) == 0 {
		return nil, fmt.Errorf("national export contains no usable rows")
	}
	if len(ids) > 1 {
		return nil, fmt.Errorf("national export contains %d geographies, expected one", len(ids))
	}
	series, _ := store.Series(ids[0])
	return series, nil
}

// summarize derives the full output record for one geography: latest values,
// month-over-month and year-over-year changes for every metric, and rolling
// betas against the national baseline for the listing metrics.
func (s *MarketDataService) summarize(series, national *timeseries.Series) *domain.GeographySummary {
	summary := &domain.GeographySummary{
		GeoType: series.GeoType,
		GeoID:   series.GeoID,
	}
	if latest := series.Latest(); latest != nil {
		summary.LatestDate = latest.Date
		for _, metric := range domain.AllMetrics() {
			block := summary.MetricSummaryFor(metric)
			block.Latest = latest.Value(metric)
			block.MoM = beta.MonthOverMonth(series, metric)
			block.YoY = beta.YearOverYear(series, metric)
		}
	}

	for _, result := range s.calculator.ComputeSeries(series, national) {
		block := summary.MetricSummaryFor(result.Metric)
		if block == nil {
			continue
		}
		switch result.WindowMonths {
		case beta.Window1Y.Months():
			block.Beta1Y = result.Beta
		case beta.Window3Y.Months():
			block.Beta3Y = result.Beta
		case beta.Window5Y.Months():
			block.Beta5Y = result.Beta
		}
		if result.Beta != nil {
			s.metrics.BetasComputed.Inc()
		}
	}
	return summary
}

// place resolves map coordinates for every summarized geography. States use
// the built-in center table. Metro labels are reconciled against the
// coordinate catalog's canonical CBSA titles; labels the reconciler cannot
// place fall through to the geocoder, and failures there leave the geography
// without a placement.
func (s *MarketDataService) place(ctx context.Context, snapshot *Snapshot, metroStore *timeseries.Store) {
	for state := range snapshot.States {
		if coord, ok := geo.StateCenter(state); ok {
			snapshot.Placed[state] = domain.PlacedGeography{
				SourceLabel:    state,
				CanonicalLabel: state,
				Confidence:     reconcile.ScoreExact,
				Coordinate:     coord,
			}
		}
	}

	metroLabels := metroStore.GeoIDs()
	result := s.reconciler.Reconcile(metroLabels, s.catalogNames())
	observability.RecordReconciliation(len(result.Mappings), len(result.Unmapped))

	for _, label := range metroLabels {
		if placed, ok := s.placeMetro(ctx, label, metroStore, result); ok {
			snapshot.Placed[label] = placed
		}
	}
	snapshot.Unmapped = result.Unmapped
}

// placeMetro resolves one metro label. A CBSA code carried on the series
// itself beats name reconciliation; the geocoder is the last resort.
func (s *MarketDataService) placeMetro(ctx context.Context, label string, store *timeseries.Store, result *reconcile.Result) (domain.PlacedGeography, bool) {
	if latest, ok := store.Latest(label); ok && latest.CBSACode != "" && s.catalog != nil {
		if entry, ok := s.catalog.ByCode(latest.CBSACode); ok {
			return domain.PlacedGeography{
				SourceLabel:    label,
				CanonicalLabel: entry.Name,
				Confidence:     reconcile.ScoreExact,
				Coordinate:     entry.Coordinate,
			}, true
		}
	}

	if mapping, ok := result.Mappings[label]; ok && s.catalog != nil {
		if entry, ok := s.catalog.ByName(mapping.CanonicalLabel); ok {
			return domain.PlacedGeography{
				SourceLabel:    label,
				CanonicalLabel: mapping.CanonicalLabel,
				Confidence:     mapping.Confidence,
				Coordinate:     entry.Coordinate,
			}, true
		}
	}

	if s.geocoder != nil && s.geocoder.Enabled() {
		if coord, ok := s.geocoder.Lookup(ctx, label); ok {
			return domain.PlacedGeography{
				SourceLabel:    label,
				CanonicalLabel: label,
				Confidence:     reconcile.DefaultMinConfidence,
				Coordinate:     coord,
			}, true
		}
	}

	return domain.PlacedGeography{}, false
}

func (s *MarketDataService) catalogNames() []string {
	if s.catalog == nil {
		return nil
	}
	return s.catalog.Names()
}

// SummariesForScope returns the summaries for one geography scope sorted by
// geography label. Scope is one of "national", "state" or "metro".
func (snap *Snapshot) SummariesForScope(scope string) ([]*domain.GeographySummary, error) {
	switch strings.ToLower(scope) {
	case string(domain.GeoNational):
		return []*domain.GeographySummary{snap.National}, nil
	case string(domain.GeoState):
		return sortedSummaries(snap.States), nil
	case string(domain.GeoMetro):
		return sortedSummaries(snap.Metros), nil
	}
	return nil, fmt.Errorf("unknown geography scope %q", scope)
}

// StoreForScope returns the time-series store for one geography scope, giving
// consumers access to the full observation history behind the summaries.
func (snap *Snapshot) StoreForScope(scope string) (*timeseries.Store, error) {
	geoType := domain.GeoType(strings.ToLower(scope))
	store, ok := snap.Stores[geoType]
	if !ok {
		return nil, fmt.Errorf("unknown geography scope %q", scope)
	}
	return store, nil
}

func sortedSummaries(m map[string]*domain.GeographySummary) []*domain.GeographySummary {
	out := make([]*domain.GeographySummary, 0, len(m))
	for _, summary := range m {
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GeoID < out[j].GeoID })
	return out
}
