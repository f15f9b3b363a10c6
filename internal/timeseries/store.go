package timeseries

import (
	"log/slog"
	"sort"

	"housepulse/pkg/contracts/domain"
)

// Series is the date-ordered observation history for one geography.
// Observations are sorted by date descending (most recent first) and dates
// are unique within the series. A Series is immutable once built.
type Series struct {
	GeoType      domain.GeoType
	GeoID        string
	Observations []domain.MarketObservation

	byDate map[domain.YearMonth]int
}

// Len returns the number of observations in the series.
func (s *Series) Len() int { return len(s.Observations) }

// Latest returns the most recent observation, nil for an empty series.
func (s *Series) Latest() *domain.MarketObservation {
	if len(s.Observations) == 0 {
		return nil
	}
	return &s.Observations[0]
}

// At returns the observation at position i (0 = most recent).
func (s *Series) At(i int) *domain.MarketObservation {
	return &s.Observations[i]
}

// Observation returns the observation for an exact calendar month.
func (s *Series) Observation(date domain.YearMonth) (*domain.MarketObservation, bool) {
	idx, ok := s.byDate[date]
	if !ok {
		return nil, false
	}
	return &s.Observations[idx], true
}

// Dates returns the series calendar, most recent first.
func (s *Series) Dates() []domain.YearMonth {
	dates := make([]domain.YearMonth, len(s.Observations))
	for i, obs := range s.Observations {
		dates[i] = obs.Date
	}
	return dates
}

// Store groups one geography scope's observations into per-geography series.
//
// Grouping key equality is exact string equality on the raw source label.
// Label normalization belongs to the reconciler and is only applied when
// crossing between two different sources' vocabularies, never here.
type Store struct {
	geoType domain.GeoType
	series  map[string]*Series
}

// NewStore builds a store from parsed observations of one geography scope.
// Observations of a different scope are ignored. Within a geography, a
// duplicated month keeps the row that appears last in the source, matching
// the append-ordered nature of the exports.
func NewStore(geoType domain.GeoType, observations []domain.MarketObservation, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	grouped := make(map[string]map[domain.YearMonth]domain.MarketObservation)
	duplicates := 0

	for _, obs := range observations {
		if obs.GeoType != geoType || !obs.IsValid() {
			continue
		}
		months, ok := grouped[obs.GeoID]
		if !ok {
			months = make(map[domain.YearMonth]domain.MarketObservation)
			grouped[obs.GeoID] = months
		}
		if _, exists := months[obs.Date]; exists {
			duplicates++
		}
		months[obs.Date] = obs
	}

	store := &Store{
		geoType: geoType,
		series:  make(map[string]*Series, len(grouped)),
	}

	for geoID, months := range grouped {
		s := &Series{
			GeoType:      geoType,
			GeoID:        geoID,
			Observations: make([]domain.MarketObservation, 0, len(months)),
			byDate:       make(map[domain.YearMonth]int, len(months)),
		}
		for _, obs := range months {
			s.Observations = append(s.Observations, obs)
		}
		sort.Slice(s.Observations, func(i, j int) bool {
			return s.Observations[i].Date > s.Observations[j].Date
		})
		for i, obs := range s.Observations {
			s.byDate[obs.Date] = i
		}
		store.series[geoID] = s
	}

	if duplicates > 0 {
		logger.Warn("duplicate months collapsed during grouping",
			"geography_type", string(geoType),
			"duplicates", duplicates)
	}
	logger.Debug("time-series store built",
		"geography_type", string(geoType),
		"geographies", len(store.series))

	return store
}

// GeoType returns the geography scope this store holds.
func (st *Store) GeoType() domain.GeoType { return st.geoType }

// Series returns the full ordered series for a geography label.
func (st *Store) Series(geoID string) (*Series, bool) {
	s, ok := st.series[geoID]
	return s, ok
}

// Latest returns the most recent observation for a geography label.
func (st *Store) Latest(geoID string) (*domain.MarketObservation, bool) {
	s, ok := st.series[geoID]
	if !ok || s.Len() == 0 {
		return nil, false
	}
	return s.Latest(), true
}

// GeoIDs returns all known geography labels in lexical order.
func (st *Store) GeoIDs() []string {
	ids := make([]string, 0, len(st.series))
	for id := range st.series {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of geographies held by the store.
func (st *Store) Len() int { return len(st.series) }
