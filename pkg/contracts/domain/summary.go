package domain

// MetricSummary holds the derived figures for one metric of one geography:
// the latest reported value, month-over-month and year-over-year change, and
// the rolling market betas against the national series. Nil means the figure
// could not be derived (missing data, insufficient history, or degenerate
// national variance) and should render as N/A downstream.
type MetricSummary struct {
	Latest *float64 `json:"latest,omitempty"`
	MoM    *float64 `json:"mm,omitempty"`
	YoY    *float64 `json:"yy,omitempty"`
	Beta5Y *float64 `json:"beta_5y,omitempty"`
	Beta3Y *float64 `json:"beta_3y,omitempty"`
	Beta1Y *float64 `json:"beta_1y,omitempty"`
}

// GeographySummary is the engine's output record for one geography: the
// shape consumed by the presentation layer (map popups, panels, charts).
type GeographySummary struct {
	GeoType    GeoType   `json:"geography_type"`
	GeoID      string    `json:"geography_id"`
	LatestDate YearMonth `json:"latest_date"`

	ActiveListingCount  MetricSummary `json:"active_listing_count"`
	NewListingCount     MetricSummary `json:"new_listing_count"`
	PendingListingCount MetricSummary `json:"pending_listing_count"`
	MedianListingPrice  MetricSummary `json:"median_listing_price"`
	// Days on market carries value and change figures only; no beta is
	// derived for it.
	MedianDaysOnMarket MetricSummary `json:"median_days_on_market"`
}

// MetricSummaryFor returns a pointer to the summary block for the named metric.
func (s *GeographySummary) MetricSummaryFor(m Metric) *MetricSummary {
	switch m {
	case MetricActiveListingCount:
		return &s.ActiveListingCount
	case MetricNewListingCount:
		return &s.NewListingCount
	case MetricPendingListingCount:
		return &s.PendingListingCount
	case MetricMedianListingPrice:
		return &s.MedianListingPrice
	case MetricMedianDaysOnMarket:
		return &s.MedianDaysOnMarket
	}
	return nil
}

// Coordinate is a WGS84 latitude/longitude pair used for map placement.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlacedGeography joins a source geography label to its canonical identity
// and map coordinate, produced by the reconciler plus the coordinate catalog.
type PlacedGeography struct {
	SourceLabel    string     `json:"source_label"`
	CanonicalLabel string     `json:"canonical_label"`
	Confidence     float64    `json:"confidence"`
	Coordinate     Coordinate `json:"coordinate"`
}
