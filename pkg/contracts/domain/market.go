package domain

import (
	"fmt"
)

// GeoType identifies the geographic level of a market observation.
type GeoType string

const (
	GeoNational GeoType = "national"
	GeoState    GeoType = "state"
	GeoMetro    GeoType = "metro"
)

// IsValid reports whether the geography type is one of the known levels.
func (g GeoType) IsValid() bool {
	switch g {
	case GeoNational, GeoState, GeoMetro:
		return true
	}
	return false
}

// YearMonth is a calendar month in canonical YYYYMM integer form (e.g. 202507).
type YearMonth int

// Year returns the four-digit year component.
func (ym YearMonth) Year() int { return int(ym) / 100 }

// Month returns the month component (1-12).
func (ym YearMonth) Month() int { return int(ym) % 100 }

// IsValid reports whether the value encodes a plausible calendar month.
func (ym YearMonth) IsValid() bool {
	return ym.Year() >= 1900 && ym.Year() <= 2999 && ym.Month() >= 1 && ym.Month() <= 12
}

// String formats the month as YYYYMM.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%06d", int(ym))
}

// Metric names a numeric market metric column as it appears in the source exports.
type Metric string

const (
	MetricActiveListingCount  Metric = "active_listing_count"
	MetricNewListingCount     Metric = "new_listing_count"
	MetricPendingListingCount Metric = "pending_listing_count"
	MetricMedianListingPrice  Metric = "median_listing_price"
	MetricMedianDaysOnMarket  Metric = "median_days_on_market"
)

// BetaMetrics lists the metrics for which market betas are derived.
// Median days on market is reported but has no beta, matching the output schema.
func BetaMetrics() []Metric {
	return []Metric{
		MetricActiveListingCount,
		MetricNewListingCount,
		MetricPendingListingCount,
		MetricMedianListingPrice,
	}
}

// AllMetrics lists every numeric metric carried on an observation.
func AllMetrics() []Metric {
	return append(BetaMetrics(), MetricMedianDaysOnMarket)
}

// MarketObservation is one row of a monthly market export for one geography.
//
// Metric fields are pointers: a nil value means the source did not report the
// metric for that month. Zero is a legitimate count and is never substituted
// for missing data.
type MarketObservation struct {
	Date    YearMonth `json:"date" validate:"required"`
	GeoType GeoType   `json:"geography_type" validate:"required"`
	// GeoID is the raw geography label exactly as the source supplied it
	// (state name or CBSA title). No normalization happens at this level.
	GeoID string `json:"geography_id" validate:"required"`

	ActiveListingCount  *float64 `json:"active_listing_count,omitempty"`
	NewListingCount     *float64 `json:"new_listing_count,omitempty"`
	PendingListingCount *float64 `json:"pending_listing_count,omitempty"`
	MedianListingPrice  *float64 `json:"median_listing_price,omitempty"`
	MedianDaysOnMarket  *float64 `json:"median_days_on_market,omitempty"`

	// Precomputed change fields, when the upstream export carries them.
	// They take precedence over locally derived values.
	ActiveListingCountMM  *float64 `json:"active_listing_count_mm,omitempty"`
	ActiveListingCountYY  *float64 `json:"active_listing_count_yy,omitempty"`
	NewListingCountMM     *float64 `json:"new_listing_count_mm,omitempty"`
	NewListingCountYY     *float64 `json:"new_listing_count_yy,omitempty"`
	PendingListingCountMM *float64 `json:"pending_listing_count_mm,omitempty"`
	PendingListingCountYY *float64 `json:"pending_listing_count_yy,omitempty"`
	MedianListingPriceMM  *float64 `json:"median_listing_price_mm,omitempty"`
	MedianListingPriceYY  *float64 `json:"median_listing_price_yy,omitempty"`
	MedianDaysOnMarketMM  *float64 `json:"median_days_on_market_mm,omitempty"`
	MedianDaysOnMarketYY  *float64 `json:"median_days_on_market_yy,omitempty"`

	// Auxiliary columns carried through from the source when present.
	TotalListingCount *float64 `json:"total_listing_count,omitempty"`
	PendingRatio      *float64 `json:"pending_ratio,omitempty"`
	StateID           string   `json:"state_id,omitempty"`
	CBSACode          string   `json:"cbsa_code,omitempty"`
	HouseholdRank     *float64 `json:"household_rank,omitempty"`
}

// Value returns the observation's value for the named metric, nil when missing.
func (o *MarketObservation) Value(m Metric) *float64 {
	switch m {
	case MetricActiveListingCount:
		return o.ActiveListingCount
	case MetricNewListingCount:
		return o.NewListingCount
	case MetricPendingListingCount:
		return o.PendingListingCount
	case MetricMedianListingPrice:
		return o.MedianListingPrice
	case MetricMedianDaysOnMarket:
		return o.MedianDaysOnMarket
	}
	return nil
}

// SetValue stores a metric value on the observation.
func (o *MarketObservation) SetValue(m Metric, v *float64) {
	switch m {
	case MetricActiveListingCount:
		o.ActiveListingCount = v
	case MetricNewListingCount:
		o.NewListingCount = v
	case MetricPendingListingCount:
		o.PendingListingCount = v
	case MetricMedianListingPrice:
		o.MedianListingPrice = v
	case MetricMedianDaysOnMarket:
		o.MedianDaysOnMarket = v
	}
}

// PrecomputedMoM returns the upstream month-over-month change for the metric, if supplied.
func (o *MarketObservation) PrecomputedMoM(m Metric) *float64 {
	switch m {
	case MetricActiveListingCount:
		return o.ActiveListingCountMM
	case MetricNewListingCount:
		return o.NewListingCountMM
	case MetricPendingListingCount:
		return o.PendingListingCountMM
	case MetricMedianListingPrice:
		return o.MedianListingPriceMM
	case MetricMedianDaysOnMarket:
		return o.MedianDaysOnMarketMM
	}
	return nil
}

// PrecomputedYoY returns the upstream year-over-year change for the metric, if supplied.
func (o *MarketObservation) PrecomputedYoY(m Metric) *float64 {
	switch m {
	case MetricActiveListingCount:
		return o.ActiveListingCountYY
	case MetricNewListingCount:
		return o.NewListingCountYY
	case MetricPendingListingCount:
		return o.PendingListingCountYY
	case MetricMedianListingPrice:
		return o.MedianListingPriceYY
	case MetricMedianDaysOnMarket:
		return o.MedianDaysOnMarketYY
	}
	return nil
}

// SetPrecomputedMoM stores an upstream month-over-month change value.
func (o *MarketObservation) SetPrecomputedMoM(m Metric, v *float64) {
	switch m {
	case MetricActiveListingCount:
		o.ActiveListingCountMM = v
	case MetricNewListingCount:
		o.NewListingCountMM = v
	case MetricPendingListingCount:
		o.PendingListingCountMM = v
	case MetricMedianListingPrice:
		o.MedianListingPriceMM = v
	case MetricMedianDaysOnMarket:
		o.MedianDaysOnMarketMM = v
	}
}

// SetPrecomputedYoY stores an upstream year-over-year change value.
func (o *MarketObservation) SetPrecomputedYoY(m Metric, v *float64) {
	switch m {
	case MetricActiveListingCount:
		o.ActiveListingCountYY = v
	case MetricNewListingCount:
		o.NewListingCountYY = v
	case MetricPendingListingCount:
		o.PendingListingCountYY = v
	case MetricMedianListingPrice:
		o.MedianListingPriceYY = v
	case MetricMedianDaysOnMarket:
		o.MedianDaysOnMarketYY = v
	}
}

// IsValid reports whether the observation carries the minimum identifying fields.
func (o *MarketObservation) IsValid() bool {
	return o.Date.IsValid() && o.GeoType.IsValid() && o.GeoID != ""
}
