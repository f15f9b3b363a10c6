package beta

import (
	"housepulse/internal/timeseries"
	"housepulse/pkg/contracts/domain"
)

// yoyMinObservations is the series length required for a year-over-year
// change: index 0 is the current month and index 12 is twelve months prior.
const yoyMinObservations = 13

// MonthOverMonth computes the metric's fractional change between the series'
// most recent and second-most-recent observations.
//
// A change field precomputed upstream on the latest observation takes
// precedence; the local computation is only a fallback. The result is nil -
// unknown, distinct from a true zero change - when history is too short,
// either value is missing, or the previous value is zero.
func MonthOverMonth(s *timeseries.Series, metric domain.Metric) *float64 {
	latest := s.Latest()
	if latest == nil {
		return nil
	}
	if pre := latest.PrecomputedMoM(metric); pre != nil {
		return pre
	}
	if s.Len() < 2 {
		return nil
	}
	return fractionalChange(latest.Value(metric), s.At(1).Value(metric))
}

// YearOverYear computes the metric's fractional change between the series'
// most recent observation and the one twelve positions back, requiring at
// least thirteen observations. Upstream precomputed values take precedence.
func YearOverYear(s *timeseries.Series, metric domain.Metric) *float64 {
	latest := s.Latest()
	if latest == nil {
		return nil
	}
	if pre := latest.PrecomputedYoY(metric); pre != nil {
		return pre
	}
	if s.Len() < yoyMinObservations {
		return nil
	}
	return fractionalChange(latest.Value(metric), s.At(12).Value(metric))
}

// fractionalChange computes current/previous − 1, nil when the division
// cannot be performed.
func fractionalChange(current, previous *float64) *float64 {
	if current == nil || previous == nil || *previous == 0 {
		return nil
	}
	change := *current / *previous - 1
	return &change
}
