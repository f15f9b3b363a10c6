package beta

import (
	"sort"

	"housepulse/internal/timeseries"
	"housepulse/pkg/contracts/domain"
)

// AlignedCalendar computes the set of calendar months present in both series,
// sorted descending (most recent first). The intersection is metric
// independent: it only asks whether a row exists for the month on both sides.
func AlignedCalendar(local, national *timeseries.Series) []domain.YearMonth {
	var aligned []domain.YearMonth
	for _, date := range local.Dates() {
		if _, ok := national.Observation(date); ok {
			aligned = append(aligned, date)
		}
	}
	sort.Slice(aligned, func(i, j int) bool { return aligned[i] > aligned[j] })
	return aligned
}

// pairedReturns derives the month-over-month fractional return series for the
// local and national side over consecutive dates of the aligned calendar.
//
// Consecutive means adjacent in the aligned set, which is not necessarily
// calendar-adjacent when a month is missing from one side. A pair is skipped
// entirely - contributing to neither series - when either side's value is
// missing or either denominator is zero, so both series stay pairwise aligned
// to the same retained decisions.
func pairedReturns(local, national *timeseries.Series, metric domain.Metric, dates []domain.YearMonth) (localReturns, nationalReturns []float64) {
	for i := 0; i+1 < len(dates); i++ {
		lr, ok := observedReturn(local, metric, dates[i], dates[i+1])
		if !ok {
			continue
		}
		nr, ok := observedReturn(national, metric, dates[i], dates[i+1])
		if !ok {
			continue
		}
		localReturns = append(localReturns, lr)
		nationalReturns = append(nationalReturns, nr)
	}
	return localReturns, nationalReturns
}

// observedReturn computes (value[cur] − value[prev]) / value[prev] for one
// series, reporting ok=false when either value is missing or the denominator
// is zero.
func observedReturn(s *timeseries.Series, metric domain.Metric, cur, prev domain.YearMonth) (float64, bool) {
	curObs, ok := s.Observation(cur)
	if !ok {
		return 0, false
	}
	prevObs, ok := s.Observation(prev)
	if !ok {
		return 0, false
	}
	curVal := curObs.Value(metric)
	prevVal := prevObs.Value(metric)
	if curVal == nil || prevVal == nil || *prevVal == 0 {
		return 0, false
	}
	return (*curVal - *prevVal) / *prevVal, true
}
