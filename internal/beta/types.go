package beta

import (
	"housepulse/pkg/contracts/domain"
)

// Window represents a rolling beta window measured in aligned months.
type Window int

const (
	// Window1Y is the 12-month rolling window
	Window1Y Window = 12
	// Window3Y is the 36-month rolling window
	Window3Y Window = 36
	// Window5Y is the 60-month rolling window
	Window5Y Window = 60
)

// String returns the string representation of the window
func (w Window) String() string {
	switch w {
	case Window1Y:
		return "1y"
	case Window3Y:
		return "3y"
	case Window5Y:
		return "5y"
	default:
		return "unknown"
	}
}

// Months returns the number of aligned months in the window
func (w Window) Months() int {
	return int(w)
}

// Windows returns all supported windows, longest first.
func Windows() []Window {
	return []Window{Window5Y, Window3Y, Window1Y}
}

// Result is one computed market beta for a geography, metric and window.
// Beta is nil when there is insufficient aligned history, too few usable
// return pairs, or the national return variance inside the window is zero.
// A nil beta is a defined "undefined" state, never an error, and never a
// fabricated 0 or NaN.
type Result struct {
	GeoID        string        `json:"geography_id"`
	Metric       domain.Metric `json:"metric"`
	WindowMonths int           `json:"window_months"`
	Beta         *float64      `json:"beta"`
}

// MinReturnObservations is the minimum number of aligned return pairs
// required for a covariance/variance estimate to be meaningful.
const MinReturnObservations = 2
