// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Load cycle metrics
	LoadCyclesTotal    *prometheus.CounterVec
	LoadCycleDuration  prometheus.Histogram
	LastSuccessfulLoad prometheus.Gauge

	// Parsing metrics
	RowsParsed  *prometheus.CounterVec
	RowsDropped *prometheus.CounterVec

	// Analysis metrics
	GeographiesLoaded *prometheus.GaugeVec
	BetasComputed     prometheus.Counter

	// Reconciliation metrics
	LabelsMapped   prometheus.Gauge
	LabelsUnmapped prometheus.Gauge

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "housepulse"
	}

	return &Metrics{
		LoadCyclesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "load",
			Name:      "cycles_total",
			Help:      "Total number of load cycles by status",
		}, []string{"status"}),
		LoadCycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "load",
			Name:      "cycle_duration_seconds",
			Help:      "Load cycle duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		}),
		LastSuccessfulLoad: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "load",
			Name:      "last_successful_timestamp",
			Help:      "Unix timestamp of last successful load cycle",
		}),

		RowsParsed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parsing",
			Name:      "rows_parsed_total",
			Help:      "Total number of data rows parsed by geography type",
		}, []string{"geo_type"}),
		RowsDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parsing",
			Name:      "rows_dropped_total",
			Help:      "Total number of malformed data rows dropped by geography type",
		}, []string{"geo_type"}),

		GeographiesLoaded: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "geographies_loaded",
			Help:      "Number of geographies loaded by geography type",
		}, []string{"geo_type"}),
		BetasComputed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "betas_computed_total",
			Help:      "Total number of beta coefficients computed",
		}),

		LabelsMapped: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "reconciliation",
			Name:      "labels_mapped",
			Help:      "Number of source labels mapped to canonical geographies",
		}),
		LabelsUnmapped: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "reconciliation",
			Name:      "labels_unmapped",
			Help:      "Number of source labels left without a canonical mapping",
		}),

		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordLoadCycle records a completed load cycle.
func RecordLoadCycle(status string, durationSeconds float64) {
	DefaultMetrics.LoadCyclesTotal.WithLabelValues(status).Inc()
	DefaultMetrics.LoadCycleDuration.Observe(durationSeconds)
}

// RecordParse records parsing totals for one geography export.
func RecordParse(geoType string, parsed, dropped int) {
	DefaultMetrics.RowsParsed.WithLabelValues(geoType).Add(float64(parsed))
	DefaultMetrics.RowsDropped.WithLabelValues(geoType).Add(float64(dropped))
}

// RecordReconciliation updates the mapped and unmapped label gauges.
func RecordReconciliation(mapped, unmapped int) {
	DefaultMetrics.LabelsMapped.Set(float64(mapped))
	DefaultMetrics.LabelsUnmapped.Set(float64(unmapped))
}
