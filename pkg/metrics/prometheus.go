package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	venueFetches  *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	lastRate      *prometheus.GaugeVec
	cycleDuration prometheus.Histogram
	assets        prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		venueFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundradar_venue_fetches_total",
				Help: "Per-venue upstream fetch outcomes",
			},
			[]string{"venue", "result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundradar_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastRate: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fundradar_last_hourly_rate",
				Help: "Last observed hourly funding rate per asset and venue",
			},
			[]string{"asset", "venue"},
		),
		cycleDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fundradar_cycle_duration_seconds",
				Help:    "Duration of a full collection cycle in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
			},
		),
		assets: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "fundradar_assets",
				Help: "Assets present in the last canonical table",
			},
		),
	}
}

// RecordVenueFetch records one upstream fetch outcome (ok, timeout, error,
// no_market).
func (r *Recorder) RecordVenueFetch(venue, result string) {
	r.venueFetches.WithLabelValues(venue, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordRate records the last hourly rate for an asset on a venue.
func (r *Recorder) RecordRate(asset, venue string, rate float64) {
	r.lastRate.WithLabelValues(asset, venue).Set(rate)
}

// RecordCycleDuration records how long a collection cycle took.
func (r *Recorder) RecordCycleDuration(seconds float64) {
	r.cycleDuration.Observe(seconds)
}

// RecordAssetCount records the size of the last canonical table.
func (r *Recorder) RecordAssetCount(n int) {
	r.assets.Set(float64(n))
}
