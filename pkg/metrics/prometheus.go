package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "trademind"

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	pagesRendered *prometheus.CounterVec
	features      *prometheus.CounterVec
	riskReadings  *prometheus.CounterVec
	lastRisk      prometheus.Gauge
	cacheResults  *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// New registers the recorder on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the recorder on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		pagesRendered: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pages_rendered_total",
				Help:      "Total number of pages rendered",
			},
			[]string{"page"},
		),
		features: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "features_total",
				Help:      "Page features initialized or skipped",
			},
			[]string{"feature", "state"},
		),
		riskReadings: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "risk_readings_total",
				Help:      "Risk meter values computed, by band",
			},
			[]string{"band"},
		),
		lastRisk: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "risk_last_value_percent",
				Help:      "Most recent risk meter value",
			},
		),
		cacheResults: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_requests_total",
				Help:      "Cache lookups by result",
			},
			[]string{"cache", "result"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of operations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordPageRendered counts a rendered page.
func (r *Recorder) RecordPageRendered(page string) {
	r.pagesRendered.WithLabelValues(page).Inc()
}

// RecordFeature counts a feature initializer outcome.
func (r *Recorder) RecordFeature(feature string, active bool) {
	state := "skipped"
	if active {
		state = "active"
	}
	r.features.WithLabelValues(feature, state).Inc()
}

func (r *Recorder) RecordRiskReading(band string, value float64) {
	r.riskReadings.WithLabelValues(band).Inc()
	r.lastRisk.Set(value)
}

func (r *Recorder) RecordCacheResult(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheResults.WithLabelValues(cache, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
