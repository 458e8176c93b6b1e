// Package metrics provides Prometheus metrics for the chart
// generation pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages the pipeline's Prometheus metrics.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	chartsGenerated  *prometheus.CounterVec
	stepEvents       *prometheus.CounterVec
	sequenceDuration prometheus.Histogram
	encodeDuration   *prometheus.HistogramVec
	encodeErrors     *prometheus.CounterVec
}

// Global metrics manager instance backed by a custom registry so the
// default Go collectors never leak in.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "stepforge",
		subsystem:        "charts",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.chartsGenerated = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "generated_total",
		Help:      "Charts generated, by difficulty tier.",
	}, []string{"tier"})

	m.stepEvents = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "step_events_total",
		Help:      "Step events sequenced, by tier and kind.",
	}, []string{"tier", "kind"})

	m.sequenceDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sequence_duration_seconds",
		Help:      "Time spent sequencing one difficulty tier.",
		Buckets:   m.histogramBuckets,
	})

	m.encodeDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "encode_duration_seconds",
		Help:      "Time spent encoding and writing one chart file.",
		Buckets:   m.histogramBuckets,
	}, []string{"format"})

	m.encodeErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "encode_errors_total",
		Help:      "Chart encoding failures, by format.",
	}, []string{"format"})

	return m
}

// Handler exposes the manager's registry for scraping.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package-level helpers operating on the global manager.

// RecordChartGenerated counts one generated chart for a tier.
func RecordChartGenerated(tier string) {
	globalManager.chartsGenerated.WithLabelValues(tier).Inc()
}

// RecordStepEvent counts one sequenced step event.
func RecordStepEvent(tier, kind string) {
	globalManager.stepEvents.WithLabelValues(tier, kind).Inc()
}

// ObserveSequenceDuration records how long one tier took to sequence.
func ObserveSequenceDuration(seconds float64) {
	globalManager.sequenceDuration.Observe(seconds)
}

// ObserveEncodeDuration records how long one chart file took to encode.
func ObserveEncodeDuration(format string, seconds float64) {
	globalManager.encodeDuration.WithLabelValues(format).Observe(seconds)
}

// RecordEncodeError counts one encoding failure.
func RecordEncodeError(format string) {
	globalManager.encodeErrors.WithLabelValues(format).Inc()
}

// Handler exposes the global registry for scraping.
func Handler() http.Handler {
	return globalManager.Handler()
}
