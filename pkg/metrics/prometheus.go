// Package metrics provides Prometheus metrics for the challenge scoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the scoring service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	bayesBuckets     []float64
	enabled          bool
	registry         prometheus.Registerer

	// Core Business Metrics - evaluation outcomes
	evaluationsTotal prometheus.Counter
	decisionsTotal   *prometheus.CounterVec
	reportedScore    prometheus.Histogram
	bayesFactor      prometheus.Histogram

	// Bootstrap Metrics - resampling throughput
	bootstrapDraws   prometheus.Counter
	bootstrapLatency prometheus.Histogram

	// Quality Metrics - error tracking
	validationErrors prometheus.Counter
	scoringErrors    prometheus.Counter
	invalidSubs      prometheus.Counter

	// Operational Health Metrics
	queueSize        prometheus.Gauge
	workerCount      prometheus.Gauge
	participantCount prometheus.Gauge
	duplicatesTotal  prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "challenge",
		subsystem:        "ladder",
		histogramBuckets: prometheus.DefBuckets,
		// Bayes factors cluster near 1 when nothing improves and explode when
		// everything does, hence the exponential layout.
		bayesBuckets: prometheus.ExponentialBuckets(0.125, 2, 12),
		enabled:      true,
		registry:     prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.evaluationsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluations_total",
		Help:      "Total number of submissions evaluated by the ladder",
	})

	m.decisionsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "decisions_total",
			Help:      "Ladder decisions by outcome (advance or hold)",
		},
		[]string{"decision"},
	)

	m.reportedScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reported_score",
		Help:      "Distribution of reported scores",
		Buckets:   m.histogramBuckets,
	})

	m.bayesFactor = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bayes_factor",
		Help:      "Distribution of estimated Bayes factors per evaluation",
		Buckets:   m.bayesBuckets,
	})

	m.bootstrapDraws = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bootstrap_draws_total",
		Help:      "Total number of bootstrap resamples scored",
	})

	m.bootstrapLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bootstrap_latency_milliseconds",
		Help:      "Histogram of full bootstrap distribution latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.validationErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_errors_total",
		Help:      "Total number of submissions rejected by structural validation",
	})

	m.scoringErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_errors_total",
		Help:      "Total number of score computation failures",
	})

	m.invalidSubs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "invalid_submissions_total",
		Help:      "Total number of submissions with no usable aligned pairs",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current size of the submission queue",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Current number of evaluation workers",
	})

	m.participantCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "participant_count",
		Help:      "Total number of participants tracked in the standings",
	})

	m.duplicatesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_duplicate_total",
		Help:      "Total number of duplicate submissions detected",
	})
}

// Registry returns the custom registry holding all service metrics.
func Registry() *prometheus.Registry {
	return customRegistry
}

// Business metric helpers.

func RecordEvaluation() {
	globalManager.evaluationsTotal.Inc()
}

func RecordDecision(decision string) {
	globalManager.decisionsTotal.WithLabelValues(decision).Inc()
}

func RecordReportedScore(score float64) {
	globalManager.reportedScore.Observe(score)
}

func RecordBayesFactor(bf float64) {
	globalManager.bayesFactor.Observe(bf)
}

// Bootstrap metric helpers.

func RecordBootstrapDraws(n int) {
	globalManager.bootstrapDraws.Add(float64(n))
}

func RecordBootstrapLatency(latencyMs float64) {
	globalManager.bootstrapLatency.Observe(latencyMs)
}

// Error metric helpers.

func RecordValidationError() {
	globalManager.validationErrors.Inc()
}

func RecordScoringError() {
	globalManager.scoringErrors.Inc()
}

func RecordInvalidSubmission() {
	globalManager.invalidSubs.Inc()
}

// Operational metric helpers.

func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

func UpdateParticipantCount(count int) {
	globalManager.participantCount.Set(float64(count))
}

func RecordSubmissionDuplicate() {
	globalManager.duplicatesTotal.Inc()
}
