// Package metrics provides Prometheus metrics for the gavel admission
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Intake and filtering
	inputsReceived   prometheus.Counter
	noiseRejected    prometheus.Counter
	duplicatesMerged prometheus.Counter
	signalsEmitted   prometheus.Counter
	signalsDropped   prometheus.Counter

	// Ranking and evaluation
	proposalsCreated  prometheus.Counter
	verdicts          *prometheus.CounterVec
	evaluationLatency prometheus.Histogram

	// Evidence
	evidenceSealed    prometheus.Counter
	integrityFailures prometheus.Counter

	// Execution queue
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge

	// Batch level
	batchesProcessed prometheus.Counter
	batchFailures    prometheus.Counter
	batchDuration    prometheus.Histogram
	discardRate      prometheus.Gauge
	lastBatchUnix    prometheus.Gauge

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collector noise.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// Registry returns the registry the global manager registers on, for
// exposing via promhttp.
func Registry() *prometheus.Registry {
	return customRegistry
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gavel",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.inputsReceived = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "inputs_received_total",
		Help:      "Total number of raw inputs received by the noise filter",
	})
	m.noiseRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "noise_rejected_total",
		Help:      "Total number of raw inputs rejected as noise",
	})
	m.duplicatesMerged = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicates_merged_total",
		Help:      "Total number of near-duplicate submissions folded away",
	})
	m.signalsEmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "signals_emitted_total",
		Help:      "Total number of pain signals emitted by the noise filter",
	})
	m.signalsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "signals_dropped_total",
		Help:      "Total number of aggregated signals below the priority gate",
	})

	m.proposalsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "proposals_created_total",
		Help:      "Total number of proposals emitted by the signal ranker",
	})
	m.verdicts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "verdicts_total",
		Help:      "Total number of verdicts by status",
	}, []string{"status"})
	m.evaluationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_latency_milliseconds",
		Help:      "Histogram of per-proposal rule evaluation latency",
		Buckets:   m.histogramBuckets,
	})

	m.evidenceSealed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evidence_sealed_total",
		Help:      "Total number of evidence bundles sealed",
	})
	m.integrityFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evidence_integrity_failures_total",
		Help:      "Total number of sealed bundles failing integrity verification",
	})

	m.queueEnqueued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueued_total",
		Help:      "Total number of approved items enqueued for execution",
	})
	m.queueDequeued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_dequeued_total",
		Help:      "Total number of approved items drained by executors",
	})
	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_errors_total",
		Help:      "Total number of failed enqueue attempts",
	})
	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current number of approved items awaiting execution",
	})
	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Configured capacity of the execution queue",
	})

	m.batchesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_processed_total",
		Help:      "Total number of batches processed end to end",
	})
	m.batchFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_failures_total",
		Help:      "Total number of batch calls rejected before processing",
	})
	m.batchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_duration_milliseconds",
		Help:      "Histogram of end-to-end batch processing duration",
		Buckets:   m.histogramBuckets,
	})
	m.discardRate = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "discard_rate",
		Help:      "Discard rate of the most recent batch (1 - proposals/inputs)",
	})
	m.lastBatchUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_batch_timestamp_seconds",
		Help:      "Unix time of the most recently completed batch",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// Package-level helpers recording on the global manager.

func RecordInputsReceived(n int) {
	if globalManager.enabled {
		globalManager.inputsReceived.Add(float64(n))
	}
}

func RecordNoiseRejected(n int) {
	if globalManager.enabled {
		globalManager.noiseRejected.Add(float64(n))
	}
}

func RecordDuplicatesMerged(n int) {
	if globalManager.enabled {
		globalManager.duplicatesMerged.Add(float64(n))
	}
}

func RecordSignalsEmitted(n int) {
	if globalManager.enabled {
		globalManager.signalsEmitted.Add(float64(n))
	}
}

func RecordSignalsDropped(n int) {
	if globalManager.enabled {
		globalManager.signalsDropped.Add(float64(n))
	}
}

func RecordProposalsCreated(n int) {
	if globalManager.enabled {
		globalManager.proposalsCreated.Add(float64(n))
	}
}

func RecordVerdict(status string) {
	if globalManager.enabled {
		globalManager.verdicts.WithLabelValues(status).Inc()
	}
}

func RecordEvaluationLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.evaluationLatency.Observe(latencyMs)
	}
}

func RecordEvidenceSealed() {
	if globalManager.enabled {
		globalManager.evidenceSealed.Inc()
	}
}

func RecordIntegrityFailure() {
	if globalManager.enabled {
		globalManager.integrityFailures.Inc()
	}
}

func RecordQueueEnqueue() {
	if globalManager.enabled {
		globalManager.queueEnqueued.Inc()
	}
}

func RecordQueueDequeue() {
	if globalManager.enabled {
		globalManager.queueDequeued.Inc()
	}
}

func RecordQueueEnqueueError() {
	if globalManager.enabled {
		globalManager.queueEnqueueErrors.Inc()
	}
}

func UpdateQueueSize(size int) {
	if globalManager.enabled {
		globalManager.queueSize.Set(float64(size))
	}
}

func UpdateQueueCapacity(capacity int) {
	if globalManager.enabled {
		globalManager.queueCapacity.Set(float64(capacity))
	}
}

func RecordBatchProcessed() {
	if globalManager.enabled {
		globalManager.batchesProcessed.Inc()
	}
}

func RecordBatchFailure() {
	if globalManager.enabled {
		globalManager.batchFailures.Inc()
	}
}

func RecordBatchDuration(durationMs float64) {
	if globalManager.enabled {
		globalManager.batchDuration.Observe(durationMs)
	}
}

func UpdateDiscardRate(rate float64) {
	if globalManager.enabled {
		globalManager.discardRate.Set(rate)
	}
}

func UpdateLastBatchUnix(ts float64) {
	if globalManager.enabled {
		globalManager.lastBatchUnix.Set(ts)
	}
}

func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
	}
}
