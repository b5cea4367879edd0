// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "meeting_minutes"

// Metrics holds all Prometheus metrics for the pipeline.
type Metrics struct {
	// Run metrics
	RunsTotal     prometheus.Counter
	RunsFailed    prometheus.Counter
	RunsActive    prometheus.Gauge
	StageDuration *prometheus.HistogramVec

	// Conversation metrics
	SegmentsTranscribed prometheus.Counter
	TurnsLoaded         prometheus.Counter
	SegmentsUnknown     prometheus.Counter
	SegmentsMerged      prometheus.Counter
	SpeakersDetected    prometheus.Histogram

	// LLM metrics
	LLMLatency prometheus.Histogram
	LLMErrors  prometheus.Counter

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		RunsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of pipeline runs started",
		}),
		RunsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_failed_total",
			Help:      "Total number of pipeline runs that failed",
		}),
		RunsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "runs_active",
			Help:      "Number of currently active pipeline runs",
		}),
		StageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages in seconds",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 30, 60, 300, 1800},
		}, []string{"stage"}),

		SegmentsTranscribed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_transcribed_total",
			Help:      "Total number of transcribed segments consumed",
		}),
		TurnsLoaded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diarization_turns_total",
			Help:      "Total number of diarization turns consumed",
		}),
		SegmentsUnknown: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_unknown_speaker_total",
			Help:      "Total number of segments no diarization turn overlapped",
		}),
		SegmentsMerged: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_merged_total",
			Help:      "Total number of merged conversational turns produced",
		}),
		SpeakersDetected: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "speakers_detected",
			Help:      "Distinct speaker labels per run",
			Buckets:   []float64{1, 2, 3, 4, 5, 8, 12, 20},
		}),

		LLMLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_latency_seconds",
			Help:      "Minutes generation latency in seconds",
			Buckets:   []float64{1, 5, 15, 60, 300, 900, 1800},
		}),
		LLMErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_errors_total",
			Help:      "Total number of minutes generation errors",
		}),

		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),
	}
}

// RecordRunStart records a new pipeline run starting.
func (m *Metrics) RecordRunStart() {
	m.RunsTotal.Inc()
	m.RunsActive.Inc()
}

// RecordRunEnd records a pipeline run ending.
func (m *Metrics) RecordRunEnd(success bool) {
	m.RunsActive.Dec()
	if !success {
		m.RunsFailed.Inc()
	}
}

// RecordStage records a completed stage and its duration.
func (m *Metrics) RecordStage(stage string, seconds float64) {
	m.StageDuration.WithLabelValues(stage).Observe(seconds)
}

// RecordConversation records what the assignment and merge stages consumed
// and produced for one run.
func (m *Metrics) RecordConversation(segments, turns, unknown, merged, speakers int) {
	m.SegmentsTranscribed.Add(float64(segments))
	m.TurnsLoaded.Add(float64(turns))
	m.SegmentsUnknown.Add(float64(unknown))
	m.SegmentsMerged.Add(float64(merged))
	m.SpeakersDetected.Observe(float64(speakers))
}

// RecordLLM records a minutes generation attempt.
func (m *Metrics) RecordLLM(err error, seconds float64) {
	m.LLMLatency.Observe(seconds)
	if err != nil {
		m.LLMErrors.Inc()
	}
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}
