package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	apperrors "github.com/agbru/rangesum/internal/errors"
)

const namespace = "rangesum"

// Outcome label values.
const (
	StatusSuccess  = "success"
	StatusOverflow = "overflow"
	StatusCanceled = "canceled"
	StatusError    = "error"
)

// PrometheusRecorder implements Recorder with a private registry, so several
// instances (one per test, one per run) never collide.
type PrometheusRecorder struct {
	registry      *prometheus.Registry
	activeWorkers *prometheus.GaugeVec
	chunks        *prometheus.CounterVec
	elements      *prometheus.CounterVec
	chunkDuration *prometheus.HistogramVec
	reductions    *prometheus.CounterVec
	reduceSeconds *prometheus.HistogramVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder registers the rangesum series plus the Go runtime
// collector on a fresh registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		activeWorkers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_workers",
			Help:      "Number of chunk workers currently running.",
		}, []string{"strategy"}),
		chunks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_total",
			Help:      "Chunks processed, by strategy and outcome.",
		}, []string{"strategy", "status"}),
		elements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elements_summed_total",
			Help:      "Elements summed by successful chunks.",
		}, []string{"strategy"}),
		chunkDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_duration_seconds",
			Help:      "Time spent summing one chunk.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"strategy"}),
		reductions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reductions_total",
			Help:      "Complete reductions, by strategy and outcome.",
		}, []string{"strategy", "status"}),
		reduceSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reduction_duration_seconds",
			Help:      "Wall time of a complete reduction.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"strategy"}),
	}
	r.registry.MustRegister(
		r.activeWorkers, r.chunks, r.elements, r.chunkDuration, r.reductions, r.reduceSeconds,
		collectors.NewGoCollector(),
	)
	return r
}

// Registry exposes the underlying registry as a Gatherer.
func (r *PrometheusRecorder) Registry() *prometheus.Registry { return r.registry }

// WorkerStarted increments the active worker gauge.
func (r *PrometheusRecorder) WorkerStarted(strategy string) {
	r.activeWorkers.WithLabelValues(strategy).Inc()
}

// WorkerFinished decrements the active worker gauge.
func (r *PrometheusRecorder) WorkerFinished(strategy string) {
	r.activeWorkers.WithLabelValues(strategy).Dec()
}

// ObserveChunk records one finished chunk.
func (r *PrometheusRecorder) ObserveChunk(strategy string, elements uint64, d time.Duration, err error) {
	status := Status(err)
	r.chunks.WithLabelValues(strategy, status).Inc()
	r.chunkDuration.WithLabelValues(strategy).Observe(d.Seconds())
	if status == StatusSuccess {
		r.elements.WithLabelValues(strategy).Add(float64(elements))
	}
}

// ObserveReduction records one finished reduction.
func (r *PrometheusRecorder) ObserveReduction(strategy string, d time.Duration, err error) {
	r.reductions.WithLabelValues(strategy, Status(err)).Inc()
	r.reduceSeconds.WithLabelValues(strategy).Observe(d.Seconds())
}

// WriteTextfile writes every series in the text exposition format, suitable
// for node_exporter's textfile collector.
func (r *PrometheusRecorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// Status maps an error to the outcome label used by the series above.
func Status(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case apperrors.IsOverflow(err):
		return StatusOverflow
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return StatusCanceled
	default:
		return StatusError
	}
}
