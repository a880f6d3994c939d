// Package metrics records benchmark runs in a Prometheus registry and
// exports it in the text exposition format, for node_exporter's textfile
// collector or for diffing two sessions.
//
//	# TYPE algobench_run_duration_seconds histogram
//	algobench_run_duration_seconds_bucket{algorithm="merge",family="sort",size="1000",le="0.001"} 5
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "algobench"

// Run outcomes for the runs_total counter.
const (
	OutcomeCompleted = "completed"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// DefaultDurationBuckets span sub-microsecond baseline sorts to minute-long
// bubble sorts of 10^5 elements.
var DefaultDurationBuckets = prometheus.ExponentialBuckets(1e-6, 4, 15)

// Recorder owns a registry and the benchmark collectors registered on it.
type Recorder struct {
	registry *prometheus.Registry
	duration *prometheus.HistogramVec
	allocs   *prometheus.HistogramVec
	runs     *prometheus.CounterVec
}

// Option configures a Recorder.
type Option func(*recorderOptions)

type recorderOptions struct {
	buckets []float64
}

// WithDurationBuckets sets custom buckets for the duration histogram.
func WithDurationBuckets(buckets []float64) Option {
	return func(o *recorderOptions) {
		o.buckets = buckets
	}
}

// NewRecorder creates a Recorder with a private registry.
func NewRecorder(opts ...Option) *Recorder {
	o := recorderOptions{buckets: DefaultDurationBuckets}
	for _, opt := range opts {
		opt(&o)
	}

	labels := []string{"family", "algorithm", "size"}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of one strategy call.",
			Buckets:   o.buckets,
		}, labels),
		allocs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_alloc_bytes",
			Help:      "Heap bytes allocated during one strategy call.",
			Buckets:   prometheus.ExponentialBuckets(1024, 8, 10),
		}, labels),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Strategy calls by outcome.",
		}, []string{"family", "algorithm", "outcome"}),
	}
	r.registry.MustRegister(r.duration, r.allocs, r.runs)
	return r
}

// Registry returns the underlying Prometheus registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveRun records a completed run.
func (r *Recorder) ObserveRun(family, algorithm string, size int, d time.Duration, allocBytes uint64) {
	sz := strconv.Itoa(size)
	r.duration.WithLabelValues(family, algorithm, sz).Observe(d.Seconds())
	r.allocs.WithLabelValues(family, algorithm, sz).Observe(float64(allocBytes))
	r.runs.WithLabelValues(family, algorithm, OutcomeCompleted).Inc()
}

// CountOutcome increments runs_total for a run that did not complete.
func (r *Recorder) CountOutcome(family, algorithm, outcome string) {
	r.runs.WithLabelValues(family, algorithm, outcome).Inc()
}

// WriteTextfile writes the registry to path in the text exposition format.
// The file is written atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
