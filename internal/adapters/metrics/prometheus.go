// Package metrics records model cache activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/modelcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Namespace prefixes every metric name.
const Namespace = "modelcache"

var _ ports.CacheMetrics = (*Prometheus)(nil)

// Prometheus implements ports.CacheMetrics on a private registry.
type Prometheus struct {
	registry *prometheus.Registry

	loaded          *prometheus.CounterVec
	computed        *prometheus.CounterVec
	failed          *prometheus.CounterVec
	restored        *prometheus.CounterVec
	computeDuration *prometheus.HistogramVec
}

// Default histogram buckets for compute duration (in seconds).
var defaultBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// NewPrometheus creates the collectors and registers them.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),

		loaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "models_loaded_total",
				Help:      "Models served without computation, by source",
			},
			[]string{"source", "scope"},
		),
		computed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "models_computed_total",
				Help:      "Models computed and stored",
			},
			[]string{"scope"},
		),
		failed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "models_failed_total",
				Help:      "Model computations or writes that failed",
			},
			[]string{"scope"},
		),
		restored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "restored_entries_total",
				Help:      "Previous session entries kept or dropped on restore",
			},
			[]string{"outcome"},
		),
		computeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "model_compute_duration_seconds",
				Help:      "Time spent computing and storing a model",
				Buckets:   defaultBuckets,
			},
			[]string{"scope"},
		),
	}

	p.registry.MustRegister(p.loaded, p.computed, p.failed, p.restored, p.computeDuration)
	return p
}

// Registry returns the registry holding the collectors.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// ModelLoaded counts a model served from the current or previous table.
func (p *Prometheus) ModelLoaded(key domain.ModelKey, source ports.LoadSource) {
	p.loaded.WithLabelValues(string(source), scope(key)).Inc()
}

// ModelComputed counts a computed model and observes its duration.
func (p *Prometheus) ModelComputed(key domain.ModelKey, elapsed time.Duration) {
	p.computed.WithLabelValues(scope(key)).Inc()
	p.computeDuration.WithLabelValues(scope(key)).Observe(elapsed.Seconds())
}

// ModelFailed counts a failed computation.
func (p *Prometheus) ModelFailed(key domain.ModelKey) {
	p.failed.WithLabelValues(scope(key)).Inc()
}

// Restored counts the outcome of filtering the previous session's entries.
func (p *Prometheus) Restored(kept, dropped int) {
	p.restored.WithLabelValues("kept").Add(float64(kept))
	p.restored.WithLabelValues("dropped").Add(float64(dropped))
}

// WriteToTextfile writes the metrics in the text exposition format to path.
func (p *Prometheus) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsWriteFailed.Error()), "path", path)
	}
	return nil
}

// scope keeps label cardinality bounded: project models versus build-wide models.
func scope(key domain.ModelKey) string {
	if key.HasProject() {
		return "project"
	}
	return "build"
}

// NoOp discards all measurements.
type NoOp struct{}

// ModelLoaded does nothing.
func (NoOp) ModelLoaded(domain.ModelKey, ports.LoadSource) {}

// ModelComputed does nothing.
func (NoOp) ModelComputed(domain.ModelKey, time.Duration) {}

// ModelFailed does nothing.
func (NoOp) ModelFailed(domain.ModelKey) {}

// Restored does nothing.
func (NoOp) Restored(int, int) {}
