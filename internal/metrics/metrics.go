// Package metrics records Prometheus metrics for a scoring run and writes
// them in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "anafora_eval"

// Load outcomes recorded by DocumentLoaded.
const (
	LoadOK      = "ok"
	LoadMissing = "missing"
	LoadInvalid = "invalid"
)

// Metrics holds the run's collectors on a private registry. A nil *Metrics
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	documents   *prometheus.CounterVec
	removed     prometheus.Counter
	comparisons prometheus.Counter
	units       prometheus.Counter
	loadSeconds prometheus.Histogram
	keys        prometheus.Gauge
	f1          *prometheus.GaugeVec
}

// New creates and registers the run metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_loaded_total",
			Help:      "Annotation documents loaded, by outcome",
		}, []string{"result"}),

		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "annotations_removed_total",
			Help:      "Annotations removed for violating the schema",
		}),

		comparisons: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Document comparisons scored",
		}),

		units: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_total",
			Help:      "Document units visited",
		}),

		loadSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time to read, parse and prune one document",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),

		keys: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "result_keys",
			Help:      "Distinct keys in the run results",
		}),

		f1: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "f1",
			Help:      "F1 score per annotation type",
		}, []string{"key"}),
	}

	m.registry.MustRegister(
		m.documents, m.removed,
		m.comparisons, m.units,
		m.loadSeconds, m.keys, m.f1,
	)
	return m
}

// Registry exposes the registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// DocumentLoaded counts one load attempt with outcome result.
func (m *Metrics) DocumentLoaded(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(result).Inc()
	m.loadSeconds.Observe(d.Seconds())
}

// AnnotationsRemoved counts schema-invalid annotations dropped from a document.
func (m *Metrics) AnnotationsRemoved(n int) {
	if m == nil || n == 0 {
		return
	}
	m.removed.Add(float64(n))
}

// Compared counts one scored document comparison.
func (m *Metrics) Compared() {
	if m == nil {
		return
	}
	m.comparisons.Inc()
}

// UnitVisited counts one document unit.
func (m *Metrics) UnitVisited() {
	if m == nil {
		return
	}
	m.units.Inc()
}

// SetKeys records the number of result keys.
func (m *Metrics) SetKeys(n int) {
	if m == nil {
		return
	}
	m.keys.Set(float64(n))
}

// SetF1 records the final F1 for a result key.
func (m *Metrics) SetF1(key string, f1 float64) {
	if m == nil {
		return
	}
	m.f1.WithLabelValues(key).Set(f1)
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
