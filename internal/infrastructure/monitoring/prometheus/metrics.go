// Package prometheus defines the metric families the SMILES pipeline and its
// interfaces emit.  Each PipelineMetrics registers its metrics on its own
// private registry, which Handler exposes and Registry returns.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values for pipeline counters.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Cache result label values.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// PipelineMetrics holds the toolkit's metric families.  A nil *PipelineMetrics
// is a valid no-op receiver so that components can run unmetered.
type PipelineMetrics struct {
	parseTotal    *prometheus.CounterVec
	parseSeconds  prometheus.Histogram
	enrichSeconds prometheus.Histogram
	canonSeconds  prometheus.Histogram
	diagnostics   *prometheus.CounterVec
	moleculeAtoms prometheus.Histogram
	cacheTotal    *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewPipelineMetrics constructs and registers the pipeline metric families on
// a fresh private registry.
func NewPipelineMetrics() *PipelineMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &PipelineMetrics{
		registry: reg,
		parseTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smileskit",
			Subsystem: "pipeline",
			Name:      "parse_total",
			Help:      "SMILES parse requests by outcome.",
		}, []string{"outcome"}),
		parseSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "smileskit",
			Subsystem: "pipeline",
			Name:      "parse_duration_seconds",
			Help:      "Wall time of tokenize+parse.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		enrichSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "smileskit",
			Subsystem: "pipeline",
			Name:      "enrich_duration_seconds",
			Help:      "Wall time of ring/aromaticity/hydrogen/stereo enrichment.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		canonSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "smileskit",
			Subsystem: "pipeline",
			Name:      "canonicalize_duration_seconds",
			Help:      "Wall time of refinement, traversal, and emission.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		diagnostics: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smileskit",
			Subsystem: "pipeline",
			Name:      "diagnostics_total",
			Help:      "Diagnostics produced, by severity.",
		}, []string{"severity"}),
		moleculeAtoms: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "smileskit",
			Subsystem: "pipeline",
			Name:      "molecule_atoms",
			Help:      "Atom count per parsed molecule.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		cacheTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smileskit",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Canonical-result cache lookups by result.",
		}, []string{"result"}),
	}
}

// ObserveParse records one parse call.
func (m *PipelineMetrics) ObserveParse(outcome string, elapsed time.Duration, atoms int) {
	if m == nil {
		return
	}
	m.parseTotal.WithLabelValues(outcome).Inc()
	m.parseSeconds.Observe(elapsed.Seconds())
	m.moleculeAtoms.Observe(float64(atoms))
}

// ObserveEnrich records one enrichment call.
func (m *PipelineMetrics) ObserveEnrich(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.enrichSeconds.Observe(elapsed.Seconds())
}

// ObserveCanonicalize records one canonicalization+emission call.
func (m *PipelineMetrics) ObserveCanonicalize(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.canonSeconds.Observe(elapsed.Seconds())
}

// ObserveDiagnostics bumps the per-severity diagnostic counters.
func (m *PipelineMetrics) ObserveDiagnostics(severity string, count int) {
	if m == nil || count == 0 {
		return
	}
	m.diagnostics.WithLabelValues(severity).Add(float64(count))
}

// ObserveCache records one cache lookup.
func (m *PipelineMetrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheTotal.WithLabelValues(CacheHit).Inc()
		return
	}
	m.cacheTotal.WithLabelValues(CacheMiss).Inc()
}

// Handler returns the Prometheus exposition handler for this registry.
func (m *PipelineMetrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for binaries that want to add
// process and Go runtime collectors.
func (m *PipelineMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}
