// Package metrics records pipeline and cache events as Prometheus metrics.
//
// A [Registry] implements both [observability.PipelineHooks] and
// [observability.CacheHooks]; register it at startup and every build feeds
// it. The CLI has no scrape endpoint, so metrics are dumped in the text
// exposition format with [Registry.WriteTextfile], ready for the node
// exporter textfile collector.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/sankeyflow/pkg/observability"
)

// Registry holds all sankeyflow metrics on a private Prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	BuildsTotal     *prometheus.CounterVec
	BuildDuration   prometheus.Histogram
	StageDuration   *prometheus.HistogramVec
	StageErrors     *prometheus.CounterVec
	RowsTotal       *prometheus.CounterVec
	GraphNodes      prometheus.Gauge
	GraphLinks      prometheus.Gauge
	GraphMaxDepth   prometheus.Gauge
	FallbackNodes   prometheus.Counter
	CacheOperations *prometheus.CounterVec
	CacheBytes      *prometheus.CounterVec
}

// New creates a registry with every metric initialized.
func New() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initPipelineMetrics()
	r.initCacheMetrics()
	return r
}

func (r *Registry) initPipelineMetrics() {
	f := promauto.With(r.registry)

	r.BuildsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sankeyflow_builds_total",
			Help: "Total number of graph builds by outcome",
		},
		[]string{"status"},
	)
	r.BuildDuration = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "sankeyflow_build_duration_seconds",
		Help:    "End-to-end graph build duration in seconds",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})
	r.StageDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sankeyflow_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
		},
		[]string{"stage"},
	)
	r.StageErrors = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sankeyflow_stage_errors_total",
			Help: "Total number of failed pipeline stages",
		},
		[]string{"stage"},
	)
	r.RowsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sankeyflow_rows_total",
			Help: "Input rows by disposition",
		},
		[]string{"disposition"},
	)
	r.GraphNodes = f.NewGauge(prometheus.GaugeOpts{
		Name: "sankeyflow_graph_nodes",
		Help: "Node count of the most recent graph",
	})
	r.GraphLinks = f.NewGauge(prometheus.GaugeOpts{
		Name: "sankeyflow_graph_links",
		Help: "Link count of the most recent graph",
	})
	r.GraphMaxDepth = f.NewGauge(prometheus.GaugeOpts{
		Name: "sankeyflow_graph_max_depth",
		Help: "Deepest layer of the most recent graph",
	})
	r.FallbackNodes = f.NewCounter(prometheus.CounterOpts{
		Name: "sankeyflow_cycle_fallback_nodes_total",
		Help: "Nodes placed by the cycle fallback depth",
	})
}

func (r *Registry) initCacheMetrics() {
	f := promauto.With(r.registry)

	r.CacheOperations = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sankeyflow_cache_operations_total",
			Help: "Cache lookups and writes by key type and result",
		},
		[]string{"key_type", "result"},
	)
	r.CacheBytes = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sankeyflow_cache_bytes_written_total",
			Help: "Bytes written to the cache by key type",
		},
		[]string{"key_type"},
	)
}

// Prometheus returns the underlying Prometheus registry.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes every metric to path in the text exposition format.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// =============================================================================
// observability.PipelineHooks
// =============================================================================

// OnBuildStart implements observability.PipelineHooks.
func (r *Registry) OnBuildStart(_ context.Context, rows int) {
	r.RowsTotal.WithLabelValues("read").Add(float64(rows))
}

// OnStageComplete implements observability.PipelineHooks.
func (r *Registry) OnStageComplete(_ context.Context, stage string, d time.Duration, err error) {
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		r.StageErrors.WithLabelValues(stage).Inc()
	}
}

// OnBuildComplete implements observability.PipelineHooks.
func (r *Registry) OnBuildComplete(_ context.Context, s observability.BuildSummary, d time.Duration, err error) {
	r.BuildsTotal.WithLabelValues(buildStatus(s, err)).Inc()
	r.BuildDuration.Observe(d.Seconds())
	r.RowsTotal.WithLabelValues("dropped").Add(float64(s.DroppedRows))
	r.GraphNodes.Set(float64(s.Nodes))
	r.GraphLinks.Set(float64(s.Links))
	r.GraphMaxDepth.Set(float64(s.MaxDepth))
	r.FallbackNodes.Add(float64(s.FallbackNode))
}

func buildStatus(s observability.BuildSummary, err error) string {
	switch {
	case err != nil:
		return "error"
	case s.CacheHit:
		return "cached"
	case !s.Valid:
		return "invalid"
	}
	return "ok"
}

// =============================================================================
// observability.CacheHooks
// =============================================================================

// OnCacheHit implements observability.CacheHooks.
func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheOperations.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheOperations.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheOperations.WithLabelValues(keyType, "set").Inc()
	r.CacheBytes.WithLabelValues(keyType).Add(float64(size))
}

var (
	_ observability.PipelineHooks = (*Registry)(nil)
	_ observability.CacheHooks    = (*Registry)(nil)
)
