// Package observability provides hooks for metrics and tracing.
//
// Instrumentation is optional: the pipeline and the cache layer emit events
// through hook interfaces whose defaults do nothing. A binary that wants
// metrics registers its own implementation once at startup (see
// pkg/metrics for the Prometheus one).
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    reg := metrics.New()
//	    observability.SetPipelineHooks(reg)
//	    observability.SetCacheHooks(reg)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnBuildStart(ctx, rows)
//	// ... ingest, aggregate, layer, validate ...
//	observability.Pipeline().OnBuildComplete(ctx, summary, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Pipeline stage names passed to [PipelineHooks.OnStageComplete].
const (
	StageIngest    = "ingest"
	StageAggregate = "aggregate"
	StageLayer     = "layer"
	StageValidate  = "validate"
	StageExport    = "export"
)

// BuildSummary describes the outcome of one graph build.
type BuildSummary struct {
	Rows         int
	DroppedRows  int
	Nodes        int
	Links        int
	MaxDepth     int
	FallbackNode int  // nodes given the cycle fallback depth
	Valid        bool // validation report had no errors
	CacheHit     bool
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the flow-graph pipeline.
type PipelineHooks interface {
	// OnBuildStart fires before ingestion with the number of table rows.
	OnBuildStart(ctx context.Context, rows int)

	// OnStageComplete fires after each pipeline stage.
	OnStageComplete(ctx context.Context, stage string, duration time.Duration, err error)

	// OnBuildComplete fires once per build, including builds served from cache.
	OnBuildComplete(ctx context.Context, summary BuildSummary, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, int)                                   {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, time.Duration, error)       {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, BuildSummary, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
