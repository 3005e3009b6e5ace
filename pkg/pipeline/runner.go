package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sankeyflow/pkg/cache"
	"github.com/matzehuels/sankeyflow/pkg/flow"
	"github.com/matzehuels/sankeyflow/pkg/flow/transform"
	"github.com/matzehuels/sankeyflow/pkg/observability"
	"github.com/matzehuels/sankeyflow/pkg/render/dot"
	"github.com/matzehuels/sankeyflow/pkg/template"
)

// Runner encapsulates builds and exports with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different tables and options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedBuild is the cache representation of a successful build.
type cachedBuild struct {
	Graph  *flow.Graph           `json:"graph"`
	Report flow.Report           `json:"report"`
	Layers transform.LayerResult `json:"layers"`
	Ingest flow.IngestStats      `json:"ingest"`
}

// Build returns the graph for t, served from cache when the same table was
// built with the same options before.
//
// The error is non-nil only for invalid options. Input shape problems are
// reported in [Result.Err], exactly as with [Build], and are never cached.
func (r *Runner) Build(ctx context.Context, t flow.Table, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	hooks := observability.Cache()

	key := r.Keyer.GraphKey(TableHash(t), opts.GraphKeyOpts())

	if !opts.Refresh {
		start := time.Now()
		if data, hit, err := r.Cache.Get(ctx, key); err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		} else if hit {
			if res, err := decodeBuild(data); err == nil {
				hooks.OnCacheHit(ctx, "graph")
				res.Stats.TotalTime = time.Since(start)
				observability.Pipeline().OnBuildComplete(ctx, summarize(res, true), res.Stats.TotalTime, nil)
				r.Logger.Debug("build served from cache", "run", res.RunID, "nodes", res.Stats.NodeCount)
				return res, nil
			}
		}
		hooks.OnCacheMiss(ctx, "graph")
	}

	res := BuildContext(ctx, t, opts)
	if res.Err != nil {
		return res, nil
	}

	data, err := json.Marshal(cachedBuild{
		Graph:  res.Graph,
		Report: res.Report,
		Layers: res.Layers,
		Ingest: res.Ingest,
	})
	if err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLGraph); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, "graph", len(data))
		}
	}
	return res, nil
}

func decodeBuild(data []byte) (*Result, error) {
	var cb cachedBuild
	if err := json.Unmarshal(data, &cb); err != nil {
		return nil, err
	}
	if cb.Graph == nil {
		cb.Graph = flow.NewGraph()
	}
	res := newResult()
	res.Graph = cb.Graph
	res.GraphHash = graphHash(cb.Graph)
	res.Report = cb.Report
	res.Layers = cb.Layers
	res.Ingest = cb.Ingest
	res.Stats.NodeCount = cb.Graph.NodeCount()
	res.Stats.LinkCount = cb.Graph.LinkCount()
	res.CacheInfo.BuildHit = true
	return res, nil
}

// Export renders res in format ("json", "dot" or "svg"), caching DOT and
// SVG artifacts by graph hash.
func (r *Runner) Export(ctx context.Context, res *Result, format string, eo ExportOptions) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if res == nil || res.Graph == nil {
		return nil, fmt.Errorf("export: no graph")
	}
	for _, tmpl := range []string{eo.NodeTooltip, eo.LinkTooltip} {
		for _, w := range template.Validate(tmpl) {
			r.Logger.Warn("tooltip template", "template", tmpl, "warning", w)
		}
	}

	hash := res.GraphHash
	if hash == "" {
		hash = graphHash(res.Graph)
	}
	key := r.Keyer.ExportKey(hash, eo.ExportKeyOpts(format))
	cacheable := format != FormatJSON

	if cacheable {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "export")
			res.CacheInfo.ExportHit = true
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "export")
	}

	start := time.Now()
	data, err := Export(ctx, res.Graph, format, eo)
	observability.Pipeline().OnStageComplete(ctx, observability.StageExport, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	res.CacheInfo.ExportHit = false

	if cacheable {
		if err := r.Cache.Set(ctx, key, data, cache.TTLExport); err == nil {
			observability.Cache().OnCacheSet(ctx, "export", len(data))
		}
	}
	return data, nil
}

// Export renders g in format without caching.
func Export(ctx context.Context, g *flow.Graph, format string, eo ExportOptions) ([]byte, error) {
	switch format {
	case FormatJSON:
		return marshalGraph(g)
	case FormatDOT:
		return []byte(dot.ToDOT(g, eo.dotOptions())), nil
	case FormatSVG:
		svg, err := dot.RenderSVG(ctx, dot.ToDOT(g, eo.dotOptions()))
		if err != nil {
			return nil, fmt.Errorf("render svg: %w", err)
		}
		return svg, nil
	default:
		return nil, newFormatError(format)
	}
}

func (o ExportOptions) dotOptions() dot.Options {
	return dot.Options{
		ShowValues:  o.ShowValues,
		NodeTooltip: o.NodeTooltip,
		LinkTooltip: o.LinkTooltip,
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
