package pipeline

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"

	serrors "github.com/matzehuels/sankeyflow/pkg/errors"
	"github.com/matzehuels/sankeyflow/pkg/flow"
	"github.com/matzehuels/sankeyflow/pkg/flow/transform"
	"github.com/matzehuels/sankeyflow/pkg/observability"
)

// Build runs ingest, aggregate, layer and validate over t.
//
// Build always returns a usable result. Input shape errors and invalid
// options yield an empty graph with the diagnostic in [Result.Err]; a panic
// inside any stage is recovered the same way with [serrors.ErrCodeInternal].
// Each failure is logged through opts.Logger.
func Build(t flow.Table, opts Options) *Result {
	return BuildContext(context.Background(), t, opts)
}

// BuildContext is [Build] with a context for the observability hooks.
// The stages themselves are synchronous and do not observe cancellation.
func BuildContext(ctx context.Context, t flow.Table, opts Options) (res *Result) {
	opts.SetDefaults()
	res = newResult()
	logger := opts.Logger.With("run", res.RunID)
	hooks := observability.Pipeline()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			recovered(logger, res, r)
		}
		res.Stats.TotalTime = time.Since(start)
		res.Stats.NodeCount = res.Graph.NodeCount()
		res.Stats.LinkCount = res.Graph.LinkCount()
		res.GraphHash = graphHash(res.Graph)

		defer func() {
			if r := recover(); r != nil {
				recovered(logger, res, r)
			}
		}()
		hooks.OnBuildComplete(ctx, summarize(res, false), res.Stats.TotalTime, res.Err)
	}()

	hooks.OnBuildStart(ctx, t.Rows())

	policy, err := transform.ParseIDPolicy(opts.IDPolicy)
	if err != nil {
		err = serrors.Wrap(serrors.ErrCodeInvalidConfig, err, "id_policy")
		logger.Error("invalid options", "err", err)
		fail(res, err)
		return res
	}

	stage := stageTimer(ctx, logger, hooks)

	in, err := flow.Ingest(t, opts.Columns)
	res.Stats.IngestTime = stage(observability.StageIngest, err)
	res.Ingest = in.Stats
	if err != nil {
		logger.Error("input shape error", "err", err, "code", serrors.GetCode(err))
		fail(res, err)
		return res
	}
	if in.Stats.Dropped() > 0 {
		logger.Debug("dropped rows",
			"empty_source", in.Stats.DroppedSource,
			"empty_target", in.Stats.DroppedTarget,
			"non_positive", in.Stats.DroppedNonPositive)
	}

	g := transform.Aggregate(in, policy)
	res.Stats.AggregateTime = stage(observability.StageAggregate, nil)

	res.Layers = transform.AssignDepths(g)
	if opts.Throughput {
		transform.Throughput(g)
	}
	res.Stats.LayerTime = stage(observability.StageLayer, nil)
	if res.Layers.HasCycles() {
		logger.Warn("cycle detected, using fallback depth",
			"nodes", len(res.Layers.Fallback),
			"depth", res.Layers.MaxDepth)
	}

	res.Graph = g
	res.Report = flow.Validate(g)
	res.Stats.ValidateTime = stage(observability.StageValidate, nil)

	logger.Debug("built graph",
		"rows", in.Stats.Rows,
		"nodes", g.NodeCount(),
		"links", g.LinkCount(),
		"max_depth", res.Layers.MaxDepth,
		"valid", res.Report.IsValid)
	return res
}

// recovered turns a panic value into an internal error on res.
func recovered(logger *log.Logger, res *Result, r any) {
	err := serrors.New(serrors.ErrCodeInternal, "build failed: %v", r)
	logger.Error("graph build failed", "err", err, "stack", string(debug.Stack()))
	fail(res, err)
	res.Stats.NodeCount = 0
	res.Stats.LinkCount = 0
	res.GraphHash = graphHash(res.Graph)
}

// fail resets res to the empty-graph outcome carrying err.
func fail(res *Result, err error) {
	res.Graph = flow.NewGraph()
	res.Layers = transform.LayerResult{MaxDepth: -1}
	res.Report = flow.Validate(res.Graph)
	res.Err = err
}

// summarize condenses res for the observability hooks.
func summarize(res *Result, cacheHit bool) observability.BuildSummary {
	return observability.BuildSummary{
		Rows:         res.Ingest.Rows,
		DroppedRows:  res.Ingest.Dropped(),
		Nodes:        res.Graph.NodeCount(),
		Links:        res.Graph.LinkCount(),
		MaxDepth:     res.Layers.MaxDepth,
		FallbackNode: len(res.Layers.Fallback),
		Valid:        res.Report.IsValid,
		CacheHit:     cacheHit,
	}
}

// stageTimer returns a function that reports the time since its previous
// call (or since creation) for the named stage.
func stageTimer(ctx context.Context, logger *log.Logger, hooks observability.PipelineHooks) func(stage string, err error) time.Duration {
	last := time.Now()
	return func(stage string, err error) time.Duration {
		now := time.Now()
		d := now.Sub(last)
		last = now
		hooks.OnStageComplete(ctx, stage, d, err)
		logger.Debug(fmt.Sprintf("%s done", stage), "duration", d)
		return d
	}
}
