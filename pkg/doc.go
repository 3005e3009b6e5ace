// Package pkg provides the core libraries for Sankeyflow flow-graph building.
//
// # Overview
//
// Sankeyflow turns tabular (source, target, value) rows into a layered flow
// graph ready for a sankey renderer. The pkg directory is organized into
// three areas:
//
//  1. Domain logic: [flow] and [flow/transform]
//  2. Infrastructure: [cache], [metrics], [observability]
//  3. Orchestration and I/O: [pipeline], [io], [render/dot], [template]
//
// # Architecture
//
// The typical data flow through Sankeyflow:
//
//	CSV / TSV / JSON table
//	         ↓
//	    [io] package (read columns as cells)
//	         ↓
//	    [flow] package (ingest rows into provisional links)
//	         ↓
//	    [flow/transform] package (aggregate, assign depths)
//	         ↓
//	    [flow] package (validate)
//	         ↓
//	    JSON graph document, DOT or SVG
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/sankeyflow/pkg/flow"
//	    "github.com/matzehuels/sankeyflow/pkg/pipeline"
//	)
//
//	t := flow.Table{
//	    "source": flow.Cells("Coal", "Gas"),
//	    "target": flow.Cells("Power", "Power"),
//	    "value":  flow.Cells(5, 2),
//	}
//	res := pipeline.Build(t, pipeline.Options{
//	    Columns: flow.Selectors{Source: "source", Target: "target", Value: "value"},
//	})
//	if res.Err != nil || !res.Report.IsValid {
//	    // handle input shape error or report.Errors
//	}
//
// # Main Packages
//
// [flow] defines the graph document (nodes, links), the column table read
// from input, row ingestion, and the structural validator.
//
// [flow/transform] merges duplicate links, assigns BFS depths with a
// fallback for nodes only reachable through cycles, and optionally computes
// node throughput.
//
// [pipeline] orchestrates a build, caches results through [cache], and
// exports graphs as JSON, DOT or SVG.
//
// [cache] provides file, Redis and no-op backends with content-addressed keys.
//
// [metrics] and [observability] expose build and cache events as Prometheus
// metrics through pluggable hooks.
//
// [flow]: https://pkg.go.dev/github.com/matzehuels/sankeyflow/pkg/flow
// [flow/transform]: https://pkg.go.dev/github.com/matzehuels/sankeyflow/pkg/flow/transform
// [cache]: https://pkg.go.dev/github.com/matzehuels/sankeyflow/pkg/cache
// [metrics]: https://pkg.go.dev/github.com/matzehuels/sankeyflow/pkg/metrics
// [observability]: https://pkg.go.dev/github.com/matzehuels/sankeyflow/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sankeyflow/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/sankeyflow/pkg/io
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/sankeyflow/pkg/render/dot
// [template]: https://pkg.go.dev/github.com/matzehuels/sankeyflow/pkg/template
package pkg
