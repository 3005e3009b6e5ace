// Package dot hands flow graphs to Graphviz.
//
// # Overview
//
// The engine draws nothing itself. This package converts a layered
// [flow.Graph] into Graphviz DOT source that keeps the sankey reading
// order: left to right, one rank per depth, link pen width proportional to
// link value. The DOT can be saved for external tools or rendered to SVG in
// process for a quick preview.
//
// # Usage
//
//	dot := dot.ToDOT(g, dot.Options{ShowValues: true})
//	svg, err := dot.RenderSVG(ctx, dot)
//
// Tooltips are filled with [template.Format], so the same templates that
// the charting surface uses for hover text apply here:
//
//	dot.ToDOT(g, dot.Options{LinkTooltip: "{source} → {target}: {value}"})
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package dot
