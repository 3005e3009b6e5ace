// Package transform turns ingested provisional edges into a layered flow
// graph.
//
// # Aggregation
//
// [Aggregate] merges provisional edges that share an ordered (source,
// target) pair into a single edge whose value is the sum of the
// contributions. Reversed pairs stay distinct:
//
//	Before: A→B 10, A→B 5, B→A 2
//	After:  A→B 15, B→A 2
//
// Aggregated edges keep the first-appearance order of their pair. When
// contributors carry different identifiers, the [IDPolicy] decides which
// one survives.
//
// # Layering
//
// [AssignDepths] gives every node a depth usable as a layout column. It is a
// breadth-first variant of Kahn's algorithm: all in-degree-0 nodes form wave
// 0, nodes whose last incoming edge is consumed by wave k form wave k+1.
// For an acyclic path s→t this guarantees depth(t) >= depth(s)+1.
//
// Nodes on or behind a cycle never reach in-degree 0. They receive a
// fallback depth of one past the deepest assigned node (0 when no node was
// assigned at all), so no node is left without a depth.
//
// # Throughput
//
// [Throughput] fills the optional node value with max(inflow, outflow).
//
// # Usage
//
//	in, err := flow.Ingest(table, sel)
//	g := transform.Aggregate(in, transform.IDFirst)
//	res := transform.AssignDepths(g)
package transform
