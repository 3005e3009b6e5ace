// Package flow provides the flow-graph data model and the row ingestion and
// validation stages of the sankeyflow pipeline.
//
// # Overview
//
// A flow graph is a set of labeled nodes connected by directed, valued links.
// It is built from flat tabular input where every row names a source label,
// a target label and a magnitude:
//
//	source   target   value
//	Solar    Grid     12.5
//	Grid     Homes     9.0
//
// The package handles the two ends of that conversion:
//
//   - [Ingest] scans parallel columns, drops structurally invalid rows and
//     emits provisional edges plus the node labels in first-appearance order.
//   - [Validate] inspects a finished graph and sorts problems into fatal
//     errors and advisory warnings.
//
// Merging duplicate edges and assigning layout depths live in
// [github.com/matzehuels/sankeyflow/pkg/flow/transform].
//
// # Cells
//
// Host data arrives as loosely typed cells. [Cell] is a closed variant over
// string, number, boolean and absent values with fixed coercion rules:
//
//	cell        Text()      Float()
//	"  12 "     "  12 "     12
//	"abc"       "abc"       0
//	3.5         "3.5"       3.5
//	true        "true"      1
//	absent      ""          0
//
// Non-finite numbers coerce to 0 and are therefore dropped as non-positive.
//
// # Graph Document
//
// [Graph] marshals to the document consumed by charting surfaces:
//
//	{"nodes": [{"name": "A", "depth": 0}], "links": [{"source": "A", "target": "B", "value": 15}]}
//
// A nil Nodes or Links slice means "missing" and is reported by [Validate];
// the pipeline always produces non-nil (possibly empty) slices.
package flow
