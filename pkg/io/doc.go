// Package io reads input tables and writes flow graph documents.
//
// # Input Tables
//
// [ReadTable] dispatches on the file extension:
//
//   - .csv, .tsv: a header row names the columns; every cell is text
//   - .json: either columnar or record oriented (see below)
//
// Columnar JSON maps column names to equally long arrays:
//
//	{"from": ["A", "A"], "to": ["B", "C"], "amount": [10, "5"]}
//
// Record JSON is an array of row objects. A key missing from a row becomes
// an absent cell:
//
//	[{"from": "A", "to": "B", "amount": 10}, {"from": "A", "to": "C"}]
//
// Cell values must be JSON scalars. Numbers, strings and booleans keep their
// kind so that coercion in [flow.Ingest] sees what the data actually held.
//
// # Output Documents
//
// [WriteGraph] emits the engine's graph document:
//
//	{
//	  "nodes": [{"name": "A", "depth": 0}, {"name": "B", "depth": 1}],
//	  "links": [{"source": "A", "target": "B", "value": 15}]
//	}
//
// [WriteReport] emits the validation report:
//
//	{"isValid": true, "errors": [], "warnings": []}
//
// Encoding is deterministic: the same graph always produces the same bytes.
// [ReadGraph] decodes a graph document, leaving absent top-level arrays nil
// so that [flow.Validate] can report them.
package io
