package flow

import (
	"strings"

	serrors "github.com/matzehuels/sankeyflow/pkg/errors"
)

// Table maps column names to equally long sequences of cells.
type Table map[string][]Cell

// Rows returns the length of the longest column.
func (t Table) Rows() int {
	n := 0
	for _, col := range t {
		n = max(n, len(col))
	}
	return n
}

// Selectors names the columns that hold each field of a row.
// ID is optional; when empty, edges carry no identifier.
type Selectors struct {
	Source string `json:"source" toml:"source" yaml:"source"`
	Target string `json:"target" toml:"target" yaml:"target"`
	Value  string `json:"value" toml:"value" yaml:"value"`
	ID     string `json:"id,omitempty" toml:"id" yaml:"id,omitempty"`
}

// HasID reports whether an identifier column is selected.
func (s Selectors) HasID() bool { return s.ID != "" }

// IngestStats counts how rows were treated during ingestion.
// Dropped rows are expected noise and are never reported as errors.
type IngestStats struct {
	Rows               int `json:"rows"`                // rows scanned
	Kept               int `json:"kept"`                // rows that produced a provisional edge
	DroppedSource      int `json:"dropped_source"`      // rows with an empty source label
	DroppedTarget      int `json:"dropped_target"`      // rows with an empty target label
	DroppedNonPositive int `json:"dropped_nonpositive"` // rows whose value coerced to <= 0
}

// Dropped returns the total number of discarded rows.
func (s IngestStats) Dropped() int {
	return s.DroppedSource + s.DroppedTarget + s.DroppedNonPositive
}

// Ingested is the output of [Ingest]: node labels in first-appearance order
// and one provisional edge per surviving row.
type Ingested struct {
	Nodes []string
	Edges []Edge
	Stats IngestStats
}

// Graph returns an unaggregated graph over the ingested nodes and edges.
func (in *Ingested) Graph() *Graph {
	return &Graph{Nodes: NodesFromNames(in.Nodes), Links: in.Edges}
}

func emptyIngested() *Ingested {
	return &Ingested{Nodes: []string{}, Edges: []Edge{}}
}

// Ingest scans the selected columns of t row by row and emits provisional
// edges.
//
// The selected columns must exist and have equal length. If they do not,
// Ingest processes nothing and returns an empty result together with an
// error coded [serrors.ErrCodeMissingColumn] or [serrors.ErrCodeColumnMismatch].
//
// Each row's source and target are trimmed and its value is coerced with
// [Cell.Float]. A row is dropped silently when either label is empty or the
// value is <= 0. Every surviving row registers its source, then its target,
// in the node list (first appearance wins) and appends one provisional edge.
// When sel.ID is set, the edge carries the identifier cell's [Cell.Text]
// verbatim.
func Ingest(t Table, sel Selectors) (*Ingested, error) {
	src, tgt, val, ids, err := columns(t, sel)
	if err != nil {
		return emptyIngested(), err
	}

	out := emptyIngested()
	seen := make(map[string]struct{})
	register := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out.Nodes = append(out.Nodes, name)
	}

	for i := range src {
		out.Stats.Rows++

		source := strings.TrimSpace(src[i].Text())
		if source == "" {
			out.Stats.DroppedSource++
			continue
		}
		target := strings.TrimSpace(tgt[i].Text())
		if target == "" {
			out.Stats.DroppedTarget++
			continue
		}
		value := val[i].Float()
		if value <= 0 {
			out.Stats.DroppedNonPositive++
			continue
		}

		register(source)
		register(target)

		e := Edge{Source: source, Target: target, Value: value}
		if sel.HasID() {
			e.ID = ids[i].Text()
		}
		out.Edges = append(out.Edges, e)
		out.Stats.Kept++
	}
	return out, nil
}

func columns(t Table, sel Selectors) (src, tgt, val, ids []Cell, err error) {
	lookup := func(role, name string) ([]Cell, error) {
		if err := serrors.ValidateColumnName(name); err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeMissingColumn, err, "%s column selector", role)
		}
		col, ok := t[name]
		if !ok {
			return nil, serrors.New(serrors.ErrCodeMissingColumn, "%s column %q not found", role, name)
		}
		return col, nil
	}

	if src, err = lookup("source", sel.Source); err != nil {
		return
	}
	if tgt, err = lookup("target", sel.Target); err != nil {
		return
	}
	if val, err = lookup("value", sel.Value); err != nil {
		return
	}
	if sel.HasID() {
		if ids, err = lookup("id", sel.ID); err != nil {
			return
		}
	}

	n := len(src)
	type selected struct {
		role, name string
		col        []Cell
	}
	check := []selected{{"target", sel.Target, tgt}, {"value", sel.Value, val}}
	if sel.HasID() {
		check = append(check, selected{"id", sel.ID, ids})
	}
	for _, c := range check {
		if len(c.col) != n {
			err = serrors.New(serrors.ErrCodeColumnMismatch,
				"%s column %q has %d rows, source column %q has %d", c.role, c.name, len(c.col), sel.Source, n)
			return
		}
	}
	return
}
