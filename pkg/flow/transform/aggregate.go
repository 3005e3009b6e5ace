package transform

import (
	"fmt"
	"strings"

	"github.com/matzehuels/sankeyflow/pkg/flow"
)

// IDPolicy decides which identifier an aggregated edge keeps when its
// contributing rows disagree.
type IDPolicy int

const (
	// IDFirst keeps the first non-empty identifier encountered.
	IDFirst IDPolicy = iota
	// IDLast keeps the last non-empty identifier encountered.
	IDLast
	// IDDropOnConflict clears the identifier when contributors carry two or
	// more distinct non-empty identifiers.
	IDDropOnConflict
)

var idPolicyNames = map[IDPolicy]string{
	IDFirst:          "first",
	IDLast:           "last",
	IDDropOnConflict: "drop",
}

// String returns the policy name used in configuration files.
func (p IDPolicy) String() string {
	if s, ok := idPolicyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("IDPolicy(%d)", int(p))
}

// ParseIDPolicy converts a configuration name ("first", "last", "drop") into
// an IDPolicy. The empty string selects IDFirst.
func ParseIDPolicy(s string) (IDPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return IDFirst, nil
	case "last":
		return IDLast, nil
	case "drop":
		return IDDropOnConflict, nil
	}
	return IDFirst, fmt.Errorf("unknown id policy %q (must be one of: first, last, drop)", s)
}

// pairKey identifies an aggregated edge. A struct key avoids collisions that
// string concatenation would allow between adjacent labels.
type pairKey struct {
	source, target string
}

// AggregateEdges merges edges sharing an ordered (source, target) pair and
// sums their values. Output order follows the first appearance of each pair.
// No validation is performed; callers are expected to have filtered
// non-positive values.
func AggregateEdges(edges []flow.Edge, policy IDPolicy) []flow.Edge {
	out := make([]flow.Edge, 0, len(edges))
	index := make(map[pairKey]int, len(edges))
	conflict := make(map[int]bool)

	for _, e := range edges {
		k := pairKey{e.Source, e.Target}
		i, ok := index[k]
		if !ok {
			index[k] = len(out)
			out = append(out, e)
			continue
		}

		agg := &out[i]
		agg.Value += e.Value
		if e.ID == "" {
			continue
		}
		switch policy {
		case IDLast:
			agg.ID = e.ID
		case IDDropOnConflict:
			if conflict[i] {
				continue
			}
			if agg.ID == "" {
				agg.ID = e.ID
			} else if agg.ID != e.ID {
				agg.ID = ""
				conflict[i] = true
			}
		default:
			if agg.ID == "" {
				agg.ID = e.ID
			}
		}
	}
	return out
}

// Aggregate builds a graph from ingested rows: nodes in first-appearance
// order and edges merged with [AggregateEdges].
func Aggregate(in *flow.Ingested, policy IDPolicy) *flow.Graph {
	if in == nil {
		return flow.NewGraph()
	}
	return &flow.Graph{
		Nodes: flow.NodesFromNames(in.Nodes),
		Links: AggregateEdges(in.Edges, policy),
	}
}
