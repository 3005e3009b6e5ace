package transform

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/sankeyflow/pkg/flow"
)

const labels = "ABCDEF"

// rowsFrom pairs generated pair indices with generated values.
func rowsFrom(pairs []int, values []float64) flow.Table {
	n := min(len(pairs), len(values))
	t := flow.Table{
		"src": make([]flow.Cell, n),
		"dst": make([]flow.Cell, n),
		"val": make([]flow.Cell, n),
	}
	for i := 0; i < n; i++ {
		p := pairs[i]
		t["src"][i] = flow.StringCell(string(labels[p/len(labels)]))
		t["dst"][i] = flow.StringCell(string(labels[p%len(labels)]))
		t["val"][i] = flow.NumberCell(values[i])
	}
	return t
}

var propSel = flow.Selectors{Source: "src", Target: "dst", Value: "val"}

// TestFlowInvariants uses property-based testing to verify aggregation and
// layering invariants over random row sets.
func TestFlowInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	pairGen := gen.SliceOf(gen.IntRange(0, len(labels)*len(labels)-1))
	valueGen := gen.SliceOf(gen.Float64Range(-50, 100))

	properties.Property("aggregated value equals sum of contributing rows", prop.ForAll(
		func(pairs []int, values []float64) bool {
			in, err := flow.Ingest(rowsFrom(pairs, values), propSel)
			if err != nil {
				return false
			}
			sums := make(map[[2]string]float64)
			for _, e := range in.Edges {
				sums[[2]string{e.Source, e.Target}] += e.Value
			}
			agg := AggregateEdges(in.Edges, IDFirst)
			if len(agg) != len(sums) {
				return false
			}
			for _, e := range agg {
				if sums[[2]string{e.Source, e.Target}] != e.Value {
					return false
				}
			}
			return true
		},
		pairGen, valueGen,
	))

	properties.Property("no edge is non-positive and no label is empty", prop.ForAll(
		func(pairs []int, values []float64) bool {
			in, _ := flow.Ingest(rowsFrom(pairs, values), propSel)
			g := Aggregate(in, IDFirst)
			for _, e := range g.Links {
				if e.Value <= 0 {
					return false
				}
			}
			for _, n := range g.Nodes {
				if n.Name == "" {
					return false
				}
			}
			return true
		},
		pairGen, valueGen,
	))

	properties.Property("every node gets a depth and acyclic edges descend", prop.ForAll(
		func(pairs []int, values []float64) bool {
			in, _ := flow.Ingest(rowsFrom(pairs, values), propSel)
			g := Aggregate(in, IDFirst)
			res := AssignDepths(g)

			fallback := make(map[string]bool, len(res.Fallback))
			for _, name := range res.Fallback {
				fallback[name] = true
			}
			depth := make(map[string]int, len(g.Nodes))
			for _, n := range g.Nodes {
				if !n.HasDepth() || *n.Depth < 0 {
					return false
				}
				depth[n.Name] = *n.Depth
			}
			for _, e := range g.Links {
				if fallback[e.Source] || fallback[e.Target] {
					continue
				}
				if depth[e.Target] < depth[e.Source]+1 {
					return false
				}
			}
			return true
		},
		pairGen, valueGen,
	))

	properties.TestingRun(t)
}
