package transform

import (
	"testing"

	"github.com/matzehuels/sankeyflow/pkg/flow"
)

func TestThroughput(t *testing.T) {
	g := &flow.Graph{
		Nodes: flow.NodesFromNames([]string{"A", "B", "C", "D"}),
		Links: []flow.Edge{
			{Source: "A", Target: "B", Value: 10},
			{Source: "B", Target: "C", Value: 4},
			{Source: "X", Target: "C", Value: 100},
		},
	}
	Throughput(g)

	want := map[string]float64{"A": 10, "B": 10, "C": 4, "D": 0}
	for _, n := range g.Nodes {
		if n.Value == nil {
			t.Fatalf("node %s has no value", n.Name)
		}
		if *n.Value != want[n.Name] {
			t.Errorf("value(%s) = %v, want %v", n.Name, *n.Value, want[n.Name])
		}
	}

	Throughput(nil)
}
