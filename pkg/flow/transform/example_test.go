package transform_test

import (
	"fmt"

	"github.com/matzehuels/sankeyflow/pkg/flow"
	"github.com/matzehuels/sankeyflow/pkg/flow/transform"
)

func ExampleAggregate() {
	in := &flow.Ingested{
		Nodes: []string{"A", "B", "C"},
		Edges: []flow.Edge{
			{Source: "A", Target: "B", Value: 10},
			{Source: "A", Target: "B", Value: 5},
			{Source: "B", Target: "C", Value: 3},
		},
	}

	g := transform.Aggregate(in, transform.IDFirst)
	for _, e := range g.Links {
		fmt.Printf("%s→%s: %g\n", e.Source, e.Target, e.Value)
	}
	// Output:
	// A→B: 15
	// B→C: 3
}

func ExampleAssignDepths() {
	g := &flow.Graph{
		Nodes: flow.NodesFromNames([]string{"A", "B", "C"}),
		Links: []flow.Edge{
			{Source: "A", Target: "B", Value: 15},
			{Source: "B", Target: "C", Value: 3},
		},
	}

	transform.AssignDepths(g)
	for _, n := range g.Nodes {
		fmt.Printf("%s=%d\n", n.Name, *n.Depth)
	}
	// Output:
	// A=0
	// B=1
	// C=2
}

func ExampleAssignDepths_cycle() {
	g := &flow.Graph{
		Nodes: flow.NodesFromNames([]string{"A", "B"}),
		Links: []flow.Edge{
			{Source: "A", Target: "B", Value: 1},
			{Source: "B", Target: "A", Value: 1},
		},
	}

	res := transform.AssignDepths(g)
	fmt.Println("Fallback:", res.Fallback)
	fmt.Println("A:", *g.Nodes[0].Depth, "B:", *g.Nodes[1].Depth)
	// Output:
	// Fallback: [A B]
	// A: 0 B: 0
}
