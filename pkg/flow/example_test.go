package flow_test

import (
	"fmt"

	"github.com/matzehuels/sankeyflow/pkg/flow"
)

func ExampleIngest() {
	table := flow.Table{
		"from":   flow.Cells("Solar", "Wind", " ", "Grid"),
		"to":     flow.Cells("Grid", "Grid", "Homes", "Homes"),
		"amount": flow.Cells(12.5, "4", 3, -1),
	}
	sel := flow.Selectors{Source: "from", Target: "to", Value: "amount"}

	in, err := flow.Ingest(table, sel)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Nodes:", in.Nodes)
	fmt.Println("Edges:", len(in.Edges))
	fmt.Println("Dropped:", in.Stats.Dropped())
	// Output:
	// Nodes: [Solar Grid Wind]
	// Edges: 2
	// Dropped: 2
}

func ExampleValidate() {
	g := &flow.Graph{
		Nodes: flow.NodesFromNames([]string{"A", "B", "C"}),
		Links: []flow.Edge{{Source: "A", Target: "B", Value: 5}},
	}

	r := flow.Validate(g)
	fmt.Println("Valid:", r.IsValid)
	fmt.Println("Warnings:", r.Warnings)
	// Output:
	// Valid: true
	// Warnings: [1 orphaned node(s) with no links]
}
