package transform

import "github.com/matzehuels/sankeyflow/pkg/flow"

// Throughput sets each node's Value to the larger of its total inflow and
// total outflow. Links referencing unknown nodes are ignored. Orphaned nodes
// get a value of 0.
func Throughput(g *flow.Graph) {
	if g == nil {
		return
	}
	index := g.NodeIndex()
	in := make([]float64, len(g.Nodes))
	out := make([]float64, len(g.Nodes))
	for _, e := range g.Links {
		if i, ok := index[e.Source]; ok {
			out[i] += e.Value
		}
		if i, ok := index[e.Target]; ok {
			in[i] += e.Value
		}
	}
	for i := range g.Nodes {
		v := max(in[i], out[i])
		g.Nodes[i].Value = &v
	}
}
