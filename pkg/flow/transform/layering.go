package transform

import "github.com/matzehuels/sankeyflow/pkg/flow"

// LayerResult summarizes a call to [AssignDepths].
type LayerResult struct {
	// MaxDepth is the deepest depth assigned, fallback included.
	// It is -1 for a graph without nodes.
	MaxDepth int `json:"max_depth"`

	// Waves is the number of breadth-first waves that assigned depths.
	Waves int `json:"waves"`

	// Fallback lists, in node order, the nodes that never reached in-degree
	// 0 and received the fallback depth.
	Fallback []string `json:"fallback,omitempty"`
}

// HasCycles reports whether any node needed the fallback depth.
func (r LayerResult) HasCycles() bool { return len(r.Fallback) > 0 }

// AssignDepths assigns a depth to every node of g, overwriting existing
// depths.
//
// # Algorithm
//
// AssignDepths performs a wave-by-wave topological traversal:
//  1. Count in-degrees over links whose endpoints are both known nodes
//  2. Queue every in-degree-0 node, in node order, as wave 0
//  3. Drain the wave: assign the wave number, mark visited, and decrement
//     the in-degree of each target (in link order); targets reaching 0 that
//     are not yet visited join the next wave
//  4. Repeat with the next wave until no nodes are queued
//
// Links that reference unknown nodes are ignored.
//
// # Cycles
//
// Nodes that never reach in-degree 0 (cycle members and anything only
// reachable through them) receive depth MaxAssigned+1, or 0 when no node
// was assigned at all. This keeps every depth defined and deterministic.
//
// # Performance
//
// Time complexity is O(V + E). The traversal is iterative over node
// indices, so deep graphs cannot exhaust the stack.
func AssignDepths(g *flow.Graph) LayerResult {
	res := LayerResult{MaxDepth: -1}
	if g == nil || len(g.Nodes) == 0 {
		return res
	}

	index := g.NodeIndex()
	n := len(g.Nodes)
	inDegree := make([]int, n)
	outgoing := make([][]int, n)
	for _, e := range g.Links {
		s, okS := index[e.Source]
		t, okT := index[e.Target]
		if !okS || !okT {
			continue
		}
		outgoing[s] = append(outgoing[s], t)
		inDegree[t]++
	}

	depths := make([]int, n)
	visited := make([]bool, n)
	queue := make([]int, 0, n)
	for i := range g.Nodes {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	depth := 0
	for len(queue) > 0 {
		var next []int
		for _, curr := range queue {
			if visited[curr] {
				continue
			}
			visited[curr] = true
			depths[curr] = depth
			res.MaxDepth = depth

			for _, child := range outgoing[curr] {
				inDegree[child]--
				if inDegree[child] == 0 && !visited[child] {
					next = append(next, child)
				}
			}
		}
		res.Waves++
		queue = next
		depth++
	}

	fallback := res.MaxDepth + 1
	for i, node := range g.Nodes {
		if !visited[i] {
			depths[i] = fallback
			res.Fallback = append(res.Fallback, node.Name)
		}
	}
	if len(res.Fallback) > 0 {
		res.MaxDepth = fallback
	}

	for i := range g.Nodes {
		d := depths[i]
		g.Nodes[i].Depth = &d
	}
	return res
}

// Layers groups node names by depth. Index i of the result holds the nodes at
// depth i in node order. Nodes without a depth are skipped.
func Layers(g *flow.Graph) [][]string {
	var layers [][]string
	for _, n := range g.Nodes {
		if !n.HasDepth() {
			continue
		}
		d := *n.Depth
		for len(layers) <= d {
			layers = append(layers, nil)
		}
		layers[d] = append(layers[d], n.Name)
	}
	return layers
}
