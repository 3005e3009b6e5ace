package flow

import "slices"

// Node is a labeled vertex in the flow graph.
// Name is the node's identity; no two nodes in a graph share a Name.
type Node struct {
	Name string `json:"name"`

	// Depth is the layout column assigned by layering. It is nil until
	// transform.AssignDepths runs.
	Depth *int `json:"depth,omitempty"`

	// Value is the optional node throughput. It is left nil unless
	// transform.Throughput fills it in.
	Value *float64 `json:"value,omitempty"`
}

// HasDepth reports whether layering has assigned a depth to the node.
func (n Node) HasDepth() bool { return n.Depth != nil }

// DepthOr returns the node's depth, or def when no depth is assigned.
func (n Node) DepthOr(def int) int {
	if n.Depth == nil {
		return def
	}
	return *n.Depth
}

// Edge is a directed, valued flow between two nodes. Before aggregation an
// Edge is provisional: one per surviving input row, with (Source, Target)
// pairs possibly repeated.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
	ID     string  `json:"id,omitempty"` // carried from the identifier column, if any
}

// IsSelfLoop reports whether the edge starts and ends at the same node.
func (e Edge) IsSelfLoop() bool { return e.Source == e.Target }

// Graph is the node/link document handed to the rendering layer.
// The zero value has nil slices, which [Validate] reports as missing data;
// use [NewGraph] for an empty but well-formed graph.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Edge `json:"links"`
}

// NewGraph returns an empty graph with non-nil node and link slices.
func NewGraph() *Graph {
	return &Graph{Nodes: []Node{}, Links: []Edge{}}
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// LinkCount returns the number of links in the graph.
func (g *Graph) LinkCount() int { return len(g.Links) }

// IsEmpty reports whether the graph has neither nodes nor links.
func (g *Graph) IsEmpty() bool { return len(g.Nodes) == 0 && len(g.Links) == 0 }

// NodeIndex maps each node name to its position in Nodes.
// If names repeat, the first position wins.
func (g *Graph) NodeIndex() map[string]int {
	idx := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if _, ok := idx[n.Name]; !ok {
			idx[n.Name] = i
		}
	}
	return idx
}

// Node returns the node with the given name and true, or a zero Node and
// false if no such node exists.
func (g *Graph) Node(name string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}

// AddNode appends a node with the given name if none exists yet and reports
// whether it was added. Empty names are rejected.
func (g *Graph) AddNode(name string) bool {
	if name == "" {
		return false
	}
	if _, ok := g.Node(name); ok {
		return false
	}
	g.Nodes = append(g.Nodes, Node{Name: name})
	return true
}

// Clone returns a deep copy of the graph. Depth and Value pointers are
// copied so mutations of the clone never reach the original.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	out := &Graph{Links: slices.Clone(g.Links)}
	if g.Nodes != nil {
		out.Nodes = make([]Node, len(g.Nodes))
		for i, n := range g.Nodes {
			c := Node{Name: n.Name}
			if n.Depth != nil {
				d := *n.Depth
				c.Depth = &d
			}
			if n.Value != nil {
				v := *n.Value
				c.Value = &v
			}
			out.Nodes[i] = c
		}
	}
	return out
}

// NodeNames extracts the name of each node in order.
func NodeNames(nodes []Node) []string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
	}
	return names
}

// NodesFromNames builds depth-less nodes from a list of labels.
func NodesFromNames(names []string) []Node {
	nodes := make([]Node, len(names))
	for i, name := range names {
		nodes[i] = Node{Name: name}
	}
	return nodes
}
