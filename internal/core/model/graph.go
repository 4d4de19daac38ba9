package model

// Graph is the categorized contact graph. Nodes are sorted by ID and edges
// by (Source, Target).
type Graph struct {
	Nodes     []Person      `json:"nodes"`
	Edges     []ContactEdge `json:"edges"`
	Threshold int           `json:"threshold"`

	index map[string]int
}

func NewGraph(nodes []Person, edges []ContactEdge, threshold int) *Graph {
	g := &Graph{
		Nodes:     nodes,
		Edges:     edges,
		Threshold: threshold,
	}
	g.reindex()
	return g
}

func (g *Graph) reindex() {
	g.index = make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		g.index[n.ID] = i
	}
}

// Node looks a person up by phone number.
func (g *Graph) Node(id string) (Person, bool) {
	if g.index == nil {
		g.reindex()
	}
	i, ok := g.index[id]
	if !ok {
		return Person{}, false
	}
	return g.Nodes[i], true
}

// WithCommunities returns a copy of g with Community set from assignment.
// Persons missing from assignment keep NoCommunity.
func (g *Graph) WithCommunities(assignment map[string]int) *Graph {
	nodes := make([]Person, len(g.Nodes))
	for i, n := range g.Nodes {
		n.Community = NoCommunity
		if c, ok := assignment[n.ID]; ok {
			n.Community = c
		}
		nodes[i] = n
	}
	return NewGraph(nodes, g.Edges, g.Threshold)
}

// HasCommunities reports whether any node carries a community.
func (g *Graph) HasCommunities() bool {
	for _, n := range g.Nodes {
		if n.Community != NoCommunity {
			return true
		}
	}
	return false
}
