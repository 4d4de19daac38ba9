package community

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agenthands/contactgraph/internal/core/model"
)

const (
	AlgorithmNone       = ""
	AlgorithmComponents = "components"
	AlgorithmLPA        = "lpa"
)

type CommunityDetector interface {
	Detect(nodes []model.Person, edges []model.ContactEdge) ([][]model.Person, error)
}

// NewDetector returns the detector for algorithm, or nil for AlgorithmNone.
func NewDetector(algorithm string, maxIterations int) (CommunityDetector, error) {
	switch strings.ToLower(algorithm) {
	case AlgorithmNone:
		return nil, nil
	case AlgorithmComponents:
		return NewComponentDetector(), nil
	case AlgorithmLPA:
		d := NewLabelPropagationDetector()
		if maxIterations > 0 {
			d.MaxIterations = maxIterations
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unsupported community algorithm: %s", algorithm)
	}
}

// ComponentDetector groups nodes into connected components.
type ComponentDetector struct {
	MinSize int
}

func NewComponentDetector() *ComponentDetector {
	return &ComponentDetector{MinSize: 1}
}

func (d *ComponentDetector) Detect(nodes []model.Person, edges []model.ContactEdge) ([][]model.Person, error) {
	nodeMap := make(map[string]model.Person, len(nodes))
	adj := make(map[string][]string)

	for _, n := range nodes {
		nodeMap[n.ID] = n
	}

	for _, e := range edges {
		// Contact edges are unordered.
		if _, ok := nodeMap[e.Source]; !ok {
			continue
		}
		if _, ok := nodeMap[e.Target]; !ok {
			continue
		}

		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}

	visited := make(map[string]bool, len(nodes))
	var communities [][]model.Person

	for _, n := range nodes {
		if visited[n.ID] {
			continue
		}
		component := d.walk(n.ID, adj, visited)
		if len(component) < d.MinSize {
			continue
		}

		community := make([]model.Person, 0, len(component))
		for _, id := range component {
			community = append(community, nodeMap[id])
		}
		communities = append(communities, community)
	}

	return normalize(communities), nil
}

// walk is an iterative DFS; phone graphs of a few hundred thousand nodes
// overflow a recursive one.
func (d *ComponentDetector) walk(start string, adj map[string][]string, visited map[string]bool) []string {
	var component []string
	stack := []string{start}
	visited[start] = true
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		component = append(component, u)
		for _, v := range adj[u] {
			if !visited[v] {
				visited[v] = true
				stack = append(stack, v)
			}
		}
	}
	return component
}

// Assign numbers communities from 0 and maps each member to its number.
func Assign(communities [][]model.Person) map[string]int {
	communities = normalize(communities)
	out := make(map[string]int)
	for i, c := range communities {
		for _, n := range c {
			out[n.ID] = i
		}
	}
	return out
}

// normalize sorts members by ID and communities by their first member,
// so numbering does not depend on map iteration order.
func normalize(communities [][]model.Person) [][]model.Person {
	for _, c := range communities {
		slices.SortFunc(c, func(a, b model.Person) int { return strings.Compare(a.ID, b.ID) })
	}
	slices.SortFunc(communities, func(a, b []model.Person) int {
		switch {
		case len(a) == 0 && len(b) == 0:
			return 0
		case len(a) == 0:
			return -1
		case len(b) == 0:
			return 1
		}
		return strings.Compare(a[0].ID, b[0].ID)
	})
	return communities
}
