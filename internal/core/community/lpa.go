package community

import (
	"sort"

	"github.com/agenthands/contactgraph/internal/core/model"
)

// LabelPropagationDetector implements community detection using Label Propagation Algorithm (LPA).
type LabelPropagationDetector struct {
	MaxIterations int
	MinSize       int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: 20,
		MinSize:       1,
	}
}

func (d *LabelPropagationDetector) Detect(nodes []model.Person, edges []model.ContactEdge) ([][]model.Person, error) {
	if len(nodes) == 0 {
		return nil, nil
	}

	// Undirected, weighted by the number of edges between two phones.
	adj := make(map[string]map[string]int, len(nodes))
	nodeMap := make(map[string]model.Person, len(nodes))

	for _, n := range nodes {
		nodeMap[n.ID] = n
		adj[n.ID] = make(map[string]int)
	}

	for _, e := range edges {
		if _, ok := nodeMap[e.Source]; !ok {
			continue
		}
		if _, ok := nodeMap[e.Target]; !ok {
			continue
		}

		adj[e.Source][e.Target]++
		adj[e.Target][e.Source]++
	}

	// Each node starts with its own label.
	labels := make(map[string]string, len(nodes))
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		labels[n.ID] = n.ID
		ids[i] = n.ID
	}
	sort.Strings(ids)

	for iter := 0; iter < d.MaxIterations; iter++ {
		changeCount := 0

		for _, u := range ids {
			neighbors := adj[u]
			if len(neighbors) == 0 {
				continue
			}

			labelCounts := make(map[string]int)
			maxCount := 0

			for v, weight := range neighbors {
				label := labels[v]
				labelCounts[label] += weight
				if labelCounts[label] > maxCount {
					maxCount = labelCounts[label]
				}
			}

			// Keep the current label on a tie, otherwise take the
			// lexicographically largest candidate.
			var candidates []string
			keep := false
			for label, count := range labelCounts {
				if count == maxCount {
					candidates = append(candidates, label)
					if label == labels[u] {
						keep = true
					}
				}
			}
			if keep {
				continue
			}
			sort.Strings(candidates)
			bestLabel := candidates[len(candidates)-1]

			if labels[u] != bestLabel {
				labels[u] = bestLabel
				changeCount++
			}
		}

		if changeCount == 0 {
			break
		}
	}

	clusters := make(map[string][]model.Person)
	for _, id := range ids {
		label := labels[id]
		clusters[label] = append(clusters[label], nodeMap[id])
	}

	var communities [][]model.Person
	for _, cluster := range clusters {
		if len(cluster) >= d.MinSize {
			communities = append(communities, cluster)
		}
	}

	return normalize(communities), nil
}
