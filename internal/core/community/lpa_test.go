package community

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/contactgraph/internal/core/model"
)

func TestLPA_DisconnectedStars(t *testing.T) {
	// Two registered users with disjoint phone books.
	nodes := []model.Person{
		{ID: "a"}, {ID: "a1"}, {ID: "a2"}, {ID: "a3"},
		{ID: "b"}, {ID: "b1"}, {ID: "b2"},
	}
	edges := []model.ContactEdge{
		{Source: "a", Target: "a1"}, {Source: "a", Target: "a2"}, {Source: "a", Target: "a3"},
		{Source: "b", Target: "b1"}, {Source: "b", Target: "b2"},
	}

	communities, err := NewLabelPropagationDetector().Detect(nodes, edges)
	require.NoError(t, err)

	require.Len(t, communities, 2)
	assert.Equal(t, []string{"a", "a1", "a2", "a3"}, ids(communities[0]))
	assert.Equal(t, []string{"b", "b1", "b2"}, ids(communities[1]))
}

func TestLPA_BridgeNode(t *testing.T) {
	// Graph: [1-2-3-1] --(3-4)-- [4-5-6-4]
	// 3 and 4 each have two neighbours inside their triangle and one across
	// the bridge, so the triangles stay apart.
	nodes := []model.Person{
		{ID: "1"}, {ID: "2"}, {ID: "3"},
		{ID: "4"}, {ID: "5"}, {ID: "6"},
	}
	edges := []model.ContactEdge{
		{Source: "1", Target: "2"}, {Source: "2", Target: "3"}, {Source: "3", Target: "1"},
		// Bridge
		{Source: "3", Target: "4"},
		// Triangle 2
		{Source: "4", Target: "5"}, {Source: "5", Target: "6"}, {Source: "6", Target: "4"},
	}

	communities, err := NewLabelPropagationDetector().Detect(nodes, edges)
	require.NoError(t, err)

	require.Len(t, communities, 2)
	assert.Equal(t, []string{"1", "2", "3"}, ids(communities[0]))
	assert.Equal(t, []string{"4", "5", "6"}, ids(communities[1]))
}

func TestLPA_LargeClique(t *testing.T) {
	nodes := []model.Person{
		{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"},
	}
	var edges []model.ContactEdge
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			edges = append(edges, model.ContactEdge{
				Source: nodes[i].ID,
				Target: nodes[j].ID,
			})
		}
	}

	communities, err := NewLabelPropagationDetector().Detect(nodes, edges)
	require.NoError(t, err)

	assert.Len(t, communities, 1)
	assert.Len(t, communities[0], 5)
}

func TestLPA_Isolated(t *testing.T) {
	nodes := []model.Person{{ID: "1"}, {ID: "2"}}

	communities, err := NewLabelPropagationDetector().Detect(nodes, nil)
	require.NoError(t, err)
	assert.Len(t, communities, 2)

	d := &LabelPropagationDetector{MaxIterations: 5, MinSize: 2}
	communities, err = d.Detect(nodes, nil)
	require.NoError(t, err)
	assert.Empty(t, communities)

	communities, err = d.Detect(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, communities)
}
