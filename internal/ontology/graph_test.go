package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsInvalidInput(t *testing.T) {
	_, err := New([]string{"a", "a"}, nil)
	assert.Error(t, err, "duplicate concepts should be rejected")

	_, err = New([]string{"a"}, []Edge{{"a", "b"}})
	assert.Error(t, err, "edges to unknown concepts should be rejected")

	_, err = New([]string{""}, nil)
	assert.Error(t, err, "empty concept names should be rejected")
}

func TestHealthGraph_Counts(t *testing.T) {
	g := NewHealthGraph()
	assert.Equal(t, 17, g.NodeCount())
	assert.Equal(t, 25, g.EdgeCount())
}

func TestSuccessors_InsertionOrder(t *testing.T) {
	g := NewHealthGraph()

	// hydration edges appear in this order in the edge list, with
	// mental_clarity added later than the first three.
	assert.Equal(t,
		[]string{"fatigue", "energy", "focus", "mental_clarity"},
		g.Successors("hydration"))
}

func TestSuccessors_AbsentConcept(t *testing.T) {
	g := NewHealthGraph()

	result := g.Successors("nonexistent_concept")
	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestPredecessors(t *testing.T) {
	g := NewHealthGraph()

	assert.Equal(t, []string{"exercise", "stress", "weight"},
		g.Predecessors("heart_health"))
	assert.Empty(t, g.Predecessors("hydration"))
	assert.Empty(t, g.Predecessors("no_such_node"))
}

func TestRelatedWithinDepth(t *testing.T) {
	g := NewHealthGraph()

	depth1 := g.RelatedWithinDepth("hydration", 1)
	assert.Len(t, depth1, 4)
	assert.Contains(t, depth1, "fatigue")
	assert.Contains(t, depth1, "energy")
	assert.Contains(t, depth1, "focus")
	assert.Contains(t, depth1, "mental_clarity")
	assert.NotContains(t, depth1, "hydration", "concept itself is excluded")

	depth2 := g.RelatedWithinDepth("hydration", 2)
	assert.Greater(t, len(depth2), len(depth1))
	assert.Contains(t, depth2, "sleep", "reachable backward through energy")

	assert.Empty(t, g.RelatedWithinDepth("hydration", 0))
	assert.Empty(t, g.RelatedWithinDepth("unknown", 2))
}

func TestShortestPath(t *testing.T) {
	g := NewHealthGraph()

	path := g.ShortestPath("hydration", "heart_health")
	require.NotEmpty(t, path, "graph is connected via energy/exercise chains")
	assert.Equal(t, "hydration", path[0])
	assert.Equal(t, "heart_health", path[len(path)-1])

	// Every consecutive pair must share an edge in some direction.
	for i := 0; i+1 < len(path); i++ {
		from, to := path[i], path[i+1]
		assert.True(t,
			contains(g.Successors(from), to) || contains(g.Predecessors(from), to),
			"path step %s -> %s is not an edge", from, to)
	}
}

func TestShortestPath_EdgeCases(t *testing.T) {
	g := NewHealthGraph()

	assert.Empty(t, g.ShortestPath("hydration", "unknown_node"))
	assert.Empty(t, g.ShortestPath("unknown_node", "hydration"))
	assert.Equal(t, []string{"sleep"}, g.ShortestPath("sleep", "sleep"))
}

func TestDisconnectedGraph(t *testing.T) {
	g, err := New([]string{"a", "b", "c"}, []Edge{{"a", "b"}})
	require.NoError(t, err)

	assert.Empty(t, g.ShortestPath("a", "c"))
	assert.Empty(t, g.RelatedWithinDepth("c", 3))
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}
