// Package ontology provides an immutable directed graph over a closed
// vocabulary of health concepts linked by "influences" edges. The graph
// is built once at process start and is safe for unlimited concurrent
// readers; queries on absent concepts return empty results, never errors.
package ontology

import "fmt"

// Edge is a directed "influences" relation: From affects To.
type Edge struct {
	From string
	To   string
}

// Graph is a directed concept graph. Adjacency lists preserve edge
// insertion order, which callers rely on for deterministic output.
type Graph struct {
	nodes        map[string]struct{}
	successors   map[string][]string
	predecessors map[string][]string
	undirected   map[string][]string
	nodeCount    int
	edgeCount    int
}

// New builds a Graph from the given concepts and edges. Edges referencing
// concepts outside the vocabulary are rejected.
func New(concepts []string, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes:        make(map[string]struct{}, len(concepts)),
		successors:   make(map[string][]string, len(concepts)),
		predecessors: make(map[string][]string, len(concepts)),
		undirected:   make(map[string][]string, len(concepts)),
	}

	for _, c := range concepts {
		if c == "" {
			return nil, fmt.Errorf("concept name cannot be empty")
		}
		if _, exists := g.nodes[c]; exists {
			return nil, fmt.Errorf("duplicate concept: %s", c)
		}
		g.nodes[c] = struct{}{}
	}
	g.nodeCount = len(g.nodes)

	for _, e := range edges {
		if _, ok := g.nodes[e.From]; !ok {
			return nil, fmt.Errorf("edge references unknown concept: %s", e.From)
		}
		if _, ok := g.nodes[e.To]; !ok {
			return nil, fmt.Errorf("edge references unknown concept: %s", e.To)
		}
		g.successors[e.From] = append(g.successors[e.From], e.To)
		g.predecessors[e.To] = append(g.predecessors[e.To], e.From)
		g.undirected[e.From] = append(g.undirected[e.From], e.To)
		g.undirected[e.To] = append(g.undirected[e.To], e.From)
		g.edgeCount++
	}

	return g, nil
}

// NodeCount returns the number of concepts in the graph.
func (g *Graph) NodeCount() int {
	return g.nodeCount
}

// EdgeCount returns the number of directed influence edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Contains reports whether the concept is part of the vocabulary.
func (g *Graph) Contains(concept string) bool {
	_, ok := g.nodes[concept]
	return ok
}

// Successors returns the concepts directly influenced by the given
// concept, in edge insertion order. Absent concepts yield an empty list.
func (g *Graph) Successors(concept string) []string {
	return copyList(g.successors[concept])
}

// Predecessors returns the concepts that directly influence the given
// concept, in edge insertion order. Absent concepts yield an empty list.
func (g *Graph) Predecessors(concept string) []string {
	return copyList(g.predecessors[concept])
}

// RelatedWithinDepth returns the set of concepts reachable from the given
// concept within depth hops, treating edges as undirected. The concept
// itself is not included. Absent concepts yield an empty set.
func (g *Graph) RelatedWithinDepth(concept string, depth int) map[string]struct{} {
	related := make(map[string]struct{})
	if depth <= 0 {
		return related
	}
	if _, ok := g.nodes[concept]; !ok {
		return related
	}

	visited := map[string]struct{}{concept: {}}
	frontier := []string{concept}

	for hop := 0; hop < depth && len(frontier) > 0; hop++ {
		var next []string
		for _, node := range frontier {
			for _, neighbor := range g.undirected[node] {
				if _, seen := visited[neighbor]; seen {
					continue
				}
				visited[neighbor] = struct{}{}
				related[neighbor] = struct{}{}
				next = append(next, neighbor)
			}
		}
		frontier = next
	}

	return related
}

// ShortestPath returns a shortest path between source and target on the
// undirected version of the graph, including both endpoints. It returns
// an empty path when either endpoint is absent or no path exists.
func (g *Graph) ShortestPath(source, target string) []string {
	if _, ok := g.nodes[source]; !ok {
		return nil
	}
	if _, ok := g.nodes[target]; !ok {
		return nil
	}
	if source == target {
		return []string{source}
	}

	// BFS from source, recording each node's parent for path reconstruction.
	parent := map[string]string{source: ""}
	frontier := []string{source}

	for len(frontier) > 0 {
		var next []string
		for _, node := range frontier {
			for _, neighbor := range g.undirected[node] {
				if _, seen := parent[neighbor]; seen {
					continue
				}
				parent[neighbor] = node
				if neighbor == target {
					return reconstructPath(parent, source, target)
				}
				next = append(next, neighbor)
			}
		}
		frontier = next
	}

	return nil
}

func reconstructPath(parent map[string]string, source, target string) []string {
	var reversed []string
	for node := target; node != ""; node = parent[node] {
		reversed = append(reversed, node)
		if node == source {
			break
		}
	}

	path := make([]string, len(reversed))
	for i, node := range reversed {
		path[len(reversed)-1-i] = node
	}
	return path
}

func copyList(src []string) []string {
	if len(src) == 0 {
		return []string{}
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
