// File: methods_adjacent.go
// Role: Neighborhood APIs (Neighbors, NeighborIDs, Predecessors).
// Determinism:
//   - Neighbors() follows the insertion order of out[v].
//   - Predecessors() follows the global edge catalog order.
// Concurrency:
//   - Read operations hold mu read lock.

package core

// Neighbors returns copies of all edges leaving v, in insertion order.
//
// Errors:
//   - ErrVertexNotFound: if v does not exist.
//
// Complexity:
//   - Time O(d), Space O(d), where d = out-degree of v.
//
// AI-Hints:
//   - Use Neighbors(v) for deterministic iteration in algorithms.
func (g *Graph[K]) Neighbors(v K) ([]Edge[K], error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.index[v]; !ok {
		return nil, ErrVertexNotFound
	}

	return copyEdges(g.out[v]), nil
}

// NeighborIDs returns the distinct targets of v's outgoing edges in insertion order.
func (g *Graph[K]) NeighborIDs(v K) ([]K, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.index[v]; !ok {
		return nil, ErrVertexNotFound
	}
	out := make([]K, 0, len(g.out[v]))
	for _, e := range g.out[v] {
		out = append(out, e.To)
	}

	return out, nil
}

// Predecessors returns copies of all edges entering v.
// Complexity: O(E); the graph keeps no reverse adjacency.
func (g *Graph[K]) Predecessors(v K) ([]Edge[K], error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.index[v]; !ok {
		return nil, ErrVertexNotFound
	}
	var in []Edge[K]
	for _, e := range g.edges {
		if e.To == v {
			in = append(in, *e)
		}
	}

	return in, nil
}
