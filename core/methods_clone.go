// File: methods_clone.go
// Role: Cloning graph instances.
// Determinism:
//   - Clone carries over the edge ID counter, vertex order and edge order.
// Concurrency:
//   - Read lock on the source for the snapshot; the clone is fresh and unshared.

package core

// Clone returns a deep copy: configuration, vertices, edges, overwrite count.
//
// Complexity: O(V + E).
func (g *Graph[K]) Clone() *Graph[K] {
	g.mu.RLock()
	defer g.mu.RUnlock()

	opts := []GraphOption{WithCapacity(len(g.order))}
	if g.allowLoops {
		opts = append(opts, WithLoops())
	}
	clone := NewGraph[K](opts...)
	clone.edgeSeq = g.edgeSeq
	clone.overwrites = g.overwrites

	for _, v := range g.order {
		clone.addVertexLocked(v)
	}
	for _, e := range g.edges {
		cp := *e
		inner := clone.pair[cp.From]
		if inner == nil {
			inner = make(map[K]*Edge[K])
			clone.pair[cp.From] = inner
		}
		inner[cp.To] = &cp
		clone.out[cp.From] = append(clone.out[cp.From], &cp)
		clone.edges = append(clone.edges, &cp)
	}

	return clone
}
