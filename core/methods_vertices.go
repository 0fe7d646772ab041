// File: methods_vertices.go
// Role: Vertex lifecycle & queries.
//
// Determinism:
//   - Vertices() returns vertices in insertion order.
//
// Concurrency:
//   - Mutations under mu write lock; queries under mu read lock.
//
// AI-Hints (file):
//   - Add vertices in a canonical order before any AddEdge if you need a specific
//     Vertices() order; AddEdge auto-adds missing endpoints (from first, then to).
package core

// AddVertex inserts v if missing and reports whether it was added.
//
// Behavior highlights:
//   - Idempotent: adding an existing vertex is a no-op returning false.
//
// Complexity:
//   - Time O(1) amortized.
func (g *Graph[K]) AddVertex(v K) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.addVertexLocked(v)
}

// addVertexLocked registers v; caller holds the write lock.
func (g *Graph[K]) addVertexLocked(v K) bool {
	if _, ok := g.index[v]; ok {
		return false
	}
	g.index[v] = len(g.order)
	g.order = append(g.order, v)

	return true
}

// HasVertex reports whether v exists.
// Complexity: O(1).
func (g *Graph[K]) HasVertex(v K) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.index[v]

	return ok
}

// Index returns v's insertion position, usable as a dense row/column index.
func (g *Graph[K]) Index(v K) (int, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	i, ok := g.index[v]

	return i, ok
}

// Vertices returns a copy of the vertex list in insertion order.
// Complexity: O(V).
func (g *Graph[K]) Vertices() []K {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]K, len(g.order))
	copy(out, g.order)

	return out
}

// VertexCount returns |V|.
func (g *Graph[K]) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.order)
}

// OutDegree returns the number of edges leaving v.
//
// Errors:
//   - ErrVertexNotFound: if v does not exist.
func (g *Graph[K]) OutDegree(v K) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.index[v]; !ok {
		return 0, ErrVertexNotFound
	}

	return len(g.out[v]), nil
}
