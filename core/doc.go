// Package core provides a small, thread-safe, in-memory directed graph with
// float64 edge weights and textual edge labels, generic over any comparable
// vertex type.
//
// The Graph G = (V,E) has these behaviors:
//
//   - Directed edges only; a relation that holds both ways is two edges.
//   - At most one edge per ordered (from, to) pair. Inserting an edge for a pair
//     that already has one OVERWRITES its weight and label in place (the edge keeps
//     its ID and its position in iteration order). Weights are never merged or summed.
//   - Weights are non-negative float64 values; +Inf is legal and means "present but
//     impassable". NaN and negative weights are rejected with ErrBadWeight.
//   - Self-loops are rejected unless the graph is created WithLoops().
//   - Deterministic iteration: Vertices(), Edges() and Neighbors() follow insertion order.
//   - A single sync.RWMutex guards all storage, so a built graph can be shared by
//     any number of concurrent readers.
//
// Why insertion order rather than sorted order?
//
//	Vertices are arbitrary comparable values with no natural ordering. Callers that
//	add vertices in a canonical order (for example ascending index) get that order back,
//	and shortest-path tie-breaking downstream stays reproducible run to run.
//
// Configuration Options (GraphOption):
//
//	– WithLoops()
//	    Permits self-loops (from == to); otherwise AddEdge(v,v) → ErrLoopNotAllowed.
//
//	– WithCapacity(n)
//	    Pre-sizes vertex storage for n vertices.
//
// Errors:
//
//	ErrVertexNotFound - requested vertex does not exist.
//	ErrEdgeNotFound   - requested edge does not exist.
//	ErrBadWeight      - NaN or negative weight.
//	ErrLoopNotAllowed - self-loop when loops are disabled.
//
// Quick example:
//
//	g := core.NewGraph[string]()
//	_, _ = g.AddEdge("A", "B", 1.5, "road")
//	_, _ = g.AddEdge("A", "B", 0.5, "rail") // overwrites: weight 0.5, label "rail"
//	e, _ := g.Edge("A", "B")
//	fmt.Println(e.Weight, e.Label, g.Overwrites()) // 0.5 rail 1
package core
