// Package bfs provides breadth-first search over a core.Graph, returning
// unweighted step counts, parent links and visit order.
//
// What
//
//   - Explore vertices in non-decreasing edge count from a start vertex.
//   - Returns a Result containing:
//   - Order: visit sequence
//   - Depth: vertex → edges from start
//   - Parent: vertex → predecessor in the BFS tree
//   - Edges heavier than MaxWeight are skipped; by default only +Inf
//     (impassable) edges are.
//   - Honors a MaxDepth limit (d > 0) or no limit (d == 0).
//
// Determinism
//
//	core.Graph.Neighbors returns edges in insertion order and BFS enqueues
//	targets in that order, so the visit sequence and the BFS tree are
//	reproducible for a given graph.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E)
//   - Memory: O(V) for the queue, Depth and Parent maps.
//
// Usage
//
//	res, err := bfs.BFS(g, start, bfs.WithMaxDepth(2))
//	if err != nil {
//		// ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation or ctx.Err()
//	}
//	for depth, layer := range res.Layers() {
//		fmt.Println(depth, layer)
//	}
package bfs
