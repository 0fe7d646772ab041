// Package dijkstra provides Dijkstra's single-source shortest-path algorithm on
// core.Graph values with non-negative float64 weights, plus exact enumeration of
// every shortest path.
//
// Overview:
//
//   - Dijkstra computes minimum-cost distances from one source to all vertices in
//     O((V + E) log V) time using a min-heap with lazy decrease-key.
//   - Unreachable vertices get +Inf; that is a value, not an error.
//   - WithReturnPath records, for every vertex, all predecessors that reach it at the
//     minimum cost (within Tolerance). PathTo follows one of them; AllPathsTo
//     enumerates all of them.
//
// Key features:
//
//   - Functional options allow fine-tuning behavior without changing the API signature.
//   - MaxDistance: stops exploration beyond a specified distance.
//   - InfEdgeThreshold: treats any edge with weight ≥ threshold as impassable.
//     The default (+Inf) makes +Inf-weight edges impassable and everything else usable.
//   - Tolerance: absolute slack for "equal length" when collecting tied predecessors.
//   - MaxPaths: upper bound on AllPathsTo, since ties can multiply paths quickly.
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph, ErrVertexNotFound: invalid inputs to Dijkstra.
//   - ErrNoPathData: PathTo/AllPathsTo on a result computed without WithReturnPath.
//   - ErrBadMaxDistance, ErrBadInfThreshold, ErrBadTolerance, ErrBadMaxPaths:
//     raised (via panic) by the option constructors on invalid arguments.
//
// API reference:
//
//	func Dijkstra[K comparable](g *core.Graph[K], source K, opts ...Option) (*Result[K], error)
//	func (r *Result[K]) PathTo(target K) ([]K, error)
//	func (r *Result[K]) AllPathsTo(target K) ([][]K, error)
//	func ShortestPath[K comparable](g *core.Graph[K], source, target K, opts ...Option) ([]K, float64, error)
//	func AllShortestPaths[K comparable](g *core.Graph[K], source, target K, opts ...Option) ([][]K, float64, error)
//
// Thread safety:
//
//   - Dijkstra only reads the graph through core.Graph's locked accessors; concurrent
//     runs on the same graph are safe as long as nobody mutates it meanwhile.
package dijkstra
