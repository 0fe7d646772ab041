// Package dijkstra implements Dijkstra's shortest-path algorithm on core.Graph.
//
// Dijkstra computes the minimum-cost path from a single source vertex to all
// other reachable vertices in a graph with non-negative edge weights.
// It processes vertices in order of increasing distance using a min-heap priority queue,
// relaxing edges and updating distances accordingly.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E); predecessor lists add O(E) in the worst case (many ties).
//
// Notes on implementation choices:
//
//   - core.Graph rejects negative and NaN weights at insertion, so no pre-scan is needed.
//   - We treat any edge with weight ≥ InfEdgeThreshold as an impassable “wall”.
//     The default threshold is +Inf, which makes +Inf-weight edges walls.
//   - We use a “lazy” decrease-key strategy: pushing duplicates into the heap and ignoring stale entries.
//   - Equal-distance heap entries pop in push order, so runs are reproducible.
//   - With ReturnPath, every predecessor whose candidate distance ties the final
//     distance (within Tolerance) is recorded, in relaxation order.
package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/tonality/core"
)

// Result holds the output of one Dijkstra run.
type Result[K comparable] struct {
	// Source is the start vertex.
	Source K

	// Dist maps every vertex of the graph to its distance from Source (+Inf if unreachable).
	Dist map[K]float64

	// Preds maps each reached vertex (other than Source) to all predecessors on
	// some shortest path, in discovery order. Nil unless WithReturnPath was set.
	Preds map[K][]K

	options Options
}

// Dijkstra computes shortest distances from source to all vertices of g.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. g must contain source (ErrVertexNotFound).
//
// Returns:
//
//   - *Result: distances for every vertex, and predecessors if WithReturnPath.
//   - err:     ErrNilGraph or ErrVertexNotFound (wrapped).
//
// Unreachable vertices are not an error: their distance is +Inf.
func Dijkstra[K comparable](g *core.Graph[K], source K, opts ...Option) (*Result[K], error) {
	// 1) Build Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate graph
	if g == nil {
		return nil, ErrNilGraph
	}

	// 3) Validate source
	if !g.HasVertex(source) {
		return nil, fmt.Errorf("%w: source %v", ErrVertexNotFound, source)
	}

	// 4) Prepare data structures.
	vertices := g.Vertices()
	r := &runner[K]{
		g:       g,
		options: cfg,
		source:  source,
		dist:    make(map[K]float64, len(vertices)),
		visited: make(map[K]bool, len(vertices)),
		pq:      make(nodePQ[K], 0, len(vertices)),
	}
	if cfg.ReturnPath {
		r.preds = make(map[K][]K, len(vertices))
	}

	// 5) Run.
	r.init(vertices)
	if err := r.process(); err != nil {
		return nil, err
	}

	return &Result[K]{Source: source, Dist: r.dist, Preds: r.preds, options: cfg}, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner[K comparable] struct {
	g       *core.Graph[K]
	options Options
	source  K
	dist    map[K]float64
	preds   map[K][]K
	visited map[K]bool
	pq      nodePQ[K]
	seq     uint64 // push counter for FIFO order among equal distances
}

// init sets dist[v] = +Inf for all v, dist[source] = 0, and seeds the heap.
func (r *runner[K]) init(vertices []K) {
	for _, v := range vertices {
		r.dist[v] = math.Inf(1)
	}
	r.dist[r.source] = 0
	heap.Init(&r.pq)
	r.push(r.source, 0)
}

func (r *runner[K]) push(v K, d float64) {
	heap.Push(&r.pq, &nodeItem[K]{id: v, dist: d, seq: r.seq})
	r.seq++
}

// process is the core loop: extract the closest unvisited vertex, then relax its edges.
//
// Loop termination conditions:
//
//   - The heap becomes empty (all reachable vertices processed).
//   - The minimum distance in the heap exceeds MaxDistance.
func (r *runner[K]) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem[K])
		u := item.id

		// Skip stale heap entries.
		if r.visited[u] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[u] = true

		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// relax examines each edge leaving u and improves distances to its targets.
// Assumes r.dist[u] is finalized before calling relax(u).
//
// Relaxation rule for candidate c = dist[u] + w against the current dist[v]:
//   - c < dist[v] - Tolerance: strict improvement; dist[v] = c, preds[v] = [u], push.
//   - |c - dist[v]| ≤ Tolerance: tie; append u to preds[v] (no push).
//   - otherwise: ignore.
func (r *runner[K]) relax(u K) error {
	edges, err := r.g.Neighbors(u)
	if err != nil {
		return fmt.Errorf("dijkstra: failed to get neighbors of %v: %w", u, err)
	}

	du := r.dist[u]
	tol := r.options.Tolerance
	for _, e := range edges {
		v := e.To
		w := e.Weight

		// Impassable edge.
		if w >= r.options.InfEdgeThreshold {
			continue
		}

		cand := du + w
		if cand > r.options.MaxDistance {
			continue
		}

		dv := r.dist[v]
		switch {
		case cand < dv-tol:
			r.dist[v] = cand
			if r.preds != nil {
				r.preds[v] = append(r.preds[v][:0], u)
			}
			r.push(v, cand)
		case cand <= dv+tol:
			// The source never gets predecessors, even through zero-weight cycles.
			if r.preds != nil && v != r.source && !containsVertex(r.preds[v], u) {
				r.preds[v] = append(r.preds[v], u)
			}
		}
	}

	return nil
}

func containsVertex[K comparable](list []K, v K) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}

	return false
}

// nodeItem represents a vertex and its tentative distance from the source.
type nodeItem[K comparable] struct {
	id   K
	dist float64
	seq  uint64
}

// nodePQ is a min-heap of *nodeItem ordered by (dist, seq) ascending.
// Stale entries stay in the heap and are skipped when popped (visited check).
type nodePQ[K comparable] []*nodeItem[K]

// Len returns the number of items in the heap.
func (pq nodePQ[K]) Len() int { return len(pq) }

// Less orders by distance, then by push order.
func (pq nodePQ[K]) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq nodePQ[K]) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ[K]) Push(x any) { *pq = append(*pq, x.(*nodeItem[K])) }

// Pop removes and returns the last element (heap.Pop has already swapped the minimum there).
func (pq *nodePQ[K]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
