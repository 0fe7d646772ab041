// File: paths.go
// Role: path reconstruction from a Result: one shortest path (PathTo) or every
//       shortest path (AllPathsTo), plus one-call helpers over a graph.
// Determinism:
//   - PathTo follows the first recorded predecessor of each vertex.
//   - AllPathsTo enumerates depth-first over predecessor lists in discovery order.
// AI-HINT (file):
//   - Unreachable targets return (nil, nil), never an error.
//   - Enumeration is bounded by Options.MaxPaths; tied weights can yield
//     exponentially many paths.

package dijkstra

import (
	"fmt"
	"math"

	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/katalvlaran/tonality/core"
)

// Reachable reports whether target has a finite distance.
func (r *Result[K]) Reachable(target K) bool {
	d, ok := r.Dist[target]

	return ok && !math.IsInf(d, 1)
}

// PathTo returns one shortest path Source → target (inclusive), or nil if target
// is unreachable.
//
// Errors:
//   - ErrNoPathData: the run was made without WithReturnPath.
//   - ErrVertexNotFound: target is not a graph vertex.
//
// Complexity: O(path length).
func (r *Result[K]) PathTo(target K) ([]K, error) {
	if err := r.checkTarget(target); err != nil {
		return nil, err
	}
	if !r.Reachable(target) {
		return nil, nil
	}

	// Walk first predecessors back to the source. Every vertex on the walk was
	// finalized before its successor, so the walk terminates.
	path := []K{target}
	for v := target; v != r.Source; {
		v = r.Preds[v][0]
		path = append(path, v)
	}
	reverse(path)

	return path, nil
}

// AllPathsTo returns every shortest path Source → target, each inclusive of both
// endpoints, up to Options.MaxPaths paths (0 = all). Unreachable ⇒ (nil, nil).
//
// Implementation:
//   - Stage 1: push target on a stack of frames (vertex, next predecessor index).
//   - Stage 2: expand the top frame's next predecessor; a frame at Source yields the
//     stack contents (top to bottom = Source to target) as one path.
//   - Stage 3: pop exhausted frames. Vertices already on the stack are skipped, so
//     zero-weight cycles cannot loop forever.
//
// Complexity: O(P * L) for P paths of length L.
func (r *Result[K]) AllPathsTo(target K) ([][]K, error) {
	if err := r.checkTarget(target); err != nil {
		return nil, err
	}
	if !r.Reachable(target) {
		return nil, nil
	}

	limit := r.options.MaxPaths
	var paths [][]K

	stack := arraystack.New()
	onStack := map[K]bool{target: true}
	stack.Push(&pathFrame[K]{vertex: target})

	for !stack.Empty() {
		top, _ := stack.Peek()
		f := top.(*pathFrame[K])

		if f.vertex == r.Source {
			paths = append(paths, framesToPath[K](stack.Values()))
			if limit > 0 && len(paths) >= limit {
				break
			}
			stack.Pop()
			delete(onStack, f.vertex)
			continue
		}

		preds := r.Preds[f.vertex]
		if f.next < len(preds) {
			p := preds[f.next]
			f.next++
			if onStack[p] {
				continue
			}
			onStack[p] = true
			stack.Push(&pathFrame[K]{vertex: p})
			continue
		}

		stack.Pop()
		delete(onStack, f.vertex)
	}

	return paths, nil
}

// pathFrame is one level of the AllPathsTo depth-first search.
type pathFrame[K comparable] struct {
	vertex K
	next   int
}

// framesToPath converts stack values (LIFO: top first) into a Source → target path.
func framesToPath[K comparable](values []interface{}) []K {
	path := make([]K, len(values))
	for i, v := range values {
		path[i] = v.(*pathFrame[K]).vertex
	}

	return path
}

func (r *Result[K]) checkTarget(target K) error {
	if r.Preds == nil {
		return ErrNoPathData
	}
	if _, ok := r.Dist[target]; !ok {
		return fmt.Errorf("%w: target %v", ErrVertexNotFound, target)
	}

	return nil
}

// ShortestPath runs Dijkstra from source and returns one shortest path to target
// together with its length. Unreachable ⇒ (nil, +Inf, nil).
func ShortestPath[K comparable](g *core.Graph[K], source, target K, opts ...Option) ([]K, float64, error) {
	res, err := Dijkstra(g, source, withPath(opts)...)
	if err != nil {
		return nil, 0, err
	}
	path, err := res.PathTo(target)
	if err != nil {
		return nil, 0, err
	}

	return path, res.Dist[target], nil
}

// AllShortestPaths runs Dijkstra from source and returns every shortest path to
// target (bounded by WithMaxPaths) together with their common length.
// Unreachable ⇒ (nil, +Inf, nil).
func AllShortestPaths[K comparable](g *core.Graph[K], source, target K, opts ...Option) ([][]K, float64, error) {
	res, err := Dijkstra(g, source, withPath(opts)...)
	if err != nil {
		return nil, 0, err
	}
	paths, err := res.AllPathsTo(target)
	if err != nil {
		return nil, 0, err
	}

	return paths, res.Dist[target], nil
}

func reverse[K any](s []K) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// withPath appends WithReturnPath without touching the caller's slice.
func withPath(opts []Option) []Option {
	out := make([]Option, 0, len(opts)+1)

	return append(append(out, opts...), WithReturnPath())
}
