package bfs

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartVertexNotFound is returned when the start vertex is absent.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNoPath is returned by PathTo for a vertex the search never reached.
	ErrNoPath = errors.New("bfs: no path")
)

// Option configures BFS behavior via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when BFS runs.
type Option func(*Options)

// Options holds the resolved search parameters.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// MaxDepth, if > 0, stops exploring beyond this depth.
	// A value of 0 disables any depth limit.
	MaxDepth int

	// MaxWeight is the heaviest edge the search may follow. Edges with a
	// larger weight are treated as absent. The default follows every finite edge.
	MaxWeight float64

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with a background context, no depth limit
// and every finite edge passable.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		MaxDepth:  0,
		MaxWeight: math.MaxFloat64,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDepth stops the search at the given depth (inclusive).
//
//	d > 0: limit to depth d
//	d == 0: no depth limit
//	d < 0: ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithMaxWeight skips edges heavier than w. +Inf follows impassable edges too.
// Negative or NaN w is an ErrOptionViolation.
func WithMaxWeight(w float64) Option {
	return func(o *Options) {
		if math.IsNaN(w) || w < 0 {
			o.err = fmt.Errorf("%w: MaxWeight must be >= 0 (%g)", ErrOptionViolation, w)
			return
		}
		o.MaxWeight = w
	}
}

// Result holds the outcome of a BFS traversal:
//   - Order: vertices visited, in visit sequence.
//   - Depth: distance in edges from the start.
//   - Parent: predecessor in the BFS tree; the start has none.
type Result[K comparable] struct {
	Start  K
	Order  []K
	Depth  map[K]int
	Parent map[K]K
}

// Reached reports whether v was visited.
func (r *Result[K]) Reached(v K) bool {
	_, ok := r.Depth[v]

	return ok
}

// PathTo reconstructs the BFS-tree path from the start vertex to dest.
func (r *Result[K]) PathTo(dest K) ([]K, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("%w to %v", ErrNoPath, dest)
	}
	path := make([]K, 0, r.Depth[dest]+1)
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// Layers groups Order by depth: Layers()[d] lists the vertices at depth d
// in visit order.
func (r *Result[K]) Layers() [][]K {
	var layers [][]K
	for _, v := range r.Order {
		d := r.Depth[v]
		for len(layers) <= d {
			layers = append(layers, nil)
		}
		layers[d] = append(layers[d], v)
	}

	return layers
}
