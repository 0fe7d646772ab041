// Package dijkstra defines core types and configuration options
// for Dijkstra's shortest-path algorithm on core.Graph.
//
// Options:
//
//	– ReturnPath:       if true, record every tight predecessor for path reconstruction.
//	– MaxDistance:      optional cap on distances to explore; vertices beyond this stay +Inf.
//	– InfEdgeThreshold: edges with weight >= this threshold are treated as impassable.
//	– Tolerance:        absolute slack under which two path lengths count as equal.
//	– MaxPaths:         bound on AllPathsTo enumeration (0 = unbounded).
//
// Errors (sentinel):
//
//	– ErrNilGraph        if the provided graph pointer is nil.
//	– ErrVertexNotFound  if the source (or a queried target) does not exist.
//	– ErrNoPathData      if paths are requested from a run without ReturnPath.
//	– ErrBadMaxDistance  if MaxDistance < 0 or NaN.
//	– ErrBadInfThreshold if InfEdgeThreshold <= 0 or NaN.
//	– ErrBadTolerance    if Tolerance < 0 or NaN.
//	– ErrBadMaxPaths     if MaxPaths < 0.
//
// Example usage:
//
//	res, err := dijkstra.Dijkstra(g, "A", dijkstra.WithReturnPath())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	path, _ := res.PathTo("B")
//	fmt.Printf("Distance to B: %g via %v\n", res.Dist["B"], path)
package dijkstra

import (
	"errors"
	"math"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGraph indicates that a nil *core.Graph was passed to Dijkstra.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrVertexNotFound indicates that a vertex does not exist in the graph.
	ErrVertexNotFound = errors.New("dijkstra: vertex not found in graph")

	// ErrNoPathData indicates that paths were requested from a run that did not
	// record predecessors (WithReturnPath was not set).
	ErrNoPathData = errors.New("dijkstra: predecessors not recorded; use WithReturnPath")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrBadInfThreshold indicates that InfEdgeThreshold was set to zero or negative.
	ErrBadInfThreshold = errors.New("dijkstra: InfEdgeThreshold must be positive")

	// ErrBadTolerance indicates a negative tie tolerance.
	ErrBadTolerance = errors.New("dijkstra: Tolerance must be non-negative")

	// ErrBadMaxPaths indicates a negative path enumeration bound.
	ErrBadMaxPaths = errors.New("dijkstra: MaxPaths must be non-negative")
)

// DefaultTolerance is the absolute slack used to detect equal-length paths.
// Float sums of the same weights in different orders can differ in the last bits.
const DefaultTolerance = 1e-9

// Options configures the behavior of the Dijkstra algorithm.
//
// ReturnPath       – if true, record predecessors; otherwise Result.Preds is nil.
// MaxDistance      – optional cap on distances to explore. Must be ≥ 0. Default +Inf.
// InfEdgeThreshold – treat edges with weight ≥ this threshold as impassable.
//
//	Must be > 0. Default +Inf, so only +Inf-weight edges are impassable.
//
// Tolerance        – |a-b| ≤ Tolerance counts as a tie. Default DefaultTolerance.
// MaxPaths         – upper bound on AllPathsTo results. 0 means unbounded.
type Options struct {
	ReturnPath       bool
	MaxDistance      float64
	InfEdgeThreshold float64
	Tolerance        float64
	MaxPaths         int
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// WithReturnPath enables predecessor recording, required by PathTo and AllPathsTo.
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithMaxDistance sets a maximum distance threshold.
// Vertices whose shortest distance would exceed this value are not explored.
// Panics with ErrBadMaxDistance on negative or NaN input.
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		if max < 0 || math.IsNaN(max) {
			// Panic to signal invalid configuration early.
			panic(ErrBadMaxDistance.Error())
		}
		o.MaxDistance = max
	}
}

// WithInfEdgeThreshold defines a weight threshold at or above which edges are
// considered non-traversable.
// Panics with ErrBadInfThreshold on zero, negative or NaN input.
func WithInfEdgeThreshold(threshold float64) Option {
	return func(o *Options) {
		if threshold <= 0 || math.IsNaN(threshold) {
			panic(ErrBadInfThreshold.Error())
		}
		o.InfEdgeThreshold = threshold
	}
}

// WithTolerance sets the absolute tie tolerance. Zero means exact float equality.
// Panics with ErrBadTolerance on negative or NaN input.
func WithTolerance(eps float64) Option {
	return func(o *Options) {
		if eps < 0 || math.IsNaN(eps) {
			panic(ErrBadTolerance.Error())
		}
		o.Tolerance = eps
	}
}

// WithMaxPaths bounds how many paths AllPathsTo returns. Zero means unbounded.
// Panics with ErrBadMaxPaths on negative input.
func WithMaxPaths(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadMaxPaths.Error())
		}
		o.MaxPaths = n
	}
}

// DefaultOptions returns an Options struct initialized with defaults.
//
// Defaults:
//   - ReturnPath:       false.
//   - MaxDistance:      +Inf (explore all reachable).
//   - InfEdgeThreshold: +Inf (only +Inf-weight edges are impassable).
//   - Tolerance:        DefaultTolerance.
//   - MaxPaths:         0 (unbounded).
func DefaultOptions() Options {
	return Options{
		ReturnPath:       false,
		MaxDistance:      math.Inf(1),
		InfEdgeThreshold: math.Inf(1),
		Tolerance:        DefaultTolerance,
		MaxPaths:         0,
	}
}
