// Package core defines the central Graph and Edge types.
//
// This file declares Edge, Graph, GraphOption, sentinel errors, and the
// NewGraph constructor.
//
// Errors:
//
//	ErrVertexNotFound  - requested vertex does not exist.
//	ErrEdgeNotFound    - requested edge does not exist.
//	ErrBadWeight       - NaN or negative weight.
//	ErrLoopNotAllowed  - self-loop when loops are disabled.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrBadWeight indicates a NaN or negative edge weight.
	ErrBadWeight = errors.New("core: bad edge weight")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")
)

// Edge is a directed, weighted, labeled connection From → To.
//
// Edges handed out by Graph methods are copies; mutating them does not change
// the graph.
type Edge[K comparable] struct {
	// ID uniquely identifies this edge in the Graph ("e1", "e2", ...).
	// An overwrite keeps the original ID.
	ID string

	// From is the source vertex.
	From K

	// To is the destination vertex.
	To K

	// Weight is the traversal cost; +Inf means impassable.
	Weight float64

	// Label is free-form text describing the relation.
	Label string
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(cfg *graphConfig)

// graphConfig is resolved from GraphOption values; it carries no type parameter so
// options can be passed without instantiating the graph's vertex type.
type graphConfig struct {
	allowLoops bool
	capacity   int
}

// WithLoops permits self-loops (edges from a vertex to itself).
func WithLoops() GraphOption {
	return func(cfg *graphConfig) { cfg.allowLoops = true }
}

// WithCapacity pre-sizes vertex storage. Non-positive values are ignored.
func WithCapacity(n int) GraphOption {
	return func(cfg *graphConfig) {
		if n > 0 {
			cfg.capacity = n
		}
	}
}

// Graph is the core in-memory directed graph.
//
// mu guards every field below it. edgeSeq is only touched under the write lock.
type Graph[K comparable] struct {
	mu sync.RWMutex

	allowLoops bool

	edgeSeq    uint64
	overwrites int // count of AddEdge calls that replaced an existing (from,to) edge

	// Vertex catalog in insertion order plus a reverse index.
	order []K
	index map[K]int

	// out[v] lists v's outgoing edges in insertion order.
	out map[K][]*Edge[K]

	// pair[from][to] is the single edge for the ordered pair.
	pair map[K]map[K]*Edge[K]

	// edges is the global catalog in insertion order.
	edges []*Edge[K]
}

// NewGraph creates an empty directed Graph with the given options.
// By default self-loops are rejected.
// Complexity: O(capacity)
func NewGraph[K comparable](opts ...GraphOption) *Graph[K] {
	var cfg graphConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Graph[K]{
		allowLoops: cfg.allowLoops,
		order:      make([]K, 0, cfg.capacity),
		index:      make(map[K]int, cfg.capacity),
		out:        make(map[K][]*Edge[K], cfg.capacity),
		pair:       make(map[K]map[K]*Edge[K], cfg.capacity),
	}
}

// Looped reports whether self-loops are permitted.
func (g *Graph[K]) Looped() bool { return g.allowLoops }
