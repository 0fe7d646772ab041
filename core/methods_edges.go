// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveEdge/HasEdge/Edge/Edges/EdgeCount.
// Determinism:
//   - Edges() returns edges in first-insertion order; an overwrite keeps the slot.
//   - nextEdgeID() is monotonic and stable ("e" + decimal).
// Concurrency:
//   - Mutations under mu write lock.
//   - Read queries under mu read lock.
// AI-HINT (file):
//   - A second AddEdge(from,to,...) replaces weight AND label of the existing edge.
//   - +Inf weights are stored; algorithms decide whether to traverse them.

package core

import (
	"fmt"
	"math"
	"strconv"
)

// edgeIDPrefix is a private textual prefix for edge identifiers.
const edgeIDPrefix = 'e'

// AddEdge inserts the directed edge from → to, or overwrites the existing edge
// for that ordered pair. It returns the edge ID.
//
// Steps:
//  1. Validate weight (NaN or < 0 ⇒ ErrBadWeight) and loops.
//  2. Lock mu; ensure both endpoints exist (from first, then to).
//  3. If pair[from][to] exists: replace Weight and Label, count the overwrite, return its ID.
//  4. Otherwise allocate an ID, append to the catalog and to out[from].
//
// Complexity: O(1) amortized.
func (g *Graph[K]) AddEdge(from, to K, weight float64, label string) (string, error) {
	// 1) Input validation
	if math.IsNaN(weight) || weight < 0 {
		return "", fmt.Errorf("%w: %v→%v weight=%g", ErrBadWeight, from, to, weight)
	}
	if from == to && !g.allowLoops {
		return "", ErrLoopNotAllowed
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// 2) Ensure vertices exist
	g.addVertexLocked(from)
	g.addVertexLocked(to)

	// 3) Overwrite policy: last insertion wins, nothing is merged.
	inner := g.pair[from]
	if inner == nil {
		inner = make(map[K]*Edge[K])
		g.pair[from] = inner
	}
	if e, ok := inner[to]; ok {
		e.Weight = weight
		e.Label = label
		g.overwrites++

		return e.ID, nil
	}

	// 4) Fresh edge
	e := &Edge[K]{ID: g.nextEdgeID(), From: from, To: to, Weight: weight, Label: label}
	inner[to] = e
	g.out[from] = append(g.out[from], e)
	g.edges = append(g.edges, e)

	return e.ID, nil
}

// RemoveEdge deletes the edge from → to.
//
// Errors:
//   - ErrEdgeNotFound: if no such edge exists.
//
// Complexity: O(deg(from) + E) for slice compaction.
func (g *Graph[K]) RemoveEdge(from, to K) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.pair[from][to]
	if !ok {
		return ErrEdgeNotFound
	}
	delete(g.pair[from], to)
	g.out[from] = removeEdgePtr(g.out[from], e)
	g.edges = removeEdgePtr(g.edges, e)

	return nil
}

// HasEdge reports whether an edge from → to exists.
func (g *Graph[K]) HasEdge(from, to K) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.pair[from][to]

	return ok
}

// Edge returns a copy of the edge from → to.
//
// Errors:
//   - ErrEdgeNotFound: if no such edge exists.
func (g *Graph[K]) Edge(from, to K) (Edge[K], error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.pair[from][to]
	if !ok {
		return Edge[K]{}, ErrEdgeNotFound
	}

	return *e, nil
}

// Edges returns copies of all edges in first-insertion order.
// Complexity: O(E).
func (g *Graph[K]) Edges() []Edge[K] {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return copyEdges(g.edges)
}

// EdgeCount returns |E|.
func (g *Graph[K]) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// Overwrites returns how many AddEdge calls replaced an existing edge.
func (g *Graph[K]) Overwrites() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.overwrites
}

// nextEdgeID returns "e<N>"; caller holds the write lock.
func (g *Graph[K]) nextEdgeID() string {
	g.edgeSeq++
	buf := make([]byte, 0, 8)
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, g.edgeSeq, 10)

	return string(buf)
}

func removeEdgePtr[K comparable](list []*Edge[K], target *Edge[K]) []*Edge[K] {
	for i, e := range list {
		if e == target {
			return append(list[:i], list[i+1:]...)
		}
	}

	return list
}

func copyEdges[K comparable](list []*Edge[K]) []Edge[K] {
	out := make([]Edge[K], len(list))
	for i, e := range list {
		out[i] = *e
	}

	return out
}
