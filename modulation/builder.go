// SPDX-License-Identifier: MIT
// Package: tonality/modulation
//
// builder.go - the modulation graph over all 168 keys.
//
// Design contract:
//   - One orchestrator: BuildGraph(w). Adds every key first (pitch.AllKeys order),
//     then applies the rule table to each key in the same order.
//   - Determinism: equal weights ⇒ identical vertex order, edge order and edge IDs.
//   - Overwrite policy: a repeated (source, target) insertion replaces weight and
//     label; core.Graph counts such overwrites.

package modulation

import (
	"fmt"

	"github.com/katalvlaran/tonality/core"
	"github.com/katalvlaran/tonality/pitch"
)

// Rule emits the edges of one class for one source key.
// Rules add edges in a fixed order and return core errors unchanged.
type Rule struct {
	Kind  Kind
	Apply func(g *core.Graph[pitch.Key], k pitch.Key, weight float64) error
}

// Rules returns the rule table in application order:
// Neighbor, Relative, Parallel, Enharmonic, Dominant.
func Rules() []Rule {
	return []Rule{
		{Kind: Neighbor, Apply: neighborRule},
		{Kind: Relative, Apply: relativeRule},
		{Kind: Parallel, Apply: parallelRule},
		{Kind: Enharmonic, Apply: enharmonicRule},
		{Kind: Dominant, Apply: dominantRule},
	}
}

// BuildGraph constructs the modulation graph for w.
//
// Errors:
//   - ErrInvalidWeight (wrapped) for NaN or negative weights. +Inf is valid.
//
// Complexity: O(K) for K = 168 keys; 1176 edges.
func BuildGraph(w Weights) (*core.Graph[pitch.Key], error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("BuildGraph: %w", err)
	}

	keys := pitch.AllKeys()
	g := core.NewGraph[pitch.Key](core.WithCapacity(len(keys)))
	for _, k := range keys {
		g.AddVertex(k)
	}

	rules := Rules()
	for _, k := range keys {
		for _, r := range rules {
			if err := r.Apply(g, k, w.Of(r.Kind)); err != nil {
				return nil, fmt.Errorf("BuildGraph: %s rule at %s: %w", r.Kind, k, err)
			}
		}
	}

	return g, nil
}

// MustBuildGraph is BuildGraph for weights known to be valid; it panics otherwise.
func MustBuildGraph(w Weights) *core.Graph[pitch.Key] {
	g, err := BuildGraph(w)
	if err != nil {
		panic(err)
	}

	return g
}

// pair inserts forward k→to and backward to→k with their labels.
func pair(g *core.Graph[pitch.Key], k, to pitch.Key, weight float64, fwd, back string) error {
	if _, err := g.AddEdge(k, to, weight, fwd); err != nil {
		return err
	}
	_, err := g.AddEdge(to, k, weight, back)

	return err
}

// neighborRule: a fifth up (d+4, c+7) in the same mode, both directions.
func neighborRule(g *core.Graph[pitch.Key], k pitch.Key, weight float64) error {
	return pair(g, k, k.Transpose(4, 7, k.Mode()), weight, LabelNeighborSharp, LabelNeighborFlat)
}

// relativeRule: minor key to the major key a minor third up (d+2, c+3).
func relativeRule(g *core.Graph[pitch.Key], k pitch.Key, weight float64) error {
	if k.Mode() != pitch.Minor {
		return nil
	}

	return pair(g, k, k.Transpose(2, 3, pitch.Major), weight, LabelRelativeMajor, LabelRelativeMinor)
}

// parallelRule: same tonic, other mode, forward only. The other mode's key
// inserts the reverse edge on its own turn.
func parallelRule(g *core.Graph[pitch.Key], k pitch.Key, weight float64) error {
	_, err := g.AddEdge(k, k.Parallel(), weight, LabelParallel)

	return err
}

// enharmonicRule: next letter, same semitone (d+1, c), both directions.
func enharmonicRule(g *core.Graph[pitch.Key], k pitch.Key, weight float64) error {
	return pair(g, k, k.Transpose(1, 0, k.Mode()), weight, LabelEnharmonic, LabelEnharmonic)
}

// dominantRule: minor key to the major key on its fifth (d+4, c+7).
func dominantRule(g *core.Graph[pitch.Key], k pitch.Key, weight float64) error {
	if k.Mode() != pitch.Minor {
		return nil
	}

	return pair(g, k, k.Transpose(4, 7, pitch.Major), weight, LabelDominantToV, LabelDominantToI)
}
