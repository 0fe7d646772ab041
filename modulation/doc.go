// SPDX-License-Identifier: MIT

// Package modulation builds the weighted, labeled directed graph of key
// modulations.
//
// Nodes are the 168 pitch.Key values. Edges come from five classes, each with
// one weight from Weights:
//
//	Neighbor    X ⇄ X+(4,7), same mode          "Neighbor (sharp)" / "Neighbor (flat)"
//	Relative    x → X+(2,3) major (minor only)  "Relative major" / "Relative minor"
//	Parallel    X → x                           "Parallel"
//	Enharmonic  X ⇄ X+(1,0), same mode          "Enharmonic"
//	Dominant    x → X+(4,7) major (minor only)  "Dominant minor (to V)" / "Dominant minor (to i)"
//
// A weight of +Inf keeps the edges in the graph but makes them impassable for
// the distance engine.
//
// Example:
//
//	g, err := modulation.BuildGraph(modulation.DefaultWeights())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(g.VertexCount(), g.EdgeCount()) // 168 1176
package modulation
