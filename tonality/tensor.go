// File: tensor.go
// Role: the 7×12×4 distance tensor and its construction from two Dijkstra runs.
// Determinism:
//   - Fill order is pitch.AllKeys order; values depend only on the weights.
// AI-HINT (file):
//   - Translation invariance: the distance from key a to key b depends only on
//     Between(a, b) and the two modes, so runs from C major and C minor cover
//     all 168×168 pairs.

package tonality

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tonality/core"
	"github.com/katalvlaran/tonality/dijkstra"
	"github.com/katalvlaran/tonality/modulation"
	"github.com/katalvlaran/tonality/pitch"
)

// Tensor holds minimum modulation distances indexed by
// [interval.Diatonic][interval.Chromatic][Class]. Unreachable entries are +Inf.
type Tensor [pitch.DiatonicSteps][pitch.ChromaticSteps][ClassCount]float64

// Origins of the two single-source runs.
var (
	cMajor = pitch.NewKey(0, 0, pitch.Major)
	cMinor = pitch.NewKey(0, 0, pitch.Minor)
)

// ComputeDistanceTensor builds the modulation graph for w and fills the tensor.
//
// Errors:
//   - modulation.ErrInvalidWeight (wrapped) for NaN or negative weights.
//
// Complexity: two Dijkstra runs over 168 vertices and 1176 edges.
func ComputeDistanceTensor(w modulation.Weights) (*Tensor, error) {
	g, err := modulation.BuildGraph(w)
	if err != nil {
		return nil, fmt.Errorf("tonality: distance tensor: %w", err)
	}

	return tensorFromGraph(g)
}

// tensorFromGraph fills the tensor from a graph whose vertices are all 168 keys.
func tensorFromGraph(g *core.Graph[pitch.Key]) (*Tensor, error) {
	var t Tensor
	for _, origin := range []pitch.Key{cMajor, cMinor} {
		res, err := dijkstra.Dijkstra(g, origin)
		if err != nil {
			return nil, fmt.Errorf("tonality: distance tensor from %s: %w", origin, err)
		}
		for _, k := range pitch.AllKeys() {
			d, ok := res.Dist[k]
			if !ok {
				d = math.Inf(1)
			}
			iv := pitch.Between(origin.Pitch(), k.Pitch())
			t[iv.Diatonic][iv.Chromatic][Transition(origin.Mode(), k.Mode())] = d
		}
	}

	return &t, nil
}

// At returns the entry for an interval and a transition class.
func (t *Tensor) At(iv pitch.Interval, c Class) float64 {
	return t[iv.Diatonic][iv.Chromatic][c]
}

// Lookup returns the distance from key a to key b.
func (t *Tensor) Lookup(a, b pitch.Key) float64 {
	return t.At(pitch.Between(a.Pitch(), b.Pitch()), Transition(a.Mode(), b.Mode()))
}

// QueryDistance returns the minimum modulation distance from a to b under w,
// read from a freshly computed tensor. Unreachable pairs yield +Inf, not an error.
// Use a Calculator to reuse tensors across queries.
func QueryDistance(a, b pitch.Key, w modulation.Weights) (float64, error) {
	t, err := ComputeDistanceTensor(w)
	if err != nil {
		return 0, err
	}

	return t.Lookup(a, b), nil
}
