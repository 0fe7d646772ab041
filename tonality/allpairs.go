// File: allpairs.go
// Role: independent all-pairs check of the tensor via Floyd–Warshall.
// AI-HINT (file):
//   - Matrix rows/cols use pitch.Key.Index, i.e. pitch.AllKeys order.
//   - +Inf weights stay +Inf in the seed matrix, so disabled classes are walls here too.

package tonality

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/tonality/core"
	"github.com/katalvlaran/tonality/matrix"
	"github.com/katalvlaran/tonality/modulation"
	"github.com/katalvlaran/tonality/pitch"
)

// ErrInvarianceViolated reports a pair whose all-pairs distance differs from
// the tensor entry for its interval and transition class.
var ErrInvarianceViolated = errors.New("tonality: translation invariance violated")

// invarianceTolerance is the absolute slack when comparing the two computations.
const invarianceTolerance = 1e-9

// DistanceMatrix returns the 168×168 all-pairs distance matrix under w.
// Entry (i, j) is the distance from KeyFromIndex(i) to KeyFromIndex(j).
func DistanceMatrix(w modulation.Weights) (*matrix.Dense, error) {
	g, err := modulation.BuildGraph(w)
	if err != nil {
		return nil, fmt.Errorf("tonality: distance matrix: %w", err)
	}

	return matrixFromGraph(g)
}

func matrixFromGraph(g *core.Graph[pitch.Key]) (*matrix.Dense, error) {
	d, err := matrix.NewDistance(pitch.KeyCount)
	if err != nil {
		return nil, err
	}
	for _, e := range g.Edges() {
		i, j := e.From.Index(), e.To.Index()
		cur, err := d.At(i, j)
		if err != nil {
			return nil, err
		}
		if e.Weight < cur {
			if err = d.Set(i, j, e.Weight); err != nil {
				return nil, err
			}
		}
	}
	if err = matrix.FloydWarshall(d); err != nil {
		return nil, fmt.Errorf("tonality: distance matrix: %w", err)
	}

	return d, nil
}

// VerifyInvariance checks every one of the 168×168 pairs: the Floyd–Warshall
// distance must equal the tensor lookup. The first mismatch is reported as
// ErrInvarianceViolated with both values.
func VerifyInvariance(w modulation.Weights) error {
	g, err := modulation.BuildGraph(w)
	if err != nil {
		return fmt.Errorf("tonality: verify: %w", err)
	}
	t, err := tensorFromGraph(g)
	if err != nil {
		return err
	}
	d, err := matrixFromGraph(g)
	if err != nil {
		return err
	}

	return compareAllPairs(t, d)
}

func compareAllPairs(t *Tensor, d *matrix.Dense) error {
	keys := pitch.AllKeys()
	for _, a := range keys {
		row, err := d.Row(a.Index())
		if err != nil {
			return err
		}
		for _, b := range keys {
			want := t.Lookup(a, b)
			got := row[b.Index()]
			if !sameDistance(want, got) {
				return fmt.Errorf("%w: %s -> %s tensor=%g all-pairs=%g", ErrInvarianceViolated, a, b, want, got)
			}
		}
	}

	return nil
}

func sameDistance(a, b float64) bool {
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return math.IsInf(a, 1) && math.IsInf(b, 1)
	}

	return math.Abs(a-b) <= invarianceTolerance
}
