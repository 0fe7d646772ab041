package tonality_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tonality/core"
	"github.com/katalvlaran/tonality/modulation"
	"github.com/katalvlaran/tonality/pitch"
	"github.com/katalvlaran/tonality/tonality"
)

const eps = 1e-9

func k(s string) pitch.Key { return pitch.MustParseKey(s) }

// bellmanFord is an independent single-source reference over the same graph.
func bellmanFord(g *core.Graph[pitch.Key], src pitch.Key) map[pitch.Key]float64 {
	dist := make(map[pitch.Key]float64, g.VertexCount())
	for _, v := range g.Vertices() {
		dist[v] = math.Inf(1)
	}
	dist[src] = 0
	edges := g.Edges()
	for i := 1; i < g.VertexCount(); i++ {
		changed := false
		for _, e := range edges {
			if math.IsInf(e.Weight, 1) || math.IsInf(dist[e.From], 1) {
				continue
			}
			if c := dist[e.From] + e.Weight; c < dist[e.To]-eps {
				dist[e.To] = c
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return dist
}

func requireSameDistance(t *testing.T, want, got float64, msgAndArgs ...any) {
	t.Helper()
	if math.IsInf(want, 1) {
		require.True(t, math.IsInf(got, 1), msgAndArgs...)
		return
	}
	require.InDelta(t, want, got, eps, msgAndArgs...)
}

func TestTransition(t *testing.T) {
	assert.Equal(t, tonality.MajorToMajor, tonality.Transition(pitch.Major, pitch.Major))
	assert.Equal(t, tonality.MajorToMinor, tonality.Transition(pitch.Major, pitch.Minor))
	assert.Equal(t, tonality.MinorToMajor, tonality.Transition(pitch.Minor, pitch.Major))
	assert.Equal(t, tonality.MinorToMinor, tonality.Transition(pitch.Minor, pitch.Minor))
	assert.Equal(t, pitch.Minor, tonality.MinorToMajor.From())
	assert.Equal(t, pitch.Major, tonality.MinorToMajor.To())
	assert.Equal(t, "major→minor", tonality.MajorToMinor.String())
}

func TestConcreteScenario(t *testing.T) {
	tensor, err := tonality.ComputeDistanceTensor(modulation.DefaultWeights())
	require.NoError(t, err)

	cases := []struct {
		to   string
		want float64
	}{
		{"C", 0},
		{"a", 0.7},
		{"c", 1.3},
		{"G", 1},
		{"F", 1},
		{"B#", 0.01},
		{"Dbb", 0.01},
		{"Ebbbb", 0.02},
		{"E", 1.9}, // C → a → E: relative minor, then dominant to V
	}
	for _, tc := range cases {
		got := tensor.Lookup(k("C"), k(tc.to))
		assert.InDelta(t, tc.want, got, eps, "C -> %s", tc.to)
	}

	// C# has no closed form here; cross-check it against Bellman–Ford.
	g := modulation.MustBuildGraph(modulation.DefaultWeights())
	ref := bellmanFord(g, k("C"))
	requireSameDistance(t, ref[k("C#")], tensor.Lookup(k("C"), k("C#")), "C -> C#")
}

func TestTranslationInvariance(t *testing.T) {
	w := modulation.DefaultWeights().With(modulation.Parallel, 0.9).With(modulation.Dominant, 2)
	g := modulation.MustBuildGraph(w)
	tensor, err := tonality.ComputeDistanceTensor(w)
	require.NoError(t, err)

	for _, a := range pitch.AllKeys() {
		ref := bellmanFord(g, a)
		for _, b := range pitch.AllKeys() {
			requireSameDistance(t, ref[b], tensor.Lookup(a, b), "%s -> %s", a, b)
		}
	}
}

func TestTensorMatchesDirectQuery(t *testing.T) {
	w := modulation.DefaultWeights()
	g := modulation.MustBuildGraph(w)
	tensor, err := tonality.ComputeDistanceTensor(w)
	require.NoError(t, err)

	pairs := [][2]string{{"C", "a"}, {"eb", "F#"}, {"G##", "bbb"}, {"d", "d"}, {"Fb", "c#"}}
	for _, p := range pairs {
		a, b := k(p[0]), k(p[1])
		direct := tonality.ShortestPathLength(g, a, b)
		requireSameDistance(t, direct, tensor.Lookup(a, b), "%s -> %s", a, b)

		q, err := tonality.QueryDistance(a, b, w)
		require.NoError(t, err)
		requireSameDistance(t, direct, q)
	}
}

func TestSymmetryUnderDefaults(t *testing.T) {
	tensor, err := tonality.ComputeDistanceTensor(modulation.DefaultWeights())
	require.NoError(t, err)
	for _, a := range pitch.AllKeys() {
		for _, b := range pitch.AllKeys() {
			requireSameDistance(t, tensor.Lookup(a, b), tensor.Lookup(b, a), "%s <-> %s", a, b)
		}
	}
}

func TestTensor_At(t *testing.T) {
	tensor, err := tonality.ComputeDistanceTensor(modulation.DefaultWeights())
	require.NoError(t, err)

	// A minor is (5, 9) above C; from C major that is the major→minor slot.
	assert.InDelta(t, 0.7, tensor.At(pitch.Interval{Diatonic: 5, Chromatic: 9}, tonality.MajorToMinor), eps)
	assert.Equal(t, 0.0, tensor.At(pitch.Interval{}, tonality.MajorToMajor))
	assert.Equal(t, 0.0, tensor.At(pitch.Interval{}, tonality.MinorToMinor))
	assert.InDelta(t, 1.3, tensor.At(pitch.Interval{}, tonality.MinorToMajor), eps)
}

func TestDisabledClasses(t *testing.T) {
	t.Run("neighbor off reroutes", func(t *testing.T) {
		w := modulation.DefaultWeights().Disable(modulation.Neighbor)
		d, err := tonality.QueryDistance(k("C"), k("G"), w)
		require.NoError(t, err)
		assert.False(t, math.IsInf(d, 1))
		assert.Greater(t, d, 1.0)

		g := modulation.MustBuildGraph(w)
		for _, p := range tonality.AllShortestPaths(g, k("C"), k("G")) {
			for _, h := range p.Hops {
				assert.NotEqual(t, modulation.Neighbor, h.Kind, p.String())
			}
		}
	})

	t.Run("everything off", func(t *testing.T) {
		w := modulation.DefaultWeights().Disable(modulation.AllKinds()...)
		tensor, err := tonality.ComputeDistanceTensor(w)
		require.NoError(t, err)
		assert.True(t, math.IsInf(tensor.Lookup(k("C"), k("G")), 1))
		assert.Equal(t, 0.0, tensor.Lookup(k("C"), k("C")))

		g := modulation.MustBuildGraph(w)
		assert.Nil(t, tonality.ShortestPath(g, k("C"), k("G")))
		assert.Empty(t, tonality.AllShortestPaths(g, k("C"), k("G")))
		assert.True(t, math.IsInf(tonality.ShortestPathLength(g, k("C"), k("G")), 1))
	})

	t.Run("only enharmonic", func(t *testing.T) {
		w := modulation.Weights{Enharmonic: 0.01}.Disable(
			modulation.Neighbor, modulation.Relative, modulation.Parallel, modulation.Dominant)
		tensor, err := tonality.ComputeDistanceTensor(w)
		require.NoError(t, err)
		assert.InDelta(t, 0.01, tensor.Lookup(k("C"), k("Dbb")), eps)
		assert.True(t, math.IsInf(tensor.Lookup(k("C"), k("a")), 1))
	})
}

func TestInvalidWeights(t *testing.T) {
	w := modulation.DefaultWeights().With(modulation.Relative, -1)
	_, err := tonality.ComputeDistanceTensor(w)
	require.ErrorIs(t, err, modulation.ErrInvalidWeight)
	_, err = tonality.QueryDistance(k("C"), k("a"), w)
	require.ErrorIs(t, err, modulation.ErrInvalidWeight)
	_, err = tonality.DistancesFrom(k("C"), w)
	require.ErrorIs(t, err, modulation.ErrInvalidWeight)
	_, err = tonality.DistanceMatrix(w)
	require.ErrorIs(t, err, modulation.ErrInvalidWeight)
	require.ErrorIs(t, tonality.VerifyInvariance(w), modulation.ErrInvalidWeight)
}

func TestVerifyInvariance(t *testing.T) {
	for _, w := range []modulation.Weights{
		modulation.DefaultWeights(),
		modulation.DefaultWeights().Disable(modulation.Neighbor, modulation.Relative),
		{Neighbor: 1, Relative: 1, Parallel: 1, Enharmonic: 1, Dominant: 1},
		{},
	} {
		require.NoError(t, tonality.VerifyInvariance(w), w.String())
	}
}

func TestDistanceMatrix(t *testing.T) {
	w := modulation.DefaultWeights()
	d, err := tonality.DistanceMatrix(w)
	require.NoError(t, err)
	require.Equal(t, pitch.KeyCount, d.Rows())

	tensor, _ := tonality.ComputeDistanceTensor(w)
	for _, pair := range [][2]string{{"C", "a"}, {"f#", "Gb"}, {"Ab", "g#"}} {
		a, b := k(pair[0]), k(pair[1])
		v, err := d.At(a.Index(), b.Index())
		require.NoError(t, err)
		requireSameDistance(t, tensor.Lookup(a, b), v, "%s -> %s", a, b)
	}
}

func TestDistancesFrom(t *testing.T) {
	rows, err := tonality.DistancesFrom(k("C"), modulation.DefaultWeights())
	require.NoError(t, err)
	require.Len(t, rows, pitch.KeyCount)

	byKey := map[pitch.Key]tonality.KeyDistance{}
	for i, r := range rows {
		assert.Equal(t, i, r.Key.Index(), "rows follow pitch.AllKeys order")
		byKey[r.Key] = r
	}
	assert.Equal(t, []pitch.Key{k("C")}, byKey[k("C")].Path)
	assert.Equal(t, []pitch.Key{k("C"), k("a")}, byKey[k("a")].Path)
	assert.InDelta(t, 0.7, byKey[k("a")].Distance, eps)
	assert.True(t, byKey[k("a")].Reachable())

	off, err := tonality.DistancesFrom(k("C"), modulation.DefaultWeights().Disable(modulation.AllKinds()...))
	require.NoError(t, err)
	assert.False(t, off[k("G").Index()].Reachable())
	assert.Nil(t, off[k("G").Index()].Path)
}
