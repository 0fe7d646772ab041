package tonality_test

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/tonality/modulation"
	"github.com/katalvlaran/tonality/tonality"
)

type CalculatorSuite struct {
	suite.Suite
	reg  *prometheus.Registry
	calc *tonality.Calculator
}

func (s *CalculatorSuite) SetupTest() {
	s.reg = prometheus.NewRegistry()
	s.calc = tonality.NewCalculator(tonality.WithRegisterer(s.reg), tonality.WithPathLimit(16))
}

func (s *CalculatorSuite) counter(name string) float64 {
	mfs, err := s.reg.Gather()
	s.Require().NoError(err)
	for _, mf := range mfs {
		if mf.GetName() == name {
			if c := mf.GetMetric()[0].GetCounter(); c != nil {
				return c.GetValue()
			}
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}

	return 0
}

func (s *CalculatorSuite) TestCachesPerWeights() {
	w := modulation.DefaultWeights()

	d, err := s.calc.Distance(k("C"), k("a"), w)
	s.Require().NoError(err)
	s.InDelta(0.7, d, eps)

	_, err = s.calc.Distance(k("C"), k("G"), w)
	s.Require().NoError(err)
	s.Equal(1, s.calc.Len())
	s.Equal(1.0, s.counter("tonality_tensor_builds_total"))
	s.Equal(1.0, s.counter("tonality_cache_hits_total"))
	s.Equal(1.0, s.counter("tonality_cache_misses_total"))

	_, err = s.calc.Tensor(w.Disable(modulation.Parallel))
	s.Require().NoError(err)
	s.Equal(2, s.calc.Len())
	s.Equal(2.0, s.counter("tonality_cache_entries"))

	s.calc.Reset()
	s.Equal(0, s.calc.Len())
}

func (s *CalculatorSuite) TestConcurrentMissBuildsOnce() {
	w := modulation.DefaultWeights().With(modulation.Neighbor, 0.9)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.calc.Distance(k("C"), k("e"), w)
			assert.NoError(s.T(), err)
		}()
	}
	wg.Wait()

	s.Equal(1.0, s.counter("tonality_tensor_builds_total"))
	s.Equal(1, s.calc.Len())
}

func (s *CalculatorSuite) TestInvalidWeights() {
	_, err := s.calc.Distance(k("C"), k("a"), modulation.Weights{Relative: -2})
	s.Require().ErrorIs(err, modulation.ErrInvalidWeight)
	s.Equal(0, s.calc.Len())
	s.Equal(1.0, s.counter("tonality_tensor_build_errors_total"))
}

func (s *CalculatorSuite) TestGraphIsPrivateCopy() {
	w := modulation.DefaultWeights()
	g, err := s.calc.Graph(w)
	s.Require().NoError(err)
	s.Require().NoError(g.RemoveEdge(k("C"), k("a")))

	again, err := s.calc.Graph(w)
	s.Require().NoError(err)
	s.True(again.HasEdge(k("C"), k("a")))

	d, _ := s.calc.Distance(k("C"), k("a"), w)
	s.InDelta(0.7, d, eps)
}

func (s *CalculatorSuite) TestPathsAndTable() {
	w := modulation.Weights{Neighbor: 1, Relative: 1, Parallel: 1, Enharmonic: 1, Dominant: 1}

	set, err := s.calc.Paths(k("C"), k("e"), w)
	s.Require().NoError(err)
	s.Len(set.Paths, 2)
	s.False(set.Truncated)
	d, err := s.calc.Distance(k("C"), k("e"), w)
	s.Require().NoError(err)
	s.Equal(d, set.Distance)

	set, err = s.calc.Paths(k("C"), k("e"), w, tonality.WithMaxPaths(1))
	s.Require().NoError(err)
	s.Len(set.Paths, 1)
	s.True(set.Truncated)

	rows, err := s.calc.Table(k("C"), w)
	s.Require().NoError(err)
	s.Len(rows, 168)

	hood, err := s.calc.Neighborhood(context.Background(), k("C"), w, 2)
	s.Require().NoError(err)
	direct, err := tonality.Neighborhood(k("C"), w, 2)
	s.Require().NoError(err)
	s.Equal(direct, hood)
	s.Equal(2, hood[len(hood)-1].Steps)
	s.Equal(1, s.calc.Len())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.calc.Neighborhood(ctx, k("C"), w, 0)
	s.ErrorIs(err, context.Canceled)
}

func TestCalculatorSuite(t *testing.T) {
	suite.Run(t, new(CalculatorSuite))
}

func TestCalculator_Unregistered(t *testing.T) {
	// Two calculators without a registerer must not collide.
	a := tonality.NewCalculator()
	b := tonality.NewCalculator(tonality.WithLogger(nil))

	da, err := a.Distance(k("C"), k("c"), modulation.DefaultWeights())
	require.NoError(t, err)
	db, err := b.Distance(k("C"), k("c"), modulation.DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, da, db)

	require.Panics(t, func() { tonality.WithPathLimit(-1) })
}

func TestCalculator_RegistryLint(t *testing.T) {
	reg := prometheus.NewRegistry()
	tonality.NewCalculator(tonality.WithRegisterer(reg))
	problems, err := testutil.GatherAndLint(reg)
	require.NoError(t, err)
	assert.Empty(t, problems)
}
