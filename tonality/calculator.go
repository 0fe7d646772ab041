// File: calculator.go
// Role: concurrency-safe cache of modulation graphs and distance tensors per weight set.
// Concurrency:
//   - entries is guarded by mu; concurrent misses for equal weights share one
//     build through singleflight.
//   - Cached graphs are never handed out; Graph returns a clone.
// AI-HINT (file):
//   - modulation.Weights is comparable and is the map key directly.
//   - The singleflight key is Weights.String(), which round-trips every float.

package tonality

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/tonality/core"
	"github.com/katalvlaran/tonality/modulation"
	"github.com/katalvlaran/tonality/pitch"
)

// Calculator answers distance and path queries, building each weight set's
// graph and tensor once.
type Calculator struct {
	mu      sync.RWMutex
	entries map[modulation.Weights]*entry
	group   singleflight.Group

	logger   *slog.Logger
	metrics  *calculatorMetrics
	maxPaths int
}

type entry struct {
	graph  *core.Graph[pitch.Key]
	tensor *Tensor
}

// CalculatorOption configures a Calculator.
type CalculatorOption func(*Calculator)

// WithLogger sets the structured logger. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) CalculatorOption {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRegisterer registers the Calculator's metrics with reg.
// Without it the metrics are collected but not registered.
func WithRegisterer(reg prometheus.Registerer) CalculatorOption {
	return func(c *Calculator) { c.metrics = newCalculatorMetrics(reg) }
}

// WithPathLimit sets the default bound used by Paths. Zero means unbounded.
// Panics on negative n.
func WithPathLimit(n int) CalculatorOption {
	if n < 0 {
		panic("tonality: path limit must be non-negative")
	}

	return func(c *Calculator) { c.maxPaths = n }
}

// NewCalculator returns an empty Calculator.
func NewCalculator(opts ...CalculatorOption) *Calculator {
	c := &Calculator{
		entries:  make(map[modulation.Weights]*entry),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxPaths: DefaultMaxPaths,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = newCalculatorMetrics(nil)
	}

	return c
}

// load returns the cached entry for w, building it on a miss.
func (c *Calculator) load(w modulation.Weights) (*entry, error) {
	c.mu.RLock()
	e, ok := c.entries[w]
	c.mu.RUnlock()
	if ok {
		c.metrics.cacheHits.Inc()

		return e, nil
	}
	c.metrics.cacheMisses.Inc()

	v, err, shared := c.group.Do(w.String(), func() (any, error) {
		// Another caller may have finished the build while we waited for the lock.
		c.mu.RLock()
		e, ok := c.entries[w]
		c.mu.RUnlock()
		if ok {
			return e, nil
		}

		start := time.Now()
		g, err := modulation.BuildGraph(w)
		if err != nil {
			c.metrics.buildErrors.Inc()

			return nil, err
		}
		t, err := tensorFromGraph(g)
		if err != nil {
			c.metrics.buildErrors.Inc()

			return nil, err
		}
		e = &entry{graph: g, tensor: t}
		elapsed := time.Since(start)

		c.mu.Lock()
		c.entries[w] = e
		size := len(c.entries)
		c.mu.Unlock()

		c.metrics.builds.Inc()
		c.metrics.buildDuration.Observe(elapsed.Seconds())
		c.metrics.cacheSize.Set(float64(size))
		c.logger.Debug("built modulation tensor",
			slog.String("weights", w.String()),
			slog.Duration("elapsed", elapsed),
			slog.Int("cached", size))

		return e, nil
	})
	if err != nil {
		c.logger.Warn("tensor build failed", slog.String("weights", w.String()), slog.Any("error", err))

		return nil, err
	}
	if shared {
		c.metrics.sharedBuilds.Inc()
	}

	return v.(*entry), nil
}

// Tensor returns the distance tensor for w. The result must not be modified.
func (c *Calculator) Tensor(w modulation.Weights) (*Tensor, error) {
	e, err := c.load(w)
	if err != nil {
		return nil, err
	}

	return e.tensor, nil
}

// Graph returns a private copy of the modulation graph for w.
func (c *Calculator) Graph(w modulation.Weights) (*core.Graph[pitch.Key], error) {
	e, err := c.load(w)
	if err != nil {
		return nil, err
	}

	return e.graph.Clone(), nil
}

// Distance returns the minimum modulation distance from a to b (+Inf if none).
func (c *Calculator) Distance(a, b pitch.Key, w modulation.Weights) (float64, error) {
	e, err := c.load(w)
	if err != nil {
		return 0, err
	}

	return e.tensor.Lookup(a, b), nil
}

// Paths returns every minimum-cost path from a to b. The Calculator's path
// limit applies unless opts override it.
func (c *Calculator) Paths(a, b pitch.Key, w modulation.Weights, opts ...PathOption) (PathSet, error) {
	e, err := c.load(w)
	if err != nil {
		return PathSet{}, err
	}
	all := append([]PathOption{WithMaxPaths(c.maxPaths)}, opts...)

	return FindShortestPaths(e.graph, a, b, all...), nil
}

// Table returns the distance and one shortest path from a to every key.
func (c *Calculator) Table(a pitch.Key, w modulation.Weights) ([]KeyDistance, error) {
	e, err := c.load(w)
	if err != nil {
		return nil, err
	}

	return distancesFromGraph(e.graph, a)
}

// Neighborhood returns the keys within maxSteps modulations of a (0 = no
// limit), fewest steps first. The walk stops early when ctx is cancelled.
func (c *Calculator) Neighborhood(ctx context.Context, a pitch.Key, w modulation.Weights, maxSteps int) ([]Step, error) {
	e, err := c.load(w)
	if err != nil {
		return nil, err
	}

	return neighborhoodFromGraph(ctx, e.graph, a, maxSteps)
}

// Len returns the number of cached weight sets.
func (c *Calculator) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Reset drops every cached entry.
func (c *Calculator) Reset() {
	c.mu.Lock()
	c.entries = make(map[modulation.Weights]*entry)
	c.mu.Unlock()
	c.metrics.cacheSize.Set(0)
}
