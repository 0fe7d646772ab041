// File: paths.go
// Role: direct shortest-path queries over a modulation graph, with per-hop labels.
// Determinism:
//   - ShortestPath follows the first-discovered predecessor of each key.
//   - AllShortestPaths lists paths in predecessor discovery order.
// AI-HINT (file):
//   - Unreachable targets, a nil graph or keys missing from the graph yield
//     +Inf / nil / empty; these helpers never fail.

package tonality

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/tonality/core"
	"github.com/katalvlaran/tonality/dijkstra"
	"github.com/katalvlaran/tonality/modulation"
	"github.com/katalvlaran/tonality/pitch"
)

// DefaultMaxPaths bounds AllShortestPaths unless WithMaxPaths says otherwise.
const DefaultMaxPaths = 256

// Hop is one modulation step of a path.
type Hop struct {
	From   pitch.Key       `json:"from"`
	To     pitch.Key       `json:"to"`
	Kind   modulation.Kind `json:"-"`
	Label  string          `json:"label"`
	Weight float64         `json:"weight"`
}

// String renders "C -> a : Relative minor (distance : 0.7)".
func (h Hop) String() string {
	return fmt.Sprintf("%s -> %s : %s (distance : %g)", h.From, h.To, h.Label, h.Weight)
}

// Path is a minimum-cost modulation path. Keys includes both endpoints;
// Hops has len(Keys)-1 entries; Total is the minimum distance between the
// endpoints, equal for every path of one query.
type Path struct {
	Keys  []pitch.Key `json:"keys"`
	Hops  []Hop       `json:"hops"`
	Total float64     `json:"total"`
}

// String renders one hop per line. A zero-hop path renders its single key.
func (p Path) String() string {
	if len(p.Hops) == 0 {
		if len(p.Keys) == 1 {
			return p.Keys[0].String()
		}

		return ""
	}
	lines := make([]string, len(p.Hops))
	for i, h := range p.Hops {
		lines[i] = h.String()
	}

	return strings.Join(lines, "\n")
}

// PathOption configures AllShortestPaths.
type PathOption func(*pathConfig)

type pathConfig struct {
	maxPaths  int
	tolerance float64
}

func defaultPathConfig() pathConfig {
	return pathConfig{maxPaths: DefaultMaxPaths, tolerance: dijkstra.DefaultTolerance}
}

// WithMaxPaths bounds the number of returned paths. Zero means unbounded.
// Panics on negative n.
func WithMaxPaths(n int) PathOption {
	if n < 0 {
		panic(dijkstra.ErrBadMaxPaths.Error())
	}

	return func(c *pathConfig) { c.maxPaths = n }
}

// WithTolerance sets the absolute slack under which two path lengths tie.
// Panics on negative or NaN eps.
func WithTolerance(eps float64) PathOption {
	if eps < 0 || math.IsNaN(eps) {
		panic(dijkstra.ErrBadTolerance.Error())
	}

	return func(c *pathConfig) { c.tolerance = eps }
}

// ShortestPathLength returns the minimum total weight from a to b, +Inf if none.
func ShortestPathLength(g *core.Graph[pitch.Key], a, b pitch.Key) float64 {
	res, err := dijkstra.Dijkstra(g, a)
	if err != nil {
		return math.Inf(1)
	}
	d, ok := res.Dist[b]
	if !ok {
		return math.Inf(1)
	}

	return d
}

// ShortestPath returns one minimum-cost key sequence from a to b (inclusive),
// or nil when b is unreachable.
func ShortestPath(g *core.Graph[pitch.Key], a, b pitch.Key) []pitch.Key {
	path, _, err := dijkstra.ShortestPath(g, a, b)
	if err != nil {
		return nil
	}

	return path
}

// PathSet is the result of FindShortestPaths. Distance is the common total of
// every path (+Inf when the target is unreachable). Truncated reports that
// more minimum-cost paths exist than the WithMaxPaths bound let through.
type PathSet struct {
	Distance  float64
	Paths     []Path
	Truncated bool
}

// AllShortestPaths returns every minimum-cost path from a to b, up to the
// WithMaxPaths bound (default DefaultMaxPaths). Empty when b is unreachable.
func AllShortestPaths(g *core.Graph[pitch.Key], a, b pitch.Key, opts ...PathOption) []Path {
	return FindShortestPaths(g, a, b, opts...).Paths
}

// FindShortestPaths is AllShortestPaths that also reports the shared distance
// and whether the bound cut the enumeration short. Every path's Total is the
// Dijkstra distance itself, so all totals in one set are identical.
func FindShortestPaths(g *core.Graph[pitch.Key], a, b pitch.Key, opts ...PathOption) PathSet {
	cfg := defaultPathConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	// One extra path tells a full result apart from a cut one.
	limit := cfg.maxPaths
	if limit > 0 {
		limit++
	}
	seqs, dist, err := dijkstra.AllShortestPaths(g, a, b,
		dijkstra.WithMaxPaths(limit),
		dijkstra.WithTolerance(cfg.tolerance),
	)
	if err != nil || len(seqs) == 0 {
		return PathSet{Distance: math.Inf(1)}
	}

	set := PathSet{Distance: dist}
	if cfg.maxPaths > 0 && len(seqs) > cfg.maxPaths {
		seqs = seqs[:cfg.maxPaths]
		set.Truncated = true
	}
	set.Paths = make([]Path, 0, len(seqs))
	for _, seq := range seqs {
		p, err := annotate(g, seq, dist)
		if err != nil {
			continue
		}
		set.Paths = append(set.Paths, p)
	}

	return set
}

// annotate attaches edge labels and weights to a key sequence of length total.
func annotate(g *core.Graph[pitch.Key], seq []pitch.Key, total float64) (Path, error) {
	p := Path{Keys: seq, Hops: make([]Hop, 0, len(seq)-1), Total: total}
	for i := 0; i+1 < len(seq); i++ {
		e, err := g.Edge(seq[i], seq[i+1])
		if err != nil {
			return Path{}, err
		}
		kind, _ := modulation.KindOfLabel(e.Label)
		p.Hops = append(p.Hops, Hop{From: e.From, To: e.To, Kind: kind, Label: e.Label, Weight: e.Weight})
	}

	return p, nil
}
