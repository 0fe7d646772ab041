package tonality

import (
	"context"
	"fmt"

	"github.com/katalvlaran/tonality/bfs"
	"github.com/katalvlaran/tonality/core"
	"github.com/katalvlaran/tonality/modulation"
	"github.com/katalvlaran/tonality/pitch"
)

// Step is a key together with the fewest modulations needed to reach it,
// regardless of their weights. Via is one such chain, both ends included.
type Step struct {
	Key   pitch.Key
	Steps int
	Via   []pitch.Key
}

// Neighborhood lists the keys reachable from a within maxSteps modulations
// (0 = no limit), ordered by step count and then by discovery order. Disabled
// classes are not followed. The first entry is a itself at 0 steps.
func Neighborhood(a pitch.Key, w modulation.Weights, maxSteps int) ([]Step, error) {
	g, err := modulation.BuildGraph(w)
	if err != nil {
		return nil, fmt.Errorf("tonality: neighborhood of %s: %w", a, err)
	}

	return neighborhoodFromGraph(context.Background(), g, a, maxSteps)
}

// neighborhoodFromGraph walks g breadth-first one layer per step count.
// A cancelled ctx aborts the walk with ctx.Err().
func neighborhoodFromGraph(ctx context.Context, g *core.Graph[pitch.Key], a pitch.Key, maxSteps int) ([]Step, error) {
	res, err := bfs.BFS(g, a, bfs.WithContext(ctx), bfs.WithMaxDepth(maxSteps))
	if err != nil {
		return nil, fmt.Errorf("tonality: neighborhood of %s: %w", a, err)
	}

	steps := make([]Step, 0, len(res.Order))
	for depth, layer := range res.Layers() {
		for _, k := range layer {
			via, err := res.PathTo(k)
			if err != nil {
				return nil, fmt.Errorf("tonality: neighborhood of %s: %w", a, err)
			}
			steps = append(steps, Step{Key: k, Steps: depth, Via: via})
		}
	}

	return steps, nil
}
