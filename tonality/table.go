package tonality

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tonality/core"
	"github.com/katalvlaran/tonality/dijkstra"
	"github.com/katalvlaran/tonality/modulation"
	"github.com/katalvlaran/tonality/pitch"
)

// KeyDistance is one row of a distance table: a target key, its distance from
// the origin and one shortest path (nil when unreachable).
type KeyDistance struct {
	Key      pitch.Key
	Distance float64
	Path     []pitch.Key
}

// Reachable reports whether the distance is finite.
func (kd KeyDistance) Reachable() bool { return !math.IsInf(kd.Distance, 1) }

// DistancesFrom returns the distance and one shortest path from a to each of
// the 168 keys, in pitch.AllKeys order.
func DistancesFrom(a pitch.Key, w modulation.Weights) ([]KeyDistance, error) {
	g, err := modulation.BuildGraph(w)
	if err != nil {
		return nil, fmt.Errorf("tonality: distances from %s: %w", a, err)
	}

	return distancesFromGraph(g, a)
}

func distancesFromGraph(g *core.Graph[pitch.Key], a pitch.Key) ([]KeyDistance, error) {
	res, err := dijkstra.Dijkstra(g, a, dijkstra.WithReturnPath())
	if err != nil {
		return nil, fmt.Errorf("tonality: distances from %s: %w", a, err)
	}

	keys := pitch.AllKeys()
	rows := make([]KeyDistance, len(keys))
	for i, k := range keys {
		path, err := res.PathTo(k)
		if err != nil {
			return nil, fmt.Errorf("tonality: path %s -> %s: %w", a, k, err)
		}
		rows[i] = KeyDistance{Key: k, Distance: res.Dist[k], Path: path}
	}

	return rows, nil
}
