// Package tonality computes modulation distances between musical keys.
//
// Distances are minimum total weights over the graph built by
// modulation.BuildGraph. Because every rule is defined by relative intervals,
// the distance between two keys depends only on the interval between their
// tonics and on the two modes. The whole 168×168 relation therefore fits in a
// Tensor indexed by (interval.Diatonic, interval.Chromatic, Class), filled by
// two single-source runs from C major and C minor.
//
// Entry points:
//
//	ComputeDistanceTensor / QueryDistance   tensor-backed distances
//	ShortestPathLength / ShortestPath       direct single-pair queries
//	AllShortestPaths                        every tied minimum path, labeled per hop
//	FindShortestPaths                       the same, with the shared distance and a truncation flag
//	DistancesFrom                           one row per target key
//	Neighborhood                            keys within N modulation steps
//	DistanceMatrix / VerifyInvariance       Floyd–Warshall cross-check
//	Calculator                              cached, concurrency-safe front end
//
// Unreachable pairs are not errors: distances are +Inf and path sets are empty.
// Only invalid weights (NaN or negative) fail, with modulation.ErrInvalidWeight.
package tonality
