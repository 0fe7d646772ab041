package server

import (
	"math"

	"github.com/katalvlaran/tonality/pitch"
	"github.com/katalvlaran/tonality/tonality"
)

// =============================================================================
// Requests
// =============================================================================

// WeightsQuery carries per-request weight overrides. Absent fields keep the
// server's base weights; "inf" or a listed class in Disable turns a class off.
type WeightsQuery struct {
	Neighbor   *float64 `form:"neighbor" binding:"omitempty,gte=0"`
	Relative   *float64 `form:"relative" binding:"omitempty,gte=0"`
	Parallel   *float64 `form:"parallel" binding:"omitempty,gte=0"`
	Enharmonic *float64 `form:"enharmonic" binding:"omitempty,gte=0"`
	Dominant   *float64 `form:"dominant" binding:"omitempty,gte=0"`
	Disable    string   `form:"disable"`
}

// DistanceRequest is the query of GET /v1/distance.
type DistanceRequest struct {
	WeightsQuery
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// PathsRequest is the query of GET /v1/paths.
type PathsRequest struct {
	WeightsQuery
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
	Max  *int   `form:"max" binding:"omitempty,gte=0,lte=100000"`
}

// TableRequest is the query of GET /v1/table.
type TableRequest struct {
	WeightsQuery
	From string `form:"from" binding:"required"`
}

// NeighborhoodRequest is the query of GET /v1/neighborhood. Steps 0 means no limit.
type NeighborhoodRequest struct {
	WeightsQuery
	From  string `form:"from" binding:"required"`
	Steps int    `form:"steps" binding:"gte=0,lte=168"`
}

// TensorRequest is the query of GET /v1/tensor.
type TensorRequest struct {
	WeightsQuery
}

// =============================================================================
// Responses
// =============================================================================

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is a stable machine-readable error code.
	Code string `json:"code,omitempty"`
}

// DistanceResponse answers GET /v1/distance. Distance is null when unreachable.
type DistanceResponse struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	Distance  *float64 `json:"distance"`
	Reachable bool     `json:"reachable"`
	Weights   string   `json:"weights"`
}

// PathsResponse answers GET /v1/paths.
type PathsResponse struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Distance  *float64        `json:"distance"`
	Reachable bool            `json:"reachable"`
	Truncated bool            `json:"truncated"`
	Paths     []tonality.Path `json:"paths"`
	Lines     [][]string      `json:"lines"`
}

// TableRow is one target key of GET /v1/table.
type TableRow struct {
	Key       string   `json:"key"`
	Distance  *float64 `json:"distance"`
	Reachable bool     `json:"reachable"`
	Path      []string `json:"path,omitempty"`
}

// TableResponse answers GET /v1/table.
type TableResponse struct {
	From string     `json:"from"`
	Rows []TableRow `json:"rows"`
}

// NeighborhoodStep is one key of GET /v1/neighborhood.
type NeighborhoodStep struct {
	Key   string   `json:"key"`
	Steps int      `json:"steps"`
	Via   []string `json:"via"`
}

// NeighborhoodResponse answers GET /v1/neighborhood, fewest steps first.
type NeighborhoodResponse struct {
	From string             `json:"from"`
	Keys []NeighborhoodStep `json:"keys"`
}

// TensorResponse answers GET /v1/tensor. Values is indexed
// [diatonic][chromatic][class]; null entries are unreachable.
type TensorResponse struct {
	Classes []string       `json:"classes"`
	Values  [][][]*float64 `json:"values"`
}

// KeysResponse answers GET /v1/keys.
type KeysResponse struct {
	Keys []string `json:"keys"`
}

// HealthResponse answers GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Cached int    `json:"cached"`
}

// finite maps +Inf to nil so the value survives JSON encoding.
func finite(d float64) *float64 {
	if math.IsInf(d, 0) || math.IsNaN(d) {
		return nil
	}

	return &d
}

func keyNames(keys []pitch.Key) []string {
	if keys == nil {
		return nil
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}

	return out
}

// NewDistanceResponse reports d between from and to under the weights named by weights.
func NewDistanceResponse(from, to pitch.Key, d float64, weights string) DistanceResponse {
	return DistanceResponse{
		From:      from.String(),
		To:        to.String(),
		Distance:  finite(d),
		Reachable: finite(d) != nil,
		Weights:   weights,
	}
}

// NewPathsResponse pairs paths with their rendered hop lines. Paths is never
// encoded as null.
func NewPathsResponse(from, to pitch.Key, set tonality.PathSet) PathsResponse {
	paths := set.Paths
	resp := PathsResponse{
		From:      from.String(),
		To:        to.String(),
		Distance:  finite(set.Distance),
		Reachable: finite(set.Distance) != nil,
		Truncated: set.Truncated,
		Paths:     paths,
		Lines:     make([][]string, len(paths)),
	}
	if resp.Paths == nil {
		resp.Paths = []tonality.Path{}
	}
	for i, p := range paths {
		lines := make([]string, len(p.Hops))
		for j, hop := range p.Hops {
			lines[j] = hop.String()
		}
		resp.Lines[i] = lines
	}

	return resp
}

// NewTableResponse converts a distance table rooted at from.
func NewTableResponse(from pitch.Key, rows []tonality.KeyDistance) TableResponse {
	resp := TableResponse{From: from.String(), Rows: make([]TableRow, len(rows))}
	for i, r := range rows {
		resp.Rows[i] = TableRow{
			Key:       r.Key.String(),
			Distance:  finite(r.Distance),
			Reachable: r.Reachable(),
			Path:      keyNames(r.Path),
		}
	}

	return resp
}

// NewNeighborhoodResponse converts a neighborhood rooted at from.
func NewNeighborhoodResponse(from pitch.Key, steps []tonality.Step) NeighborhoodResponse {
	resp := NeighborhoodResponse{From: from.String(), Keys: make([]NeighborhoodStep, len(steps))}
	for i, s := range steps {
		resp.Keys[i] = NeighborhoodStep{Key: s.Key.String(), Steps: s.Steps, Via: keyNames(s.Via)}
	}

	return resp
}

// NewTensorResponse flattens t into nested slices with class labels.
func NewTensorResponse(t *tonality.Tensor) TensorResponse {
	resp := TensorResponse{Classes: make([]string, tonality.ClassCount)}
	for c := 0; c < tonality.ClassCount; c++ {
		resp.Classes[c] = tonality.Class(c).String()
	}
	resp.Values = make([][][]*float64, pitch.DiatonicSteps)
	for d := range t {
		resp.Values[d] = make([][]*float64, pitch.ChromaticSteps)
		for c := range t[d] {
			resp.Values[d][c] = make([]*float64, tonality.ClassCount)
			for cls, v := range t[d][c] {
				resp.Values[d][c][cls] = finite(v)
			}
		}
	}

	return resp
}
