// SPDX-License-Identifier: MIT
// Package: tonality/modulation
//
// weights.go - per-class edge weights.
//
// Contract:
//   - A weight is a float64 >= 0 or +Inf. +Inf makes every edge of the class impassable.
//   - Weights is a comparable value type and is used directly as a cache key.

package modulation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Weights holds one cost per edge class.
type Weights struct {
	Neighbor   float64 `json:"neighbor" yaml:"neighbor"`
	Relative   float64 `json:"relative" yaml:"relative"`
	Parallel   float64 `json:"parallel" yaml:"parallel"`
	Enharmonic float64 `json:"enharmonic" yaml:"enharmonic"`
	Dominant   float64 `json:"dominant" yaml:"dominant"`
}

// Default class weights.
const (
	DefaultNeighbor   = 1.0
	DefaultRelative   = 0.7
	DefaultParallel   = 1.3
	DefaultEnharmonic = 0.01
	DefaultDominant   = 1.2
)

// DefaultWeights returns {1, 0.7, 1.3, 0.01, 1.2}.
func DefaultWeights() Weights {
	return Weights{
		Neighbor:   DefaultNeighbor,
		Relative:   DefaultRelative,
		Parallel:   DefaultParallel,
		Enharmonic: DefaultEnharmonic,
		Dominant:   DefaultDominant,
	}
}

// Validate reports the first NaN or negative weight, in class order.
func (w Weights) Validate() error {
	for _, k := range AllKinds() {
		v := w.Of(k)
		if math.IsNaN(v) || v < 0 {
			return fmt.Errorf("%w: %s=%g", ErrInvalidWeight, k, v)
		}
	}

	return nil
}

// Of returns the weight of class k. Unknown classes are +Inf.
func (w Weights) Of(k Kind) float64 {
	switch k {
	case Neighbor:
		return w.Neighbor
	case Relative:
		return w.Relative
	case Parallel:
		return w.Parallel
	case Enharmonic:
		return w.Enharmonic
	case Dominant:
		return w.Dominant
	}

	return math.Inf(1)
}

// With returns a copy with class k set to v.
func (w Weights) With(k Kind, v float64) Weights {
	switch k {
	case Neighbor:
		w.Neighbor = v
	case Relative:
		w.Relative = v
	case Parallel:
		w.Parallel = v
	case Enharmonic:
		w.Enharmonic = v
	case Dominant:
		w.Dominant = v
	}

	return w
}

// Disable returns a copy with every listed class set to +Inf.
func (w Weights) Disable(kinds ...Kind) Weights {
	for _, k := range kinds {
		w = w.With(k, math.Inf(1))
	}

	return w
}

// Enabled reports whether class k has a finite weight.
func (w Weights) Enabled(k Kind) bool {
	return !math.IsInf(w.Of(k), 1)
}

// String renders "neighbor=1 relative=0.7 ..." with "off" for disabled classes.
func (w Weights) String() string {
	parts := make([]string, 0, KindCount)
	for _, k := range AllKinds() {
		v := "off"
		if w.Enabled(k) {
			v = strconv.FormatFloat(w.Of(k), 'g', -1, 64)
		}
		parts = append(parts, k.String()+"="+v)
	}

	return strings.Join(parts, " ")
}
