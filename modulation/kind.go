// SPDX-License-Identifier: MIT
// Package: tonality/modulation
//
// kind.go - modulation edge classes and their labels.

package modulation

import (
	"fmt"
	"strings"
)

// Kind is a modulation edge class. Each class carries one configurable weight.
type Kind uint8

const (
	// Neighbor links keys a fifth apart in the same mode.
	Neighbor Kind = iota
	// Relative links a minor key with the major key a minor third above.
	Relative
	// Parallel links the two modes of one tonic.
	Parallel
	// Enharmonic links two spellings of the same sounding key.
	Enharmonic
	// Dominant links a minor key with the major key on its fifth degree.
	Dominant
)

// KindCount is the number of edge classes.
const KindCount = 5

// Edge labels, exactly as rendered in path listings.
const (
	LabelNeighborSharp = "Neighbor (sharp)"
	LabelNeighborFlat  = "Neighbor (flat)"
	LabelRelativeMajor = "Relative major"
	LabelRelativeMinor = "Relative minor"
	LabelParallel      = "Parallel"
	LabelEnharmonic    = "Enharmonic"
	LabelDominantToV   = "Dominant minor (to V)"
	LabelDominantToI   = "Dominant minor (to i)"
)

var kindNames = [KindCount]string{"neighbor", "relative", "parallel", "enharmonic", "dominant"}

// AllKinds returns the classes in rule order.
func AllKinds() []Kind {
	return []Kind{Neighbor, Relative, Parallel, Enharmonic, Dominant}
}

// String returns the lower-case class name ("neighbor", "relative", ...).
func (k Kind) String() string {
	if int(k) < KindCount {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind accepts a class name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// KindOfLabel maps an edge label back to its class.
func KindOfLabel(label string) (Kind, bool) {
	switch label {
	case LabelNeighborSharp, LabelNeighborFlat:
		return Neighbor, true
	case LabelRelativeMajor, LabelRelativeMinor:
		return Relative, true
	case LabelParallel:
		return Parallel, true
	case LabelEnharmonic:
		return Enharmonic, true
	case LabelDominantToV, LabelDominantToI:
		return Dominant, true
	}

	return 0, false
}
