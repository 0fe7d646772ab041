// SPDX-License-Identifier: MIT

package modulation

import "errors"

var (
	// ErrInvalidWeight is returned for a NaN or negative class weight.
	ErrInvalidWeight = errors.New("modulation: invalid weight")

	// ErrUnknownKind is returned by ParseKind for an unrecognized class name.
	ErrUnknownKind = errors.New("modulation: unknown edge kind")
)
