// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Dense APSP (Floyd–Warshall) with deterministic loop order.
//   - In-place, O(n³) time, O(1) extra space.
//
// Contract:
//   - Square matrix; +Inf means "no path"; diagonal must be 0 before calling.

package matrix

import (
	"fmt"
	"math"
)

const opFloydWarshall = "FloydWarshall"

func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// FloydWarshall computes all-pairs shortest paths in-place on d.
//
// Errors:
//   - ErrNilMatrix for a nil d.
//   - ErrNonSquare if d is not n×n.
//
// Determinism:
//   - Loop order is fixed (k → i → j) and only strict improvements are written.
func FloydWarshall(d *Dense) error {
	if d == nil {
		return matrixErrorf(opFloydWarshall, ErrNilMatrix)
	}
	if d.r != d.c {
		return matrixErrorf(opFloydWarshall, ErrNonSquare)
	}

	n := d.r
	data := d.data

	var (
		k, i, j      int
		baseK, baseI int
		ik, kj, cand float64
	)
	for k = 0; k < n; k++ {
		baseK = k * n
		for i = 0; i < n; i++ {
			ik = data[i*n+k]
			if math.IsInf(ik, 1) {
				continue
			}
			baseI = i * n
			for j = 0; j < n; j++ {
				kj = data[baseK+j]
				if math.IsInf(kj, 1) {
					continue
				}
				cand = ik + kj
				if cand < data[baseI+j] {
					data[baseI+j] = cand
				}
			}
		}
	}

	return nil
}
