// SPDX-License-Identifier: MIT

// Package matrix provides a small row-major Dense matrix of float64 and an
// in-place Floyd–Warshall all-pairs closure over it.
//
// Distance matrices use +Inf for "no path" and 0 on the diagonal; NewDistance
// builds that seed directly.
package matrix
