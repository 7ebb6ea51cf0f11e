// Package tour — order utilities shared by the exact and heuristic solvers.
//
// Everything here operates on plain index slices, independent of any
// concrete matrix. No logging, no panics on user input — only sentinel
// errors from types.go.
package tour

import "math"

// roundScale stabilizes reported distances to 1e-9 absolute precision so
// results are identical across platforms and optimization levels.
const roundScale = 1e9

// round1e9 returns x rounded to 1e-9 absolute precision.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}

// symTol is the structural tolerance used when probing matrix symmetry.
const symTol = 1e-9

// validateMatrix checks shape and entries:
//   - n ≥ 2 (ErrNoFeasibleTour otherwise),
//   - diagonal ≈ 0 within symTol,
//   - off-diagonal entries finite and non-negative (zero is legal: two
//     stops may snap to the same street node).
//
// Returns n on success.
//
// Complexity: O(n²).
func validateMatrix(m Matrix) (int, error) {
	if m == nil {
		return 0, ErrNoFeasibleTour
	}
	n := m.Rows()
	if n < 2 {
		return 0, ErrNoFeasibleTour
	}

	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		v = m.At(i, i)
		if math.IsNaN(v) || math.Abs(v) > symTol {
			return 0, ErrNonZeroDiagonal
		}
		for j = 0; j < n; j++ {
			if j == i {
				continue
			}
			v = m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return 0, ErrBadDistance
			}
		}
	}

	return n, nil
}

// isSymmetric reports |m[i][j] − m[j][i]| ≤ symTol for all pairs.
// Walking matrices built from undirected networks pass; the heuristic only
// uses reversal moves when this holds.
//
// Complexity: O(n²).
func isSymmetric(m Matrix, n int) bool {
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > symTol {
				return false
			}
		}
	}

	return true
}

// validateOrder enforces that order is a permutation of [0, n) starting at
// start.
//
// Complexity: O(n).
func validateOrder(order []int, n, start int) error {
	if n < 2 || len(order) != n {
		return ErrDimensionMismatch
	}
	if start < 0 || start >= n {
		return ErrStartOutOfRange
	}
	if order[0] != start {
		return ErrDimensionMismatch
	}

	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = order[i]
		if v < 0 || v >= n {
			return ErrDimensionMismatch
		}
		if seen[v] {
			return ErrDimensionMismatch
		}
		seen[v] = true
	}

	return nil
}

// orderDistance sums the matrix entries along order under the given mode
// (adding the return leg for Closed). The result is stabilized to 1e-9.
//
// Complexity: O(n).
func orderDistance(m Matrix, order []int, mode Mode) float64 {
	var (
		sum float64
		i   int
	)
	for i = 0; i+1 < len(order); i++ {
		sum += m.At(order[i], order[i+1])
	}
	if mode == Closed && len(order) > 1 {
		sum += m.At(order[len(order)-1], order[0])
	}

	return round1e9(sum)
}

// canonicalizeClosed fixes the direction of a closed tour in place: under
// a fixed start both orientations of the same cycle cost the same on a
// symmetric matrix, so the one with the smaller second stop is the unique
// representative. No-op for open paths or asymmetric costs.
//
// Complexity: O(n).
func canonicalizeClosed(order []int) {
	n := len(order)
	if n < 3 {
		return
	}
	if order[1] > order[n-1] {
		// Reverse the segment after the fixed start.
		for i, j := 1, n-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
}

// copyOrder returns an independent copy of order.
func copyOrder(order []int) []int {
	out := make([]int, len(order))
	copy(out, order)

	return out
}

// startFirst returns the vertices [0, n) with start first and the rest in
// ascending order — the canonical initial layout for both solvers.
//
// Complexity: O(n).
func startFirst(n, start int) []int {
	out := make([]int, 0, n)
	out = append(out, start)

	var v int
	for v = 0; v < n; v++ {
		if v != start {
			out = append(out, v)
		}
	}

	return out
}
