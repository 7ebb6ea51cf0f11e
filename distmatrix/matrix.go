package distmatrix

import (
	"errors"
	"math"
)

// Sentinel errors returned by the distance-matrix builder.
var (
	// ErrNoStops indicates Build was called with an empty stop list.
	ErrNoStops = errors.New("distmatrix: no stops")

	// ErrUnreachablePair indicates two stops lie in disconnected components
	// of the walking network.
	ErrUnreachablePair = errors.New("distmatrix: unreachable stop pair")

	// ErrBadWorkers indicates a negative worker count.
	ErrBadWorkers = errors.New("distmatrix: worker count must be non-negative")
)

// Matrix is a dense P×P matrix of walking distances in meters.
// The diagonal is zero; every off-diagonal entry is finite (Build fails
// rather than store an infinity).
type Matrix struct {
	n    int
	data []float64 // row-major, len n*n
}

// newMatrix allocates a zeroed n×n matrix.
func newMatrix(n int) *Matrix {
	return &Matrix{n: n, data: make([]float64, n*n)}
}

// Rows returns the matrix order P.
func (m *Matrix) Rows() int { return m.n }

// At returns the walking distance from stop i to stop j in meters.
// Indices must lie in [0, Rows()).
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.n+j] }

func (m *Matrix) set(i, j int, v float64) { m.data[i*m.n+j] = v }

// Symmetric reports whether |m[i][j] − m[j][i]| ≤ tol for all pairs.
// Walking networks are undirected in practice, but nothing downstream is
// allowed to assume it without checking.
//
// Complexity: O(P²).
func (m *Matrix) Symmetric(tol float64) bool {
	var (
		i, j int
		diff float64
	)
	for i = 0; i < m.n; i++ {
		for j = i + 1; j < m.n; j++ {
			diff = m.At(i, j) - m.At(j, i)
			if math.Abs(diff) > tol {
				return false
			}
		}
	}

	return true
}
