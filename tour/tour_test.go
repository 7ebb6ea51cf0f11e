package tour_test

import (
	"math"
	"testing"
	"time"

	"github.com/strollkit/strollkit/tour"
	"github.com/stretchr/testify/require"
)

// sliceMatrix is the in-test tour.Matrix fixture.
type sliceMatrix [][]float64

func (m sliceMatrix) Rows() int           { return len(m) }
func (m sliceMatrix) At(i, j int) float64 { return m[i][j] }

// euclidMatrix builds a symmetric matrix from planar points.
func euclidMatrix(pts [][2]float64) sliceMatrix {
	n := len(pts)
	m := make(sliceMatrix, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			dx := pts[i][0] - pts[j][0]
			dy := pts[i][1] - pts[j][1]
			m[i][j] = math.Hypot(dx, dy)
		}
	}

	return m
}

// tourLen recomputes a tour's length independently of the solver.
func tourLen(m tour.Matrix, order []int, mode tour.Mode) float64 {
	var sum float64
	for i := 0; i+1 < len(order); i++ {
		sum += m.At(order[i], order[i+1])
	}
	if mode == tour.Closed {
		sum += m.At(order[len(order)-1], order[0])
	}

	return sum
}

// scatter generates n deterministic pseudo-random planar points.
func scatter(n int) [][2]float64 {
	pts := make([][2]float64, n)
	for i := range pts {
		k := float64(i + 1)
		pts[i] = [2]float64{
			math.Mod(k*12.9898, 7.0),
			math.Mod(k*78.233, 5.0),
		}
	}

	return pts
}

// Unit square with indices deliberately out of perimeter order.
var squarePts = [][2]float64{{0, 0}, {1, 1}, {1, 0}, {0, 1}}

func TestSolve_UnitSquareClosed(t *testing.T) {
	m := euclidMatrix(squarePts)

	res, err := tour.Solve(m)
	require.NoError(t, err)
	require.True(t, res.Proven)
	require.InDelta(t, 4.0, res.Distance, 1e-9)
	// Canonical direction: smaller second stop wins among the two
	// equal-cost orientations.
	require.Equal(t, []int{0, 2, 1, 3}, res.Order)
}

func TestSolve_UnitSquareOpen(t *testing.T) {
	m := euclidMatrix(squarePts)

	res, err := tour.Solve(m, tour.WithMode(tour.Open))
	require.NoError(t, err)
	require.True(t, res.Proven)
	require.InDelta(t, 3.0, res.Distance, 1e-9)
	require.Equal(t, 0, res.Order[0])
	require.InDelta(t, res.Distance, tourLen(m, res.Order, tour.Open), 1e-9)
}

func TestSolve_TwoStops(t *testing.T) {
	m := sliceMatrix{{0, 5}, {7, 0}}

	closed, err := tour.Solve(m)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, closed.Order)
	require.InDelta(t, 12.0, closed.Distance, 1e-9) // out and back

	open, err := tour.Solve(m, tour.WithMode(tour.Open))
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, open.Order)
	require.InDelta(t, 5.0, open.Distance, 1e-9)
}

func TestSolve_StartRespected(t *testing.T) {
	m := euclidMatrix(scatter(12)) // heuristic path
	require.Greater(t, m.Rows(), 10)

	for _, start := range []int{0, 3, 11} {
		res, err := tour.Solve(m, tour.WithStart(start), tour.WithSeed(7))
		require.NoError(t, err)
		require.False(t, res.Proven)
		require.Equal(t, start, res.Order[0])
		require.Len(t, res.Order, m.Rows())
	}

	small := euclidMatrix(scatter(6))
	res, err := tour.Solve(small, tour.WithStart(4))
	require.NoError(t, err)
	require.True(t, res.Proven)
	require.Equal(t, 4, res.Order[0])
}

func TestSolve_ExactDirectedCycle(t *testing.T) {
	// Going with the arrows costs 1 per leg, against them 10.
	m := sliceMatrix{
		{0, 1, 10},
		{10, 0, 1},
		{1, 10, 0},
	}

	res, err := tour.Solve(m)
	require.NoError(t, err)
	require.True(t, res.Proven)
	require.Equal(t, []int{0, 1, 2}, res.Order)
	require.InDelta(t, 3.0, res.Distance, 1e-9)
}

func TestExact_DominatesHeuristic(t *testing.T) {
	m := euclidMatrix(scatter(8))

	for _, mode := range []tour.Mode{tour.Closed, tour.Open} {
		opts := tour.DefaultOptions()
		opts.Mode = mode

		exact, err := tour.Exact(m, opts)
		require.NoError(t, err)
		require.True(t, exact.Proven)

		heur, err := tour.Heuristic(m, opts)
		require.NoError(t, err)
		require.False(t, heur.Proven)

		require.LessOrEqual(t, exact.Distance, heur.Distance+1e-9,
			"mode=%s", mode)
		require.InDelta(t, exact.Distance,
			tourLen(m, exact.Order, mode), 1e-9)
		require.InDelta(t, heur.Distance,
			tourLen(m, heur.Order, mode), 1e-9)
	}
}

func TestHeuristic_Deterministic(t *testing.T) {
	m := euclidMatrix(scatter(15))

	first, err := tour.Solve(m, tour.WithSeed(42), tour.WithRestarts(3))
	require.NoError(t, err)
	second, err := tour.Solve(m, tour.WithSeed(42), tour.WithRestarts(3))
	require.NoError(t, err)

	require.Equal(t, first.Order, second.Order)
	require.Equal(t, first.Distance, second.Distance)
	require.False(t, first.Proven)
}

func TestHeuristic_RestartsNeverWorse(t *testing.T) {
	m := euclidMatrix(scatter(14))

	base, err := tour.Solve(m, tour.WithSeed(1))
	require.NoError(t, err)
	multi, err := tour.Solve(m, tour.WithSeed(1), tour.WithRestarts(5))
	require.NoError(t, err)

	require.LessOrEqual(t, multi.Distance, base.Distance+1e-9)
}

func TestHeuristic_AsymmetricModes(t *testing.T) {
	// Direction-dependent costs: base Euclidean plus a one-way surcharge.
	pts := scatter(13)
	base := euclidMatrix(pts)
	m := make(sliceMatrix, len(base))
	for i := range m {
		m[i] = make([]float64, len(base))
		for j := range m[i] {
			if i == j {
				continue
			}
			m[i][j] = base[i][j]
			if i < j {
				m[i][j] += 0.25
			}
		}
	}

	for _, mode := range []tour.Mode{tour.Closed, tour.Open} {
		res, err := tour.Solve(m, tour.WithMode(mode), tour.WithSeed(3))
		require.NoError(t, err)
		require.False(t, res.Proven)
		require.Equal(t, 0, res.Order[0])
		require.Len(t, res.Order, m.Rows())
		require.InDelta(t, res.Distance, tourLen(m, res.Order, mode), 1e-6,
			"mode=%s", mode)
	}
}

func TestSolve_TimeoutBeforeCandidate(t *testing.T) {
	m := euclidMatrix(scatter(40))

	_, err := tour.Solve(m, tour.WithTimeBudget(time.Nanosecond))
	require.ErrorIs(t, err, tour.ErrOptimizerTimeout)
}

func TestSolve_BudgetReturnsBestFound(t *testing.T) {
	m := euclidMatrix(scatter(30))

	res, err := tour.Solve(m, tour.WithTimeBudget(200*time.Millisecond))
	require.NoError(t, err)
	require.Len(t, res.Order, 30)
	require.False(t, res.Proven)
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]tour.Mode{
		"":       tour.Closed,
		"closed": tour.Closed,
		"open":   tour.Open,
	} {
		got, err := tour.ParseMode(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := tour.ParseMode("loop")
	require.ErrorIs(t, err, tour.ErrBadOptions)
}

func TestSolve_Validation(t *testing.T) {
	_, err := tour.Solve(sliceMatrix{{0}})
	require.ErrorIs(t, err, tour.ErrNoFeasibleTour)

	_, err = tour.Solve(sliceMatrix{{0, math.NaN()}, {1, 0}})
	require.ErrorIs(t, err, tour.ErrBadDistance)

	_, err = tour.Solve(sliceMatrix{{0, 1}, {-1, 0}})
	require.ErrorIs(t, err, tour.ErrBadDistance)

	_, err = tour.Solve(sliceMatrix{{3, 1}, {1, 0}})
	require.ErrorIs(t, err, tour.ErrNonZeroDiagonal)

	m := euclidMatrix(squarePts)
	_, err = tour.Solve(m, tour.WithStart(9))
	require.ErrorIs(t, err, tour.ErrStartOutOfRange)

	_, err = tour.Solve(m, tour.WithTimeBudget(-time.Second))
	require.ErrorIs(t, err, tour.ErrBadOptions)
}

func TestSolve_ZeroDistancePairLegal(t *testing.T) {
	// Two stops snapped to the same street node.
	m := sliceMatrix{
		{0, 0, 2},
		{0, 0, 2},
		{2, 2, 0},
	}

	res, err := tour.Solve(m)
	require.NoError(t, err)
	require.True(t, res.Proven)
	require.InDelta(t, 4.0, res.Distance, 1e-9)
}
