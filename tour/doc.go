// Package tour finds a minimum-distance visiting order over a stop-to-stop
// distance matrix.
//
// Two objectives are supported, selected explicitly (never guessed):
//
//   - Closed: a loop that returns to the starting stop (the classic
//     travelling-salesman objective).
//   - Open: a one-way path from a fixed start with no return leg.
//
// Algorithmic policy:
//
//   - n ≤ ExactThreshold (default 10): Held–Karp dynamic programming over
//     subsets, O(n²·2ⁿ) time, O(n·2ⁿ) memory. The result is provably
//     optimal and the Result is labeled Proven.
//   - n > ExactThreshold: deterministic nearest-neighbor construction
//     followed by first-improvement local search (2-opt and friends) under
//     a wall-clock budget, optionally with seeded multi-start restarts.
//     The result is best-found and labeled accordingly — never conflated
//     with a proven optimum.
//
// Determinism:
//
//   - Identical inputs and options yield identical tours. All scanning
//     orders are fixed, ties resolve toward lower indices, and randomness
//     only enters through the explicit Seed (0 selects a fixed default
//     stream, not the clock).
//
// Errors (sentinel):
//
//   - ErrNoFeasibleTour:   fewer than two stops.
//   - ErrOptimizerTimeout: the budget expired before any candidate existed.
//   - ErrBadDistance:      NaN, ±Inf or negative matrix entry.
//   - ErrNonZeroDiagonal:  a stop at nonzero distance from itself.
//   - ErrStartOutOfRange:  start index outside [0, n).
//   - ErrBadOptions:       negative budget, tolerance or counters, or an
//     unknown mode.
//   - ErrDimensionMismatch: an order slice of the wrong shape.
package tour
