package tour

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned by the tour solvers.
var (
	// ErrNoFeasibleTour indicates fewer than two stops.
	ErrNoFeasibleTour = errors.New("tour: need at least two stops")

	// ErrOptimizerTimeout indicates the time budget expired before the
	// heuristic produced any candidate tour.
	ErrOptimizerTimeout = errors.New("tour: time budget exhausted before any candidate")

	// ErrBadDistance indicates a NaN, infinite or negative matrix entry.
	ErrBadDistance = errors.New("tour: invalid distance entry")

	// ErrNonZeroDiagonal indicates a stop at nonzero distance from itself.
	ErrNonZeroDiagonal = errors.New("tour: matrix diagonal must be zero")

	// ErrStartOutOfRange indicates a start index outside [0, n).
	ErrStartOutOfRange = errors.New("tour: start index out of range")

	// ErrBadOptions indicates an inconsistent Options combination.
	ErrBadOptions = errors.New("tour: invalid options")

	// ErrDimensionMismatch indicates an order slice of the wrong shape.
	ErrDimensionMismatch = errors.New("tour: dimension mismatch")
)

// Matrix is the read-only distance view the solvers consume. It is
// satisfied by *distmatrix.Matrix; tests use small in-package fixtures.
type Matrix interface {
	// Rows returns the matrix order n (the matrix is n×n).
	Rows() int
	// At returns the distance from stop i to stop j; i,j ∈ [0, Rows()).
	At(i, j int) float64
}

// Mode selects the optimization objective.
type Mode int

const (
	// Closed minimizes a loop that returns to the starting stop.
	Closed Mode = iota
	// Open minimizes a one-way path from the starting stop.
	Open
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Closed:
		return "closed"
	case Open:
		return "open"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts the wire form ("closed"/"open") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "closed", "":
		return Closed, nil
	case "open":
		return Open, nil
	default:
		return Closed, fmt.Errorf("%w: unknown mode %q", ErrBadOptions, s)
	}
}

// defaultExactThreshold is the largest stop count solved exactly.
const defaultExactThreshold = 10

// defaultEps is the acceptance tolerance for local-search improvements:
// a move is taken only when it shortens the tour by more than Eps.
const defaultEps = 1e-9

// Options configures Solve.
//
// Mode           — Closed (default) or Open objective.
// Start          — index of the fixed starting stop (default 0).
// ExactThreshold — largest n solved by Held–Karp (default 10).
// TimeBudget     — wall-clock bound for the heuristic path; 0 = unlimited.
// Eps            — strict-improvement tolerance (default 1e-9).
// MaxIters       — cap on accepted local-search moves; 0 = until local optimum.
// Restarts       — extra shuffled heuristic starts (default 0).
// Seed           — RNG seed for restarts; 0 selects a fixed default stream.
type Options struct {
	Mode           Mode
	Start          int
	ExactThreshold int
	TimeBudget     time.Duration
	Eps            float64
	MaxIters       int
	Restarts       int
	Seed           int64
}

// DefaultOptions returns the solver defaults.
func DefaultOptions() Options {
	return Options{
		Mode:           Closed,
		Start:          0,
		ExactThreshold: defaultExactThreshold,
		Eps:            defaultEps,
	}
}

// Option is a functional option for Solve.
type Option func(*Options)

// WithMode selects the objective.
func WithMode(m Mode) Option { return func(o *Options) { o.Mode = m } }

// WithStart fixes the starting stop.
func WithStart(i int) Option { return func(o *Options) { o.Start = i } }

// WithExactThreshold overrides the exact/heuristic crossover point.
func WithExactThreshold(n int) Option { return func(o *Options) { o.ExactThreshold = n } }

// WithTimeBudget bounds the heuristic's wall-clock time.
func WithTimeBudget(d time.Duration) Option { return func(o *Options) { o.TimeBudget = d } }

// WithSeed fixes the RNG stream for shuffled restarts.
func WithSeed(s int64) Option { return func(o *Options) { o.Seed = s } }

// WithRestarts adds shuffled heuristic starts.
func WithRestarts(n int) Option { return func(o *Options) { o.Restarts = n } }

// WithMaxIters caps accepted local-search moves.
func WithMaxIters(n int) Option { return func(o *Options) { o.MaxIters = n } }

// Result is the solver outcome.
//
// Order is a permutation of [0, n) with Order[0] == Options.Start. For the
// Closed objective the return leg Order[n-1]→Order[0] is implied (and
// included in Distance); Order never repeats the start at the end.
type Result struct {
	Order    []int
	Distance float64
	Proven   bool // true iff produced by exhaustive search
}

// validateOptions checks internal consistency of opts without touching the
// matrix (start-range validation needs n and happens later).
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	if opts.TimeBudget < 0 {
		return fmt.Errorf("%w: negative time budget", ErrBadOptions)
	}
	if opts.Eps < 0 {
		return fmt.Errorf("%w: negative eps", ErrBadOptions)
	}
	if opts.ExactThreshold < 0 || opts.MaxIters < 0 || opts.Restarts < 0 {
		return fmt.Errorf("%w: negative counter", ErrBadOptions)
	}
	switch opts.Mode {
	case Closed, Open:
	default:
		return fmt.Errorf("%w: unknown mode %d", ErrBadOptions, int(opts.Mode))
	}

	return nil
}
