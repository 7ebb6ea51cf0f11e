package tour

// Solve picks the right solver for the matrix size and runs it.
//
//   - n ≤ ExactThreshold ⇒ Exact (Held–Karp), Result.Proven == true.
//   - n > ExactThreshold ⇒ Heuristic (NN + local search), Proven == false.
//
// The crossover and every other knob come from DefaultOptions, overridden
// by the supplied functional options.
//
// Contract: Solve never silently downgrades — a caller that must know
// whether the distance is a proven optimum reads Result.Proven.
func Solve(m Matrix, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	if err := validateOptions(o); err != nil {
		return Result{}, err
	}
	n, err := validateMatrix(m)
	if err != nil {
		return Result{}, err
	}
	if o.Start < 0 || o.Start >= n {
		return Result{}, ErrStartOutOfRange
	}

	if n <= o.ExactThreshold && n <= maxExactStops {
		return Exact(m, o)
	}

	return Heuristic(m, o)
}
