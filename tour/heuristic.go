package tour

import (
	"math"
	"time"
)

// deadlineCheckEvery bounds how often the local search polls the clock:
// time.Now in the innermost loop would dominate small-n runs.
const deadlineCheckEvery = 256

// Heuristic finds a good (not provably optimal) visiting order with a
// deterministic nearest-neighbor construction followed by first-improvement
// local search, optionally repeated from seeded shuffled starts.
//
// Move set:
//   - symmetric matrix: segment reversal (2-opt), valid for both objectives;
//   - asymmetric matrix: single-stop relocation (Or-opt of length 1), which
//     never reverses an arc and so stays cost-correct under
//     direction-dependent distances — on the cycle for Closed, on the path
//     for Open.
//
// Budget semantics: when TimeBudget expires the best tour found so far is
// returned. ErrOptimizerTimeout is returned only if the budget expired
// before even the first construction finished, i.e. there is no candidate
// at all.
//
// Complexity: O(n²) per construction, O(n²) per local-search sweep.
func Heuristic(m Matrix, opts Options) (Result, error) {
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}
	n, err := validateMatrix(m)
	if err != nil {
		return Result{}, err
	}
	if opts.Start < 0 || opts.Start >= n {
		return Result{}, ErrStartOutOfRange
	}

	var deadline time.Time
	if opts.TimeBudget > 0 {
		deadline = time.Now().Add(opts.TimeBudget)
	}

	sym := isSymmetric(m, n)

	// Baseline run: greedy construction from the fixed start.
	order := nearestNeighbor(m, n, opts.Start, deadline)
	if order == nil {
		// Expired before even one candidate existed.
		return Result{}, ErrOptimizerTimeout
	}
	if expired(deadline) {
		// No improvement pass, but the construction is a legal candidate.
		return Result{
			Order:    finalizeOrder(order, sym, opts.Mode),
			Distance: orderDistance(m, order, opts.Mode),
		}, nil
	}

	localSearch(m, order, opts, sym, deadline)

	best := copyOrder(order)
	bestDist := orderDistance(m, best, opts.Mode)

	// Shuffled restarts: each stream is derived from the caller seed so the
	// whole multi-start schedule replays exactly.
	var (
		r    int
		cand []int
		d    float64
	)
	for r = 1; r <= opts.Restarts && !expired(deadline); r++ {
		cand = startFirst(n, opts.Start)
		shuffleTail(cand, rngFromSeed(deriveSeed(opts.Seed, uint64(r))))
		localSearch(m, cand, opts, sym, deadline)
		d = orderDistance(m, cand, opts.Mode)
		if d < bestDist {
			best = copyOrder(cand)
			bestDist = d
		}
	}

	return Result{
		Order:    finalizeOrder(best, sym, opts.Mode),
		Distance: bestDist,
	}, nil
}

// finalizeOrder applies the canonical closed-tour direction when it is
// cost-neutral to do so.
func finalizeOrder(order []int, sym bool, mode Mode) []int {
	if mode == Closed && sym {
		canonicalizeClosed(order)
	}

	return order
}

// expired reports whether the deadline (zero = none) has passed.
func expired(deadline time.Time) bool {
	return !deadline.IsZero() && time.Now().After(deadline)
}

// nearestNeighbor builds a tour greedily from start: at every step hop to
// the closest unvisited stop, ties toward the lower index. Returns nil if
// the deadline expires mid-construction.
//
// Complexity: O(n²).
func nearestNeighbor(m Matrix, n, start int, deadline time.Time) []int {
	order := make([]int, 0, n)
	visited := make([]bool, n)
	order = append(order, start)
	visited[start] = true

	var (
		cur  = start
		next int
		best float64
		j    int
		d    float64
	)
	for len(order) < n {
		if expired(deadline) {
			return nil
		}
		next = -1
		best = math.Inf(1)
		for j = 0; j < n; j++ {
			if visited[j] {
				continue
			}
			d = m.At(cur, j)
			if d < best {
				best = d
				next = j
			}
		}
		order = append(order, next)
		visited[next] = true
		cur = next
	}

	return order
}

// localSearch improves order in place until a local optimum, MaxIters
// accepted moves, or the deadline — whichever comes first.
func localSearch(m Matrix, order []int, opts Options, sym bool, deadline time.Time) {
	switch {
	case sym:
		twoOptReverse(m, order, opts, deadline)
	case opts.Mode == Closed:
		relocateCycle(m, order, opts, deadline)
	default:
		relocate(m, order, opts, deadline)
	}
}

// twoOptReverse is first-improvement 2-opt by segment reversal. Only valid
// on symmetric matrices, where reversing a segment leaves its internal cost
// unchanged; the delta then reduces to the two boundary edges.
//
// For the Open objective the edge (last, first) does not exist, which is
// modeled by skipping reversals that would touch the wrap-around edge.
//
// Complexity: O(n²) per sweep.
func twoOptReverse(m Matrix, order []int, opts Options, deadline time.Time) {
	var (
		n        = len(order)
		accepted int
		improved = true
		ticks    int
		i, j     int
		a, b     int
		c, d     int
		delta    float64
	)
	for improved {
		improved = false
		for i = 0; i < n-1; i++ {
			for j = i + 1; j < n; j++ {
				ticks++
				if ticks%deadlineCheckEvery == 0 && expired(deadline) {
					return
				}
				if opts.Mode == Closed && i == 0 && j == n-1 {
					continue // cost-neutral direction flip of the whole cycle
				}
				if opts.Mode == Open && j == n-1 {
					// Removing the trailing edge only: delta is the edge swap
					// at position i with no closing edge to restore.
					a, b = order[i], order[i+1]
					c = order[j]
					delta = m.At(a, c) - m.At(a, b)
				} else {
					a, b = order[i], order[i+1]
					c, d = order[j], order[(j+1)%n]
					delta = m.At(a, c) + m.At(b, d) - m.At(a, b) - m.At(c, d)
				}
				if delta < -opts.Eps {
					reverseSegment(order, i+1, j)
					accepted++
					improved = true
					if opts.MaxIters > 0 && accepted >= opts.MaxIters {
						return
					}
				}
			}
		}
	}
}

// relocateCycle is the asymmetric-safe closed-tour move: pull one stop out
// of the cycle and reinsert it right after another, shifting the segment
// between them one slot without reversing any arc.
//
// Complexity: O(n²) deltas per sweep; an accepted move shifts O(n) slots.
func relocateCycle(m Matrix, order []int, opts Options, deadline time.Time) {
	var (
		n        = len(order)
		accepted int
		improved = true
		ticks    int
		i, j     int
		cur, alt float64
	)
	for improved {
		improved = false
		for i = 1; i < n; i++ {
			for j = i + 1; j < n; j++ {
				ticks++
				if ticks%deadlineCheckEvery == 0 && expired(deadline) {
					return
				}
				// Move order[i] to sit right after order[j]; all arcs keep
				// their direction.
				cur = m.At(order[i-1], order[i]) +
					m.At(order[i], order[(i+1)%n]) +
					m.At(order[j], order[(j+1)%n])
				alt = m.At(order[i-1], order[(i+1)%n]) +
					m.At(order[j], order[i]) +
					m.At(order[i], order[(j+1)%n])
				if alt-cur < -opts.Eps {
					rotateLeft(order, i, j)
					accepted++
					improved = true
					if opts.MaxIters > 0 && accepted >= opts.MaxIters {
						return
					}
				}
			}
		}
	}
}

// relocate is the asymmetric open-path move: pull one stop out and reinsert
// it at a cheaper position. Direction-safe because no arc is reversed.
//
// Complexity: O(n²) per sweep.
func relocate(m Matrix, order []int, opts Options, deadline time.Time) {
	var (
		n        = len(order)
		accepted int
		improved = true
		ticks    int
		i, j     int
		removal  float64
		insert   float64
	)
	for improved {
		improved = false
		for i = 1; i < n; i++ {
			for j = 0; j < n-1; j++ {
				if j == i || j == i-1 {
					continue // reinserting where it already sits
				}
				ticks++
				if ticks%deadlineCheckEvery == 0 && expired(deadline) {
					return
				}
				removal = m.At(order[i-1], order[i])
				if i+1 < n {
					removal += m.At(order[i], order[i+1]) -
						m.At(order[i-1], order[i+1])
				}
				// Reinsert between the stops at j and j+1; j < n-1 keeps
				// both neighbors in range.
				insert = m.At(order[j], order[i]) +
					m.At(order[i], order[j+1]) -
					m.At(order[j], order[j+1])
				if insert-removal < -opts.Eps {
					moveStop(order, i, j)
					accepted++
					improved = true
					if opts.MaxIters > 0 && accepted >= opts.MaxIters {
						return
					}
				}
			}
		}
	}
}

// reverseSegment reverses order[lo..hi] in place.
func reverseSegment(order []int, lo, hi int) {
	for lo < hi {
		order[lo], order[hi] = order[hi], order[lo]
		lo++
		hi--
	}
}

// rotateLeft moves order[i] to the position right after order[j] (i < j),
// shifting the segment between them one slot left. No element changes its
// traversal direction.
func rotateLeft(order []int, i, j int) {
	v := order[i]
	copy(order[i:j], order[i+1:j+1])
	order[j] = v
}

// moveStop removes order[i] and reinserts it between the stops originally
// at positions j and j+1, preserving the relative order of everything else.
func moveStop(order []int, i, j int) {
	v := order[i]
	if j < i {
		copy(order[j+2:i+1], order[j+1:i])
		order[j+1] = v
	} else {
		copy(order[i:j], order[i+1:j+1])
		order[j] = v
	}
}
