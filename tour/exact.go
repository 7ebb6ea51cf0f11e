package tour

import (
	"fmt"
	"math"
)

// maxExactStops bounds Held–Karp memory (O(n·2ⁿ)); beyond this the table
// would not fit in a sane address space, so Exact refuses rather than OOM.
const maxExactStops = 24

// Exact solves the visiting-order problem exactly with Held–Karp dynamic
// programming over vertex subsets.
//
// Closed mode minimizes the full cycle start→…→start; Open mode minimizes
// the one-way path and simply skips the closing leg. The DP is identical
// up to the final reduction, so both share this implementation.
//
// Determinism: subsets and endpoints are scanned in ascending index order
// and improvements are strictly "<", so among equal-cost optima the
// lexicographically earliest reconstruction always wins.
//
// Contracts:
//   - matrix validated by the caller (Solve) or revalidated here,
//   - 2 ≤ n ≤ maxExactStops,
//   - opts.Start ∈ [0, n).
//
// Complexity: O(n²·2ⁿ) time, O(n·2ⁿ) memory.
func Exact(m Matrix, opts Options) (Result, error) {
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
	if n > maxExactStops {
		return Result{}, fmt.Errorf("%w: %d stops exceed exact-search bound %d",
			ErrBadOptions, n, maxExactStops)
	}

	// Local index 0 is the fixed start; the rest keep ascending order so
	// reconstruction ties break deterministically.
	verts := startFirst(n, opts.Start)
	at := func(li, lj int) float64 { return m.At(verts[li], verts[lj]) }

	var (
		full = (1 << n) - 1
		dp   = make([][]float64, 1<<n)
		par  = make([][]int, 1<<n)
		mask int
		j    int
		k    int
		prev int
		cand float64
	)
	for mask = 0; mask <= full; mask++ {
		dp[mask] = make([]float64, n)
		par[mask] = make([]int, n)
		for j = 0; j < n; j++ {
			dp[mask][j] = math.Inf(1)
			par[mask][j] = -1
		}
	}
	dp[1][0] = 0 // at the start, having visited only it

	for mask = 1; mask <= full; mask++ {
		if mask&1 == 0 {
			continue // every partial path contains the start
		}
		for j = 1; j < n; j++ {
			if mask&(1<<j) == 0 {
				continue
			}
			prev = mask ^ (1 << j)
			for k = 0; k < n; k++ {
				if prev&(1<<k) == 0 {
					continue
				}
				if math.IsInf(dp[prev][k], 1) {
					continue
				}
				cand = dp[prev][k] + at(k, j)
				if cand < dp[mask][j] {
					dp[mask][j] = cand
					par[mask][j] = k
				}
			}
		}
	}

	// Final reduction: close the cycle or take the cheapest path end.
	var (
		best = math.Inf(1)
		last = -1
		tot  float64
	)
	for j = 1; j < n; j++ {
		if math.IsInf(dp[full][j], 1) {
			continue
		}
		tot = dp[full][j]
		if opts.Mode == Closed {
			tot += at(j, 0)
		}
		if tot < best {
			best = tot
			last = j
		}
	}
	if last < 0 {
		// Unreachable for a validated finite matrix, kept as a guard.
		return Result{}, ErrBadDistance
	}

	// Reconstruct local order back-to-front.
	local := make([]int, n)
	mask = full
	j = last
	var i int
	for i = n - 1; i >= 1; i-- {
		local[i] = j
		k = par[mask][j]
		mask ^= 1 << j
		j = k
	}
	local[0] = 0

	// Map back to caller indices.
	order := make([]int, n)
	for i = 0; i < n; i++ {
		order[i] = verts[local[i]]
	}
	if opts.Mode == Closed && isSymmetric(m, n) {
		canonicalizeClosed(order)
	}
	if err = validateOrder(order, n, opts.Start); err != nil {
		return Result{}, err
	}

	return Result{
		Order:    order,
		Distance: round1e9(best),
		Proven:   true,
	}, nil
}
