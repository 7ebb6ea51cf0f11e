// Package tour — deterministic RNG utilities for the heuristic solver.
//
// All randomness flows through here. Same seed ⇒ identical results across
// platforms; seed 0 selects a fixed default stream, never the clock.
// math/rand.Rand is not goroutine-safe: derive an independent stream per
// restart instead of sharing one.
package tour

import "math/rand"

// defaultRNGSeed is the fixed stream used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand (seed==0 ⇒ default stream).
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// deriveSeed mixes a parent seed and a stream identifier with a
// SplitMix64-style finalizer, giving uncorrelated per-restart streams.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// shuffleTail shuffles order[1:] in place with rng, keeping the fixed
// start at position 0.
//
// Complexity: O(n).
func shuffleTail(order []int, rng *rand.Rand) {
	var (
		i int
		j int
	)
	for i = len(order) - 1; i > 1; i-- {
		j = 1 + rng.Intn(i) // j ∈ [1, i]
		order[i], order[j] = order[j], order[i]
	}
}
