// Package planner runs the whole trip-planning pipeline in one call:
//
//	resolve stops → build distance matrix → optimize order → trace polyline
//
// Plan is a thin orchestrator. All real work and all validation live in the
// stage packages (poi, distmatrix, tour, route); planner only threads the
// context and configuration through and never swallows a stage error.
//
// The pipeline is a single batch computation. Concurrency exists only
// inside the matrix stage (bounded worker pool, result independent of the
// worker count), so Plan is safe to call from multiple goroutines as long
// as the configured cache is.
package planner
