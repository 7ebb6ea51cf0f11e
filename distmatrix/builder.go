package distmatrix

import (
	"context"
	"fmt"
	"sync"

	"github.com/strollkit/strollkit/distcache"
	"github.com/strollkit/strollkit/network"
	"github.com/strollkit/strollkit/poi"
)

// Options configures Build.
//
// Workers — upper bound on concurrent Dijkstra runs; 0 means sequential.
// Cache   — optional pair-distance cache consulted per source row and
// written back after fresh computations.
type Options struct {
	Workers int
	Cache   distcache.Cache
}

// Option is a functional option for Build.
type Option func(*Options)

// WithWorkers bounds the number of concurrent per-source Dijkstra runs.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithCache attaches a pair-distance cache.
func WithCache(c distcache.Cache) Option {
	return func(o *Options) { o.Cache = c }
}

// Result carries the matrix together with the per-source shortest-path
// trees. Trees[i] is rooted at stops[i].NodeID; it is nil when the whole
// row for stop i was served from the cache (the materializer recomputes
// such trees lazily).
type Result struct {
	Stops  []poi.POI
	Matrix *Matrix
	Trees  []*network.Tree
}

// Build computes the full pairwise walking-distance matrix for the given
// resolved stops.
//
// Stages:
//  1. Validate inputs.
//  2. Cache probe: a source whose every off-diagonal entry is cached is
//     filled directly and skips its Dijkstra run.
//  3. Remaining sources fan out over the worker pool; each run fills its
//     own preallocated row, so assembly is order-independent.
//  4. Unreachable destinations abort with ErrUnreachablePair naming the
//     pair (deterministically the lowest-indexed offending pair).
//  5. Freshly computed rows are written back to the cache.
//
// Complexity: O(P·(V+E) log V) plus O(P²) cache probes.
func Build(ctx context.Context, g *network.Graph, stops []poi.POI, opts ...Option) (*Result, error) {
	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Workers < 0 {
		return nil, ErrBadWorkers
	}
	if len(stops) == 0 {
		return nil, ErrNoStops
	}
	if g == nil || g.NodeCount() == 0 {
		return nil, network.ErrEmptyNetwork
	}

	n := len(stops)
	res := &Result{
		Stops:  stops,
		Matrix: newMatrix(n),
		Trees:  make([]*network.Tree, n),
	}

	// Stage 2 — cache probe, sequential and cheap next to Dijkstra.
	pending := make([]int, 0, n)

	var (
		i, j   int
		d      float64
		hit    bool
		err    error
		rowHit bool
	)
	for i = 0; i < n; i++ {
		rowHit = cfg.Cache != nil
		if rowHit {
			for j = 0; j < n && rowHit; j++ {
				if j == i {
					continue
				}
				d, hit, err = cfg.Cache.Get(ctx, stops[i].NodeID, stops[j].NodeID)
				if err != nil {
					return nil, fmt.Errorf("distmatrix: cache probe: %w", err)
				}
				if !hit {
					rowHit = false
					break
				}
				res.Matrix.set(i, j, d)
			}
		}
		if !rowHit {
			pending = append(pending, i)
		}
	}

	// Stage 3 — per-source Dijkstra over the worker pool.
	if err = runSources(ctx, g, stops, pending, cfg.Workers, res); err != nil {
		return nil, err
	}

	// Stage 5 — write back fresh rows.
	if cfg.Cache != nil && len(pending) > 0 {
		entries := make([]distcache.Entry, 0, len(pending)*(n-1))
		for _, i = range pending {
			for j = 0; j < n; j++ {
				if j == i {
					continue
				}
				entries = append(entries, distcache.Entry{
					From:   stops[i].NodeID,
					To:     stops[j].NodeID,
					Meters: res.Matrix.At(i, j),
				})
			}
		}
		if err = cfg.Cache.SetBatch(ctx, entries); err != nil {
			return nil, fmt.Errorf("distmatrix: cache write-back: %w", err)
		}
	}

	return res, nil
}

// runSources executes one Dijkstra per pending source index, bounded by the
// worker count. Each worker writes only rows it owns; errors are collected
// per source and the lowest-indexed one is returned, keeping failures
// deterministic under any parallelism.
func runSources(ctx context.Context, g *network.Graph, stops []poi.POI, pending []int, workers int, res *Result) error {
	if len(pending) == 0 {
		return nil
	}
	if workers <= 1 || len(pending) == 1 {
		for _, i := range pending {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fillRow(g, stops, i, res); err != nil {
				return err
			}
		}

		return nil
	}

	if workers > len(pending) {
		workers = len(pending)
	}

	var (
		wg      sync.WaitGroup
		idxCh   = make(chan int)
		rowErrs = make([]error, len(stops))
	)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idxCh {
				if err := ctx.Err(); err != nil {
					rowErrs[i] = err
					continue
				}
				rowErrs[i] = fillRow(g, stops, i, res)
			}
		}()
	}
	for _, i := range pending {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()

	for _, i := range pending {
		if rowErrs[i] != nil {
			return rowErrs[i]
		}
	}

	return nil
}

// fillRow runs Dijkstra from stops[i] and fills matrix row i.
func fillRow(g *network.Graph, stops []poi.POI, i int, res *Result) error {
	tree, err := network.ShortestPathTree(g, stops[i].NodeID)
	if err != nil {
		return fmt.Errorf("distmatrix: source %q: %w", stops[i].Name, err)
	}
	res.Trees[i] = tree

	var (
		j  int
		d  float64
		ok bool
	)
	for j = 0; j < len(stops); j++ {
		if j == i {
			continue
		}
		d, ok = tree.DistanceTo(stops[j].NodeID)
		if !ok {
			return fmt.Errorf("%w: %q and %q", ErrUnreachablePair, stops[i].Name, stops[j].Name)
		}
		res.Matrix.set(i, j, d)
	}

	return nil
}
