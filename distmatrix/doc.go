// Package distmatrix builds the pairwise shortest-path walking-distance
// matrix between resolved stops.
//
// What:
//
//   - Build runs one Dijkstra per stop (network.ShortestPathTree) and reads
//     off the distances to every other stop's node.
//   - The Result keeps the per-source predecessor trees so the route
//     materializer can reconstruct concrete leg paths without recomputing.
//   - An optional distcache.Cache short-circuits sources whose full row is
//     already cached; fresh rows are written back.
//
// Why:
//
//   - The optimizer needs exact network distances, not straight-line ones:
//     rivers, rail cuts and one-way stairways make the difference.
//   - A disconnected stop pair is surfaced as ErrUnreachablePair naming the
//     pair, never encoded as +Inf — a silent infinity would corrupt the
//     optimizer's objective.
//
// Concurrency:
//
//   - Per-source Dijkstra runs are independent and fan out across a bounded
//     worker pool (WithWorkers). Results are written into preallocated,
//     index-addressed rows, so the output is byte-identical regardless of
//     worker count. Parallelism is a speedup, never a source of
//     nondeterminism.
//
// Complexity: O(P·(V+E) log V) time for P stops.
//
// Errors:
//
//   - ErrNoStops:         Build called with an empty stop list.
//   - ErrUnreachablePair: two stops lie in disconnected components; the
//     wrapped message names both.
//   - ErrBadWorkers:      negative worker count.
package distmatrix
