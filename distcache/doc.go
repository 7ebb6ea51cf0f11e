// Package distcache persists pairwise walking distances between network
// nodes so repeated planning runs over the same region skip redundant
// shortest-path work.
//
// What:
//
//   - Cache is the storage contract keyed by (from node, to node).
//   - Memory is a process-local implementation for tests and one-shot runs.
//   - SQLite is the durable implementation (modernc.org/sqlite, pure Go);
//     a server pointed at the same cache file warms up across restarts.
//
// Why:
//
//   - The matrix builder runs one Dijkstra per stop over a graph with
//     thousands of nodes; for a stable stop set the distances never change.
//   - The cache stores exact shortest-path results, so a hit is always as
//     good as a recomputation — correctness does not depend on the cache.
//
// Errors:
//
//   - ErrClosed: operation on a closed cache.
//
// Implementations must be safe for concurrent use.
package distcache
