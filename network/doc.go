// Package network models a walkable street graph and the shortest-path
// primitive the route pipeline is built on.
//
// What:
//
//   - Graph holds street intersections (nodes with WGS84 coordinates) and
//     walking edges weighted by length in meters.
//   - Loaders ingest pre-downloaded snapshots: osmnx node-link JSON and a
//     compact gob format for fast server startup.
//   - NearestNode snaps an arbitrary coordinate onto the graph.
//   - ShortestPathTree runs Dijkstra from one source and keeps the
//     predecessor tree, so both distances and concrete paths fall out of a
//     single computation.
//
// Why:
//
//   - The distance-matrix builder needs one Dijkstra run per stop.
//   - The route materializer needs the actual node sequence per tour leg;
//     reusing the predecessor trees avoids recomputing anything.
//
// Complexity:
//
//   - ShortestPathTree: O((V+E) log V) time, O(V+E) space
//     (lazy-decrease-key min-heap: duplicates are pushed and stale entries
//     skipped on pop).
//   - NearestNode: O(V) linear scan; V is bounded by one city's walk network.
//
// Errors (sentinel):
//
//   - ErrEmptyNetwork:   operation on a graph with no nodes.
//   - ErrUnknownNode:    an edge endpoint or path query names a missing node.
//   - ErrNegativeLength: an edge with negative walking length.
//   - ErrNoPath:         path reconstruction requested for an unreachable node.
//   - ErrBadSnapshot:    a snapshot file failed structural validation.
package network
