// Package strollkit computes optimized multi-stop walking routes over a real
// street network.
//
// The pipeline is a chain of small, focused packages:
//
//	geo/        — coordinates and great-circle (haversine) distances
//	network/    — walkable street graph: loaders, nearest-node lookup,
//	              single-source shortest paths with predecessor trees
//	geocode/    — optional address→coordinate resolution
//	poi/        — resolve named stops to their nearest network nodes
//	distmatrix/ — pairwise shortest-path walking distances between stops
//	distcache/  — reusable pair-distance cache (in-memory, SQLite)
//	tour/       — visit-order optimization: exact Held–Karp for small stop
//	              counts, deterministic local search under a time budget
//	route/      — expand a tour into one continuous walkable path
//	mapexport/  — interactive Leaflet map artifact for the finished route
//	planner/    — end-to-end orchestration of all of the above
//
// Data flows strictly forward: stops are snapped onto the network, a distance
// matrix is built from per-stop Dijkstra runs, the optimizer picks the visit
// order, the materializer stitches the per-leg paths back together, and the
// exporter renders the result. Every stage is deterministic for identical
// inputs; parallelism inside the matrix builder never changes the output.
//
//	go get github.com/strollkit/strollkit
package strollkit
