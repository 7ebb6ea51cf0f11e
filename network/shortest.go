// Package network — single-source shortest paths with predecessor trees.
//
// ShortestPathTree is the one shortest-path primitive in the repository.
// It is Dijkstra with a lazy-decrease-key min-heap: improved distances push
// duplicate heap entries, and stale entries are skipped when popped.
//
// Design:
//   - Deterministic: neighbor relaxation follows insertion order of arcs,
//     and strict "<" improvement never reorders equal-distance outcomes.
//   - Strict sentinels only; no logging, no panics on user input.
//   - The returned Tree is immutable and safe for concurrent reads.
package network

import (
	"container/heap"
	"fmt"
	"math"
)

// Tree holds the result of one single-source Dijkstra run: final distances
// in meters and the predecessor of every reached node.
type Tree struct {
	source int64
	dist   map[int64]float64
	prev   map[int64]int64
}

// Source returns the node the tree is rooted at.
func (t *Tree) Source() int64 { return t.source }

// DistanceTo returns the walking distance from the source to id in meters.
// The boolean is false when id was not reached.
func (t *Tree) DistanceTo(id int64) (float64, bool) {
	d, ok := t.dist[id]

	return d, ok
}

// PathTo reconstructs the node sequence from the source to id, inclusive on
// both ends. Returns ErrNoPath when id was not reached.
//
// Complexity: O(L) where L is the path length.
func (t *Tree) PathTo(id int64) ([]int64, error) {
	if _, ok := t.dist[id]; !ok {
		return nil, fmt.Errorf("%w: %d from source %d", ErrNoPath, id, t.source)
	}
	if id == t.source {
		return []int64{t.source}, nil
	}

	// Walk predecessors back to the source, then reverse in place.
	var (
		path = []int64{id}
		cur  = id
		ok   bool
	)
	for cur != t.source {
		cur, ok = t.prev[cur]
		if !ok {
			// Reached only via the distance map but missing a predecessor:
			// the tree is internally inconsistent, treat as unreachable.
			return nil, fmt.Errorf("%w: %d from source %d", ErrNoPath, id, t.source)
		}
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// TreeOptions configures ShortestPathTree.
//
// MaxDistance — stop exploring once the heap minimum exceeds this many
// meters. Zero means unlimited.
type TreeOptions struct {
	MaxDistance float64
}

// TreeOption is a functional option for ShortestPathTree.
type TreeOption func(*TreeOptions)

// WithMaxDistance caps exploration at the given distance in meters.
// Non-positive values are ignored (unlimited).
func WithMaxDistance(meters float64) TreeOption {
	return func(o *TreeOptions) {
		o.MaxDistance = meters
	}
}

// ShortestPathTree runs Dijkstra from source over walking lengths and
// returns the resulting distance/predecessor tree.
//
// Preconditions:
//  1. g must contain at least one node (ErrEmptyNetwork).
//  2. source must exist in g (ErrUnknownNode).
//
// Negative arc lengths cannot enter the graph (AddEdge rejects them), so no
// pre-scan is needed here.
//
// Complexity: O((V+E) log V) time, O(V+E) space.
func ShortestPathTree(g *Graph, source int64, opts ...TreeOption) (*Tree, error) {
	if g == nil || g.NodeCount() == 0 {
		return nil, ErrEmptyNetwork
	}
	if _, ok := g.Node(source); !ok {
		return nil, fmt.Errorf("%w: source %d", ErrUnknownNode, source)
	}

	var cfg TreeOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	limit := cfg.MaxDistance
	if limit <= 0 {
		limit = math.Inf(1)
	}

	t := &Tree{
		source: source,
		dist:   make(map[int64]float64, g.NodeCount()),
		prev:   make(map[int64]int64, g.NodeCount()),
	}
	visited := make(map[int64]bool, g.NodeCount())

	pq := make(arcPQ, 0, g.NodeCount())
	heap.Init(&pq)
	heap.Push(&pq, &arcItem{id: source, dist: 0})
	t.dist[source] = 0

	var (
		item    *arcItem
		u       int64
		arcs    []Arc
		a       Arc
		newDist float64
		old     float64
		known   bool
	)
	for pq.Len() > 0 {
		item = heap.Pop(&pq).(*arcItem)
		u = item.id

		// Stale heap entry: u already finalized via a shorter path.
		if visited[u] {
			continue
		}
		// Everything still queued is at least this far away; stop early
		// when the caller bounded the exploration radius.
		if item.dist > limit {
			break
		}
		visited[u] = true

		arcs = g.adj[u]
		for _, a = range arcs {
			newDist = t.dist[u] + a.Length
			if newDist > limit {
				continue
			}
			old, known = t.dist[a.To]
			if known && newDist >= old {
				continue
			}
			t.dist[a.To] = newDist
			t.prev[a.To] = u
			heap.Push(&pq, &arcItem{id: a.To, dist: newDist})
		}
	}

	// Drop entries that were relaxed but never finalized under the cap, so
	// DistanceTo never reports a distance beyond the requested radius.
	if !math.IsInf(limit, 1) {
		for id, d := range t.dist {
			if d > limit {
				delete(t.dist, id)
				delete(t.prev, id)
			}
		}
	}

	return t, nil
}

// arcItem is a (node, tentative distance) pair stored in the priority queue.
type arcItem struct {
	id   int64
	dist float64
}

// arcPQ is a min-heap of *arcItem ordered by distance, with node ID as a
// deterministic tie-breaker.
type arcPQ []*arcItem

func (pq arcPQ) Len() int { return len(pq) }

func (pq arcPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].id < pq[j].id
}

func (pq arcPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *arcPQ) Push(x interface{}) { *pq = append(*pq, x.(*arcItem)) }

func (pq *arcPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
