package network

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/strollkit/strollkit/geo"
)

// Sentinel errors returned by the network package.
var (
	// ErrEmptyNetwork indicates an operation on a graph with no nodes.
	ErrEmptyNetwork = errors.New("network: graph has no nodes")

	// ErrUnknownNode indicates an edge endpoint or query names a node that
	// does not exist in the graph.
	ErrUnknownNode = errors.New("network: unknown node")

	// ErrNegativeLength indicates an edge with a negative walking length.
	ErrNegativeLength = errors.New("network: negative edge length")

	// ErrNoPath indicates a path reconstruction was requested for a node
	// unreachable from the tree's source.
	ErrNoPath = errors.New("network: no path to node")

	// ErrBadSnapshot indicates a snapshot file failed structural validation.
	ErrBadSnapshot = errors.New("network: malformed snapshot")
)

// Node is a street intersection.
type Node struct {
	ID    int64     // stable OSM-style identifier
	Coord geo.Coord // WGS84 position
}

// Arc is one outgoing walking edge.
type Arc struct {
	To     int64   // destination node ID
	Length float64 // walking length in meters, >= 0
}

// Graph is an in-memory walkable street network. Edges are stored as
// adjacency lists of outgoing arcs; AddEdge inserts both directions unless
// told otherwise, matching pedestrian semantics.
//
// Graph is not safe for concurrent mutation. The pipeline mutates it only
// during loading and treats it as read-only afterwards, which makes
// concurrent reads (parallel Dijkstra runs) safe.
type Graph struct {
	nodes map[int64]Node
	adj   map[int64][]Arc
	edges int // number of stored arcs
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[int64]Node),
		adj:   make(map[int64][]Arc),
	}
}

// AddNode inserts or replaces a node.
//
// Complexity: O(1).
func (g *Graph) AddNode(n Node) {
	g.nodes[n.ID] = n
}

// AddEdge inserts a walking edge between two existing nodes. When
// bidirectional is true (the pedestrian default) the reverse arc is stored
// as well.
//
// Errors: ErrUnknownNode if either endpoint is missing, ErrNegativeLength
// for a negative length. Both carry the offending IDs.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to int64, length float64, bidirectional bool) error {
	if length < 0 || math.IsNaN(length) {
		return fmt.Errorf("%w: %d→%d length=%v", ErrNegativeLength, from, to, length)
	}
	if _, ok := g.nodes[from]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, from)
	}
	if _, ok := g.nodes[to]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, to)
	}

	g.adj[from] = append(g.adj[from], Arc{To: to, Length: length})
	g.edges++
	if bidirectional {
		g.adj[to] = append(g.adj[to], Arc{To: from, Length: length})
		g.edges++
	}

	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id int64) (Node, bool) {
	n, ok := g.nodes[id]

	return n, ok
}

// Neighbors returns the outgoing arcs of the given node. The returned slice
// is owned by the graph and must not be mutated.
func (g *Graph) Neighbors(id int64) ([]Arc, error) {
	if _, ok := g.nodes[id]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}

	return g.adj[id], nil
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// ArcCount returns the number of stored directed arcs (an undirected edge
// counts twice).
func (g *Graph) ArcCount() int { return g.edges }

// NodeIDs returns all node IDs in ascending order. Sorting keeps every
// consumer deterministic regardless of map iteration order.
//
// Complexity: O(V log V).
func (g *Graph) NodeIDs() []int64 {
	ids := make([]int64, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// NearestNode returns the node closest to c by great-circle distance,
// together with that distance in meters. Ties are broken towards the
// smaller node ID so the result is independent of map iteration order.
//
// Complexity: O(V).
func (g *Graph) NearestNode(c geo.Coord) (Node, float64, error) {
	if len(g.nodes) == 0 {
		return Node{}, 0, ErrEmptyNetwork
	}

	var (
		best     Node
		bestDist = math.Inf(1)
		n        Node
		d        float64
	)
	for _, id := range g.NodeIDs() {
		n = g.nodes[id]
		d = geo.Haversine(c, n.Coord)
		if d < bestDist {
			bestDist = d
			best = n
		}
	}

	return best, bestDist, nil
}
