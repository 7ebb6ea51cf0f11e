// Package network — snapshot loaders.
//
// Two on-disk formats are supported:
//
//  1. osmnx node-link JSON, the output of exporting a downloaded walk
//     network with networkx's node_link_data (nodes carry "x"/"y" in
//     longitude/latitude order, links carry "length" in meters).
//  2. A gob snapshot of the same data, written by SaveSnapshot, which
//     decodes an order of magnitude faster and is the format servers load
//     at startup.
//
// Both loaders validate structure and reject snapshots that reference
// unknown nodes or carry negative lengths.
package network

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/strollkit/strollkit/geo"
)

// nodeLinkDocument mirrors the relevant subset of the osmnx/networkx
// node-link JSON layout.
type nodeLinkDocument struct {
	Nodes []struct {
		ID json.Number `json:"id"`
		X  float64     `json:"x"` // longitude
		Y  float64     `json:"y"` // latitude
	} `json:"nodes"`
	Links []struct {
		Source json.Number `json:"source"`
		Target json.Number `json:"target"`
		Length float64     `json:"length"`
	} `json:"links"`
}

// LoadNodeLinkJSON builds a graph from an osmnx node-link JSON document.
// Walk networks are traversable in both directions, so every link is stored
// bidirectionally; duplicate parallel links simply add parallel arcs, and
// Dijkstra naturally prefers the shorter one.
//
// Errors: ErrBadSnapshot for structural problems, plus the AddEdge
// sentinels for semantic ones (unknown endpoint, negative length).
//
// Complexity: O(V + E).
func LoadNodeLinkJSON(r io.Reader) (*Graph, error) {
	var doc nodeLinkDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrBadSnapshot)
	}

	g := NewGraph()

	for _, n := range doc.Nodes {
		id, err := n.ID.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: node id %q", ErrBadSnapshot, n.ID.String())
		}
		c := geo.Coord{Lat: n.Y, Lon: n.X}
		if err = c.Validate(); err != nil {
			return nil, fmt.Errorf("%w: node %d: %v", ErrBadSnapshot, id, err)
		}
		g.AddNode(Node{ID: id, Coord: c})
	}

	for _, l := range doc.Links {
		from, err := l.Source.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: link source %q", ErrBadSnapshot, l.Source.String())
		}
		to, err := l.Target.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: link target %q", ErrBadSnapshot, l.Target.String())
		}
		if err = g.AddEdge(from, to, l.Length, true); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// snapshot is the gob wire form of a graph. Arcs are flattened so the
// encoded file carries each undirected edge once.
type snapshot struct {
	Nodes []Node
	Edges []snapshotEdge
}

type snapshotEdge struct {
	From   int64
	To     int64
	Length float64
}

// SaveSnapshot writes g to path in gob form. Each undirected edge is
// emitted once; LoadSnapshot restores both directions, matching how walk
// networks are built.
//
// Complexity: O(V + E).
func SaveSnapshot(g *Graph, path string) error {
	if g == nil || g.NodeCount() == 0 {
		return ErrEmptyNetwork
	}

	var snap snapshot
	for _, id := range g.NodeIDs() {
		snap.Nodes = append(snap.Nodes, g.nodes[id])
	}

	// Count arcs per unordered pair so a reverse arc marks the edge as
	// bidirectional and is not emitted twice.
	type pair struct{ a, b int64 }
	seen := make(map[pair]bool, g.edges/2)
	for _, id := range g.NodeIDs() {
		for _, a := range g.adj[id] {
			p := pair{id, a.To}
			if id > a.To {
				p = pair{a.To, id}
			}
			if seen[p] {
				continue
			}
			seen[p] = true
			snap.Edges = append(snap.Edges, snapshotEdge{From: id, To: a.To, Length: a.Length})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("network: create snapshot: %w", err)
	}
	defer f.Close()

	if err = gob.NewEncoder(f).Encode(&snap); err != nil {
		return fmt.Errorf("network: encode snapshot: %w", err)
	}

	return f.Close()
}

// LoadSnapshot reads a gob snapshot produced by SaveSnapshot.
//
// Complexity: O(V + E).
func LoadSnapshot(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("network: open snapshot: %w", err)
	}
	defer f.Close()

	var snap snapshot
	if err = gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if len(snap.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrBadSnapshot)
	}

	g := NewGraph()
	for _, n := range snap.Nodes {
		if err = n.Coord.Validate(); err != nil {
			return nil, fmt.Errorf("%w: node %d: %v", ErrBadSnapshot, n.ID, err)
		}
		g.AddNode(n)
	}
	for _, e := range snap.Edges {
		if err = g.AddEdge(e.From, e.To, e.Length, true); err != nil {
			return nil, err
		}
	}

	return g, nil
}
