package route

import (
	"errors"
	"fmt"
	"math"

	"github.com/strollkit/strollkit/distmatrix"
	"github.com/strollkit/strollkit/geo"
	"github.com/strollkit/strollkit/network"
	"github.com/strollkit/strollkit/poi"
	"github.com/strollkit/strollkit/tour"
)

// Sentinel errors returned by Materialize.
var (
	// ErrNilInput indicates a nil graph, matrix result or empty order.
	ErrNilInput = errors.New("route: nil input")

	// ErrBadOrder indicates an order that is not a permutation of the stops.
	ErrBadOrder = errors.New("route: order does not match stops")

	// ErrDistanceMismatch indicates the traced polyline length disagrees
	// with the optimizer's reported distance.
	ErrDistanceMismatch = errors.New("route: polyline length disagrees with optimizer distance")
)

// distanceTol is the relative tolerance for the polyline/optimizer
// cross-check. Covers float accumulation order, nothing more.
const distanceTol = 1e-6

// Leg is one stop-to-stop segment of the materialized route.
//
// From and To index Route.Stops (visit order, not the builder's input
// order). NodeIDs and Points include both endpoints.
type Leg struct {
	From    int
	To      int
	NodeIDs []int64
	Points  []geo.Coord
	Meters  float64
}

// Route is a fully materialized walking route.
//
// Stops holds the resolved stops in visit order; Order maps each visit
// position back to the index in the matrix builder's stop list. NodeIDs
// and Points are the concatenated street-level polyline with shared leg
// boundaries deduplicated. For a closed tour the polyline ends where it
// starts.
type Route struct {
	Stops       []poi.POI
	Order       []int
	Legs        []Leg
	NodeIDs     []int64
	Points      []geo.Coord
	TotalMeters float64
	Closed      bool
}

// Materialize traces the street-level polyline for a solved visiting order.
//
// dm supplies the stops and any predecessor trees kept from the matrix
// build; rows that were served from cache carry a nil tree and are
// recomputed here on demand. dm is not mutated.
//
// Complexity: O(k·(V+E) log V) worst case for k missing trees, O(total
// path length) otherwise.
func Materialize(g *network.Graph, dm *distmatrix.Result, res tour.Result, mode tour.Mode) (*Route, error) {
	if g == nil || dm == nil || dm.Matrix == nil || len(res.Order) == 0 {
		return nil, ErrNilInput
	}
	n := len(dm.Stops)
	if err := checkOrder(res.Order, n); err != nil {
		return nil, err
	}

	// Local tree cache: start from what the builder kept, fill gaps lazily.
	trees := make([]*network.Tree, n)
	copy(trees, dm.Trees)
	treeFor := func(i int) (*network.Tree, error) {
		if trees[i] != nil {
			return trees[i], nil
		}
		t, err := network.ShortestPathTree(g, dm.Stops[i].NodeID)
		if err != nil {
			return nil, fmt.Errorf("route: tree for stop %q: %w", dm.Stops[i].Name, err)
		}
		trees[i] = t

		return t, nil
	}

	closed := mode == tour.Closed
	legPairs := make([][2]int, 0, n)
	for k := 0; k+1 < n; k++ {
		legPairs = append(legPairs, [2]int{k, k + 1})
	}
	if closed && n > 1 {
		legPairs = append(legPairs, [2]int{n - 1, 0})
	}

	r := &Route{
		Stops:  make([]poi.POI, n),
		Order:  make([]int, n),
		Legs:   make([]Leg, 0, len(legPairs)),
		Closed: closed,
	}
	copy(r.Order, res.Order)
	for k, idx := range res.Order {
		r.Stops[k] = dm.Stops[idx]
	}

	var total float64
	for _, pair := range legPairs {
		si, sj := res.Order[pair[0]], res.Order[pair[1]]
		tree, err := treeFor(si)
		if err != nil {
			return nil, err
		}

		dst := dm.Stops[sj].NodeID
		path, err := tree.PathTo(dst)
		if err != nil {
			return nil, fmt.Errorf("route: leg %q→%q: %w",
				dm.Stops[si].Name, dm.Stops[sj].Name, err)
		}
		meters, ok := tree.DistanceTo(dst)
		if !ok {
			return nil, fmt.Errorf("route: leg %q→%q: %w",
				dm.Stops[si].Name, dm.Stops[sj].Name, network.ErrNoPath)
		}

		leg := Leg{
			From:    pair[0],
			To:      pair[1],
			NodeIDs: path,
			Points:  coordsOf(g, path),
			Meters:  meters,
		}
		r.Legs = append(r.Legs, leg)
		total += meters

		// Concatenate, dropping the shared boundary node after the first leg.
		if len(r.NodeIDs) == 0 {
			r.NodeIDs = append(r.NodeIDs, path...)
			r.Points = append(r.Points, leg.Points...)
		} else {
			r.NodeIDs = append(r.NodeIDs, path[1:]...)
			r.Points = append(r.Points, leg.Points[1:]...)
		}
	}
	r.TotalMeters = total

	// The optimizer scored the same legs off the matrix; any real gap means
	// the matrix and the network have diverged.
	ref := math.Max(1, res.Distance)
	if math.Abs(total-res.Distance) > distanceTol*ref {
		return nil, fmt.Errorf("%w: polyline %.6f m, optimizer %.6f m",
			ErrDistanceMismatch, total, res.Distance)
	}

	return r, nil
}

// checkOrder verifies order is a permutation of [0, n).
func checkOrder(order []int, n int) error {
	if len(order) != n {
		return fmt.Errorf("%w: %d positions for %d stops", ErrBadOrder, len(order), n)
	}
	seen := make([]bool, n)
	for _, v := range order {
		if v < 0 || v >= n || seen[v] {
			return fmt.Errorf("%w: index %d", ErrBadOrder, v)
		}
		seen[v] = true
	}

	return nil
}

// coordsOf maps node IDs to their coordinates.
func coordsOf(g *network.Graph, ids []int64) []geo.Coord {
	pts := make([]geo.Coord, len(ids))
	for i, id := range ids {
		node, _ := g.Node(id)
		pts[i] = node.Coord
	}

	return pts
}
