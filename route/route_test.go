package route_test

import (
	"context"
	"testing"

	"github.com/strollkit/strollkit/distcache"
	"github.com/strollkit/strollkit/distmatrix"
	"github.com/strollkit/strollkit/geo"
	"github.com/strollkit/strollkit/network"
	"github.com/strollkit/strollkit/poi"
	"github.com/strollkit/strollkit/route"
	"github.com/strollkit/strollkit/tour"
	"github.com/stretchr/testify/require"
)

const meterInDegrees = 1.0 / 111194.9

// lattice builds a rows×cols street grid (100 m spacing) and resolves one
// stop per requested node ID.
func lattice(t *testing.T, rows, cols int, stopNodes ...int64) (*network.Graph, []poi.POI) {
	t.Helper()

	g := network.NewGraph()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.AddNode(network.Node{
				ID: int64(r*cols + c + 1),
				Coord: geo.Coord{
					Lat: float64(r) * 100 * meterInDegrees,
					Lon: float64(c) * 100 * meterInDegrees,
				},
			})
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			id := int64(r*cols + c + 1)
			if c+1 < cols {
				require.NoError(t, g.AddEdge(id, id+1, 100, true))
			}
			if r+1 < rows {
				require.NoError(t, g.AddEdge(id, id+int64(cols), 100, true))
			}
		}
	}

	queries := make([]poi.Query, 0, len(stopNodes))
	for i, id := range stopNodes {
		node, ok := g.Node(id)
		require.True(t, ok)
		queries = append(queries, poi.Query{
			Name:  string(rune('A' + i)),
			Coord: node.Coord,
		})
	}
	stops, err := poi.Resolve(context.Background(), g, queries, poi.DefaultOptions())
	require.NoError(t, err)

	return g, stops
}

// solveAndTrace runs matrix → optimizer → materializer in one go.
func solveAndTrace(t *testing.T, g *network.Graph, dm *distmatrix.Result, mode tour.Mode) (*route.Route, tour.Result) {
	t.Helper()

	res, err := tour.Solve(dm.Matrix, tour.WithMode(mode))
	require.NoError(t, err)

	r, err := route.Materialize(g, dm, res, mode)
	require.NoError(t, err)

	return r, res
}

func TestMaterialize_ClosedLoop(t *testing.T) {
	// Corners of a 3×3 grid; the optimal loop walks the perimeter.
	g, stops := lattice(t, 3, 3, 1, 3, 9, 7)

	dm, err := distmatrix.Build(context.Background(), g, stops)
	require.NoError(t, err)

	r, res := solveAndTrace(t, g, dm, tour.Closed)

	require.True(t, r.Closed)
	require.Len(t, r.Legs, 4) // n legs including the return
	require.InDelta(t, 800.0, r.TotalMeters, 1e-6)
	require.InDelta(t, res.Distance, r.TotalMeters, 1e-3)

	// Closed polyline ends where it starts.
	require.Equal(t, r.NodeIDs[0], r.NodeIDs[len(r.NodeIDs)-1])
	require.Equal(t, r.Stops[0].NodeID, r.NodeIDs[0])

	// Legs share boundary nodes and the concatenation dedupes them.
	for k := 0; k+1 < len(r.Legs); k++ {
		prev := r.Legs[k].NodeIDs
		next := r.Legs[k+1].NodeIDs
		require.Equal(t, prev[len(prev)-1], next[0])
	}
	for i := 0; i+1 < len(r.NodeIDs); i++ {
		require.NotEqual(t, r.NodeIDs[i], r.NodeIDs[i+1])
	}

	// Points align with NodeIDs.
	require.Len(t, r.Points, len(r.NodeIDs))
	for i, id := range r.NodeIDs {
		node, ok := g.Node(id)
		require.True(t, ok)
		require.Equal(t, node.Coord, r.Points[i])
	}
}

func TestMaterialize_OpenPath(t *testing.T) {
	g, stops := lattice(t, 3, 3, 1, 9, 3)

	dm, err := distmatrix.Build(context.Background(), g, stops)
	require.NoError(t, err)

	r, _ := solveAndTrace(t, g, dm, tour.Open)

	require.False(t, r.Closed)
	require.Len(t, r.Legs, 2) // n−1 legs, no return
	require.Equal(t, r.Stops[0].NodeID, r.NodeIDs[0])
	require.Equal(t, r.Stops[len(r.Stops)-1].NodeID, r.NodeIDs[len(r.NodeIDs)-1])

	// Stops in visit order map back through Order.
	for k, idx := range r.Order {
		require.Equal(t, dm.Stops[idx], r.Stops[k])
	}
}

func TestMaterialize_RecomputesCachedTrees(t *testing.T) {
	g, stops := lattice(t, 3, 3, 1, 3, 9)
	cache := distcache.NewMemory()
	ctx := context.Background()

	_, err := distmatrix.Build(ctx, g, stops, distmatrix.WithCache(cache))
	require.NoError(t, err)

	// Second build is fully cache-served: every tree is nil.
	dm, err := distmatrix.Build(ctx, g, stops, distmatrix.WithCache(cache))
	require.NoError(t, err)
	for _, tree := range dm.Trees {
		require.Nil(t, tree)
	}

	r, res := solveAndTrace(t, g, dm, tour.Closed)
	require.InDelta(t, res.Distance, r.TotalMeters, 1e-3)
	require.NotEmpty(t, r.NodeIDs)

	// The builder's result stays untouched.
	for _, tree := range dm.Trees {
		require.Nil(t, tree)
	}
}

func TestMaterialize_DistanceMismatch(t *testing.T) {
	g, stops := lattice(t, 3, 3, 1, 3, 9)

	dm, err := distmatrix.Build(context.Background(), g, stops)
	require.NoError(t, err)

	res, err := tour.Solve(dm.Matrix)
	require.NoError(t, err)

	res.Distance += 50 // pretend the optimizer scored different legs

	_, err = route.Materialize(g, dm, res, tour.Closed)
	require.ErrorIs(t, err, route.ErrDistanceMismatch)
}

func TestMaterialize_Validation(t *testing.T) {
	g, stops := lattice(t, 2, 2, 1, 4)

	dm, err := distmatrix.Build(context.Background(), g, stops)
	require.NoError(t, err)

	res, err := tour.Solve(dm.Matrix)
	require.NoError(t, err)

	_, err = route.Materialize(nil, dm, res, tour.Closed)
	require.ErrorIs(t, err, route.ErrNilInput)

	_, err = route.Materialize(g, nil, res, tour.Closed)
	require.ErrorIs(t, err, route.ErrNilInput)

	bad := res
	bad.Order = []int{0, 0}
	_, err = route.Materialize(g, dm, bad, tour.Closed)
	require.ErrorIs(t, err, route.ErrBadOrder)

	short := res
	short.Order = []int{0}
	_, err = route.Materialize(g, dm, short, tour.Closed)
	require.ErrorIs(t, err, route.ErrBadOrder)
}
