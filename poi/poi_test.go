package poi_test

import (
	"context"
	"testing"

	"github.com/strollkit/strollkit/geo"
	"github.com/strollkit/strollkit/geocode"
	"github.com/strollkit/strollkit/network"
	"github.com/strollkit/strollkit/poi"
	"github.com/stretchr/testify/require"
)

// lineGraph builds a 1×n path of nodes spaced 100 m apart along the equator.
func lineGraph(t *testing.T, n int) *network.Graph {
	t.Helper()

	const meterInDegrees = 1.0 / 111194.9
	g := network.NewGraph()
	for i := 0; i < n; i++ {
		g.AddNode(network.Node{
			ID:    int64(i + 1),
			Coord: geo.Coord{Lat: 0, Lon: float64(i) * 100 * meterInDegrees},
		})
	}
	for i := 1; i < n; i++ {
		require.NoError(t, g.AddEdge(int64(i), int64(i+1), 100, true))
	}

	return g
}

func TestResolve_SnapsToNearestNode(t *testing.T) {
	g := lineGraph(t, 4)
	node2, _ := g.Node(2)

	pois, err := poi.Resolve(context.Background(), g, []poi.Query{
		{Name: "museum", Coord: geo.Coord{Lat: node2.Coord.Lat, Lon: node2.Coord.Lon + 1e-7}},
	}, poi.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, pois, 1)
	require.Equal(t, "museum", pois[0].Name)
	require.Equal(t, int64(2), pois[0].NodeID)
	require.Less(t, pois[0].SnapDistance, 1.0)
}

func TestResolve_OutsideSnapRadius(t *testing.T) {
	g := lineGraph(t, 4)

	_, err := poi.Resolve(context.Background(), g, []poi.Query{
		{Name: "cathedral", Coord: geo.Coord{Lat: 1, Lon: 1}}, // ~157 km away
	}, poi.DefaultOptions())
	require.ErrorIs(t, err, poi.ErrUnresolvedLocation)
	require.Contains(t, err.Error(), "cathedral")
}

func TestResolve_PreservesOrder(t *testing.T) {
	g := lineGraph(t, 4)
	n1, _ := g.Node(1)
	n4, _ := g.Node(4)

	pois, err := poi.Resolve(context.Background(), g, []poi.Query{
		{Name: "b", Coord: n4.Coord},
		{Name: "a", Coord: n1.Coord},
	}, poi.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, "b", pois[0].Name)
	require.Equal(t, int64(4), pois[0].NodeID)
	require.Equal(t, "a", pois[1].Name)
	require.Equal(t, int64(1), pois[1].NodeID)
}

func TestResolve_AddressViaGeocoder(t *testing.T) {
	g := lineGraph(t, 4)
	n3, _ := g.Node(3)

	opts := poi.DefaultOptions()
	opts.Geocoder = geocode.GeocoderFunc(func(_ context.Context, query string) (geo.Coord, error) {
		require.Equal(t, "Old Town Square", query)

		return n3.Coord, nil
	})

	pois, err := poi.Resolve(context.Background(), g, []poi.Query{
		{Name: "square", Address: "Old Town Square"},
	}, opts)
	require.NoError(t, err)
	require.Equal(t, int64(3), pois[0].NodeID)
}

func TestResolve_AddressWithoutGeocoder(t *testing.T) {
	g := lineGraph(t, 2)

	_, err := poi.Resolve(context.Background(), g, []poi.Query{
		{Name: "square", Address: "Old Town Square"},
	}, poi.DefaultOptions())
	require.ErrorIs(t, err, poi.ErrNoGeocoder)
}

func TestResolve_BadInputs(t *testing.T) {
	g := lineGraph(t, 2)

	_, err := poi.Resolve(context.Background(), g, nil, poi.Options{SnapRadiusMeters: 0})
	require.ErrorIs(t, err, poi.ErrBadSnapRadius)

	_, err = poi.Resolve(context.Background(), network.NewGraph(), nil, poi.DefaultOptions())
	require.ErrorIs(t, err, network.ErrEmptyNetwork)

	_, err = poi.Resolve(context.Background(), g, []poi.Query{
		{Name: "broken", Coord: geo.Coord{Lat: 99, Lon: 0}},
	}, poi.DefaultOptions())
	require.ErrorIs(t, err, geo.ErrInvalidCoordinate)
}
