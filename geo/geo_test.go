package geo_test

import (
	"testing"

	"github.com/strollkit/strollkit/geo"
	"github.com/stretchr/testify/require"
)

func TestHaversine_ZeroForIdenticalPoints(t *testing.T) {
	p := geo.Coord{Lat: 48.8584, Lon: 2.2945}
	require.Equal(t, 0.0, geo.Haversine(p, p))
}

func TestHaversine_KnownDistance(t *testing.T) {
	// Eiffel Tower → Louvre, roughly 3.2 km as the crow flies.
	eiffel := geo.Coord{Lat: 48.8584, Lon: 2.2945}
	louvre := geo.Coord{Lat: 48.8606, Lon: 2.3376}

	d := geo.Haversine(eiffel, louvre)
	require.InDelta(t, 3170, d, 100)
}

func TestHaversine_Symmetric(t *testing.T) {
	a := geo.Coord{Lat: 45.5019, Lon: -73.5674}
	b := geo.Coord{Lat: 45.5088, Lon: -73.5617}
	require.InDelta(t, geo.Haversine(a, b), geo.Haversine(b, a), 1e-9)
}

func TestCoord_Validate(t *testing.T) {
	require.NoError(t, geo.Coord{Lat: 0, Lon: 0}.Validate())
	require.NoError(t, geo.Coord{Lat: -90, Lon: 180}.Validate())
	require.ErrorIs(t, geo.Coord{Lat: 91, Lon: 0}.Validate(), geo.ErrInvalidCoordinate)
	require.ErrorIs(t, geo.Coord{Lat: 0, Lon: -181}.Validate(), geo.ErrInvalidCoordinate)
}

func TestCentroid(t *testing.T) {
	coords := []geo.Coord{
		{Lat: 0, Lon: 0},
		{Lat: 2, Lon: 4},
	}
	c, err := geo.Centroid(coords)
	require.NoError(t, err)
	require.InDelta(t, 1.0, c.Lat, 1e-12)
	require.InDelta(t, 2.0, c.Lon, 1e-12)

	_, err = geo.Centroid(nil)
	require.ErrorIs(t, err, geo.ErrEmptyCoordinateSet)
}
