package geo

import (
	"errors"
	"math"
)

// EarthRadiusMeters is the mean Earth radius used by Haversine.
const EarthRadiusMeters = 6371000.0

var (
	// ErrInvalidCoordinate indicates a latitude outside [-90,90] or a
	// longitude outside [-180,180].
	ErrInvalidCoordinate = errors.New("geo: coordinate out of range")

	// ErrEmptyCoordinateSet indicates Centroid was called with no coordinates.
	ErrEmptyCoordinateSet = errors.New("geo: empty coordinate set")
)

// Coord is a WGS84 coordinate in decimal degrees.
type Coord struct {
	Lat float64 // latitude, [-90,90]
	Lon float64 // longitude, [-180,180]
}

// Validate reports whether c lies within the WGS84 domain.
//
// Complexity: O(1).
func (c Coord) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return ErrInvalidCoordinate
	}
	if c.Lat < -90 || c.Lat > 90 {
		return ErrInvalidCoordinate
	}
	if c.Lon < -180 || c.Lon > 180 {
		return ErrInvalidCoordinate
	}

	return nil
}

// Haversine returns the great-circle distance between a and b in meters.
//
// The haversine formulation is numerically stable for the short distances
// this pipeline cares about (snapping a query point to a street node).
//
// Complexity: O(1).
func Haversine(a, b Coord) float64 {
	var (
		latA = a.Lat * math.Pi / 180
		latB = b.Lat * math.Pi / 180
		dLat = (b.Lat - a.Lat) * math.Pi / 180
		dLon = (b.Lon - a.Lon) * math.Pi / 180
	)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// Centroid returns the arithmetic mean of the given coordinates.
// It is intended for viewport centering, not for geodesic averaging across
// the antimeridian.
//
// Complexity: O(n).
func Centroid(coords []Coord) (Coord, error) {
	if len(coords) == 0 {
		return Coord{}, ErrEmptyCoordinateSet
	}

	var (
		sumLat float64
		sumLon float64
		i      int
	)
	for i = 0; i < len(coords); i++ {
		sumLat += coords[i].Lat
		sumLon += coords[i].Lon
	}

	return Coord{
		Lat: sumLat / float64(len(coords)),
		Lon: sumLon / float64(len(coords)),
	}, nil
}
