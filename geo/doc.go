// Package geo provides the minimal geographic primitives shared by the
// route-planning pipeline: a latitude/longitude coordinate type, great-circle
// (haversine) distances in meters, and a centroid helper used for map centering.
//
// What:
//
//   - Coord is a WGS84 latitude/longitude pair in decimal degrees.
//   - Haversine computes the great-circle distance between two coordinates.
//   - Centroid averages a non-empty coordinate set.
//
// Why:
//
//   - Nearest-node snapping needs a fast, dependency-free distance estimate.
//   - Map export centers the viewport on the mean stop coordinate.
//
// Complexity:
//
//   - Haversine: O(1).
//   - Centroid:  O(n).
//
// Errors:
//
//   - ErrInvalidCoordinate: latitude outside [-90,90] or longitude outside [-180,180].
//   - ErrEmptyCoordinateSet: Centroid called with no coordinates.
package geo
