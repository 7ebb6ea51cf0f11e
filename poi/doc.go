// Package poi resolves named stops (points of interest) onto a street
// network.
//
// What:
//
//   - Query names a stop either by coordinate or by an address-like string
//     (resolved through a geocode.Geocoder when one is supplied).
//   - Resolve snaps every query to its nearest network node by great-circle
//     distance, enforcing a configurable snap radius.
//   - POI is the immutable result: the original query coordinate, the
//     nearest node, and the snap distance.
//
// Why:
//
//   - The distance matrix and the materialized route are defined over graph
//     nodes, not raw coordinates; snapping is the boundary between the two.
//   - A bounded snap radius turns "this stop is outside the loaded map"
//     into an explicit, named failure instead of a silently absurd route.
//
// Complexity:
//
//   - Resolve: O(Q·V) (one nearest-node scan per query).
//
// Errors:
//
//   - ErrUnresolvedLocation: no node within the snap radius; the wrapped
//     message names the offending stop.
//   - ErrNoGeocoder: an address query was given without a Geocoder.
//   - ErrBadSnapRadius: non-positive snap radius.
package poi
