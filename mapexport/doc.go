// Package mapexport serializes a materialized route for presentation.
//
// Two consumers are served from one Payload:
//
//   - API clients get the Payload as plain JSON (stops in visit order, the
//     street-level polyline, the total distance and whether the order is a
//     proven optimum);
//   - humans get a self-contained Leaflet HTML page — the map centered on
//     the stop centroid, the route drawn as a polyline, and every stop
//     marked with its visit number.
//
// Renderers only read the Payload; building it from a route.Route is the
// job of FromRoute. The HTML page carries no server-side state and works
// from the filesystem.
package mapexport
