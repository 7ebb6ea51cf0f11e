// Package geocode resolves address-like queries to WGS84 coordinates.
//
// The pipeline treats geocoding as an external capability: the Geocoder
// interface is the contract, GoogleGeocoder is the production
// implementation backed by the Google Maps Geocoding API, and GeocoderFunc
// adapts plain functions (handy for tests and offline fixtures).
//
// Errors:
//
//   - ErrEmptyQuery: the query string is blank.
//   - ErrNoMatch:    the provider returned no candidate for the query.
package geocode
