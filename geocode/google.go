package geocode

import (
	"context"
	"fmt"

	maps "googlemaps.github.io/maps"

	"github.com/strollkit/strollkit/geo"
)

// GoogleGeocoder resolves queries through the Google Maps Geocoding API.
type GoogleGeocoder struct {
	client *maps.Client
}

// NewGoogleGeocoder builds a geocoder from an API key.
func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("geocode: maps client: %w", err)
	}

	return &GoogleGeocoder{client: client}, nil
}

// Geocode implements Geocoder. The first (best-ranked) candidate wins,
// matching the provider's own ordering.
func (g *GoogleGeocoder) Geocode(ctx context.Context, query string) (geo.Coord, error) {
	if query == "" {
		return geo.Coord{}, ErrEmptyQuery
	}

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		return geo.Coord{}, fmt.Errorf("geocode: %q: %w", query, err)
	}
	if len(results) == 0 {
		return geo.Coord{}, fmt.Errorf("%w: %q", ErrNoMatch, query)
	}

	loc := results[0].Geometry.Location

	return geo.Coord{Lat: loc.Lat, Lon: loc.Lng}, nil
}
