package geocode

import (
	"context"
	"errors"

	"github.com/strollkit/strollkit/geo"
)

var (
	// ErrEmptyQuery indicates a blank geocoding query.
	ErrEmptyQuery = errors.New("geocode: empty query")

	// ErrNoMatch indicates the provider returned no candidate.
	ErrNoMatch = errors.New("geocode: no match for query")
)

// Geocoder resolves a free-form location query to a coordinate.
// Implementations must be safe for concurrent use.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (geo.Coord, error)
}

// GeocoderFunc adapts a function to the Geocoder interface.
type GeocoderFunc func(ctx context.Context, query string) (geo.Coord, error)

// Geocode implements Geocoder.
func (f GeocoderFunc) Geocode(ctx context.Context, query string) (geo.Coord, error) {
	return f(ctx, query)
}
