package poi

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/strollkit/strollkit/geo"
	"github.com/strollkit/strollkit/geocode"
	"github.com/strollkit/strollkit/network"
)

// DefaultSnapRadiusMeters is the default maximum allowed distance between a
// query coordinate and its nearest network node. Generous enough for urban
// walk networks, tight enough to catch stops outside the loaded region.
const DefaultSnapRadiusMeters = 250.0

var (
	// ErrUnresolvedLocation indicates a stop has no network node within the
	// snap radius (typically: the query lies outside the loaded region).
	ErrUnresolvedLocation = errors.New("poi: location outside network coverage")

	// ErrNoGeocoder indicates an address-only query was given but no
	// Geocoder was configured.
	ErrNoGeocoder = errors.New("poi: address query requires a geocoder")

	// ErrBadSnapRadius indicates a non-positive snap radius.
	ErrBadSnapRadius = errors.New("poi: snap radius must be positive")
)

// Query names one stop to visit. Either Coord is set, or Address is
// non-empty and Coord is resolved through a geocoder first.
type Query struct {
	Name    string
	Coord   geo.Coord
	Address string // optional; used when Coord is the zero value
}

// POI is a resolved stop. Immutable after Resolve.
type POI struct {
	Name         string
	Coord        geo.Coord // the query coordinate (possibly geocoded)
	NodeID       int64     // nearest network node
	NodeCoord    geo.Coord // that node's position
	SnapDistance float64   // meters between Coord and NodeCoord
}

// Options configures Resolve.
//
// SnapRadiusMeters — maximum allowed snap distance (default
// DefaultSnapRadiusMeters).
// Geocoder — optional resolver for address-only queries.
type Options struct {
	SnapRadiusMeters float64
	Geocoder         geocode.Geocoder
}

// DefaultOptions returns the Resolve defaults.
func DefaultOptions() Options {
	return Options{SnapRadiusMeters: DefaultSnapRadiusMeters}
}

// Resolve snaps every query onto its nearest node in g.
//
// Stages per query:
//  1. Geocode the address when no coordinate was given.
//  2. Validate the coordinate.
//  3. Nearest-node lookup; reject when the snap distance exceeds the radius.
//
// The output preserves query order. Resolution is all-or-nothing: the first
// failing query aborts with an error naming it.
//
// Complexity: O(Q·V).
func Resolve(ctx context.Context, g *network.Graph, queries []Query, opts Options) ([]POI, error) {
	if opts.SnapRadiusMeters <= 0 || math.IsNaN(opts.SnapRadiusMeters) {
		return nil, ErrBadSnapRadius
	}
	if g == nil || g.NodeCount() == 0 {
		return nil, network.ErrEmptyNetwork
	}

	out := make([]POI, 0, len(queries))

	var (
		q    Query
		c    geo.Coord
		n    network.Node
		d    float64
		err  error
		zero geo.Coord
	)
	for _, q = range queries {
		c = q.Coord
		if c == zero && q.Address != "" {
			if opts.Geocoder == nil {
				return nil, fmt.Errorf("%w: %q", ErrNoGeocoder, q.Name)
			}
			c, err = opts.Geocoder.Geocode(ctx, q.Address)
			if err != nil {
				return nil, fmt.Errorf("poi: %q: %w", q.Name, err)
			}
		}
		if err = c.Validate(); err != nil {
			return nil, fmt.Errorf("poi: %q: %w", q.Name, err)
		}

		n, d, err = g.NearestNode(c)
		if err != nil {
			return nil, fmt.Errorf("poi: %q: %w", q.Name, err)
		}
		if d > opts.SnapRadiusMeters {
			return nil, fmt.Errorf("%w: %q is %.0fm from the nearest node (radius %.0fm)",
				ErrUnresolvedLocation, q.Name, d, opts.SnapRadiusMeters)
		}

		out = append(out, POI{
			Name:         q.Name,
			Coord:        c,
			NodeID:       n.ID,
			NodeCoord:    n.Coord,
			SnapDistance: d,
		})
	}

	return out, nil
}
