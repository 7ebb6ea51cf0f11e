package planner

import (
	"context"
	"errors"
	"time"

	"github.com/strollkit/strollkit/distcache"
	"github.com/strollkit/strollkit/distmatrix"
	"github.com/strollkit/strollkit/geocode"
	"github.com/strollkit/strollkit/mapexport"
	"github.com/strollkit/strollkit/network"
	"github.com/strollkit/strollkit/poi"
	"github.com/strollkit/strollkit/route"
	"github.com/strollkit/strollkit/tour"
)

// ErrNoQueries indicates Plan was called with an empty stop list.
var ErrNoQueries = errors.New("planner: no stops given")

// Config configures one Plan run. The zero value plus DefaultConfig's
// overrides is a sensible urban walking setup.
//
// TourMode         — closed loop (default) or open path.
// Start            — index of the fixed starting stop in the query list.
// TimeBudget       — wall-clock bound for the heuristic optimizer; 0 = none.
// SnapRadiusMeters — maximum stop-to-node snap distance; 0 = package default.
// ExactThreshold   — largest stop count solved exactly; 0 = solver default.
// Workers          — matrix builder fan-out; 0 = sequential.
// Restarts / Seed  — heuristic multi-start schedule.
// Cache            — optional pairwise-distance cache (nil = none).
// Geocoder         — optional resolver for address-only stops (nil = none).
type Config struct {
	TourMode         tour.Mode
	Start            int
	TimeBudget       time.Duration
	SnapRadiusMeters float64
	ExactThreshold   int
	Workers          int
	Restarts         int
	Seed             int64
	Cache            distcache.Cache
	Geocoder         geocode.Geocoder
}

// DefaultConfig returns the pipeline defaults.
func DefaultConfig() Config {
	return Config{
		TourMode:         tour.Closed,
		SnapRadiusMeters: poi.DefaultSnapRadiusMeters,
	}
}

// Outcome bundles everything one Plan run produced.
//
// Stops is the resolved stop list in visit order (same backing data as
// Route.Stops). Payload is ready for JSON responses and HTML export.
type Outcome struct {
	Stops   []poi.POI
	Tour    tour.Result
	Route   *route.Route
	Payload mapexport.Payload
}

// ExportHTML writes the Leaflet map artifact for this outcome.
func (o *Outcome) ExportHTML(path string) error {
	return mapexport.WriteFile(path, mapexport.NewLeafletRenderer(), o.Payload)
}

// Plan executes the full pipeline over g for the given stops.
//
// Stage errors pass through unwrapped-but-chained, so callers can match
// the stage sentinels (poi.ErrUnresolvedLocation,
// distmatrix.ErrUnreachablePair, tour.ErrNoFeasibleTour,
// tour.ErrOptimizerTimeout, route.ErrDistanceMismatch) with errors.Is.
func Plan(ctx context.Context, g *network.Graph, queries []poi.Query, cfg Config) (*Outcome, error) {
	if len(queries) == 0 {
		return nil, ErrNoQueries
	}

	popts := poi.DefaultOptions()
	if cfg.SnapRadiusMeters > 0 {
		popts.SnapRadiusMeters = cfg.SnapRadiusMeters
	}
	popts.Geocoder = cfg.Geocoder
	stops, err := poi.Resolve(ctx, g, queries, popts)
	if err != nil {
		return nil, err
	}

	var mopts []distmatrix.Option
	if cfg.Workers > 0 {
		mopts = append(mopts, distmatrix.WithWorkers(cfg.Workers))
	}
	if cfg.Cache != nil {
		mopts = append(mopts, distmatrix.WithCache(cfg.Cache))
	}
	dm, err := distmatrix.Build(ctx, g, stops, mopts...)
	if err != nil {
		return nil, err
	}

	topts := []tour.Option{
		tour.WithMode(cfg.TourMode),
		tour.WithStart(cfg.Start),
	}
	if cfg.ExactThreshold > 0 {
		topts = append(topts, tour.WithExactThreshold(cfg.ExactThreshold))
	}
	if cfg.TimeBudget > 0 {
		topts = append(topts, tour.WithTimeBudget(cfg.TimeBudget))
	}
	if cfg.Restarts > 0 {
		topts = append(topts, tour.WithRestarts(cfg.Restarts))
	}
	if cfg.Seed != 0 {
		topts = append(topts, tour.WithSeed(cfg.Seed))
	}
	res, err := tour.Solve(dm.Matrix, topts...)
	if err != nil {
		return nil, err
	}

	r, err := route.Materialize(g, dm, res, cfg.TourMode)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Stops:   r.Stops,
		Tour:    res,
		Route:   r,
		Payload: mapexport.FromRoute(r, res.Proven),
	}, nil
}
