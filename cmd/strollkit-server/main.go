// strollkit-server exposes the trip-planning pipeline over HTTP.
//
// Endpoints:
//
//	POST /route   — plan a walking route over the loaded street network.
//	                Append ?format=html for the Leaflet map page instead
//	                of JSON.
//	GET  /health  — liveness probe.
//
// Configuration (environment, .env honored):
//
//	STROLLKIT_ADDR             listen address (default :8080)
//	STROLLKIT_NETWORK          street network snapshot, .json (node-link)
//	                           or .gob — required
//	STROLLKIT_CACHE            sqlite file for the pairwise-distance cache
//	                           (optional)
//	STROLLKIT_GOOGLE_MAPS_KEY  enables geocoding of address-only stops
//	                           (optional)
package main

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/strollkit/strollkit/distcache"
	"github.com/strollkit/strollkit/distmatrix"
	"github.com/strollkit/strollkit/geo"
	"github.com/strollkit/strollkit/geocode"
	"github.com/strollkit/strollkit/mapexport"
	"github.com/strollkit/strollkit/network"
	"github.com/strollkit/strollkit/planner"
	"github.com/strollkit/strollkit/poi"
	"github.com/strollkit/strollkit/route"
	"github.com/strollkit/strollkit/tour"
)

type server struct {
	graph    *network.Graph
	cache    distcache.Cache
	geocoder geocode.Geocoder
	renderer *mapexport.LeafletRenderer
}

// routeRequest is the POST /route body.
type routeRequest struct {
	POIs []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Address   string  `json:"address,omitempty"`
	} `json:"pois"`
	TourMode          string  `json:"tour_mode,omitempty"`
	Start             int     `json:"start,omitempty"`
	TimeBudgetSeconds float64 `json:"time_budget_seconds,omitempty"`
	SnapRadiusMeters  float64 `json:"snap_radius_meters,omitempty"`
}

func (s *server) handleRoute(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	mode, err := tour.ParseMode(req.TourMode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	queries := make([]poi.Query, len(req.POIs))
	for i, p := range req.POIs {
		queries[i] = poi.Query{
			Name:    p.Name,
			Coord:   geo.Coord{Lat: p.Latitude, Lon: p.Longitude},
			Address: p.Address,
		}
	}

	cfg := planner.DefaultConfig()
	cfg.TourMode = mode
	cfg.Start = req.Start
	cfg.Workers = runtime.NumCPU()
	cfg.Cache = s.cache
	cfg.Geocoder = s.geocoder
	if req.TimeBudgetSeconds > 0 {
		cfg.TimeBudget = time.Duration(req.TimeBudgetSeconds * float64(time.Second))
	}
	if req.SnapRadiusMeters > 0 {
		cfg.SnapRadiusMeters = req.SnapRadiusMeters
	}

	started := time.Now()
	out, err := planner.Plan(c.Request.Context(), s.graph, queries, cfg)
	if err != nil {
		log.Printf("route: %d stops rejected: %v", len(queries), err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})

		return
	}
	log.Printf("route: %d stops, %.0f m, proven=%v, %s",
		len(out.Stops), out.Route.TotalMeters, out.Tour.Proven, time.Since(started))

	if c.Query("format") == "html" {
		var buf bytes.Buffer
		if err = s.renderer.Render(&buf, out.Payload); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())

		return
	}

	c.JSON(http.StatusOK, out.Payload)
}

// statusFor maps pipeline sentinels to HTTP statuses: caller mistakes are
// 4xx, solvable-but-not-in-time is 503, everything else 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, planner.ErrNoQueries),
		errors.Is(err, poi.ErrNoGeocoder),
		errors.Is(err, poi.ErrBadSnapRadius),
		errors.Is(err, tour.ErrBadOptions),
		errors.Is(err, tour.ErrStartOutOfRange),
		errors.Is(err, tour.ErrNoFeasibleTour):
		return http.StatusBadRequest
	case errors.Is(err, poi.ErrUnresolvedLocation),
		errors.Is(err, distmatrix.ErrUnreachablePair):
		return http.StatusUnprocessableEntity
	case errors.Is(err, tour.ErrOptimizerTimeout):
		return http.StatusServiceUnavailable
	case errors.Is(err, route.ErrDistanceMismatch):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// loadNetwork reads a street network snapshot by extension.
func loadNetwork(path string) (*network.Graph, error) {
	if filepath.Ext(path) == ".gob" {
		return network.LoadSnapshot(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return network.LoadNodeLinkJSON(f)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	networkPath := os.Getenv("STROLLKIT_NETWORK")
	if networkPath == "" {
		log.Fatal("STROLLKIT_NETWORK is required (street network snapshot, .json or .gob)")
	}

	g, err := loadNetwork(networkPath)
	if err != nil {
		log.Fatalf("Failed to load street network from %s: %v", networkPath, err)
	}
	log.Printf("Street network loaded: %d nodes, %d arcs", g.NodeCount(), g.ArcCount())

	s := &server{graph: g, renderer: mapexport.NewLeafletRenderer()}

	if cachePath := os.Getenv("STROLLKIT_CACHE"); cachePath != "" {
		cache, cerr := distcache.OpenSQLite(cachePath)
		if cerr != nil {
			log.Fatalf("Failed to open distance cache %s: %v", cachePath, cerr)
		}
		defer cache.Close()
		s.cache = cache
		log.Printf("Distance cache: %s", cachePath)
	}

	if key := os.Getenv("STROLLKIT_GOOGLE_MAPS_KEY"); key != "" {
		geocoder, gerr := geocode.NewGoogleGeocoder(key)
		if gerr != nil {
			log.Fatalf("Failed to init geocoder: %v", gerr)
		}
		s.geocoder = geocoder
		log.Println("Geocoding enabled for address-only stops")
	}

	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"*"}
	r.Use(cors.New(corsCfg))

	r.POST("/route", s.handleRoute)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "nodes": g.NodeCount()})
	})

	addr := os.Getenv("STROLLKIT_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("strollkit server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
