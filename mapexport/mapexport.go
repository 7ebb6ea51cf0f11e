package mapexport

import (
	"errors"
	"io"
	"os"

	"github.com/strollkit/strollkit/geo"
	"github.com/strollkit/strollkit/route"
)

// ErrEmptyRoute indicates a payload without a single path point.
var ErrEmptyRoute = errors.New("mapexport: empty route")

// Stop is one visited stop in presentation form.
type Stop struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Point is one vertex of the walkable polyline.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Payload is the wire form of a materialized route. Path points are in
// walking order; for a closed tour the last point equals the first.
type Payload struct {
	Stops               []Stop  `json:"stops"`
	Path                []Point `json:"path"`
	TotalDistanceMeters float64 `json:"total_distance_meters"`
	ProvenOptimal       bool    `json:"proven_optimal"`
	Closed              bool    `json:"closed"`
}

// FromRoute flattens a materialized route into a Payload. proven is the
// optimizer's Result.Proven flag, carried through untouched.
func FromRoute(r *route.Route, proven bool) Payload {
	p := Payload{
		Stops:               make([]Stop, len(r.Stops)),
		Path:                make([]Point, len(r.Points)),
		TotalDistanceMeters: r.TotalMeters,
		ProvenOptimal:       proven,
		Closed:              r.Closed,
	}
	for i, s := range r.Stops {
		p.Stops[i] = Stop{Name: s.Name, Latitude: s.NodeCoord.Lat, Longitude: s.NodeCoord.Lon}
	}
	for i, pt := range r.Points {
		p.Path[i] = Point{Latitude: pt.Lat, Longitude: pt.Lon}
	}

	return p
}

// center returns the centroid of the payload's stops.
func (p Payload) center() (geo.Coord, error) {
	coords := make([]geo.Coord, len(p.Stops))
	for i, s := range p.Stops {
		coords[i] = geo.Coord{Lat: s.Latitude, Lon: s.Longitude}
	}

	return geo.Centroid(coords)
}

// Renderer writes a presentation of the payload to w.
type Renderer interface {
	Render(w io.Writer, p Payload) error
}

// WriteFile renders the payload to path, creating or truncating the file.
func WriteFile(path string, r Renderer, p Payload) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = r.Render(f, p); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}
