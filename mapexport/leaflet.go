package mapexport

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

// Leaflet asset pins. Self-hosted tiles can be swapped in via TileURL.
const (
	leafletCSS = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	leafletJS  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"

	defaultTileURL     = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	defaultAttribution = "&copy; OpenStreetMap contributors"
	defaultZoom        = 15
	defaultTitle       = "Walking route"
)

// LeafletRenderer renders the payload as a standalone Leaflet HTML page.
// The zero value is not usable; construct with NewLeafletRenderer.
type LeafletRenderer struct {
	Title       string
	TileURL     string
	Attribution string
	Zoom        int

	tmpl *template.Template
}

// NewLeafletRenderer returns a renderer with OpenStreetMap defaults.
func NewLeafletRenderer() *LeafletRenderer {
	return &LeafletRenderer{
		Title:       defaultTitle,
		TileURL:     defaultTileURL,
		Attribution: defaultAttribution,
		Zoom:        defaultZoom,
		tmpl:        template.Must(template.New("leaflet").Parse(leafletPage)),
	}
}

// leafletView is the template's dot.
type leafletView struct {
	Title       string
	CSS         string
	JS          string
	TileURL     string
	Attribution string
	Zoom        int
	CenterLat   float64
	CenterLon   float64
	Data        template.JS
	Summary     string
}

// Render writes the HTML page. Fails with ErrEmptyRoute when the payload
// has no path to draw.
func (lr *LeafletRenderer) Render(w io.Writer, p Payload) error {
	if len(p.Path) == 0 || len(p.Stops) == 0 {
		return ErrEmptyRoute
	}
	center, err := p.center()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("mapexport: encode payload: %w", err)
	}

	quality := "best found"
	if p.ProvenOptimal {
		quality = "proven optimal"
	}
	summary := fmt.Sprintf("%.0f m, %d stops (%s)",
		p.TotalDistanceMeters, len(p.Stops), quality)

	return lr.tmpl.Execute(w, leafletView{
		Title:       lr.Title,
		CSS:         leafletCSS,
		JS:          leafletJS,
		TileURL:     lr.TileURL,
		Attribution: lr.Attribution,
		Zoom:        lr.Zoom,
		CenterLat:   center.Lat,
		CenterLon:   center.Lon,
		Data:        template.JS(raw),
		Summary:     summary,
	})
}

// leafletPage draws the polyline and one numbered marker per stop, in
// visit order.
const leafletPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="{{.CSS}}">
<style>
  html, body, #map { height: 100%; margin: 0; }
  .stop-badge {
    background: #2563eb; color: #fff; border-radius: 50%;
    width: 22px; height: 22px; line-height: 22px;
    text-align: center; font: bold 12px sans-serif;
  }
  #summary {
    position: absolute; bottom: 12px; left: 12px; z-index: 1000;
    background: rgba(255,255,255,.9); padding: 6px 10px;
    font: 13px sans-serif; border-radius: 4px;
  }
</style>
</head>
<body>
<div id="map"></div>
<div id="summary">{{.Summary}}</div>
<script src="{{.JS}}"></script>
<script>
  var data = {{.Data}};
  var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
  L.tileLayer('{{.TileURL}}', {attribution: '{{.Attribution}}'}).addTo(map);
  var latlngs = data.path.map(function (p) { return [p.latitude, p.longitude]; });
  var line = L.polyline(latlngs, {color: '#2563eb', weight: 4}).addTo(map);
  data.stops.forEach(function (s, i) {
    L.marker([s.latitude, s.longitude], {
      icon: L.divIcon({className: '', html:
        '<div class="stop-badge">' + (i + 1) + '</div>', iconSize: [22, 22]})
    }).addTo(map).bindPopup((i + 1) + '. ' + s.name);
  });
  map.fitBounds(line.getBounds(), {padding: [24, 24]});
</script>
</body>
</html>
`
