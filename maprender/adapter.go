package maprender

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/fleetops/livetrack/geo"
)

// MarkerKind distinguishes route anchors from telemetry passes on the map.
type MarkerKind string

const (
	MarkerSource      MarkerKind = "source"
	MarkerWaypoint    MarkerKind = "waypoint"
	MarkerDestination MarkerKind = "destination"
	MarkerTollPass    MarkerKind = "tollPass"
)

// PolylineKind distinguishes the planned route from the travelled path.
type PolylineKind string

const (
	PolylineRoute  PolylineKind = "route"
	PolylineTravel PolylineKind = "travel"
)

// Marker is one renderable map pin.
type Marker struct {
	ID       string            `json:"id"`
	Label    string            `json:"label"`
	Position geo.Coordinate    `json:"position"`
	Kind     MarkerKind        `json:"kind"`
	Sequence int               `json:"sequence"`
	Meta     map[string]string `json:"meta,omitempty"`
}

// Polyline is an ordered set of points rendered as a line.
type Polyline struct {
	Kind   PolylineKind     `json:"kind"`
	Points []geo.Coordinate `json:"points"`
}

// MarkerLayer groups markers that are replaced together on the map.
type MarkerLayer string

const (
	LayerRoute     MarkerLayer = "route"
	LayerTelemetry MarkerLayer = "telemetry"
)

// MapView renders markers, polylines and viewport changes. Implementations
// must tolerate repeated calls with the same content.
type MapView interface {
	SetMarkers(layer MarkerLayer, markers []Marker)
	SetPolyline(line Polyline)
	FitBounds(bounds geo.Bounds)
	Clear()
}

// LogView is a MapView that records rendering intents to the log. It stands
// in for a real rendering surface when the service runs headless.
type LogView struct {
	logger zerolog.Logger
}

func NewLogView(logger zerolog.Logger) *LogView {
	return &LogView{logger: logger}
}

func (v *LogView) SetMarkers(layer MarkerLayer, markers []Marker) {
	v.logger.Info().Str("layer", string(layer)).Int("count", len(markers)).Msg("map markers updated")
}

func (v *LogView) SetPolyline(line Polyline) {
	v.logger.Info().Str("kind", string(line.Kind)).Int("points", len(line.Points)).Msg("map polyline updated")
}

func (v *LogView) FitBounds(bounds geo.Bounds) {
	v.logger.Info().
		Float64("neLat", bounds.NorthEast.Lat).Float64("neLng", bounds.NorthEast.Lng).
		Float64("swLat", bounds.SouthWest.Lat).Float64("swLng", bounds.SouthWest.Lng).
		Msg("map viewport framed")
}

func (v *LogView) Clear() {
	v.logger.Info().Msg("map cleared")
}

// Recorder is a MapView test double capturing the most recent calls.
type Recorder struct {
	mu        sync.Mutex
	Markers   map[MarkerLayer][]Marker
	Polylines map[PolylineKind]Polyline
	LastFit   geo.Bounds
	FitCalls  int
	Clears    int
}

func NewRecorder() *Recorder {
	return &Recorder{
		Markers:   map[MarkerLayer][]Marker{},
		Polylines: map[PolylineKind]Polyline{},
	}
}

func (r *Recorder) SetMarkers(layer MarkerLayer, markers []Marker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Markers[layer] = append([]Marker(nil), markers...)
}

func (r *Recorder) SetPolyline(line Polyline) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Polylines[line.Kind] = line
}

func (r *Recorder) FitBounds(bounds geo.Bounds) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LastFit = bounds
	r.FitCalls++
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Markers = map[MarkerLayer][]Marker{}
	r.Polylines = map[PolylineKind]Polyline{}
	r.Clears++
}

// MarkersOf returns a copy of the last markers set for a layer.
func (r *Recorder) MarkersOf(layer MarkerLayer) []Marker {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Marker(nil), r.Markers[layer]...)
}

// PolylineOf returns the last polyline set for a kind.
func (r *Recorder) PolylineOf(kind PolylineKind) (Polyline, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	line, ok := r.Polylines[kind]
	return line, ok
}
