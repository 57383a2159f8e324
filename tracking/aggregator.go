package tracking

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fleetops/livetrack/geo"
	"github.com/fleetops/livetrack/maprender"
	"github.com/fleetops/livetrack/telemetry"
)

// TelemetrySnapshot is the derived map state for one fetch: ordered markers,
// the travelled polyline, and framing bounds. Source reports whether the
// underlying data was live or substituted.
type TelemetrySnapshot struct {
	Markers      []maprender.Marker    `json:"markers"`      // chronologically ascending
	RecentPasses []maprender.Marker    `json:"recentPasses"` // reverse-chronological, for display
	Path         []geo.Coordinate      `json:"path"`
	Bounds       geo.Bounds            `json:"bounds"`
	Skipped      int                   `json:"skipped"`
	Source       telemetry.OutcomeKind `json:"source"`
	FetchedAt    time.Time             `json:"fetchedAt"`
}

// BuildMarkers converts raw toll crossings into ordered map state. Events are
// sorted chronologically; sequence numbers follow chronological order
// regardless of display order. Records whose geocode does not parse as two
// numeric values are skipped and counted, never fatal.
func BuildMarkers(events []telemetry.TollEvent) TelemetrySnapshot {
	sorted := append([]telemetry.TollEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ReadAt.Before(sorted[j].ReadAt)
	})

	snapshot := TelemetrySnapshot{
		Markers: make([]maprender.Marker, 0, len(sorted)),
		Path:    make([]geo.Coordinate, 0, len(sorted)),
	}
	for _, e := range sorted {
		pos, err := geo.ParseGeocode(e.Geocode)
		if err != nil {
			snapshot.Skipped++
			log.Debug().Str("plaza", e.PlazaName).Str("geocode", e.Geocode).Msg("dropping malformed toll geocode")
			continue
		}
		seq := len(snapshot.Markers) + 1
		snapshot.Markers = append(snapshot.Markers, maprender.Marker{
			ID:       fmt.Sprintf("pass-%d", seq),
			Label:    e.PlazaName,
			Position: pos,
			Kind:     maprender.MarkerTollPass,
			Sequence: seq,
			Meta: map[string]string{
				"laneDirection": e.LaneDirection,
				"vehicleType":   e.VehicleType,
				"vehicleRegNo":  e.VehicleRegNo,
				"readAt":        e.ReadAt.UTC().Format(time.RFC3339),
			},
		})
		snapshot.Path = append(snapshot.Path, pos)
		snapshot.Bounds.Extend(pos)
	}

	snapshot.RecentPasses = make([]maprender.Marker, len(snapshot.Markers))
	for i, m := range snapshot.Markers {
		snapshot.RecentPasses[len(snapshot.Markers)-1-i] = m
	}
	return snapshot
}
