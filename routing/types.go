package routing

import (
	"github.com/fleetops/livetrack/geo"
	"github.com/fleetops/livetrack/maprender"
)

// DirectionsWaypoint is one intermediate stop in a directions request.
type DirectionsWaypoint struct {
	Location string `json:"location"`
	Stopover bool   `json:"stopover"`
}

// DirectionsRequest is the wire request for the routing service. Waypoint
// optimization is always disabled: order is a caller contract.
type DirectionsRequest struct {
	Origin            string               `json:"origin"`
	Destination       string               `json:"destination"`
	Waypoints         []DirectionsWaypoint `json:"waypoints"`
	TravelMode        string               `json:"travelMode"`
	OptimizeWaypoints bool                 `json:"optimizeWaypoints"`
}

// Wire response shapes. Parsed and validated once at the boundary.
type directionsResponse struct {
	Status string           `json:"status"`
	Routes []directionsRoad `json:"routes"`
}

type directionsRoad struct {
	Legs         []directionsLeg  `json:"legs"`
	OverviewPath []geo.Coordinate `json:"overview_path"`
	Bounds       directionsBounds `json:"bounds"`
}

type directionsLeg struct {
	Distance      directionsValue `json:"distance"`
	Duration      directionsValue `json:"duration"`
	StartLocation geo.Coordinate  `json:"start_location"`
	EndLocation   geo.Coordinate  `json:"end_location"`
}

type directionsValue struct {
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

type directionsBounds struct {
	NorthEast geo.Coordinate `json:"northeast"`
	SouthWest geo.Coordinate `json:"southwest"`
}

// Leg is one origin-to-next-stop segment of the computed route.
type Leg struct {
	DistanceMeters  float64        `json:"distanceMeters"`
	DurationSeconds float64        `json:"durationSeconds"`
	Start           geo.Coordinate `json:"start"`
	End             geo.Coordinate `json:"end"`
}

// RouteResult is the derived route handed to the rendering surface. Fallback
// marks results synthesized by the gazetteer so consumers can never mistake
// them for service-computed roads.
type RouteResult struct {
	Legs                 []Leg              `json:"legs"`
	Path                 []geo.Coordinate   `json:"path"`
	Bounds               geo.Bounds         `json:"bounds"`
	Markers              []maprender.Marker `json:"markers"`
	TotalDistanceMeters  float64            `json:"totalDistanceMeters"`
	TotalDurationSeconds float64            `json:"totalDurationSeconds"`
	Fallback             bool               `json:"fallback"`
}
