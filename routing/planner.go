package routing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/fleetops/livetrack/gazetteer"
	"github.com/fleetops/livetrack/geo"
	"github.com/fleetops/livetrack/maprender"
	"github.com/fleetops/livetrack/trip"
)

// Assumed average road speed for synthesized legs, in km/h.
const fallbackSpeedKMH = 45.0

type directionsAPI interface {
	Directions(ctx context.Context, req DirectionsRequest) (*directionsResponse, error)
}

// Planner turns a trip into a RouteResult, falling back to gazetteer
// synthesis when the directions service cannot serve the request.
type Planner struct {
	api directionsAPI
}

func NewPlanner(client *Client) *Planner {
	return &Planner{api: client}
}

// ComputeRoute requests a driving route across the trip's origin, destination
// and ordered waypoints. It never fails: on any service error the result is
// synthesized from the gazetteer and flagged as Fallback. The returned marker
// order is always source, waypoints in given order, destination.
func (p *Planner) ComputeRoute(ctx context.Context, t trip.Trip) *RouteResult {
	waypoints := t.ActiveWaypoints()

	req := DirectionsRequest{
		Origin:            t.Source,
		Destination:       t.Destination,
		Waypoints:         make([]DirectionsWaypoint, 0, len(waypoints)),
		TravelMode:        "DRIVING",
		OptimizeWaypoints: false,
	}
	for _, w := range waypoints {
		req.Waypoints = append(req.Waypoints, DirectionsWaypoint{Location: w, Stopover: true})
	}

	resp, err := p.api.Directions(ctx, req)
	if err != nil {
		log.Warn().Err(err).
			Str("origin", t.Source).Str("destination", t.Destination).
			Msg("routing service unavailable, synthesizing fallback route")
		return p.fallbackRoute(t, waypoints)
	}

	road := resp.Routes[0]
	result := &RouteResult{
		Legs: make([]Leg, 0, len(road.Legs)),
		Path: road.OverviewPath,
	}
	for _, l := range road.Legs {
		result.Legs = append(result.Legs, Leg{
			DistanceMeters:  l.Distance.Value,
			DurationSeconds: l.Duration.Value,
			Start:           l.StartLocation,
			End:             l.EndLocation,
		})
		result.TotalDistanceMeters += l.Distance.Value
		result.TotalDurationSeconds += l.Duration.Value
	}

	result.Bounds.Extend(road.Bounds.NorthEast)
	result.Bounds.Extend(road.Bounds.SouthWest)
	result.Markers = routeMarkers(t, waypoints, legAnchors(result.Legs))
	return result
}

// legAnchors returns the stop coordinates implied by the legs: each leg start
// plus the final leg end.
func legAnchors(legs []Leg) []geo.Coordinate {
	if len(legs) == 0 {
		return nil
	}
	anchors := make([]geo.Coordinate, 0, len(legs)+1)
	for _, l := range legs {
		anchors = append(anchors, l.Start)
	}
	anchors = append(anchors, legs[len(legs)-1].End)
	return anchors
}

// fallbackRoute builds a straight-line route through gazetteer-resolved
// points. It always yields at least two finite coordinates.
func (p *Planner) fallbackRoute(t trip.Trip, waypoints []string) *RouteResult {
	names := make([]string, 0, len(waypoints)+2)
	names = append(names, t.Source)
	names = append(names, waypoints...)
	names = append(names, t.Destination)

	points := gazetteer.ResolvePoints(names)
	result := &RouteResult{
		Path:     points,
		Fallback: true,
		Legs:     make([]Leg, 0, len(points)-1),
	}
	for i := 0; i+1 < len(points); i++ {
		distKM := geo.HaversineKM(points[i], points[i+1])
		leg := Leg{
			DistanceMeters:  distKM * 1000,
			DurationSeconds: distKM / fallbackSpeedKMH * 3600,
			Start:           points[i],
			End:             points[i+1],
		}
		result.Legs = append(result.Legs, leg)
		result.TotalDistanceMeters += leg.DistanceMeters
		result.TotalDurationSeconds += leg.DurationSeconds
	}

	result.Bounds = geo.BoundsOf(points)
	// Keep the centroid in the framed region so degenerate single-city
	// resolutions still produce a usable viewport.
	result.Bounds.Extend(geo.Centroid(points))
	result.Markers = routeMarkers(t, waypoints, points)
	return result
}

// routeMarkers builds the ordered marker set: source, each waypoint in the
// given order, destination. Anchor coordinates are taken positionally when
// available.
func routeMarkers(t trip.Trip, waypoints []string, anchors []geo.Coordinate) []maprender.Marker {
	at := func(i int) geo.Coordinate {
		if i < len(anchors) {
			return anchors[i]
		}
		return geo.Coordinate{}
	}

	markers := make([]maprender.Marker, 0, len(waypoints)+2)
	markers = append(markers, maprender.Marker{
		ID:       fmt.Sprintf("%s-source", t.ID),
		Label:    t.Source,
		Position: at(0),
		Kind:     maprender.MarkerSource,
		Sequence: 0,
	})
	for i, w := range waypoints {
		markers = append(markers, maprender.Marker{
			ID:       fmt.Sprintf("%s-waypoint-%d", t.ID, i+1),
			Label:    w,
			Position: at(i + 1),
			Kind:     maprender.MarkerWaypoint,
			Sequence: i + 1,
		})
	}
	markers = append(markers, maprender.Marker{
		ID:       fmt.Sprintf("%s-destination", t.ID),
		Label:    t.Destination,
		Position: at(len(waypoints) + 1),
		Kind:     maprender.MarkerDestination,
		Sequence: len(waypoints) + 1,
	})
	return markers
}
