// Package routing computes the road path for a trip.
//
// It talks to the external directions service with the trip's origin,
// destination and ordered waypoints, and derives total distance, duration,
// bounds and the marker set from the response. When the service is
// unreachable or returns a business failure the planner synthesizes a
// straight-line route from the gazetteer table instead of failing.
package routing
