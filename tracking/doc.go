// Package tracking owns the live tracking lifecycle for one selected trip.
//
// This package handles:
// - The connection state machine the rendering surface reflects
// - Aggregating raw toll crossings into ordered markers and a travel polyline
// - The polling session: one interval, one generation counter, and discard
//   of results that arrive after a stop or trip switch
package tracking
