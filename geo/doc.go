// Package geo provides the coordinate primitives shared by the routing and
// telemetry layers.
//
// It contains:
//   - Coordinate parsing from provider "lat,lng" geocode strings
//   - Bounding-region accumulation for map framing
//   - Great-circle distance for synthesized route legs
package geo
