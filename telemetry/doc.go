// Package telemetry talks to the toll-tag telemetry provider.
//
// It handles:
//   - Authentication and the single-token session lifecycle
//   - Toll-crossing queries for a normalized vehicle registration
//   - Parsing and validating the provider's nested response envelope once,
//     at the boundary, failing closed on shape mismatches
//   - Classifying every fetch into a Live or Fallback outcome so consumers
//     can never mistake synthetic data for genuine passes
package telemetry
