package telemetry

import (
	"errors"
	"time"
)

// OutcomeKind tags a fetch result so every consumer must acknowledge whether
// it received genuine or substituted telemetry.
type OutcomeKind string

const (
	OutcomeLive     OutcomeKind = "live"
	OutcomeFallback OutcomeKind = "fallback"
)

// FetchOutcome is the classified result of one telemetry fetch. Fallback
// outcomes carry the diagnostic that produced them; it is retained for the
// status surface, never thrown.
type FetchOutcome struct {
	Kind       OutcomeKind
	Events     []TollEvent
	Diagnostic error
	// Transport reports whether the fallback was caused by an outright
	// request failure rather than a provider-reported rejection.
	Transport bool
}

// Live reports whether the outcome carries genuine provider data.
func (o FetchOutcome) Live() bool { return o.Kind == OutcomeLive }

// Classify resolves a fetch result into exactly one outcome:
//
//   - success with at least one record: Live
//   - provider-reported rejection, or success with zero records: Fallback
//     with the business diagnostic
//   - outright request failure: Fallback with the transport diagnostic
func Classify(vehicleNo string, events []TollEvent, err error, now time.Time) FetchOutcome {
	if err == nil && len(events) > 0 {
		return FetchOutcome{Kind: OutcomeLive, Events: events}
	}

	if err == nil {
		// A success envelope with nothing in it cannot populate the map;
		// substitute and record why.
		err = &BusinessError{Code: "no transactions in response"}
	}

	var te *TransportError
	return FetchOutcome{
		Kind:       OutcomeFallback,
		Events:     FallbackPasses(vehicleNo, now),
		Diagnostic: err,
		Transport:  errors.As(err, &te),
	}
}
