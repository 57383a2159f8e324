package telemetry

import (
	"testing"
	"time"

	"github.com/fleetops/livetrack/geo"
)

func TestClassifyLive(t *testing.T) {
	events := []TollEvent{{PlazaName: "Charoti Toll Plaza", Geocode: "19.9727,72.8869"}}
	outcome := Classify("KA01MQ0633", events, nil, time.Now())

	if !outcome.Live() {
		t.Fatal("expected live outcome")
	}
	if outcome.Diagnostic != nil {
		t.Errorf("live outcomes carry no diagnostic, got %v", outcome.Diagnostic)
	}
	if len(outcome.Events) != 1 {
		t.Errorf("expected the provider events, got %d", len(outcome.Events))
	}
}

func TestClassifyBusinessFailure(t *testing.T) {
	outcome := Classify("KA01MQ0633", nil, &BusinessError{Code: "responseStatus \"FAILURE\""}, time.Now())

	if outcome.Live() {
		t.Fatal("expected fallback outcome")
	}
	if outcome.Transport {
		t.Error("business failures are not transport failures")
	}
	if outcome.Diagnostic == nil {
		t.Error("fallback must retain its diagnostic")
	}
	if len(outcome.Events) == 0 {
		t.Error("fallback must substitute the fixed dataset")
	}
}

func TestClassifyTransportFailure(t *testing.T) {
	outcome := Classify("KA01MQ0633", nil, &TransportError{Reason: "request failed"}, time.Now())

	if outcome.Live() {
		t.Fatal("expected fallback outcome")
	}
	if !outcome.Transport {
		t.Error("transport failures must be marked for diagnostics")
	}
	if len(outcome.Events) == 0 {
		t.Error("fallback must substitute the fixed dataset")
	}
}

func TestClassifyEmptySuccessFallsBack(t *testing.T) {
	outcome := Classify("KA01MQ0633", nil, nil, time.Now())

	if outcome.Live() {
		t.Fatal("a success envelope with zero records is not live")
	}
	if outcome.Diagnostic == nil {
		t.Error("expected a synthesized diagnostic")
	}
}

func TestFallbackPassesDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	a := FallbackPasses("KA01MQ0633", now)
	b := FallbackPasses("KA01MQ0633", now)
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("expected stable non-empty dataset, got %d and %d", len(a), len(b))
	}

	for i := range a {
		if a[i] != b[i] {
			t.Errorf("pass %d differs between invocations", i)
		}
		if _, err := geo.ParseGeocode(a[i].Geocode); err != nil {
			t.Errorf("pass %d has invalid geocode %q", i, a[i].Geocode)
		}
		if a[i].VehicleRegNo != "KA01MQ0633" {
			t.Errorf("pass %d should carry the requested registration, got %q", i, a[i].VehicleRegNo)
		}
		if i > 0 && !a[i].ReadAt.After(a[i-1].ReadAt) {
			t.Errorf("passes must be chronologically ascending, %d is not", i)
		}
	}

	newest := a[len(a)-1].ReadAt
	if !newest.Equal(now) {
		t.Errorf("newest pass should be anchored to now, got %v", newest)
	}
}
