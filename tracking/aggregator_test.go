package tracking

import (
	"testing"
	"time"

	"github.com/fleetops/livetrack/telemetry"
)

func pass(name, geocode string, at time.Time) telemetry.TollEvent {
	return telemetry.TollEvent{
		PlazaName:     name,
		Geocode:       geocode,
		ReadAt:        at,
		LaneDirection: "N",
		VehicleType:   "VC4",
		VehicleRegNo:  "KA01MQ0633",
	}
}

func TestBuildMarkersChronologicalOrder(t *testing.T) {
	base := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	t1 := base
	t2 := base.Add(30 * time.Minute)
	t3 := base.Add(time.Hour)

	// Provider order T2, T1, T3; the aggregator must re-sort.
	snapshot := BuildMarkers([]telemetry.TollEvent{
		pass("Plaza B", "20.0,73.0", t2),
		pass("Plaza A", "19.0,72.0", t1),
		pass("Plaza C", "21.0,74.0", t3),
	})

	if len(snapshot.Markers) != 3 {
		t.Fatalf("expected 3 markers, got %d", len(snapshot.Markers))
	}

	wantAsc := []string{"Plaza A", "Plaza B", "Plaza C"}
	for i, m := range snapshot.Markers {
		if m.Label != wantAsc[i] {
			t.Errorf("ascending position %d: expected %s, got %s", i, wantAsc[i], m.Label)
		}
		if m.Sequence != i+1 {
			t.Errorf("marker %s: expected sequence %d, got %d", m.Label, i+1, m.Sequence)
		}
	}

	wantDesc := []string{"Plaza C", "Plaza B", "Plaza A"}
	for i, m := range snapshot.RecentPasses {
		if m.Label != wantDesc[i] {
			t.Errorf("recent position %d: expected %s, got %s", i, wantDesc[i], m.Label)
		}
	}

	if len(snapshot.Path) != 3 {
		t.Fatalf("expected 3 path points, got %d", len(snapshot.Path))
	}
	if snapshot.Path[0].Lat != 19.0 || snapshot.Path[2].Lat != 21.0 {
		t.Errorf("path must be chronologically ascending, got %+v", snapshot.Path)
	}
}

func TestBuildMarkersParsesGeocode(t *testing.T) {
	snapshot := BuildMarkers([]telemetry.TollEvent{
		pass("Charoti", "19.9727,72.8869", time.Now()),
	})
	if len(snapshot.Markers) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(snapshot.Markers))
	}
	got := snapshot.Markers[0].Position
	if got.Lat != 19.9727 || got.Lng != 72.8869 {
		t.Errorf("expected numeric parse of geocode components, got %+v", got)
	}
}

func TestBuildMarkersSkipsMalformedGeocodes(t *testing.T) {
	base := time.Now()
	snapshot := BuildMarkers([]telemetry.TollEvent{
		pass("Good", "19.0,72.0", base),
		pass("Bad", "not,a,coord", base.Add(time.Minute)),
		pass("Empty", "", base.Add(2*time.Minute)),
		pass("AlsoGood", "20.0,73.0", base.Add(3*time.Minute)),
	})

	if len(snapshot.Markers) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(snapshot.Markers))
	}
	if snapshot.Skipped != 2 {
		t.Errorf("expected 2 skipped records, got %d", snapshot.Skipped)
	}
	// Sequence numbers stay dense after drops.
	if snapshot.Markers[0].Sequence != 1 || snapshot.Markers[1].Sequence != 2 {
		t.Errorf("expected dense sequences, got %d and %d",
			snapshot.Markers[0].Sequence, snapshot.Markers[1].Sequence)
	}
}

func TestBuildMarkersEmptyInput(t *testing.T) {
	snapshot := BuildMarkers(nil)
	if len(snapshot.Markers) != 0 || len(snapshot.Path) != 0 || snapshot.Skipped != 0 {
		t.Errorf("expected empty snapshot, got %+v", snapshot)
	}
	if !snapshot.Bounds.IsZero() {
		t.Error("bounds of an empty snapshot must be zero")
	}
}

func TestBuildMarkersBounds(t *testing.T) {
	snapshot := BuildMarkers([]telemetry.TollEvent{
		pass("A", "19.0,72.0", time.Now()),
		pass("B", "21.0,74.0", time.Now().Add(time.Minute)),
	})
	if snapshot.Bounds.IsZero() {
		t.Fatal("expected bounds to be set")
	}
	if snapshot.Bounds.NorthEast.Lat != 21.0 || snapshot.Bounds.SouthWest.Lng != 72.0 {
		t.Errorf("unexpected bounds: %+v", snapshot.Bounds)
	}
}
