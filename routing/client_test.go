package routing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fleetops/livetrack/config"
)

func newTestClient(url string) *Client {
	return NewClient(config.RoutingConfig{ServiceURL: url, APIKey: "test-key", TimeoutMS: 2000})
}

func TestDirectionsSuccess(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req DirectionsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.OptimizeWaypoints {
			t.Error("optimizeWaypoints must be false on the wire")
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"routes": []map[string]any{{
				"legs": []map[string]any{{
					"distance":       map[string]any{"value": 1000},
					"duration":       map[string]any{"value": 120},
					"start_location": map[string]any{"lat": 19.0, "lng": 72.8},
					"end_location":   map[string]any{"lat": 19.1, "lng": 72.9},
				}},
				"overview_path": []map[string]any{
					{"lat": 19.0, "lng": 72.8},
					{"lat": 19.1, "lng": 72.9},
				},
				"bounds": map[string]any{
					"northeast": map[string]any{"lat": 19.1, "lng": 72.9},
					"southwest": map[string]any{"lat": 19.0, "lng": 72.8},
				},
			}},
		})
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).Directions(context.Background(), DirectionsRequest{
		Origin: "Mumbai", Destination: "Delhi", TravelMode: "DRIVING",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "test-key" {
		t.Errorf("expected api key header, got %q", gotAuth)
	}
	if len(resp.Routes) != 1 || len(resp.Routes[0].Legs) != 1 {
		t.Fatalf("unexpected response shape: %+v", resp)
	}
	if resp.Routes[0].Legs[0].Distance.Value != 1000 {
		t.Errorf("expected leg distance 1000, got %f", resp.Routes[0].Legs[0].Distance.Value)
	}
}

func TestDirectionsNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ZERO_RESULTS", "routes": []any{}})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Directions(context.Background(), DirectionsRequest{})
	var ce *ComputationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ComputationError, got %v", err)
	}
}

func TestDirectionsRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"routes": []map[string]any{{"legs": []any{}, "overview_path": []any{}}},
		})
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Directions(context.Background(), DirectionsRequest{}); err != nil {
		t.Fatalf("expected retries to recover, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestDirectionsClientRejectionIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Directions(context.Background(), DirectionsRequest{}); err == nil {
		t.Fatal("expected error for HTTP 400")
	}
	if calls.Load() != 1 {
		t.Errorf("4xx must not be retried, got %d attempts", calls.Load())
	}
}

func TestDirectionsUnconfigured(t *testing.T) {
	c := NewClient(config.RoutingConfig{})
	if _, err := c.Directions(context.Background(), DirectionsRequest{}); err == nil {
		t.Fatal("expected error when service URL is missing")
	}
}
