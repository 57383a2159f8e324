package config

import (
	"strings"
	"testing"
)

const sampleYAML = `
server:
  port: 9090
routing:
  serviceURL: https://routes.example.com/v1/directions
  timeoutMS: 2500
telemetry:
  authURL: https://tolls.example.com/auth
  queryURL: https://tolls.example.com/query
  username: ops
  password: secret
  subscriberId: SUB-1
  productId: TOLLTXN
tracking:
  pollIntervalSec: 15
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Tracking.PollIntervalSec != 15 {
		t.Errorf("expected poll interval 15, got %d", cfg.Tracking.PollIntervalSec)
	}
	if cfg.Telemetry.AuthScheme != "Bearer" {
		t.Errorf("expected default auth scheme Bearer, got %q", cfg.Telemetry.AuthScheme)
	}
	if cfg.Telemetry.Mode != "LIVE" {
		t.Errorf("expected default mode LIVE, got %q", cfg.Telemetry.Mode)
	}
	if cfg.Telemetry.TimeoutMS != 10000 {
		t.Errorf("expected default telemetry timeout, got %d", cfg.Telemetry.TimeoutMS)
	}
}

func TestParseDefaultsPollInterval(t *testing.T) {
	yml := strings.Replace(sampleYAML, "pollIntervalSec: 15", "pollIntervalSec: 0", 1)
	cfg, err := Parse([]byte(yml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Tracking.PollIntervalSec != DefaultPollIntervalSec {
		t.Errorf("expected documented default %d, got %d", DefaultPollIntervalSec, cfg.Tracking.PollIntervalSec)
	}
}

func TestParseRejectsBadURL(t *testing.T) {
	yml := strings.Replace(sampleYAML, "https://routes.example.com/v1/directions", "not a url", 1)
	if _, err := Parse([]byte(yml)); err == nil {
		t.Fatal("expected validation error for malformed routing URL")
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	if _, err := Parse([]byte("server: [")); err == nil {
		t.Fatal("expected yaml error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LIVETRACK_TELEMETRY_USERNAME", "env-user")
	t.Setenv("LIVETRACK_TELEMETRY_PASSWORD", "env-pass")
	t.Setenv("LIVETRACK_ROUTING_APIKEY", "env-key")

	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telemetry.Username != "env-user" || cfg.Telemetry.Password != "env-pass" {
		t.Errorf("expected env credential overrides, got %q/%q", cfg.Telemetry.Username, cfg.Telemetry.Password)
	}
	if cfg.Routing.APIKey != "env-key" {
		t.Errorf("expected env api key override, got %q", cfg.Routing.APIKey)
	}
}
