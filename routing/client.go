package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/fleetops/livetrack/config"
)

// ComputationError is a routing-service failure. Callers always convert it
// into a fallback route; it never surfaces as fatal.
type ComputationError struct {
	Reason string
	Err    error
}

func (e *ComputationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("route computation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("route computation failed: %s", e.Reason)
}

func (e *ComputationError) Unwrap() error { return e.Err }

// Client calls the external directions service.
type Client struct {
	httpClient *http.Client
	serviceURL string
	apiKey     string
}

// NewClient creates a directions client from the routing configuration.
func NewClient(cfg config.RoutingConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
		serviceURL: cfg.ServiceURL,
		apiKey:     cfg.APIKey,
	}
}

// Directions requests a driving route. Transient failures (network, 429, 5xx)
// are retried with exponential backoff; any terminal failure or non-OK
// service status comes back as a *ComputationError.
func (c *Client) Directions(ctx context.Context, req DirectionsRequest) (*directionsResponse, error) {
	if c.serviceURL == "" {
		return nil, &ComputationError{Reason: "routing service not configured"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &ComputationError{Reason: "encode request", Err: err}
	}

	operation := func() ([]byte, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serviceURL, bytes.NewReader(body))
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			httpReq.Header.Set("Authorization", c.apiKey)
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		switch {
		case resp.StatusCode == http.StatusOK:
			return raw, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return nil, fmt.Errorf("HTTP %d from routing service", resp.StatusCode)
		default:
			return nil, backoff.Permanent(fmt.Errorf("HTTP %d from routing service", resp.StatusCode))
		}
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	raw, err := backoff.RetryWithData(operation, policy)
	if err != nil {
		return nil, &ComputationError{Reason: "request failed", Err: err}
	}

	var parsed directionsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ComputationError{Reason: "decode response", Err: err}
	}
	if parsed.Status != "OK" {
		return nil, &ComputationError{Reason: fmt.Sprintf("service status %q", parsed.Status)}
	}
	if len(parsed.Routes) == 0 {
		return nil, &ComputationError{Reason: "no routes in response"}
	}
	return &parsed, nil
}
