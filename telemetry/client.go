package telemetry

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

// Client is the HTTP client for the toll-tag telemetry provider.
type Client struct {
	httpClient *http.Client
	cfg        config.TelemetryConfig
}

// NewClient creates a provider client from the telemetry configuration.
func NewClient(cfg config.TelemetryConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
		cfg:        cfg,
	}
}

// Authenticate exchanges the configured credentials for a bearer token.
// It makes exactly one attempt; retrying is a caller decision.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	if c.cfg.AuthURL == "" {
		return "", &AuthenticationError{Reason: "auth endpoint not configured"}
	}
	if c.cfg.Username == "" || c.cfg.Password == "" {
		return "", &AuthenticationError{Reason: "credentials missing"}
	}

	body, _ := json.Marshal(map[string]string{
		"username": c.cfg.Username,
		"password": c.cfg.Password,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AuthURL, bytes.NewReader(body))
	if err != nil {
		return "", &AuthenticationError{Reason: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &AuthenticationError{Reason: "transport", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AuthenticationError{Reason: "read response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &AuthenticationError{Reason: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	var parsed authResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &AuthenticationError{Reason: "decode response", Err: err}
	}
	if parsed.Token == "" {
		reason := "no token in response"
		if parsed.Error != "" {
			reason = parsed.Error
		}
		return "", &AuthenticationError{Reason: reason}
	}
	return parsed.Token, nil
}

// FetchPasses queries the provider for the vehicle's toll crossings. The
// vehicle number must already be normalized. Transient transport failures get
// one backoff retry inside the call; the returned error is always one of
// *TransportError or *BusinessError.
func (c *Client) FetchPasses(ctx context.Context, token, vehicleNo string) ([]TollEvent, error) {
	if c.cfg.QueryURL == "" {
		return nil, &TransportError{Reason: "query endpoint not configured"}
	}

	body, _ := json.Marshal(map[string]string{"vehicleNumber": vehicleNo})

	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.QueryURL, bytes.NewReader(body))
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", fmt.Sprintf("%s %s", c.cfg.AuthScheme, token))
		req.Header.Set("subscriberId", c.cfg.SubscriberID)
		req.Header.Set("productId", c.cfg.ProductID)
		req.Header.Set("mode", c.cfg.Mode)

		resp, err := c.httpClient.Do(req)
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
			return nil, fmt.Errorf("HTTP %d from telemetry provider", resp.StatusCode)
		default:
			// Includes auth rejection (401/403): an outright request failure.
			return nil, backoff.Permanent(fmt.Errorf("HTTP %d from telemetry provider", resp.StatusCode))
		}
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	raw, err := backoff.RetryWithData(operation, policy)
	if err != nil {
		return nil, &TransportError{Reason: "request failed", Err: err}
	}

	var envelope queryEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &TransportError{Reason: "response shape mismatch", Err: err}
	}
	if code, failed := envelope.businessFailure(); failed {
		return nil, &BusinessError{Code: code}
	}
	return envelope.events(), nil
}
