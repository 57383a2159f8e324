package telemetry

import "fmt"

// AuthenticationError is a credential rejection or a transport failure during
// login. It is surfaced to the caller; re-authentication is always explicit.
type AuthenticationError struct {
	Reason string
	Err    error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// TransportError is an outright request failure: network error, HTTP error
// status, or a response whose shape does not match the provider contract.
// Shape mismatches fail closed as transport failures.
type TransportError struct {
	Reason string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("telemetry transport failure: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("telemetry transport failure: %s", e.Reason)
}

func (e *TransportError) Unwrap() error { return e.Err }

// BusinessError is a provider-reported rejection inside a well-formed
// response envelope.
type BusinessError struct {
	Code string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("telemetry business failure: %s", e.Code)
}
