package tracking

import "fmt"

// ConnectionStatus is the single source of truth for the tracking lifecycle.
// It is derived from Session Manager and poller outcomes, never set directly
// by consumers.
type ConnectionStatus string

const (
	StatusDisconnected      ConnectionStatus = "disconnected"
	StatusAuthenticating    ConnectionStatus = "authenticating"
	StatusAuthenticated     ConnectionStatus = "authenticated"
	StatusConnecting        ConnectionStatus = "connecting"
	StatusFetching          ConnectionStatus = "fetching"
	StatusConnected         ConnectionStatus = "connected"
	StatusFallbackConnected ConnectionStatus = "fallbackConnected"
	StatusAuthError         ConnectionStatus = "authError"
	StatusAPIError          ConnectionStatus = "apiError"
)

// transitions lists the allowed moves. disconnected is additionally reachable
// from every state (explicit stop).
var transitions = map[ConnectionStatus][]ConnectionStatus{
	StatusDisconnected:      {StatusAuthenticating},
	StatusAuthenticating:    {StatusAuthenticated, StatusAuthError},
	StatusAuthenticated:     {StatusConnecting},
	StatusConnecting:        {StatusFetching},
	StatusFetching:          {StatusConnected, StatusFallbackConnected, StatusAPIError},
	StatusConnected:         {StatusFetching},
	StatusFallbackConnected: {StatusFetching},
	StatusAuthError:         {},
	StatusAPIError:          {},
}

// Terminal reports whether the state requires an explicit caller action
// (stop acknowledgement or manual retry) to leave.
func (s ConnectionStatus) Terminal() bool {
	return s == StatusDisconnected || s == StatusAuthError || s == StatusAPIError
}

// Machine validates lifecycle transitions. It is not goroutine-safe; the
// owning session serializes access.
type Machine struct {
	state ConnectionStatus
}

func NewMachine() *Machine {
	return &Machine{state: StatusDisconnected}
}

// State returns the current status.
func (m *Machine) State() ConnectionStatus { return m.state }

// Transition moves to the target state, rejecting moves the lifecycle table
// does not allow. Stopping (any state to disconnected) is always legal.
func (m *Machine) Transition(to ConnectionStatus) error {
	if to == StatusDisconnected {
		m.state = to
		return nil
	}
	for _, allowed := range transitions[m.state] {
		if allowed == to {
			m.state = to
			return nil
		}
	}
	return fmt.Errorf("illegal connection state transition %s -> %s", m.state, to)
}
