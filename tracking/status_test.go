package tracking

import "testing"

func TestMachineHappyPath(t *testing.T) {
	m := NewMachine()
	steps := []ConnectionStatus{
		StatusAuthenticating,
		StatusAuthenticated,
		StatusConnecting,
		StatusFetching,
		StatusConnected,
		StatusFetching,
		StatusFallbackConnected,
		StatusFetching,
		StatusAPIError,
	}
	for _, next := range steps {
		if err := m.Transition(next); err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
	}
}

func TestMachineRejectsIllegalMoves(t *testing.T) {
	tests := []struct {
		name string
		from []ConnectionStatus
		to   ConnectionStatus
	}{
		{
			name: "disconnected cannot fetch",
			from: nil,
			to:   StatusFetching,
		},
		{
			name: "authenticating cannot connect directly",
			from: []ConnectionStatus{StatusAuthenticating},
			to:   StatusConnecting,
		},
		{
			name: "connected cannot re-authenticate",
			from: []ConnectionStatus{StatusAuthenticating, StatusAuthenticated, StatusConnecting, StatusFetching, StatusConnected},
			to:   StatusAuthenticating,
		},
		{
			name: "authError is terminal except for stop",
			from: []ConnectionStatus{StatusAuthenticating, StatusAuthError},
			to:   StatusFetching,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			for _, s := range tt.from {
				if err := m.Transition(s); err != nil {
					t.Fatalf("setup transition to %s: %v", s, err)
				}
			}
			if err := m.Transition(tt.to); err == nil {
				t.Errorf("expected %s -> %s to be rejected", m.State(), tt.to)
			}
		})
	}
}

func TestMachineStopAlwaysAllowed(t *testing.T) {
	for from := range transitions {
		m := &Machine{state: from}
		if err := m.Transition(StatusDisconnected); err != nil {
			t.Errorf("%s -> disconnected should always be legal: %v", from, err)
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []ConnectionStatus{StatusDisconnected, StatusAuthError, StatusAPIError} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []ConnectionStatus{StatusFetching, StatusConnected, StatusFallbackConnected} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
