package telemetry

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// AuthState is the coarse authentication lifecycle state.
type AuthState string

const (
	AuthAbsent  AuthState = "absent"
	AuthPending AuthState = "pending"
	AuthValid   AuthState = "valid"
	AuthFailed  AuthState = "failed"
)

// AuthSession is the current authentication session. The token is opaque and
// carries no expiry; it is invalidated only by an explicit failed call or
// Invalidate.
type AuthSession struct {
	Token string
	State AuthState
	Err   error
}

type authAPI interface {
	Authenticate(ctx context.Context) (string, error)
}

// SessionManager owns the authentication lifecycle against the telemetry
// provider. At most one authentication attempt is outstanding at a time;
// concurrent callers coalesce onto the in-flight request.
type SessionManager struct {
	mu      sync.Mutex
	group   singleflight.Group
	client  authAPI
	session AuthSession
}

func NewSessionManager(client *Client) *SessionManager {
	return &SessionManager{client: client, session: AuthSession{State: AuthAbsent}}
}

// Session returns the current session snapshot.
func (m *SessionManager) Session() AuthSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Invalidate drops the current token. The next EnsureValid re-authenticates.
func (m *SessionManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = AuthSession{State: AuthAbsent}
}

// EnsureValid returns the existing valid session or performs one
// authentication attempt. Failed sessions stay failed until a caller
// explicitly invokes Authenticate or Invalidate; there are no automatic
// retries.
func (m *SessionManager) EnsureValid(ctx context.Context) (AuthSession, error) {
	m.mu.Lock()
	current := m.session
	m.mu.Unlock()

	if current.State == AuthValid {
		return current, nil
	}
	if current.State == AuthFailed {
		return current, current.Err
	}
	return m.Authenticate(ctx)
}

// Authenticate performs a single coalesced authentication attempt and
// replaces the current session with the result.
func (m *SessionManager) Authenticate(ctx context.Context) (AuthSession, error) {
	result, err, _ := m.group.Do("authenticate", func() (interface{}, error) {
		m.mu.Lock()
		m.session = AuthSession{State: AuthPending}
		m.mu.Unlock()

		token, err := m.client.Authenticate(ctx)

		m.mu.Lock()
		defer m.mu.Unlock()
		if err != nil {
			log.Warn().Err(err).Msg("telemetry authentication failed")
			m.session = AuthSession{State: AuthFailed, Err: err}
			return m.session, err
		}
		m.session = AuthSession{State: AuthValid, Token: token}
		return m.session, nil
	})

	session := result.(AuthSession)
	return session, err
}
