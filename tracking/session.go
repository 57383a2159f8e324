package tracking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fleetops/livetrack/maprender"
	"github.com/fleetops/livetrack/telemetry"
	"github.com/fleetops/livetrack/trip"
)

type passFetcher interface {
	FetchPasses(ctx context.Context, token, vehicleNo string) ([]telemetry.TollEvent, error)
}

type authManager interface {
	EnsureValid(ctx context.Context) (telemetry.AuthSession, error)
	Session() telemetry.AuthSession
}

// Session owns one tracking lifecycle: a single poll interval, a generation
// counter advanced on every start/stop, and the auth session reference.
// Results tagged with a superseded generation are discarded, never applied.
type Session struct {
	fetcher  passFetcher
	auth     authManager
	view     maprender.MapView
	interval time.Duration
	clock    func() time.Time

	mu         sync.Mutex
	machine    *Machine
	generation uint64
	vehicleNo  string
	active     bool
	cancel     context.CancelFunc
	snapshot   *TelemetrySnapshot
	diagnostic error
}

// NewSession wires a tracking session. The interval is the fixed poll period;
// the documented default comes from configuration (60 seconds).
func NewSession(auth *telemetry.SessionManager, client *telemetry.Client, view maprender.MapView, interval time.Duration) *Session {
	return newSession(auth, client, view, interval, time.Now)
}

func newSession(auth authManager, fetcher passFetcher, view maprender.MapView, interval time.Duration, clock func() time.Time) *Session {
	return &Session{
		fetcher:  fetcher,
		auth:     auth,
		view:     view,
		interval: interval,
		clock:    clock,
		machine:  NewMachine(),
	}
}

// Status returns the current connection state.
func (s *Session) Status() ConnectionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State()
}

// Generation returns the current session generation.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Diagnostic returns the retained failure that produced the current fallback
// or error state, if any.
func (s *Session) Diagnostic() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.diagnostic
}

// Snapshot returns the last applied telemetry snapshot.
func (s *Session) Snapshot() (TelemetrySnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return TelemetrySnapshot{}, false
	}
	return *s.snapshot, true
}

// Start begins tracking the vehicle: one authentication attempt if the auth
// session is absent, an immediate fetch, then a fixed-interval repeat.
// Starting while already active is a no-op. On authentication failure nothing
// is scheduled and the state becomes authError.
func (s *Session) Start(ctx context.Context, vehicleRegNo string) error {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		log.Debug().Msg("tracking already active, ignoring start")
		return nil
	}
	// A fresh start leaves any previous terminal state behind.
	_ = s.machine.Transition(StatusDisconnected)
	_ = s.machine.Transition(StatusAuthenticating)
	startGen := s.generation
	s.mu.Unlock()

	if _, err := s.auth.EnsureValid(ctx); err != nil {
		s.mu.Lock()
		if s.generation == startGen {
			_ = s.machine.Transition(StatusAuthError)
			s.diagnostic = err
		}
		s.mu.Unlock()
		return err
	}

	vehicleNo := trip.NormalizeVehicleNo(vehicleRegNo)

	s.mu.Lock()
	if s.active {
		// Lost a start race; the winner's interval is already live.
		s.mu.Unlock()
		return nil
	}
	if s.generation != startGen {
		// A Stop landed while authentication was in flight; the stop is the
		// most recent action and wins.
		s.mu.Unlock()
		log.Debug().Msg("start superseded by stop during authentication")
		return nil
	}
	if err := s.machine.Transition(StatusAuthenticated); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.machine.Transition(StatusConnecting); err != nil {
		s.mu.Unlock()
		return err
	}
	s.generation++
	generation := s.generation
	s.vehicleNo = vehicleNo
	s.active = true
	// The poll loop outlives the caller's context (often a single HTTP
	// request); its lifetime is bounded by Stop.
	pollCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	log.Info().Str("vehicle", vehicleNo).Uint64("generation", generation).
		Dur("interval", s.interval).Msg("tracking started")

	go s.poll(pollCtx, generation)
	return nil
}

// Stop clears the interval and advances the generation so in-flight results
// become stale. Safe to call repeatedly.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.active = false
	_ = s.machine.Transition(StatusDisconnected)
	log.Info().Uint64("generation", s.generation).Msg("tracking stopped")
}

// poll runs the immediate fetch and then the fixed-interval repeats. A single
// loop per generation keeps results applied in issue order.
func (s *Session) poll(ctx context.Context, generation uint64) {
	s.fetchOnce(ctx, generation)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchOnce(ctx, generation)
		}
	}
}

// fetchOnce issues one telemetry request, classifies the result, and applies
// it unless the session generation has moved on.
func (s *Session) fetchOnce(ctx context.Context, generation uint64) {
	s.mu.Lock()
	if !s.active || generation != s.generation {
		s.mu.Unlock()
		return
	}
	if err := s.machine.Transition(StatusFetching); err != nil {
		s.mu.Unlock()
		return
	}
	token := s.auth.Session().Token
	vehicleNo := s.vehicleNo
	s.mu.Unlock()

	events, err := s.fetcher.FetchPasses(ctx, token, vehicleNo)
	if err != nil && !classifiable(err) {
		s.fail(generation, err)
		return
	}

	outcome := telemetry.Classify(vehicleNo, events, err, s.clock())
	s.apply(generation, outcome)
}

func classifiable(err error) bool {
	var be *telemetry.BusinessError
	var te *telemetry.TransportError
	return errors.As(err, &be) || errors.As(err, &te)
}

// apply installs a classified outcome. Stale generations are dropped here;
// this is the guard against interval ticks that fire after a stop or switch.
func (s *Session) apply(generation uint64, outcome telemetry.FetchOutcome) {
	snapshot := BuildMarkers(outcome.Events)
	snapshot.Source = outcome.Kind
	snapshot.FetchedAt = s.clock()

	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		log.Debug().Uint64("generation", generation).Msg("discarding stale telemetry result")
		return
	}

	target := StatusConnected
	if !outcome.Live() {
		target = StatusFallbackConnected
	}
	_ = s.machine.Transition(target)
	s.snapshot = &snapshot
	s.diagnostic = outcome.Diagnostic

	// The view calls stay under the lock so a concurrent Stop (and whatever
	// clears or repaints the map after it) cannot interleave between the
	// generation check and the render.
	s.view.SetMarkers(maprender.LayerTelemetry, snapshot.Markers)
	s.view.SetPolyline(maprender.Polyline{Kind: maprender.PolylineTravel, Points: snapshot.Path})
	if !snapshot.Bounds.IsZero() {
		s.view.FitBounds(snapshot.Bounds)
	}
	s.mu.Unlock()

	if outcome.Transport {
		log.Warn().Err(outcome.Diagnostic).Msg("telemetry transport failure, substituted fallback dataset")
	}
}

// fail handles an unclassifiable fetch error: the session enters apiError and
// polling stops until a manual restart.
func (s *Session) fail(generation uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return
	}
	_ = s.machine.Transition(StatusAPIError)
	s.diagnostic = err
	s.active = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	log.Error().Err(err).Msg("telemetry fetch failed outside the provider contract")
}
