// Package livetrack wires the live trip tracking subsystem: trip selection,
// route planning, telemetry polling, and the HTTP surface that drives them.
package livetrack

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fleetops/livetrack/config"
	"github.com/fleetops/livetrack/maprender"
	"github.com/fleetops/livetrack/routing"
	"github.com/fleetops/livetrack/telemetry"
	"github.com/fleetops/livetrack/tracking"
	"github.com/fleetops/livetrack/trip"
)

// ErrNoVehicle is returned when tracking is requested for a trip without a
// vehicle registration.
var ErrNoVehicle = errors.New("active trip has no vehicle registration")

// App coordinates one operator's tracking view: the selected trip, its
// computed route, and the telemetry session for the trip's vehicle. Switching
// trips tears the session down and builds a fresh one, so no state crosses
// session boundaries.
type App struct {
	cfg     config.AppConfig
	planner *routing.Planner
	client  *telemetry.Client
	auth    *telemetry.SessionManager
	view    maprender.MapView

	mu      sync.Mutex
	current *trip.Trip
	route   *routing.RouteResult
	session *tracking.Session
}

func NewApp(cfg config.AppConfig, view maprender.MapView) *App {
	client := telemetry.NewClient(cfg.Telemetry)
	return &App{
		cfg:     cfg,
		planner: routing.NewPlanner(routing.NewClient(cfg.Routing)),
		client:  client,
		auth:    telemetry.NewSessionManager(client),
		view:    view,
	}
}

// SelectTrip makes t the active trip: any previous tracking session is
// stopped, the route is recomputed, and tracking starts when the trip carries
// a vehicle registration. Route computation is independent of telemetry and
// never fails; it degrades to a gazetteer fallback.
func (a *App) SelectTrip(ctx context.Context, t trip.Trip) *routing.RouteResult {
	a.mu.Lock()
	if a.session != nil {
		a.session.Stop()
		a.session = nil
	}
	a.current = &t
	a.mu.Unlock()

	a.view.Clear()
	route := a.planner.ComputeRoute(ctx, t)

	a.mu.Lock()
	a.route = route
	a.mu.Unlock()

	a.view.SetMarkers(maprender.LayerRoute, route.Markers)
	a.view.SetPolyline(maprender.Polyline{Kind: maprender.PolylineRoute, Points: route.Path})
	if !route.Bounds.IsZero() {
		a.view.FitBounds(route.Bounds)
	}

	log.Info().Str("trip", t.ID).Bool("fallback", route.Fallback).
		Int("legs", len(route.Legs)).Msg("route computed")

	if t.HasVehicle() {
		if err := a.StartTracking(ctx); err != nil {
			log.Warn().Err(err).Str("trip", t.ID).Msg("tracking did not start")
		}
	}
	return route
}

// StartTracking begins polling for the active trip's vehicle. Calling it with
// tracking already active is a no-op.
func (a *App) StartTracking(ctx context.Context) error {
	a.mu.Lock()
	t := a.current
	if t == nil || !t.HasVehicle() {
		a.mu.Unlock()
		return ErrNoVehicle
	}
	if a.session == nil {
		interval := time.Duration(a.cfg.Tracking.PollIntervalSec) * time.Second
		a.session = tracking.NewSession(a.auth, a.client, a.view, interval)
	}
	session := a.session
	a.mu.Unlock()

	return session.Start(ctx, t.VehicleRegNo)
}

// StopTracking halts polling for the active trip, if any.
func (a *App) StopTracking() {
	a.mu.Lock()
	session := a.session
	a.mu.Unlock()
	if session != nil {
		session.Stop()
	}
}

// RetryAuth is the manual recovery action for authError: it re-authenticates
// and, on success, restarts tracking.
func (a *App) RetryAuth(ctx context.Context) error {
	a.auth.Invalidate()
	if _, err := a.auth.Authenticate(ctx); err != nil {
		return err
	}
	return a.StartTracking(ctx)
}

// StatusReport is the state the rendering surface reflects. Fallback data is
// always distinguishable from live data.
type StatusReport struct {
	TripID        string                    `json:"tripId,omitempty"`
	Connection    tracking.ConnectionStatus `json:"connection"`
	Auth          telemetry.AuthState       `json:"auth"`
	Generation    uint64                    `json:"generation"`
	RouteFallback bool                      `json:"routeFallback"`
	DataSource    telemetry.OutcomeKind     `json:"dataSource,omitempty"`
	Diagnostic    string                    `json:"diagnostic,omitempty"`
}

// Status reports the current tracking state.
func (a *App) Status() StatusReport {
	a.mu.Lock()
	defer a.mu.Unlock()

	report := StatusReport{
		Connection: tracking.StatusDisconnected,
		Auth:       a.auth.Session().State,
	}
	if a.current != nil {
		report.TripID = a.current.ID
	}
	if a.route != nil {
		report.RouteFallback = a.route.Fallback
	}
	if a.session != nil {
		report.Connection = a.session.Status()
		report.Generation = a.session.Generation()
		if snapshot, ok := a.session.Snapshot(); ok {
			report.DataSource = snapshot.Source
		}
		if err := a.session.Diagnostic(); err != nil {
			report.Diagnostic = err.Error()
		}
	}
	return report
}

// Route returns the active trip's computed route.
func (a *App) Route() (*routing.RouteResult, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.route == nil {
		return nil, false
	}
	return a.route, true
}

// TrackOnce performs a single authenticate-and-fetch round for vehicleRegNo
// without starting a polling session. Provider failures degrade to fallback
// data the same way a live session does.
func TrackOnce(ctx context.Context, cfg config.AppConfig, vehicleRegNo string) (tracking.TelemetrySnapshot, error) {
	client := telemetry.NewClient(cfg.Telemetry)
	auth := telemetry.NewSessionManager(client)

	session, err := auth.EnsureValid(ctx)
	if err != nil {
		return tracking.TelemetrySnapshot{}, err
	}

	regNo := trip.NormalizeVehicleNo(vehicleRegNo)
	events, err := client.FetchPasses(ctx, session.Token, regNo)
	if err != nil {
		var be *telemetry.BusinessError
		var te *telemetry.TransportError
		if !errors.As(err, &be) && !errors.As(err, &te) {
			return tracking.TelemetrySnapshot{}, err
		}
	}
	outcome := telemetry.Classify(regNo, events, err, time.Now())

	snapshot := tracking.BuildMarkers(outcome.Events)
	snapshot.Source = outcome.Kind
	snapshot.FetchedAt = time.Now()
	return snapshot, nil
}

// Snapshot returns the last applied telemetry snapshot.
func (a *App) Snapshot() (tracking.TelemetrySnapshot, bool) {
	a.mu.Lock()
	session := a.session
	a.mu.Unlock()
	if session == nil {
		return tracking.TelemetrySnapshot{}, false
	}
	return session.Snapshot()
}
