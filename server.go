package livetrack

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// Server exposes the tracking application over HTTP.
type Server struct {
	app  *App
	http *http.Server
}

func NewServer(app *App, port int) *Server {
	s := &Server{app: app}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/trips/select", s.handleSelectTrip)
	mux.HandleFunc("/api/tracking/start", s.handleStartTracking)
	mux.HandleFunc("/api/tracking/stop", s.handleStopTracking)
	mux.HandleFunc("/api/tracking/retry-auth", s.handleRetryAuth)
	mux.HandleFunc("/api/tracking/status", s.handleStatus)
	mux.HandleFunc("/api/tracking/snapshot", s.handleSnapshot)
	mux.HandleFunc("/api/route", s.handleRoute)

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("addr", s.http.Addr).Msg("server listening")
}

// WaitForShutdown blocks until SIGINT or SIGTERM, then drains the server and
// stops the active tracking session.
func (s *Server) WaitForShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info().Msg("shutdown signal received")

	s.app.StopTracking()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
		return
	}
	log.Info().Msg("server shut down successfully")
}
