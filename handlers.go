package livetrack

import (
	"encoding/json"
	"net/http"

	"github.com/fleetops/livetrack/trip"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleSelectTrip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var t trip.Trip
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid trip payload: "+err.Error())
		return
	}
	if t.Source == "" || t.Destination == "" {
		writeError(w, http.StatusBadRequest, "trip requires source and destination")
		return
	}
	route := s.app.SelectTrip(r.Context(), t)
	writeJSON(w, http.StatusOK, route)
}

func (s *Server) handleStartTracking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	if err := s.app.StartTracking(r.Context()); err != nil {
		status := http.StatusBadGateway
		if err == ErrNoVehicle {
			status = http.StatusConflict
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.app.Status())
}

func (s *Server) handleStopTracking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	s.app.StopTracking()
	writeJSON(w, http.StatusOK, s.app.Status())
}

func (s *Server) handleRetryAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	if err := s.app.RetryAuth(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.app.Status())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Status())
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := s.app.Snapshot()
	if !ok {
		writeError(w, http.StatusNotFound, "no telemetry snapshot yet")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	route, ok := s.app.Route()
	if !ok {
		writeError(w, http.StatusNotFound, "no trip selected")
		return
	}
	writeJSON(w, http.StatusOK, route)
}
