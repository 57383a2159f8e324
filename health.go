package livetrack

import "net/http"

type healthResponse struct {
	Status     string `json:"status"`
	Connection string `json:"connection"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		Connection: string(s.app.Status().Connection),
	})
}
