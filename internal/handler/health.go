package handler

import "net/http"

// getHealth implements GET /health. It reports liveness only; storage
// writability has its own endpoint.
func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getStorage implements GET /storage: the persistence writability probe.
// The UI uses it to warn the user up front instead of silently losing data.
func (s *Server) getStorage(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"available": s.entries.Available(r.Context())})
}
