package handler

import (
	"net/http"

	"github.com/artart33/travel-logger/internal/store"
)

// getStats implements GET /stats: collection-wide aggregates.
func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, store.ComputeStats(s.entries.List(r.Context())))
}

// getDates implements GET /dates: per-day totals and type counts, newest
// first. This backs the date pickers of the export flows.
func (s *Server) getDates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, store.ComputeDateStats(s.entries.List(r.Context())))
}

// getLocations implements GET /locations: entries grouped by location string.
func (s *Server) getLocations(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, store.GroupByLocation(s.entries.List(r.Context())))
}
