// The /entries CRUD surface.

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/artart33/travel-logger/internal/domain"
	"github.com/artart33/travel-logger/internal/store"
)

// listEntries implements GET /entries. Supports optional ?q= (free-text match
// on title/location), ?type=, and ?date= filters, applied in that order.
func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	entries := s.entries.List(r.Context())

	if q := r.URL.Query().Get("q"); q != "" {
		entries = store.FilterByQuery(entries, q)
	}
	if t := r.URL.Query().Get("type"); t != "" {
		entries = store.FilterByType(entries, domain.EntryType(t).Normalize())
	}
	if d := r.URL.Query().Get("date"); d != "" {
		entries = store.FilterByDate(entries, d)
	}

	respondJSON(w, http.StatusOK, entries)
}

// createEntry implements POST /entries. The body is an entry draft; id and
// createdAt are assigned by the store and returned in the materialized entry.
func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	var draft domain.Entry
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondRequestError(w, "invalid request body")
		return
	}

	entry, err := s.entries.Add(r.Context(), draft)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

// getEntry implements GET /entries/{id}.
func (s *Server) getEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.entries.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// updateEntry implements PUT /entries/{id}. The body is a partial patch:
// absent fields keep their current values, id and createdAt never change.
func (s *Server) updateEntry(w http.ResponseWriter, r *http.Request) {
	var patch domain.EntryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondRequestError(w, "invalid request body")
		return
	}

	entry, err := s.entries.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// deleteEntry implements DELETE /entries/{id}.
func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.entries.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// clearEntries implements DELETE /entries: empties the whole collection.
func (s *Server) clearEntries(w http.ResponseWriter, r *http.Request) {
	if err := s.entries.ClearAll(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
