package handler

import (
	"io"
	"net/http"
)

// importEntries implements POST /import: replaces the whole collection with
// the posted JSON array. Only array-of-entry-objects payloads are accepted;
// anything else is rejected before the persisted snapshot is touched.
// A previously exported JSON artifact round-trips through here losslessly.
func (s *Server) importEntries(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		respondRequestError(w, "could not read request body")
		return
	}

	count, err := s.entries.Import(r.Context(), raw)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"imported": count})
}
