// Geocoding proxy endpoints.
// Keeping the lookups server-side means one configured User-Agent and one
// place to apply the coordinate fallback.

package handler

import (
	"net/http"
	"strconv"

	"github.com/artart33/travel-logger/internal/domain"
)

// searchGeocode implements GET /geocode?q=&limit=: forward geocoding of a
// free-text query. Upstream failures surface as 502 — the caller still has
// the raw text the user typed.
func (s *Server) searchGeocode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respondRequestError(w, "query parameter q is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	places, err := s.geo.Search(r.Context(), q, limit)
	if err != nil {
		respondJSON(w, http.StatusBadGateway, errorResponse{errorDetail{Code: "geocode_error", Message: "geocoding service unavailable"}})
		return
	}
	respondJSON(w, http.StatusOK, places)
}

// reverseGeocode implements GET /geocode/reverse?lat=&lng=. An upstream
// failure is not an error here: the response degrades to the six-decimal
// coordinate string, which is exactly what the entry form would store anyway.
func (s *Server) reverseGeocode(w http.ResponseWriter, r *http.Request) {
	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, err2 := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err1 != nil || err2 != nil {
		respondRequestError(w, "query parameters lat and lng must be decimal numbers")
		return
	}
	pos := domain.LatLng{Lat: lat, Lng: lng}

	address, err := s.geo.Reverse(r.Context(), pos)
	fallback := err != nil
	if fallback {
		address = pos.String()
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"address":  address,
		"fallback": fallback,
	})
}
