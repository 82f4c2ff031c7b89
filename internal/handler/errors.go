package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/artart33/travel-logger/internal/domain"
)

// errorResponse is the JSON error envelope returned by every endpoint.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck — nothing useful to do if the client went away mid-write.
	json.NewEncoder(w).Encode(v)
}

// respondError maps a domain sentinel to its HTTP status and error code:
// ErrNotFound → 404, ErrValidation → 422, ErrBadFormat → 400,
// ErrNoContent → 404, ErrStorage → 500. Anything else is a 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{errorDetail{Code: "not_found", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrValidation):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{errorDetail{Code: "validation_error", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrBadFormat):
		respondJSON(w, http.StatusBadRequest, errorResponse{errorDetail{Code: "bad_format", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrNoContent):
		respondJSON(w, http.StatusNotFound, errorResponse{errorDetail{Code: "no_content", Message: "no matching entries"}})
	default:
		respondJSON(w, http.StatusInternalServerError, errorResponse{errorDetail{Code: "internal_error", Message: "internal error"}})
	}
}

// respondRequestError reports a bad request rejected before reaching the
// store (e.g. missing or malformed body or query parameter).
func respondRequestError(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{errorDetail{Code: "bad_request", Message: message}})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "store.EntryStore.Add: validation error: title is required"
// → "title is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, marker := range []string{"validation error: ", "bad format: ", "not found: "} {
		if i := strings.LastIndex(msg, marker); i >= 0 {
			return msg[i+len(marker):]
		}
	}
	// Strip "pkg.Type.Op: " prefixes when no sentinel message followed.
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
