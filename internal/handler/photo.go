// Photo attachment endpoints.
// Photos are stored inline on the entry record, so attaching and removing are
// expressed as entry patches; the cap of five per entry is enforced here
// before the store re-validates it.

package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/artart33/travel-logger/internal/domain"
)

// addPhoto implements POST /entries/{id}/photos. The body is multipart form
// data with the image under the "photo" field. The MIME type is sniffed from
// the content, never trusted from the upload.
func (s *Server) addPhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := s.entries.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if len(entry.Photos) >= domain.MaxPhotosPerEntry {
		respondError(w, fmt.Errorf("%w: at most %d photos per entry", domain.ErrValidation, domain.MaxPhotosPerEntry))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		respondRequestError(w, `multipart field "photo" is required`)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondRequestError(w, "could not read uploaded file")
		return
	}
	if len(data) == 0 {
		respondRequestError(w, "uploaded file is empty")
		return
	}

	photo := domain.Photo{
		ID:       uuid.NewString(),
		Data:     data,
		Name:     header.Filename,
		MIMEType: http.DetectContentType(data),
		Size:     int64(len(data)),
		AddedAt:  time.Now().UTC(),
	}

	photos := append(append([]domain.Photo{}, entry.Photos...), photo)
	updated, err := s.entries.Update(r.Context(), id, domain.EntryPatch{Photos: &photos})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, updated)
}

// deletePhoto implements DELETE /entries/{id}/photos/{photoID}.
func (s *Server) deletePhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	photoID := chi.URLParam(r, "photoID")

	entry, err := s.entries.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	photos := make([]domain.Photo, 0, len(entry.Photos))
	found := false
	for _, p := range entry.Photos {
		if p.ID == photoID {
			found = true
			continue
		}
		photos = append(photos, p)
	}
	if !found {
		respondError(w, fmt.Errorf("photo %s: %w", photoID, domain.ErrNotFound))
		return
	}

	if _, err := s.entries.Update(r.Context(), id, domain.EntryPatch{Photos: &photos}); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
