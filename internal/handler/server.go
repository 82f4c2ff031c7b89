// Package handler implements the HTTP handlers for the Travel Logger API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (entry.go, export.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/artart33/travel-logger/internal/domain"
	"github.com/artart33/travel-logger/internal/geocode"
)

// EntryStorer defines the entry-store operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the snapshot layer.
type EntryStorer interface {
	List(ctx context.Context) []domain.Entry
	Get(ctx context.Context, id string) (domain.Entry, error)
	Add(ctx context.Context, draft domain.Entry) (domain.Entry, error)
	Update(ctx context.Context, id string, patch domain.EntryPatch) (domain.Entry, error)
	Delete(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
	Import(ctx context.Context, raw []byte) (int, error)
	Available(ctx context.Context) bool
}

// Geocoder defines the geocoding lookups the handlers depend on.
type Geocoder interface {
	Reverse(ctx context.Context, pos domain.LatLng) (string, error)
	Search(ctx context.Context, query string, limit int) ([]geocode.Place, error)
}

// Server implements all API endpoints. Wire it in main.go via Routes().
type Server struct {
	entries EntryStorer
	geo     Geocoder
}

// NewServer constructs the Server with all its dependencies.
func NewServer(entries EntryStorer, geo Geocoder) *Server {
	return &Server{entries: entries, geo: geo}
}

// Routes returns the chi router with every endpoint registered.
// Cross-cutting middleware (request ID, logging, CORS, body limits) is
// applied by main.go around this router, not here.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.getHealth)
	r.Get("/storage", s.getStorage)

	r.Route("/entries", func(r chi.Router) {
		r.Get("/", s.listEntries)
		r.Post("/", s.createEntry)
		r.Delete("/", s.clearEntries)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getEntry)
			r.Put("/", s.updateEntry)
			r.Delete("/", s.deleteEntry)
			r.Post("/photos", s.addPhoto)
			r.Delete("/photos/{photoID}", s.deletePhoto)
		})
	})

	r.Post("/import", s.importEntries)

	r.Get("/stats", s.getStats)
	r.Get("/dates", s.getDates)
	r.Get("/locations", s.getLocations)

	r.Route("/export", func(r chi.Router) {
		r.Get("/json", s.exportJSON)
		r.Get("/kml", s.exportKML)
		r.Get("/kml/batch", s.exportKMLBatch)
		r.Get("/pdf", s.exportPDF)
	})

	r.Get("/geocode", s.searchGeocode)
	r.Get("/geocode/reverse", s.reverseGeocode)

	return r
}
