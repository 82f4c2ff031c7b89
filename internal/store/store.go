// Package store contains the Entry Store: the single source of truth for the
// travel entry collection. It validates input, enforces the persistence
// contract (every mutation is flushed to the snapshot before returning), and
// exposes the derived views the handlers and export pipeline consume.
// No serialization lives here — the store depends on the snapshot.Store
// interface, not a concrete backend.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artart33/travel-logger/internal/domain"
	"github.com/artart33/travel-logger/internal/snapshot"
)

// EntryStore owns the in-memory entry collection backed by a snapshot store.
// A mutex serializes mutations; reads hand out defensive copies so callers
// can never alias internal state.
type EntryStore struct {
	mu      sync.Mutex
	entries []domain.Entry
	snap    snapshot.Store
	now     func() time.Time
}

// New constructs an EntryStore over the given snapshot backend.
// Call Load before serving traffic to pick up the persisted collection.
func New(snap snapshot.Store) *EntryStore {
	return &EntryStore{
		entries: []domain.Entry{},
		snap:    snap,
		now:     time.Now,
	}
}

// Load reads the persisted snapshot into memory. A missing snapshot loads as
// an empty collection. A corrupt snapshot also leaves the store usable with
// an empty collection — the error is returned so the caller can surface a
// warning, but the rest of the application keeps working.
func (s *EntryStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.snap.Load(ctx)
	if err != nil {
		s.entries = []domain.Entry{}
		return fmt.Errorf("store.EntryStore.Load: %w", err)
	}
	for i := range entries {
		entries[i].Type = entries[i].Type.Normalize()
	}
	s.entries = entries
	return nil
}

// Add validates the draft, stamps ID and CreatedAt, appends it to the
// collection, and persists before returning the materialized entry.
// The draft's ID, CreatedAt, and (when absent) Date and Coordinates fields
// are filled in; everything else is taken as given.
func (s *EntryStore) Add(ctx context.Context, draft domain.Entry) (domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	draft.ID = uuid.NewString()
	draft.CreatedAt = now
	draft.Type = draft.Type.Normalize()
	if draft.Date == "" {
		draft.Date = now.Format(domain.DateFormat)
	}
	if draft.Coordinates == nil {
		if pos, ok := domain.ParseLatLng(draft.Location); ok {
			draft.Coordinates = &pos
		}
	}
	if err := validateEntry(draft); err != nil {
		return domain.Entry{}, err
	}

	next := append(copyEntries(s.entries), draft)
	if err := s.snap.Save(ctx, next); err != nil {
		return domain.Entry{}, fmt.Errorf("store.EntryStore.Add: %w", err)
	}
	s.entries = next
	return draft, nil
}

// Update merges patch over the entry with the given ID and persists.
// ID and CreatedAt are never changed. Returns domain.ErrNotFound when no
// entry matches.
func (s *EntryStore) Update(ctx context.Context, id string, patch domain.EntryPatch) (domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Entry{}, fmt.Errorf("store.EntryStore.Update: %w", domain.ErrNotFound)
	}

	merged := applyPatch(s.entries[idx], patch)
	if err := validateEntry(merged); err != nil {
		return domain.Entry{}, err
	}

	next := copyEntries(s.entries)
	next[idx] = merged
	if err := s.snap.Save(ctx, next); err != nil {
		return domain.Entry{}, fmt.Errorf("store.EntryStore.Update: %w", err)
	}
	s.entries = next
	return merged, nil
}

// Delete removes the entry with the given ID and persists.
// Returns domain.ErrNotFound when no entry matches.
func (s *EntryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("store.EntryStore.Delete: %w", domain.ErrNotFound)
	}

	next := copyEntries(s.entries)
	next = append(next[:idx], next[idx+1:]...)
	if err := s.snap.Save(ctx, next); err != nil {
		return fmt.Errorf("store.EntryStore.Delete: %w", err)
	}
	s.entries = next
	return nil
}

// ClearAll empties the collection and persists.
func (s *EntryStore) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := []domain.Entry{}
	if err := s.snap.Save(ctx, next); err != nil {
		return fmt.Errorf("store.EntryStore.ClearAll: %w", err)
	}
	s.entries = next
	return nil
}

// Import replaces the whole collection with the entries decoded from raw.
// Only a JSON array of entry objects is accepted; anything else returns
// domain.ErrBadFormat and leaves the stored snapshot untouched. This is the
// round-trip partner of the JSON export.
func (s *EntryStore) Import(ctx context.Context, raw []byte) (int, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return 0, fmt.Errorf("store.EntryStore.Import: %w: expected a JSON array of entries", domain.ErrBadFormat)
	}

	entries := make([]domain.Entry, 0, len(elems))
	for i, elem := range elems {
		if len(elem) == 0 || elem[0] != '{' {
			return 0, fmt.Errorf("store.EntryStore.Import: %w: element %d is not an object", domain.ErrBadFormat, i)
		}
		var e domain.Entry
		if err := json.Unmarshal(elem, &e); err != nil {
			return 0, fmt.Errorf("store.EntryStore.Import: %w: element %d: %v", domain.ErrBadFormat, i, err)
		}
		e.Type = e.Type.Normalize()
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		entries = append(entries, e)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.snap.Save(ctx, entries); err != nil {
		return 0, fmt.Errorf("store.EntryStore.Import: %w", err)
	}
	s.entries = entries
	return len(entries), nil
}

// List returns a defensive copy of the full collection in insertion order.
func (s *EntryStore) List(_ context.Context) []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyEntries(s.entries)
}

// Get returns the entry with the given ID.
// Returns domain.ErrNotFound when no entry matches.
func (s *EntryStore) Get(_ context.Context, id string) (domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Entry{}, fmt.Errorf("store.EntryStore.Get: %w", domain.ErrNotFound)
	}
	return s.entries[idx], nil
}

// Available reports whether the snapshot backend is currently writable.
func (s *EntryStore) Available(ctx context.Context) bool {
	return s.snap.Available(ctx)
}

// indexOf returns the position of the entry with the given ID, or -1.
// Callers must hold s.mu.
func (s *EntryStore) indexOf(id string) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// applyPatch shallow-merges patch over base: set fields replace, nil fields
// keep the existing value. ID and CreatedAt always come from base. When the
// patch moves the entry (new Location, no explicit Coordinates) the stored
// coordinates are re-derived from the new location text so consumers never
// see a stale position.
func applyPatch(base domain.Entry, patch domain.EntryPatch) domain.Entry {
	out := base
	if patch.Type != nil {
		out.Type = patch.Type.Normalize()
	}
	if patch.Title != nil {
		out.Title = *patch.Title
	}
	if patch.Location != nil {
		out.Location = *patch.Location
		if patch.Coordinates == nil {
			out.Coordinates = nil
			if pos, ok := domain.ParseLatLng(out.Location); ok {
				out.Coordinates = &pos
			}
		}
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.Notes != nil {
		out.Notes = *patch.Notes
	}
	if patch.Rating != nil {
		out.Rating = *patch.Rating
	}
	if patch.Date != nil {
		out.Date = *patch.Date
	}
	if patch.Coordinates != nil {
		pos := *patch.Coordinates
		out.Coordinates = &pos
	}
	if patch.Photos != nil {
		out.Photos = append([]domain.Photo(nil), (*patch.Photos)...)
	}
	return out
}

// validateEntry enforces the business rules common to Add and Update.
//   - Title and Location must be non-blank (whitespace-only is rejected).
//   - Rating must be between 1 and 5 inclusive.
//   - Type must be one of the canonical entry types.
//   - Date must be a valid YYYY-MM-DD calendar date.
//   - At most domain.MaxPhotosPerEntry photos.
func validateEntry(e domain.Entry) error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(e.Location) == "" {
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	}
	if e.Rating < 1 || e.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: unknown entry type %q", domain.ErrValidation, e.Type)
	}
	if _, err := time.Parse(domain.DateFormat, e.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	if len(e.Photos) > domain.MaxPhotosPerEntry {
		return fmt.Errorf("%w: at most %d photos per entry", domain.ErrValidation, domain.MaxPhotosPerEntry)
	}
	return nil
}

// copyEntries returns a shallow copy of the collection slice.
func copyEntries(entries []domain.Entry) []domain.Entry {
	return append([]domain.Entry{}, entries...)
}
