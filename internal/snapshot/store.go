// Package snapshot contains the persistence port for the entry collection.
// The whole collection is stored as one JSON document in a single named slot;
// every mutation rewrites the full snapshot, so in-memory and persisted state
// never diverge on a successful return. Each backend has its own file with a
// constructor returning the Store interface. No business logic lives here —
// only serialization and slot access.
package snapshot

import (
	"context"

	"github.com/artart33/travel-logger/internal/domain"
)

// Slot is the name of the storage slot holding the entry collection.
// It is kept identical to the key earlier releases used so existing data
// is picked up unchanged.
const Slot = "travelEntries"

// Store defines the persistence operations for the entry collection.
// The entry store depends on this interface, not on a concrete backend,
// which allows unit tests to inject an in-memory double.
type Store interface {
	// Load reads the persisted snapshot. A missing snapshot is not an
	// error: Load returns an empty collection. A present but unreadable
	// snapshot returns an error wrapping domain.ErrStorage.
	Load(ctx context.Context) ([]domain.Entry, error)

	// Save serializes the entire collection and replaces the slot contents.
	// Errors wrap domain.ErrStorage.
	Save(ctx context.Context, entries []domain.Entry) error

	// Available probes whether the backend is writable, so callers can warn
	// the user up front rather than silently lose data later.
	Available(ctx context.Context) bool
}
