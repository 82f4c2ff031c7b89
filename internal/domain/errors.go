package domain

import "errors"

// ErrNotFound is returned by store operations when no entry with the
// requested ID exists. Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. blank title, rating out of range, too many photos).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrNoContent is returned by export generators when the (filtered)
// collection yields nothing to render — no geocodable entries for KML,
// no matching entries for PDF. The artifact is not produced.
var ErrNoContent = errors.New("no matching entries")

// ErrStorage wraps persistence failures (unreadable or unwritable snapshot).
// Nothing here is fatal: the store stays usable with an empty collection and
// callers surface a warning instead of crashing.
var ErrStorage = errors.New("storage error")

// ErrBadFormat is returned by the import path when the payload is not a JSON
// array of entry objects. The persisted snapshot is left untouched.
var ErrBadFormat = errors.New("bad format")
