// Package domain contains the core data types for the Travel Logger application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (snapshot, store, export, handler).
package domain

import "time"

// DateFormat is the calendar-date layout used by Entry.Date and all
// date-filtered operations. Dates carry no time zone or clock component.
const DateFormat = "2006-01-02"

// EntryType classifies a travel entry. The set is closed; unknown values are
// preserved on round-trips but render with the default marker style in
// exports.
type EntryType string

const (
	TypeFood          EntryType = "food"
	TypeAccommodation EntryType = "accommodation"
	TypeRoute         EntryType = "route"
	TypeAttraction    EntryType = "attraction"
)

// legacyDiner is the label an earlier release used for food entries.
// Normalize migrates it so old snapshots and imports keep working.
const legacyDiner EntryType = "diner"

// Normalize maps legacy type labels onto the canonical set.
func (t EntryType) Normalize() EntryType {
	if t == legacyDiner {
		return TypeFood
	}
	return t
}

// Valid reports whether t is one of the four canonical entry types.
func (t EntryType) Valid() bool {
	switch t {
	case TypeFood, TypeAccommodation, TypeRoute, TypeAttraction:
		return true
	}
	return false
}

// Types lists the canonical entry types in display order.
func Types() []EntryType {
	return []EntryType{TypeFood, TypeAccommodation, TypeRoute, TypeAttraction}
}

// Entry represents a single logged travel moment.
//
// Location holds the free-text address the user supplied; it may itself be a
// "lat, lng" pair. Coordinates is the parsed position when one is known —
// consumers should call Resolve rather than re-parsing Location.
type Entry struct {
	ID          string    `json:"id"`
	Type        EntryType `json:"type"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Rating      int       `json:"rating"`
	Date        string    `json:"date"`
	Coordinates *LatLng   `json:"coordinates,omitempty"`
	Photos      []Photo   `json:"photos,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Resolve returns the entry's position: stored Coordinates when present,
// otherwise a "lat,lng" pair parsed out of Location. The boolean is false
// when neither yields a position.
func (e Entry) Resolve() (LatLng, bool) {
	if e.Coordinates != nil {
		return *e.Coordinates, true
	}
	return ParseLatLng(e.Location)
}

// EntryPatch is a partial update applied by the store's Update operation.
// Nil fields are left untouched; set fields replace the existing value
// (shallow merge). ID and CreatedAt are never patchable.
type EntryPatch struct {
	Type        *EntryType `json:"type,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Description *string    `json:"description,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	Rating      *int       `json:"rating,omitempty"`
	Date        *string    `json:"date,omitempty"`
	Coordinates *LatLng    `json:"coordinates,omitempty"`
	Photos      *[]Photo   `json:"photos,omitempty"`
}
