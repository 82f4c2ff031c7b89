package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// LatLng is a geographic coordinate pair (WGS 84).
type LatLng struct {
	Lat float64
	Lng float64
}

// latLngPattern matches a "lat,lng" decimal pair embedded in free text,
// tolerating whitespace after the comma (e.g. "52.0907, 5.1214").
var latLngPattern = regexp.MustCompile(`(-?\d+\.?\d*),\s*(-?\d+\.?\d*)`)

// ParseLatLng extracts the first "lat,lng" pair found in s.
// Returns false when s contains no parseable pair.
func ParseLatLng(s string) (LatLng, bool) {
	m := latLngPattern.FindStringSubmatch(s)
	if m == nil {
		return LatLng{}, false
	}
	lat, err1 := strconv.ParseFloat(m[1], 64)
	lng, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return LatLng{}, false
	}
	return LatLng{Lat: lat, Lng: lng}, true
}

// String renders the pair as "lat, lng" with six decimal places, the display
// form used wherever an address could not be resolved.
func (p LatLng) String() string {
	return fmt.Sprintf("%.6f, %.6f", p.Lat, p.Lng)
}

// MarshalJSON encodes the pair as a two-element [lat, lng] array, the shape
// written by earlier releases, so exported files stay interchangeable.
func (p LatLng) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lat, p.Lng})
}

// UnmarshalJSON accepts either the [lat, lng] array form or a
// {"lat": …, "lng": …} object.
func (p *LatLng) UnmarshalJSON(data []byte) error {
	var arr [2]float64
	if err := json.Unmarshal(data, &arr); err == nil {
		p.Lat, p.Lng = arr[0], arr[1]
		return nil
	}
	var obj struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("domain.LatLng: want [lat,lng] or {lat,lng}: %w", err)
	}
	p.Lat, p.Lng = obj.Lat, obj.Lng
	return nil
}
