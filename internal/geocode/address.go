package geocode

import "strings"

// address holds the Nominatim address components the display string is built
// from. Nominatim uses different keys depending on the place kind, so most
// components have one or two fallbacks.
type address struct {
	Road          string `json:"road"`
	Street        string `json:"street"`
	HouseNumber   string `json:"house_number"`
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	State         string `json:"state"`
	County        string `json:"county"`
	Country       string `json:"country"`
}

// Display concatenates the components into a single human-readable address
// with street-level precision: road (with house number), suburb, city, state,
// country. A component is skipped when it duplicates the road or is already
// contained in the string built so far, so "Utrecht, Utrecht, Netherlands"
// never happens. Returns "" when no component is present.
func (a address) Display() string {
	road := firstOf(a.Road, a.Street)
	suburb := firstOf(a.Suburb, a.Neighbourhood)
	city := firstOf(a.City, a.Town, a.Village)
	state := firstOf(a.State, a.County)

	var b strings.Builder
	if road != "" {
		b.WriteString(road)
		if a.HouseNumber != "" {
			b.WriteString(" " + a.HouseNumber)
		}
	}
	appendPart(&b, suburb, suburb != road)
	appendPart(&b, city, true)
	appendPart(&b, state, true)
	appendPart(&b, a.Country, true)
	return b.String()
}

// appendPart appends ", part" when part is non-empty, allowed, and not
// already present in the string built so far.
func appendPart(b *strings.Builder, part string, allowed bool) {
	if part == "" || !allowed || strings.Contains(b.String(), part) {
		return
	}
	if b.Len() > 0 {
		b.WriteString(", ")
	}
	b.WriteString(part)
}

// firstOf returns the first non-empty value.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
