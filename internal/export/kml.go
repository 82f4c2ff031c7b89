package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/artart33/travel-logger/internal/domain"
	"github.com/artart33/travel-logger/internal/store"
)

// kmlStyle describes the marker style for one entry type: an ABGR icon/label
// color and a Google Earth shape icon.
type kmlStyle struct {
	id    string
	color string
	icon  string
}

// kmlStyles maps each canonical entry type to its marker style. Unknown or
// legacy type values fall back to kmlDefaultStyle instead of erroring.
var kmlStyles = map[domain.EntryType]kmlStyle{
	domain.TypeFood:          {id: "food", color: "ff0066ff", icon: "http://maps.google.com/mapfiles/kml/shapes/dining.png"},
	domain.TypeAccommodation: {id: "accommodation", color: "ffff6600", icon: "http://maps.google.com/mapfiles/kml/shapes/lodging.png"},
	domain.TypeRoute:         {id: "route", color: "ff00ff00", icon: "http://maps.google.com/mapfiles/kml/shapes/road.png"},
	domain.TypeAttraction:    {id: "attraction", color: "ffff00ff", icon: "http://maps.google.com/mapfiles/kml/shapes/camera.png"},
}

var kmlDefaultStyle = kmlStyle{id: "default", color: "ffffffff", icon: "http://maps.google.com/mapfiles/kml/pushpin/ylw-pushpin.png"}

// GenerateKML renders the collection as a KML 2.2 document, one Placemark per
// entry with a resolvable position. An optional date (YYYY-MM-DD) restricts
// the export to that travel day.
//
// Entries without coordinates — no stored pair and no "lat,lng" pattern in
// the location text — are silently dropped from the document, not from the
// dataset. When nothing at all is geocodable the generator returns
// domain.ErrNoContent instead of an empty but valid document; callers must
// surface that as an error.
func GenerateKML(entries []domain.Entry, date string) ([]byte, error) {
	filtered := store.FilterByDate(entries, date)

	type placed struct {
		entry domain.Entry
		pos   domain.LatLng
	}
	placemarks := []placed{}
	for _, e := range filtered {
		if pos, ok := e.Resolve(); ok {
			placemarks = append(placemarks, placed{entry: e, pos: pos})
		}
	}
	if len(placemarks) == 0 {
		return nil, fmt.Errorf("export.GenerateKML: %w", domain.ErrNoContent)
	}

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<kml xmlns=\"http://www.opengis.net/kml/2.2\">\n")
	b.WriteString("  <Document>\n")
	fmt.Fprintf(&b, "    <name>Travel Log - %s</name>\n", escapeXML(kmlDocumentLabel(date)))
	b.WriteString("    <description>Travel entries exported from Travel Logger</description>\n")

	for _, t := range domain.Types() {
		writeKMLStyle(&b, kmlStyles[t])
	}
	writeKMLStyle(&b, kmlDefaultStyle)

	for _, p := range placemarks {
		writePlacemark(&b, p.entry, p.pos)
	}

	b.WriteString("  </Document>\n")
	b.WriteString("</kml>\n")
	return []byte(b.String()), nil
}

// kmlDocumentLabel renders the document title suffix: the long-form date for
// a single-day export, "All Entries" for a full export.
func kmlDocumentLabel(date string) string {
	if date == "" {
		return "All Entries"
	}
	d, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return date
	}
	return d.Format("January 2, 2006")
}

func writeKMLStyle(b *strings.Builder, s kmlStyle) {
	fmt.Fprintf(b, `    <Style id="%s">
      <IconStyle>
        <color>%s</color>
        <scale>1.2</scale>
        <Icon>
          <href>%s</href>
        </Icon>
      </IconStyle>
      <LabelStyle>
        <color>%s</color>
        <scale>0.8</scale>
      </LabelStyle>
    </Style>
`, s.id, s.color, s.icon, s.color)
}

func writePlacemark(b *strings.Builder, e domain.Entry, pos domain.LatLng) {
	style, ok := kmlStyles[e.Type.Normalize()]
	if !ok {
		style = kmlDefaultStyle
	}

	b.WriteString("    <Placemark>\n")
	fmt.Fprintf(b, "      <name>%s</name>\n", escapeXML(e.Title))
	fmt.Fprintf(b, "      <description><![CDATA[%s]]></description>\n", placemarkDescription(e))
	fmt.Fprintf(b, "      <styleUrl>#%s</styleUrl>\n", style.id)
	b.WriteString("      <Point>\n")
	fmt.Fprintf(b, "        <coordinates>%s,%s,0</coordinates>\n", formatCoord(pos.Lng), formatCoord(pos.Lat))
	b.WriteString("      </Point>\n")
	b.WriteString("      <ExtendedData>\n")
	writeKMLData(b, "type", string(e.Type))
	writeKMLData(b, "rating", fmt.Sprintf("%d", e.Rating))
	writeKMLData(b, "date", e.Date)
	writeKMLData(b, "location", e.Location)
	b.WriteString("      </ExtendedData>\n")
	b.WriteString("    </Placemark>\n")
}

func writeKMLData(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "        <Data name=\"%s\">\n          <value>%s</value>\n        </Data>\n",
		name, escapeXML(value))
}

// placemarkDescription builds the HTML balloon shown when the marker is
// clicked in Google Earth. The markup lives inside a CDATA section, but the
// user-supplied text is still escaped so stray angle brackets cannot break
// the balloon layout.
func placemarkDescription(e domain.Entry) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 300px;">`)
	fmt.Fprintf(&b, `<h3>%s</h3>`, escapeXML(e.Title))
	fmt.Fprintf(&b, `<p><strong>Location:</strong> %s</p>`, escapeXML(e.Location))
	fmt.Fprintf(&b, `<p><strong>Type:</strong> %s</p>`, escapeXML(capitalizeFirst(string(e.Type))))
	fmt.Fprintf(&b, `<p><strong>Date:</strong> %s</p>`, escapeXML(e.Date))
	fmt.Fprintf(&b, `<p><strong>Rating:</strong> %s (%d/5)</p>`, starString(e.Rating), e.Rating)
	if e.Description != "" {
		fmt.Fprintf(&b, `<p><strong>Description:</strong><br/>%s</p>`, escapeXML(e.Description))
	}
	if e.Notes != "" {
		fmt.Fprintf(&b, `<p><strong>Notes:</strong><br/>%s</p>`, escapeXML(e.Notes))
	}
	if len(e.Photos) > 0 {
		fmt.Fprintf(&b, `<p><strong>Photos:</strong> %d attached</p>`, len(e.Photos))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// formatCoord renders a coordinate component without trailing zeros.
func formatCoord(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", v), "0"), ".")
}

// xmlEscaper covers the five special XML characters.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
