// Package export contains the Export Pipeline: pure generators that render an
// entry collection into a downloadable artifact (JSON, KML, or PDF) plus the
// sequential batch runner. Generators never mutate the collection; callers
// pass the snapshot they want rendered.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/artart33/travel-logger/internal/domain"
)

// Filename returns the artifact filename for the given extension.
// A single-date export is named travel-log-<date>.<ext>; a full export is
// named travel-log-complete-<today>.<ext>.
func Filename(ext, date string, now time.Time) string {
	if date != "" {
		return fmt.Sprintf("travel-log-%s.%s", date, ext)
	}
	return fmt.Sprintf("travel-log-complete-%s.%s", now.Format(domain.DateFormat), ext)
}

// GenerateJSON renders the collection as a pretty-printed JSON array, the
// exact shape the store's Import operation accepts back.
func GenerateJSON(entries []domain.Entry) ([]byte, error) {
	if entries == nil {
		entries = []domain.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export.GenerateJSON: %w", err)
	}
	return data, nil
}

// starString renders a rating as five star symbols, filled up to the rating.
func starString(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	out := ""
	for i := 0; i < rating; i++ {
		out += "★"
	}
	for i := rating; i < 5; i++ {
		out += "☆"
	}
	return out
}
