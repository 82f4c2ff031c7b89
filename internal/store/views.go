package store

import (
	"sort"
	"strings"
	"time"

	"github.com/artart33/travel-logger/internal/domain"
)

// Derived views: pure functions over an entry slice, no side effects and no
// store state. They are package-level so the export pipeline can apply them
// to an already-captured snapshot without holding the store lock.

// FilterByQuery returns entries whose title or location contains q,
// case-insensitively. An empty query matches everything.
func FilterByQuery(entries []domain.Entry, q string) []domain.Entry {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return entries
	}
	out := []domain.Entry{}
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.Location), q) {
			out = append(out, e)
		}
	}
	return out
}

// FilterByType returns entries of the given type.
func FilterByType(entries []domain.Entry, t domain.EntryType) []domain.Entry {
	out := []domain.Entry{}
	for _, e := range entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// FilterByDate returns entries whose travel date equals date (YYYY-MM-DD).
// An empty date matches everything.
func FilterByDate(entries []domain.Entry, date string) []domain.Entry {
	if date == "" {
		return entries
	}
	out := []domain.Entry{}
	for _, e := range entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// CountByType returns the number of entries per canonical type.
// Every canonical type is present in the result, zero included.
func CountByType(entries []domain.Entry) map[domain.EntryType]int {
	counts := make(map[domain.EntryType]int, 4)
	for _, t := range domain.Types() {
		counts[t] = 0
	}
	for _, e := range entries {
		counts[e.Type.Normalize()]++
	}
	return counts
}

// UniqueDates returns the distinct travel dates, newest first.
func UniqueDates(entries []domain.Entry) []string {
	seen := map[string]bool{}
	dates := []string{}
	for _, e := range entries {
		if !seen[e.Date] {
			seen[e.Date] = true
			dates = append(dates, e.Date)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// UniqueLocations returns the distinct location strings in first-seen order.
func UniqueLocations(entries []domain.Entry) []string {
	seen := map[string]bool{}
	locations := []string{}
	for _, e := range entries {
		if !seen[e.Location] {
			seen[e.Location] = true
			locations = append(locations, e.Location)
		}
	}
	return locations
}

// GroupByLocation groups entries by their location string.
func GroupByLocation(entries []domain.Entry) map[string][]domain.Entry {
	groups := map[string][]domain.Entry{}
	for _, e := range entries {
		groups[e.Location] = append(groups[e.Location], e)
	}
	return groups
}

// ComputeStats summarizes the collection: totals, distinct locations, mean
// rating, span in days between the earliest and latest travel date, and
// per-type counts. A single-date collection has a span of zero days.
func ComputeStats(entries []domain.Entry) domain.Stats {
	stats := domain.Stats{
		TotalEntries:    len(entries),
		UniqueLocations: len(UniqueLocations(entries)),
		CountsByType:    CountByType(entries),
	}
	if len(entries) == 0 {
		return stats
	}

	sum := 0
	var minDate, maxDate time.Time
	haveDate := false
	for _, e := range entries {
		sum += e.Rating
		d, err := time.Parse(domain.DateFormat, e.Date)
		if err != nil {
			continue
		}
		if !haveDate || d.Before(minDate) {
			minDate = d
		}
		if !haveDate || d.After(maxDate) {
			maxDate = d
		}
		haveDate = true
	}
	stats.AverageRating = float64(sum) / float64(len(entries))
	if haveDate {
		stats.DateSpanDays = int(maxDate.Sub(minDate).Hours() / 24)
	}
	return stats
}

// ComputeDateStats returns per-day totals and type counts, newest date first.
// This backs the date pickers of the export flows.
func ComputeDateStats(entries []domain.Entry) []domain.DateStats {
	out := []domain.DateStats{}
	for _, date := range UniqueDates(entries) {
		day := FilterByDate(entries, date)
		out = append(out, domain.DateStats{
			Date:         date,
			Total:        len(day),
			CountsByType: CountByType(day),
		})
	}
	return out
}

// SortByDate returns a copy of entries ordered by travel date ascending.
// Entries sharing a date keep their relative insertion order.
func SortByDate(entries []domain.Entry) []domain.Entry {
	out := append([]domain.Entry{}, entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
