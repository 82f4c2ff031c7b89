package domain

// Stats summarizes an entry collection for the statistics page of a PDF
// export and the /stats endpoint.
type Stats struct {
	TotalEntries    int               `json:"total_entries"`
	UniqueLocations int               `json:"unique_locations"`
	AverageRating   float64           `json:"average_rating"`
	DateSpanDays    int               `json:"date_span_days"`
	CountsByType    map[EntryType]int `json:"counts_by_type"`
}

// DateStats summarizes the entries logged on a single calendar date.
// One DateStats per distinct Entry.Date, newest date first.
type DateStats struct {
	Date         string            `json:"date"`
	Total        int               `json:"total"`
	CountsByType map[EntryType]int `json:"counts_by_type"`
}
