package export

import (
	"context"
	"fmt"
	"time"

	"github.com/artart33/travel-logger/internal/domain"
)

// Sink receives finished artifacts. It is the stand-in for the browser
// download of earlier releases; the batch endpoint hands it a zip writer.
type Sink interface {
	Write(ctx context.Context, filename string, data []byte) error
}

// BatchResult records the outcome of one date in a batch export.
type BatchResult struct {
	Date     string `json:"date"`
	Filename string `json:"filename,omitempty"`
	Err      error  `json:"-"`
}

// BatchOptions tunes a batch run. Pace inserts a delay between artifacts for
// sinks subject to download throttling; zero (the default) runs back to back.
type BatchOptions struct {
	Pace time.Duration
}

// BatchKML exports one KML artifact per date, strictly one at a time in the
// given order. A failing date never aborts the rest of the run: its error is
// recorded and the remaining dates still export. The returned error is nil
// only when every date succeeded; otherwise it reports the aggregate failure
// count, with per-date detail in the results.
func BatchKML(ctx context.Context, entries []domain.Entry, dates []string, sink Sink, opts BatchOptions) ([]BatchResult, error) {
	results := make([]BatchResult, 0, len(dates))
	failed := 0

	for i, date := range dates {
		if i > 0 && opts.Pace > 0 {
			select {
			case <-time.After(opts.Pace):
			case <-ctx.Done():
				return results, fmt.Errorf("export.BatchKML: %w", ctx.Err())
			}
		}

		res := BatchResult{Date: date}
		data, err := GenerateKML(entries, date)
		if err != nil {
			res.Err = err
			failed++
			results = append(results, res)
			continue
		}

		res.Filename = Filename("kml", date, time.Now())
		if err := sink.Write(ctx, res.Filename, data); err != nil {
			res.Err = fmt.Errorf("export.BatchKML: write %s: %w", res.Filename, err)
			failed++
		}
		results = append(results, res)
	}

	if failed > 0 {
		return results, fmt.Errorf("export.BatchKML: %d of %d dates failed", failed, len(dates))
	}
	return results, nil
}
