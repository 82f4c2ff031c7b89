// The /export endpoints.
// Each endpoint renders the current collection into a downloadable artifact
// via the export pipeline; none of them mutate the store.

package handler

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/artart33/travel-logger/internal/export"
)

// exportJSON implements GET /export/json: the full collection, pretty-printed,
// importable back through POST /import.
func (s *Server) exportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := export.GenerateJSON(s.entries.List(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	serveArtifact(w, export.Filename("json", "", time.Now()), "application/json", data)
}

// exportKML implements GET /export/kml with an optional ?date= filter.
func (s *Server) exportKML(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	data, err := export.GenerateKML(s.entries.List(r.Context()), date)
	if err != nil {
		respondError(w, err)
		return
	}
	serveArtifact(w, export.Filename("kml", date, time.Now()), "application/vnd.google-earth.kml+xml", data)
}

// exportPDF implements GET /export/pdf. Query parameters: ?date= filter,
// ?photos=, ?maps=, ?stats= toggles (default on), ?title= override.
func (s *Server) exportPDF(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := export.PDFOptions{
		Date:          q.Get("date"),
		Title:         q.Get("title"),
		IncludePhotos: boolParam(q.Get("photos"), true),
		IncludeMaps:   boolParam(q.Get("maps"), true),
		IncludeStats:  boolParam(q.Get("stats"), true),
	}

	data, err := export.GeneratePDF(s.entries.List(r.Context()), opts)
	if err != nil {
		respondError(w, err)
		return
	}
	serveArtifact(w, export.Filename("pdf", opts.Date, time.Now()), "application/pdf", data)
}

// exportKMLBatch implements GET /export/kml/batch?dates=a,b,c: one KML per
// date, bundled into a zip. Dates are processed sequentially and a failing
// date never aborts the rest; dates that produced nothing are reported in the
// X-Batch-Failed header. Only when every date fails is the whole request an
// error.
func (s *Server) exportKMLBatch(w http.ResponseWriter, r *http.Request) {
	datesParam := r.URL.Query().Get("dates")
	if datesParam == "" {
		respondRequestError(w, "query parameter dates is required")
		return
	}
	dates := splitDates(datesParam)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	results, batchErr := export.BatchKML(r.Context(), s.entries.List(r.Context()), dates, zipSink{zw}, export.BatchOptions{})
	if err := zw.Close(); err != nil {
		respondError(w, err)
		return
	}

	failed := []string{}
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res.Date)
		}
	}
	if len(failed) == len(dates) && batchErr != nil {
		// Nothing exported at all — no artifact to hand out.
		respondJSON(w, http.StatusNotFound, errorResponse{errorDetail{
			Code:    "no_content",
			Message: fmt.Sprintf("no exportable entries for any of the %d dates", len(dates)),
		}})
		return
	}

	if len(failed) > 0 {
		w.Header().Set("X-Batch-Failed", strings.Join(failed, ","))
	}
	serveArtifact(w, export.Filename("zip", "", time.Now()), "application/zip", buf.Bytes())
}

// zipSink adapts a zip.Writer to the export.Sink interface, so batch
// artifacts stream into one downloadable archive.
type zipSink struct {
	zw *zip.Writer
}

func (s zipSink) Write(_ context.Context, filename string, data []byte) error {
	f, err := s.zw.Create(filename)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	return err
}

// serveArtifact writes a generated file as an attachment download.
func serveArtifact(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck — nothing useful to do if the client went away mid-write.
	w.Write(data)
}

// boolParam parses a query toggle, treating an absent value as fallback.
func boolParam(v string, fallback bool) bool {
	switch strings.ToLower(v) {
	case "":
		return fallback
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// splitDates splits a comma-separated date list, dropping empty parts.
func splitDates(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
