package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artart33/travel-logger/internal/domain"
)

func statsStorer() *mockEntryStorer {
	food := entryFixture()
	route := entryFixture()
	route.ID = "22222222-2222-2222-2222-222222222222"
	route.Type = domain.TypeRoute
	route.Title = "Canal Drive"
	route.Location = "Amsterdam"
	route.Rating = 2
	route.Date = "2024-05-03"

	return &mockEntryStorer{
		list: func(_ context.Context) []domain.Entry {
			return []domain.Entry{food, route}
		},
	}
}

func TestGetStats_200(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(statsStorer(), nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got domain.Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 2, got.TotalEntries)
	assert.Equal(t, 2, got.UniqueLocations)
	assert.InDelta(t, 3.0, got.AverageRating, 1e-9)
	assert.Equal(t, 2, got.DateSpanDays)
	assert.Equal(t, 1, got.CountsByType[domain.TypeFood])
	assert.Equal(t, 0, got.CountsByType[domain.TypeAttraction])
}

func TestGetDates_200(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dates", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(statsStorer(), nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got []domain.DateStats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "2024-05-03", got[0].Date, "newest first")
	assert.Equal(t, "2024-05-01", got[1].Date)
	assert.Equal(t, 1, got[0].Total)
}

func TestGetLocations_200(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/locations", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(statsStorer(), nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got map[string][]domain.Entry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Len(t, got["Utrecht"], 1)
	assert.Len(t, got["Amsterdam"], 1)
}
