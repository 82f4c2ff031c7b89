package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artart33/travel-logger/internal/domain"
)

// ---- GET /entries ----------------------------------------------------------

func TestListEntries_200(t *testing.T) {
	entries := &mockEntryStorer{
		list: func(_ context.Context) []domain.Entry {
			return []domain.Entry{entryFixture()}
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(entries, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []domain.Entry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "Cafe Central", got[0].Title)
}

func TestListEntries_Filters(t *testing.T) {
	food := entryFixture()
	route := entryFixture()
	route.ID = "22222222-2222-2222-2222-222222222222"
	route.Type = domain.TypeRoute
	route.Title = "Canal Drive"
	route.Date = "2024-05-02"

	entries := &mockEntryStorer{
		list: func(_ context.Context) []domain.Entry {
			return []domain.Entry{food, route}
		},
	}
	h := newHTTPHandler(entries, nil)

	tests := []struct {
		name      string
		url       string
		wantTitle string
	}{
		{name: "by query", url: "/entries?q=canal", wantTitle: "Canal Drive"},
		{name: "by type", url: "/entries?type=food", wantTitle: "Cafe Central"},
		{name: "legacy type alias", url: "/entries?type=diner", wantTitle: "Cafe Central"},
		{name: "by date", url: "/entries?date=2024-05-02", wantTitle: "Canal Drive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			var got []domain.Entry
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantTitle, got[0].Title)
		})
	}
}

// ---- POST /entries ---------------------------------------------------------

func TestCreateEntry_201(t *testing.T) {
	fixture := entryFixture()
	var gotDraft domain.Entry
	entries := &mockEntryStorer{
		add: func(_ context.Context, draft domain.Entry) (domain.Entry, error) {
			gotDraft = draft
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"type":     "food",
		"title":    "Cafe Central",
		"location": "Utrecht",
		"rating":   4,
		"date":     "2024-05-01",
	})
	req := httptest.NewRequest(http.MethodPost, "/entries", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newHTTPHandler(entries, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Cafe Central", gotDraft.Title)

	var got domain.Entry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, fixture.ID, got.ID)
}

func TestCreateEntry_422_ValidationError(t *testing.T) {
	entries := &mockEntryStorer{
		add: func(_ context.Context, _ domain.Entry) (domain.Entry, error) {
			return domain.Entry{}, fmt.Errorf("store.EntryStore.Add: %w: title is required", domain.ErrValidation)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/entries", jsonBody(t, map[string]any{"rating": 4}))
	rec := httptest.NewRecorder()
	newHTTPHandler(entries, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec.Body))
}

func TestCreateEntry_400_MalformedBody(t *testing.T) {
	entries := &mockEntryStorer{}

	req := httptest.NewRequest(http.MethodPost, "/entries", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	newHTTPHandler(entries, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeError(t, rec.Body))
}

// ---- GET /entries/{id} -----------------------------------------------------

func TestGetEntry_200(t *testing.T) {
	fixture := entryFixture()
	entries := &mockEntryStorer{
		get: func(_ context.Context, id string) (domain.Entry, error) {
			assert.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/entries/"+fixture.ID, nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(entries, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got domain.Entry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, fixture, got)
}

func TestGetEntry_404(t *testing.T) {
	entries := &mockEntryStorer{
		get: func(_ context.Context, id string) (domain.Entry, error) {
			return domain.Entry{}, fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/entries/nope", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(entries, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec.Body))
}

// ---- PUT /entries/{id} -----------------------------------------------------

func TestUpdateEntry_200(t *testing.T) {
	fixture := entryFixture()
	var gotPatch domain.EntryPatch
	entries := &mockEntryStorer{
		update: func(_ context.Context, id string, patch domain.EntryPatch) (domain.Entry, error) {
			assert.Equal(t, fixture.ID, id)
			gotPatch = patch
			updated := fixture
			updated.Rating = 5
			return updated, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/entries/"+fixture.ID, jsonBody(t, map[string]any{"rating": 5}))
	rec := httptest.NewRecorder()
	newHTTPHandler(entries, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotPatch.Rating)
	assert.Equal(t, 5, *gotPatch.Rating)
	assert.Nil(t, gotPatch.Title, "absent fields must not be patched")

	var got domain.Entry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 5, got.Rating)
}

func TestUpdateEntry_404(t *testing.T) {
	entries := &mockEntryStorer{
		update: func(_ context.Context, id string, _ domain.EntryPatch) (domain.Entry, error) {
			return domain.Entry{}, fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/entries/nope", jsonBody(t, map[string]any{"rating": 5}))
	rec := httptest.NewRecorder()
	newHTTPHandler(entries, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- DELETE /entries/{id}, DELETE /entries ---------------------------------

func TestDeleteEntry_204(t *testing.T) {
	called := false
	entries := &mockEntryStorer{
		delete: func(_ context.Context, id string) error {
			called = true
			assert.Equal(t, "abc", id)
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/entries/abc", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(entries, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, called)
	assert.Zero(t, rec.Body.Len(), "204 must not carry a body")
}

func TestDeleteEntry_404(t *testing.T) {
	entries := &mockEntryStorer{
		delete: func(_ context.Context, id string) error {
			return fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/entries/nope", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(entries, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClearEntries_204(t *testing.T) {
	called := false
	entries := &mockEntryStorer{
		clearAll: func(_ context.Context) error {
			called = true
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/entries", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(entries, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, called)
}
