package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artart33/travel-logger/internal/domain"
	"github.com/artart33/travel-logger/internal/geocode"
)

func TestSearchGeocode_200(t *testing.T) {
	geo := &mockGeocoder{
		search: func(_ context.Context, query string, limit int) ([]geocode.Place, error) {
			assert.Equal(t, "Dom Tower", query)
			assert.Equal(t, 3, limit)
			return []geocode.Place{
				{DisplayName: "Dom Tower, Utrecht", Position: domain.LatLng{Lat: 52.0907, Lng: 5.1214}},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/geocode?q=Dom+Tower&limit=3", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, geo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []geocode.Place
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "Dom Tower, Utrecht", got[0].DisplayName)
}

func TestSearchGeocode_400_MissingQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/geocode", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, &mockGeocoder{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeError(t, rec.Body))
}

func TestSearchGeocode_502_UpstreamDown(t *testing.T) {
	geo := &mockGeocoder{
		search: func(_ context.Context, _ string, _ int) ([]geocode.Place, error) {
			return nil, errors.New("connection refused")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/geocode?q=anywhere", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, geo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "geocode_error", decodeError(t, rec.Body))
}

func TestReverseGeocode_200(t *testing.T) {
	geo := &mockGeocoder{
		reverse: func(_ context.Context, pos domain.LatLng) (string, error) {
			assert.InDelta(t, 52.0907, pos.Lat, 1e-9)
			assert.InDelta(t, 5.1214, pos.Lng, 1e-9)
			return "Oudegracht 158, Utrecht, Netherlands", nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/geocode/reverse?lat=52.0907&lng=5.1214", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, geo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Address  string `json:"address"`
		Fallback bool   `json:"fallback"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Oudegracht 158, Utrecht, Netherlands", got.Address)
	assert.False(t, got.Fallback)
}

func TestReverseGeocode_200_FallbackOnUpstreamFailure(t *testing.T) {
	geo := &mockGeocoder{
		reverse: func(_ context.Context, _ domain.LatLng) (string, error) {
			return "", errors.New("timeout")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/geocode/reverse?lat=52.0907&lng=5.1214", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, geo).ServeHTTP(rec, req)

	// Degrades to the coordinate string rather than erroring: the caller can
	// always store a coordinate pair as the location.
	assert.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Address  string `json:"address"`
		Fallback bool   `json:"fallback"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "52.090700, 5.121400", got.Address)
	assert.True(t, got.Fallback)
}

func TestReverseGeocode_400_BadCoordinates(t *testing.T) {
	tests := []string{
		"/geocode/reverse",
		"/geocode/reverse?lat=52.1",
		"/geocode/reverse?lat=abc&lng=5.1",
	}
	for _, url := range tests {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()
		newHTTPHandler(nil, &mockGeocoder{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "url %s", url)
	}
}
