package geocode_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artart33/travel-logger/internal/domain"
	"github.com/artart33/travel-logger/internal/geocode"
)

// newTestClient spins up an httptest server running handler and returns a
// Client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *geocode.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return geocode.New(geocode.WithBaseURL(srv.URL))
}

func TestClient_Reverse_AssemblesAddress(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "52.0907", r.URL.Query().Get("lat"))
		assert.Equal(t, "5.1214", r.URL.Query().Get("lon"))
		assert.Equal(t, "1", r.URL.Query().Get("addressdetails"))
		assert.Equal(t, "18", r.URL.Query().Get("zoom"))

		w.Write([]byte(`{
			"display_name": "158, Oudegracht, Binnenstad, Utrecht, Netherlands",
			"lat": "52.0907", "lon": "5.1214",
			"address": {
				"road": "Oudegracht",
				"house_number": "158",
				"suburb": "Binnenstad",
				"city": "Utrecht",
				"state": "Utrecht",
				"country": "Netherlands"
			}
		}`))
	})

	got, err := c.Reverse(context.Background(), domain.LatLng{Lat: 52.0907, Lng: 5.1214})

	require.NoError(t, err)
	// State "Utrecht" duplicates the city and is dropped.
	assert.Equal(t, "Oudegracht 158, Binnenstad, Utrecht, Netherlands", got)
}

func TestClient_Reverse_ComponentFallbacks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"lat": "48.1", "lon": "11.5",
			"address": {
				"street": "Marienplatz",
				"neighbourhood": "Altstadt",
				"town": "Munich",
				"county": "Bavaria",
				"country": "Germany"
			}
		}`))
	})

	got, err := c.Reverse(context.Background(), domain.LatLng{Lat: 48.1, Lng: 11.5})

	require.NoError(t, err)
	assert.Equal(t, "Marienplatz, Altstadt, Munich, Bavaria, Germany", got)
}

func TestClient_Reverse_EmptyAddressFallsBackToCoordinates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"lat": "0", "lon": "0", "address": {}}`))
	})

	got, err := c.Reverse(context.Background(), domain.LatLng{Lat: 12.3456789, Lng: -4.5})

	require.NoError(t, err)
	assert.Equal(t, "12.345679, -4.500000", got)
}

func TestClient_Reverse_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	_, err := c.Reverse(context.Background(), domain.LatLng{Lat: 1, Lng: 2})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 429")
}

func TestClient_Search(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Dom Tower Utrecht", r.URL.Query().Get("q"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))

		w.Write([]byte(`[
			{"display_name": "Dom Tower, Utrecht", "lat": "52.0907", "lon": "5.1214"},
			{"display_name": "Dom Square, Utrecht", "lat": "52.0905", "lon": "5.1212"}
		]`))
	})

	got, err := c.Search(context.Background(), "Dom Tower Utrecht", 3)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Dom Tower, Utrecht", got[0].DisplayName)
	assert.Equal(t, domain.LatLng{Lat: 52.0907, Lng: 5.1214}, got[0].Position)
}

func TestClient_Search_DefaultLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write([]byte(`[]`))
	})

	got, err := c.Search(context.Background(), "anywhere", 0)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_Search_SkipsUnparsableCoordinates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[
			{"display_name": "Broken", "lat": "not-a-number", "lon": "5.1"},
			{"display_name": "Fine", "lat": "52.0", "lon": "5.1"}
		]`))
	})

	got, err := c.Search(context.Background(), "q", 5)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Fine", got[0].DisplayName)
}

func TestClient_SetsRequiredHeaders(t *testing.T) {
	var gotUA, gotLang string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Write([]byte(`[]`))
	})

	_, err := c.Search(context.Background(), "q", 1)

	require.NoError(t, err)
	assert.Equal(t, "TravelLoggerApp/1.0", gotUA)
	assert.Equal(t, "en", gotLang)
}
