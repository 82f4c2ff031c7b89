package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/artart33/travel-logger/internal/domain"
	"github.com/artart33/travel-logger/internal/geocode"
	"github.com/artart33/travel-logger/internal/handler"
)

// mockEntryStorer is a test double for handler.EntryStorer.
// Set only the method fields your test needs.
type mockEntryStorer struct {
	list      func(ctx context.Context) []domain.Entry
	get       func(ctx context.Context, id string) (domain.Entry, error)
	add       func(ctx context.Context, draft domain.Entry) (domain.Entry, error)
	update    func(ctx context.Context, id string, patch domain.EntryPatch) (domain.Entry, error)
	delete    func(ctx context.Context, id string) error
	clearAll  func(ctx context.Context) error
	importRaw func(ctx context.Context, raw []byte) (int, error)
	available func(ctx context.Context) bool
}

func (m *mockEntryStorer) List(ctx context.Context) []domain.Entry {
	return m.list(ctx)
}
func (m *mockEntryStorer) Get(ctx context.Context, id string) (domain.Entry, error) {
	return m.get(ctx, id)
}
func (m *mockEntryStorer) Add(ctx context.Context, draft domain.Entry) (domain.Entry, error) {
	return m.add(ctx, draft)
}
func (m *mockEntryStorer) Update(ctx context.Context, id string, patch domain.EntryPatch) (domain.Entry, error) {
	return m.update(ctx, id, patch)
}
func (m *mockEntryStorer) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}
func (m *mockEntryStorer) ClearAll(ctx context.Context) error {
	return m.clearAll(ctx)
}
func (m *mockEntryStorer) Import(ctx context.Context, raw []byte) (int, error) {
	return m.importRaw(ctx, raw)
}
func (m *mockEntryStorer) Available(ctx context.Context) bool {
	return m.available(ctx)
}

// compile-time check: mockEntryStorer must satisfy handler.EntryStorer.
var _ handler.EntryStorer = (*mockEntryStorer)(nil)

// mockGeocoder is a test double for handler.Geocoder.
type mockGeocoder struct {
	reverse func(ctx context.Context, pos domain.LatLng) (string, error)
	search  func(ctx context.Context, query string, limit int) ([]geocode.Place, error)
}

func (m *mockGeocoder) Reverse(ctx context.Context, pos domain.LatLng) (string, error) {
	return m.reverse(ctx, pos)
}
func (m *mockGeocoder) Search(ctx context.Context, query string, limit int) ([]geocode.Place, error) {
	return m.search(ctx, query, limit)
}

var _ handler.Geocoder = (*mockGeocoder)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into its chi router,
// mirroring how main.go wires it in production.
func newHTTPHandler(entries handler.EntryStorer, geo handler.Geocoder) http.Handler {
	return handler.NewServer(entries, geo).Routes()
}

func entryFixture() domain.Entry {
	return domain.Entry{
		ID:          "11111111-1111-1111-1111-111111111111",
		Type:        domain.TypeFood,
		Title:       "Cafe Central",
		Location:    "Utrecht",
		Description: "Great stroopwafels",
		Rating:      4,
		Date:        "2024-05-01",
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// decodeError reads the JSON error envelope and returns its code.
func decodeError(t *testing.T, body *bytes.Buffer) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Error.Code
}
