// Package geocode is a thin client for a Nominatim-compatible geocoding
// service. It resolves free-text addresses to coordinates (Search) and
// coordinates to a display address (Reverse). The service is consumed as a
// pure lookup: callers fall back to the raw coordinate pair whenever a lookup
// fails, so nothing here is fatal.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/artart33/travel-logger/internal/domain"
)

// DefaultBaseURL is the public OpenStreetMap Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

const defaultUserAgent = "TravelLoggerApp/1.0"

// Client calls a Nominatim-compatible HTTP API.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different Nominatim instance
// (or an httptest server in tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithUserAgent sets the User-Agent header. Nominatim's usage policy requires
// an identifying agent, so an empty value keeps the default.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New constructs a Client with a 10-second request timeout.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Place is one geocoding match.
type Place struct {
	DisplayName string        `json:"display_name"`
	Position    domain.LatLng `json:"position"`
}

// nominatimResult is the wire shape shared by /search and /reverse responses.
// Nominatim returns lat/lon as strings.
type nominatimResult struct {
	DisplayName string  `json:"display_name"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Address     address `json:"address"`
}

// Reverse resolves a coordinate pair to a single display address assembled
// from the street-level components (see address.Display). Callers should fall
// back to pos.String() — the six-decimal coordinate form — on any error.
func (c *Client) Reverse(ctx context.Context, pos domain.LatLng) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(pos.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(pos.Lng, 'f', -1, 64))
	q.Set("addressdetails", "1")
	q.Set("zoom", "18")

	var res nominatimResult
	if err := c.get(ctx, "/reverse", q, &res); err != nil {
		return "", fmt.Errorf("geocode.Client.Reverse: %w", err)
	}

	if display := res.Address.Display(); display != "" {
		return display, nil
	}
	return pos.String(), nil
}

// Search resolves a free-text query to up to limit matches.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	if limit < 1 {
		limit = 5
	}
	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)
	q.Set("addressdetails", "1")
	q.Set("limit", strconv.Itoa(limit))

	var res []nominatimResult
	if err := c.get(ctx, "/search", q, &res); err != nil {
		return nil, fmt.Errorf("geocode.Client.Search: %w", err)
	}

	places := make([]Place, 0, len(res))
	for _, r := range res {
		lat, err1 := strconv.ParseFloat(r.Lat, 64)
		lng, err2 := strconv.ParseFloat(r.Lon, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		places = append(places, Place{
			DisplayName: r.DisplayName,
			Position:    domain.LatLng{Lat: lat, Lng: lng},
		})
	}
	return places, nil
}

// get performs one API request and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
