// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Storage backend names accepted by STORAGE_BACKEND.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StorageBackend selects the snapshot backend: "file" (default) keeps the
	// journal in a local JSON file, "postgres" keeps it in a database slot.
	StorageBackend string

	// SnapshotPath is the JSON snapshot file location for the file backend.
	// Defaults to "travel-entries.json" in the working directory.
	SnapshotPath string

	// DatabaseURL is the Postgres connection string.
	// Required only when StorageBackend is "postgres".
	DatabaseURL string

	// GeocoderBaseURL points at a Nominatim-compatible geocoding service.
	// Defaults to the public OpenStreetMap instance.
	GeocoderBaseURL string

	// GeocoderUserAgent identifies this deployment to the geocoding service,
	// as its usage policy requires. Empty keeps the library default.
	GeocoderUserAgent string

	// MaxBodyBytes caps incoming request bodies. Photos travel inline, so the
	// default is a generous 10 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error for missing required variables or unusable values.
func Load() (Config, error) {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StorageBackend:    getEnv("STORAGE_BACKEND", BackendFile),
		SnapshotPath:      getEnv("SNAPSHOT_PATH", "travel-entries.json"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		GeocoderBaseURL:   getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent: os.Getenv("GEOCODER_USER_AGENT"),
		MaxBodyBytes:      10 << 20,
	}

	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("MAX_BODY_BYTES must be a positive integer, got %q", v)
		}
		cfg.MaxBodyBytes = n
	}

	switch cfg.StorageBackend {
	case BackendFile:
		// SnapshotPath always has a default; nothing more to check.
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("required environment variables not set: DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendFile, BackendPostgres, cfg.StorageBackend)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
