package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds process configuration read from the environment.
// Plex tunables that tests need to override (timeouts, page sizes) live on
// plex.Options instead, so they never depend on environment state.
type Config struct {
	// Port the HTTP server listens on.
	Port int

	// PlexServerURL is the primary Plex server base URL.
	PlexServerURL string
	// PlexServerURLs holds additional candidate base URLs.
	PlexServerURLs []string
	// PlexToken is the X-Plex-Token forwarded on every upstream call.
	PlexToken string
	// PlexMachineID overrides the machine identifier when the server
	// does not expose one (used for deep-link construction only).
	PlexMachineID string

	// LogFile enables rotated file logging when non-empty.
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:           envInt("PORT", 8080),
		PlexServerURL:  strings.TrimSpace(os.Getenv("PLEX_SERVER_URL")),
		PlexServerURLs: splitCSV(os.Getenv("PLEX_SERVER_URLS")),
		PlexToken:      strings.TrimSpace(os.Getenv("PLEX_TOKEN")),
		PlexMachineID:  strings.TrimSpace(os.Getenv("PLEX_MACHINE_IDENTIFIER")),
		LogFile:        strings.TrimSpace(os.Getenv("LOG_FILE")),
		LogMaxSizeMB:   envInt("LOG_MAX_SIZE_MB", 20),
		LogMaxBackups:  envInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:  envInt("LOG_MAX_AGE_DAYS", 14),
	}
}

// PlexAccessToken implements the token provider consumed by the plex service.
// It returns the stored static token; an empty value means "not configured".
func (c *Config) PlexAccessToken() string {
	return c.PlexToken
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
