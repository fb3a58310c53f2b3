package models

// ItemLinks holds deep links into the Plex apps for one library item.
// Mobile is only set when the server's machine identifier is known.
type ItemLinks struct {
	Web    *string `json:"web"`
	Mobile *string `json:"mobile"`
}

// NormalizedItem is the output unit of the library aggregation: one movie or
// show with resolution labels and external IDs reconciled. Built once per raw
// upstream item per request and never mutated afterwards.
type NormalizedItem struct {
	ID                string    `json:"id"`
	RatingKey         string    `json:"ratingKey"`
	Type              string    `json:"type"`     // "movie" or "show"
	TMDBType          string    `json:"tmdbType"` // "movie" or "tv"
	TMDBID            *int64    `json:"tmdbId"`
	Title             string    `json:"title"`
	Year              int       `json:"year"`
	AddedAt           int64     `json:"addedAt"`
	DurationMs        int64     `json:"durationMs"`
	LeafCount         int       `json:"leafCount"`
	ChildCount        int       `json:"childCount"`
	SectionKey        string    `json:"sectionKey"`
	SectionTitle      string    `json:"sectionTitle"`
	Thumb             *string   `json:"thumb"`
	Art               *string   `json:"art"`
	Resolutions       []string  `json:"resolutions"`
	PrimaryResolution *string   `json:"primaryResolution"`
	Links             ItemLinks `json:"links"`
}

// SectionSummary describes one library section and its per-section tallies.
type SectionSummary struct {
	Key              string         `json:"key"`
	Title            string         `json:"title"`
	Type             string         `json:"type"`
	Count            int            `json:"count"`
	ResolutionCounts map[string]int `json:"resolutionCounts"`
}

// LibrarySummary holds the global tallies for one aggregation response.
type LibrarySummary struct {
	SectionsCount    int            `json:"sectionsCount"`
	TotalItems       int            `json:"totalItems"`
	MoviesCount      int            `json:"moviesCount"`
	ShowsCount       int            `json:"showsCount"`
	ResolutionCounts map[string]int `json:"resolutionCounts"`
	Truncated        bool           `json:"truncated"`
	MaxItems         int            `json:"maxItems"`
}

// ServerInfo identifies the Plex server that answered the probe.
type ServerInfo struct {
	BaseURL           string  `json:"baseUrl"`
	MachineIdentifier *string `json:"machineIdentifier"`
}

// LibraryResponse is the payload of GET /api/plex/library.
type LibraryResponse struct {
	Available bool             `json:"available"`
	Server    ServerInfo       `json:"server"`
	Summary   LibrarySummary   `json:"summary"`
	Sections  []SectionSummary `json:"sections"`
	Items     []NormalizedItem `json:"items"`
}

// StatusResponse is the payload of GET /api/plex/status, a cheap
// reachability check that skips library fetching entirely.
type StatusResponse struct {
	Available         bool    `json:"available"`
	BaseURL           string  `json:"baseUrl"`
	MachineIdentifier *string `json:"machineIdentifier"`
}
