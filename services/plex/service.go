package plex

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"plexlens/models"
)

// ErrNoToken is returned when no Plex access token is available. The handler
// maps it to a service-unavailable response with a corrective message.
var ErrNoToken = errors.New("plex access token is not configured")

const (
	// DefaultMaxItems bounds the response when no limit is requested.
	DefaultMaxItems = 2000
	// MaxItemsCap is the hard ceiling for the limit query parameter.
	MaxItemsCap = 10000

	defaultPageSize           = 200
	defaultMaxPages           = 200
	defaultSectionConcurrency = 4

	defaultProbeTimeout    = 8 * time.Second
	defaultIdentityTimeout = 5 * time.Second
	defaultItemTimeout     = 12 * time.Second
	defaultEpisodeTimeout  = 20 * time.Second
)

// Options configures the aggregation service. Tunables are explicit here
// rather than package constants so tests can exercise page ceilings and
// timeout paths deterministically.
type Options struct {
	// ServerURL is the primary configured base URL; ExtraServerURLs are
	// additional candidates tried in order after it.
	ServerURL       string
	ExtraServerURLs []string
	// MachineIDOverride substitutes for the machine identifier when the
	// server does not expose one.
	MachineIDOverride string

	PageSize           int
	MaxPages           int
	SectionConcurrency int

	ProbeTimeout    time.Duration
	IdentityTimeout time.Duration
	ItemTimeout     time.Duration
	EpisodeTimeout  time.Duration
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = defaultPageSize
	}
	if o.MaxPages <= 0 {
		o.MaxPages = defaultMaxPages
	}
	if o.SectionConcurrency <= 0 {
		o.SectionConcurrency = defaultSectionConcurrency
	}
	if o.ProbeTimeout <= 0 {
		o.ProbeTimeout = defaultProbeTimeout
	}
	if o.IdentityTimeout <= 0 {
		o.IdentityTimeout = defaultIdentityTimeout
	}
	if o.ItemTimeout <= 0 {
		o.ItemTimeout = defaultItemTimeout
	}
	if o.EpisodeTimeout <= 0 {
		o.EpisodeTimeout = defaultEpisodeTimeout
	}
	return o
}

// Service aggregates a Plex library into a normalized, deduplicated, sorted
// catalog. All state is built fresh per call; nothing is cached between
// requests, so concurrent requests need no coordination.
type Service struct {
	client   *Client
	tokens   TokenProvider
	opts     Options
	collator *collate.Collator
}

// NewService creates the aggregation service.
func NewService(client *Client, tokens TokenProvider, opts Options) *Service {
	return &Service{
		client:   client,
		tokens:   tokens,
		opts:     opts.withDefaults(),
		collator: collate.New(language.Und, collate.IgnoreCase),
	}
}

// LibraryQuery carries the request parameters of one aggregation call.
type LibraryQuery struct {
	// SectionKey restricts the aggregation to one section when non-empty.
	SectionKey string
	// MaxItems is the requested response cap; values outside [1, MaxItemsCap]
	// are clamped and zero means DefaultMaxItems.
	MaxItems int
}

// sectionResult is one section's private accumulator. Each concurrent fetch
// writes only its own slot; merging happens after the pool completes.
type sectionResult struct {
	summary models.SectionSummary
	items   []models.NormalizedItem
}

// Library drives the full aggregation: probe for a reachable server, resolve
// its identity, list movie/show sections, fetch and normalize every item,
// then merge, sort and truncate.
func (s *Service) Library(ctx context.Context, query LibraryQuery) (*models.LibraryResponse, error) {
	token := s.tokens.PlexAccessToken()
	if token == "" {
		return nil, ErrNoToken
	}

	candidates := resolveCandidates(s.opts.ServerURL, s.opts.ExtraServerURLs)
	base, sectionsContainer, err := s.client.probe(ctx, candidates, token, s.opts.ProbeTimeout)
	if err != nil {
		return nil, err
	}
	machineID := s.client.machineIdentifier(ctx, base, token, s.opts.MachineIDOverride, s.opts.IdentityTimeout)

	maxItems := clampMaxItems(query.MaxItems)

	var sections []sectionEntry
	for _, dir := range sectionsContainer.Directory {
		if dir.Type != "movie" && dir.Type != "show" {
			continue
		}
		if query.SectionKey != "" && dir.Key != query.SectionKey {
			continue
		}
		sections = append(sections, dir)
	}

	results := make([]sectionResult, len(sections))
	fetchPool := pool.New().WithMaxGoroutines(s.opts.SectionConcurrency)
	for i, section := range sections {
		fetchPool.Go(func() {
			results[i] = s.fetchSection(ctx, base, token, machineID, section)
		})
	}
	fetchPool.Wait()

	globalCounts := make(map[string]int)
	sectionSummaries := make([]models.SectionSummary, 0, len(results))
	merged := make([]models.NormalizedItem, 0)
	seen := make(map[string]bool)
	movies, shows := 0, 0

	for _, result := range results {
		sectionSummaries = append(sectionSummaries, result.summary)
		for label, n := range result.summary.ResolutionCounts {
			globalCounts[label] += n
		}
		for _, item := range result.items {
			if seen[item.RatingKey] {
				continue
			}
			seen[item.RatingKey] = true
			merged = append(merged, item)
			if item.Type == "movie" {
				movies++
			} else {
				shows++
			}
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].AddedAt != merged[j].AddedAt {
			return merged[i].AddedAt > merged[j].AddedAt
		}
		return s.collator.CompareString(merged[i].Title, merged[j].Title) < 0
	})

	total := len(merged)
	truncated := total > maxItems
	if truncated {
		merged = merged[:maxItems]
	}

	return &models.LibraryResponse{
		Available: true,
		Server:    models.ServerInfo{BaseURL: base, MachineIdentifier: machineID},
		Summary: models.LibrarySummary{
			SectionsCount:    len(sectionSummaries),
			TotalItems:       total,
			MoviesCount:      movies,
			ShowsCount:       shows,
			ResolutionCounts: globalCounts,
			Truncated:        truncated,
			MaxItems:         maxItems,
		},
		Sections: sectionSummaries,
		Items:    merged,
	}, nil
}

// Status probes for a reachable server without touching the library. It is
// the cheap companion call a discovery UI makes before rendering a tab.
func (s *Service) Status(ctx context.Context) (*models.StatusResponse, error) {
	token := s.tokens.PlexAccessToken()
	if token == "" {
		return nil, ErrNoToken
	}

	candidates := resolveCandidates(s.opts.ServerURL, s.opts.ExtraServerURLs)
	base, _, err := s.client.probe(ctx, candidates, token, s.opts.ProbeTimeout)
	if err != nil {
		return nil, err
	}
	machineID := s.client.machineIdentifier(ctx, base, token, s.opts.MachineIDOverride, s.opts.IdentityTimeout)

	return &models.StatusResponse{
		Available:         true,
		BaseURL:           base,
		MachineIdentifier: machineID,
	}, nil
}

// fetchSection retrieves and normalizes one section. Failures are absorbed
// here: a section whose listing fails contributes zero items, and a show
// section whose episode listing fails falls back to the shows' own direct
// resolutions. A single broken section must not deny visibility into the
// rest of the library.
func (s *Service) fetchSection(ctx context.Context, base, token string, machineID *string, section sectionEntry) sectionResult {
	summary := models.SectionSummary{
		Key:              section.Key,
		Title:            section.Title,
		Type:             section.Type,
		ResolutionCounts: make(map[string]int),
	}

	itemsPath := fmt.Sprintf("/library/sections/%s/all", section.Key)
	raw, err := s.client.fetchAllItems(ctx, base, itemsPath, token, s.opts.PageSize, s.opts.MaxPages, s.opts.ItemTimeout)
	if err != nil {
		log.Printf("[plex-library] section %s: items fetch failed: %v", section.Key, err)
		return sectionResult{summary: summary}
	}

	episodeLabels := make(map[string][]string)
	if section.Type == "show" {
		leavesPath := fmt.Sprintf("/library/sections/%s/allLeaves", section.Key)
		leaves, err := s.client.fetchAllItems(ctx, base, leavesPath, token, s.opts.PageSize, s.opts.MaxPages, s.opts.EpisodeTimeout)
		if err != nil {
			log.Printf("[plex-library] section %s: episode fetch failed: %v", section.Key, err)
		}
		for _, leaf := range leaves {
			if leaf.GrandparentRatingKey == "" {
				continue
			}
			episodeLabels[leaf.GrandparentRatingKey] = append(episodeLabels[leaf.GrandparentRatingKey], itemResolutions(leaf)...)
		}
	}

	nctx := normalizeContext{
		baseURL:            base,
		token:              token,
		machineID:          machineID,
		sectionKey:         section.Key,
		sectionTitle:       section.Title,
		episodeResolutions: episodeLabels,
	}

	items := make([]models.NormalizedItem, 0, len(raw))
	for _, rawItem := range raw {
		item := normalizeItem(rawItem, nctx)
		items = append(items, item)
		for _, label := range item.Resolutions {
			summary.ResolutionCounts[label]++
		}
	}
	summary.Count = len(items)

	return sectionResult{summary: summary, items: items}
}

func clampMaxItems(requested int) int {
	if requested <= 0 {
		return DefaultMaxItems
	}
	if requested > MaxItemsCap {
		return MaxItemsCap
	}
	return requested
}
