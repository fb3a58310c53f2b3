package plex

import (
	"regexp"
	"strconv"
	"strings"
)

// tmdbGUIDPatterns are the known URI shapes that embed a TMDb ID, tested in
// this fixed order against every identifier candidate.
var tmdbGUIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^tmdb://(\d+)`),
	regexp.MustCompile(`^themoviedb://(\d+)`),
	regexp.MustCompile(`themoviedb\.org/(?:movie|tv)/(\d+)`),
	regexp.MustCompile(`^com\.plexapp\.agents\.themoviedb://(\d+)`),
}

// extractTMDBID recovers a TMDb numeric ID from an item's loosely structured
// identifier fields. All string identifiers across the guid, Guid and guids
// shapes form one candidate list; the first candidate matching any pattern
// with a positive integer wins. nil means no TMDb cross-reference exists,
// which callers must not treat as an error.
func extractTMDBID(item metadataItem) *int64 {
	candidates := make([]string, 0, 1+len(item.Guids)+len(item.AltGuids))
	if trimmed := strings.TrimSpace(item.GUID); trimmed != "" {
		candidates = append(candidates, trimmed)
	}
	for _, refs := range [][]guidRef{item.Guids, item.AltGuids} {
		for _, ref := range refs {
			if trimmed := strings.TrimSpace(ref.Value); trimmed != "" {
				candidates = append(candidates, trimmed)
			}
		}
	}

	for _, candidate := range candidates {
		for _, pattern := range tmdbGUIDPatterns {
			m := pattern.FindStringSubmatch(candidate)
			if m == nil {
				continue
			}
			id, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil || id <= 0 {
				continue
			}
			return &id
		}
	}
	return nil
}
