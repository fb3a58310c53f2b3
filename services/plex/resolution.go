package plex

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// canonicalResolutions is the fixed display vocabulary, best first. Labels
// outside it (fallbacks like "540p" or uppercased raw tokens) sort after all
// known labels, alphabetically among themselves.
var canonicalResolutions = []string{"8K", "4K", "2160p", "1440p", "1080p", "720p", "576p", "480p", "SD"}

var resolutionRank = func() map[string]int {
	ranks := make(map[string]int, len(canonicalResolutions))
	for i, label := range canonicalResolutions {
		ranks[label] = i
	}
	return ranks
}()

// resolutionFromToken maps a free-text resolution token ("1080", "4k", "sd")
// to a canonical label. Unrecognized numeric tokens fall back to "<n>p",
// non-numeric ones to the uppercased raw token.
func resolutionFromToken(token string) string {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.Contains(lower, "8k"):
		return "8K"
	case strings.Contains(lower, "4k"):
		return "4K"
	case lower == "sd":
		return "SD"
	}

	height, err := strconv.Atoi(strings.TrimSuffix(lower, "p"))
	if err != nil {
		return strings.ToUpper(trimmed)
	}
	if label := labelForHeight(height); label != "" {
		return label
	}
	return fmt.Sprintf("%dp", height)
}

// resolutionFromDimensions buckets a width/height pair by its characteristic
// size, max(width, height), which for typical video is the frame width.
// Dimensions are always numeric so anything below the smallest bucket is SD.
func resolutionFromDimensions(width, height int) string {
	size := width
	if height > size {
		size = height
	}
	switch {
	case size >= 7680:
		return "8K"
	case size >= 3840:
		return "4K"
	case size >= 2560:
		return "1440p"
	case size >= 1920:
		return "1080p"
	case size >= 1280:
		return "720p"
	case size >= 1024:
		return "576p"
	case size >= 854:
		return "480p"
	default:
		return "SD"
	}
}

// labelForHeight maps a pixel height to a canonical label, or "" when the
// height is below every threshold.
func labelForHeight(height int) string {
	switch {
	case height >= 4320:
		return "8K"
	case height >= 2160:
		return "4K"
	case height >= 1440:
		return "1440p"
	case height >= 1080:
		return "1080p"
	case height >= 720:
		return "720p"
	case height >= 576:
		return "576p"
	case height >= 480:
		return "480p"
	default:
		return ""
	}
}

// itemResolutions scans every media variant of a raw item and returns the
// distinct labels found via both the token and the dimension paths.
func itemResolutions(item metadataItem) []string {
	var labels []string
	for _, variant := range item.Media {
		if variant.VideoResolution != "" {
			if label := resolutionFromToken(variant.VideoResolution); label != "" {
				labels = append(labels, label)
			}
		}
		if variant.Width > 0 || variant.Height > 0 {
			labels = append(labels, resolutionFromDimensions(variant.Width, variant.Height))
		}
	}
	return labels
}

// sortResolutions deduplicates labels and orders them canonically: known
// labels by vocabulary rank, unknown labels after all known ones in
// alphabetical order.
func sortResolutions(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		if label != "" && !seen[label] {
			seen[label] = true
			out = append(out, label)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iKnown := resolutionRank[out[i]]
		rj, jKnown := resolutionRank[out[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}
