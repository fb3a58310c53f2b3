package plex

import (
	"fmt"
	"net/url"

	"plexlens/models"
	"plexlens/utils"
)

// normalizeContext carries the per-section enrichment inputs so optional
// field access on the raw upstream shape happens once, centrally.
type normalizeContext struct {
	baseURL            string
	token              string
	machineID          *string
	sectionKey         string
	sectionTitle       string
	episodeResolutions map[string][]string // show ratingKey -> episode labels
}

// normalizeItem maps one raw upstream item to its output representation:
// resolutions unioned across media variants (and episodes for shows), TMDb
// cross-reference, deep links and token-suffixed image URLs.
func normalizeItem(raw metadataItem, nctx normalizeContext) models.NormalizedItem {
	tmdbType := "movie"
	if raw.Type == "show" {
		tmdbType = "tv"
	}

	labels := itemResolutions(raw)
	labels = append(labels, nctx.episodeResolutions[raw.RatingKey]...)
	resolutions := sortResolutions(labels)
	var primary *string
	if len(resolutions) > 0 {
		primary = &resolutions[0]
	}

	return models.NormalizedItem{
		ID:                nctx.sectionKey + ":" + raw.RatingKey,
		RatingKey:         raw.RatingKey,
		Type:              raw.Type,
		TMDBType:          tmdbType,
		TMDBID:            extractTMDBID(raw),
		Title:             raw.Title,
		Year:              raw.Year,
		AddedAt:           raw.AddedAt,
		DurationMs:        raw.Duration,
		LeafCount:         raw.LeafCount,
		ChildCount:        raw.ChildCount,
		SectionKey:        nctx.sectionKey,
		SectionTitle:      nctx.sectionTitle,
		Thumb:             imageURL(nctx, raw.Thumb),
		Art:               imageURL(nctx, raw.Art),
		Resolutions:       resolutions,
		PrimaryResolution: primary,
		Links:             itemLinks(nctx, raw.RatingKey),
	}
}

// imageURL turns a server-relative image path into a fetchable URL carrying
// the access token.
func imageURL(nctx normalizeContext, path string) *string {
	if path == "" {
		return nil
	}
	full := utils.AppendQueryParam(nctx.baseURL+path, "X-Plex-Token", nctx.token)
	return &full
}

// itemLinks builds deep links for one item. With a known machine identifier
// the web link works across network locations and a plex:// mobile URI is
// possible; without one only a server-relative web link can be built.
func itemLinks(nctx normalizeContext, ratingKey string) models.ItemLinks {
	metadataKey := url.QueryEscape("/library/metadata/" + ratingKey)

	var links models.ItemLinks
	if nctx.machineID != nil {
		web := fmt.Sprintf("https://app.plex.tv/desktop/#!/server/%s/details?key=%s", *nctx.machineID, metadataKey)
		mobile := fmt.Sprintf("plex://preplay/?metadataKey=%s&server=%s", metadataKey, *nctx.machineID)
		links.Web = &web
		links.Mobile = &mobile
	} else {
		web := fmt.Sprintf("%s/web/index.html#!/details?key=%s", nctx.baseURL, metadataKey)
		links.Web = &web
	}
	return links
}
