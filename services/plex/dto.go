package plex

import "encoding/json"

// mediaContainer is the envelope every Plex API response nests its payload
// under. Only the fields the aggregation needs are mapped; the raw upstream
// shape is treated as untyped input beyond this boundary.
type mediaContainer struct {
	Size      int            `json:"size"`
	TotalSize int            `json:"totalSize"`
	Offset    int            `json:"offset"`
	Directory []sectionEntry `json:"Directory"`
	Metadata  []metadataItem `json:"Metadata"`
}

type containerEnvelope struct {
	MediaContainer mediaContainer `json:"MediaContainer"`
}

// sectionEntry is one library section from /library/sections.
type sectionEntry struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// metadataItem is one raw movie, show or episode as the server reports it.
type metadataItem struct {
	RatingKey            string         `json:"ratingKey"`
	GrandparentRatingKey string         `json:"grandparentRatingKey"`
	Type                 string         `json:"type"`
	Title                string         `json:"title"`
	Year                 int            `json:"year"`
	AddedAt              int64          `json:"addedAt"`
	Duration             int64          `json:"duration"`
	Thumb                string         `json:"thumb"`
	Art                  string         `json:"art"`
	LeafCount            int            `json:"leafCount"`
	ChildCount           int            `json:"childCount"`
	GUID                 string         `json:"guid"`
	Guids                []guidRef      `json:"Guid"`
	AltGuids             []guidRef      `json:"guids"`
	Media                []mediaVariant `json:"Media"`
}

// mediaVariant is one encoded version of an item. An item with a 4K remux
// and a 1080p transcode carries two variants.
type mediaVariant struct {
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	VideoResolution string `json:"videoResolution"`
}

// guidRef tolerates the three shapes upstream servers use for external
// identifiers: a plain string, {"id": "..."} or {"guid": "..."}.
type guidRef struct {
	Value string
}

func (g *guidRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		g.Value = s
		return nil
	}
	var obj struct {
		ID   string `json:"id"`
		GUID string `json:"guid"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.ID != "" {
		g.Value = obj.ID
	} else {
		g.Value = obj.GUID
	}
	return nil
}
