package utils

import (
	"net/url"
	"strings"
)

// AppendQueryParam adds one query parameter to a raw URL or server-relative
// path, preserving any existing query string. Plex returns thumb/art paths as
// server-relative strings that must carry the access token before use.
func AppendQueryParam(rawURL, key, value string) string {
	if rawURL == "" {
		return rawURL
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + url.QueryEscape(key) + "=" + url.QueryEscape(value)
}
