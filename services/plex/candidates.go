package plex

import (
	"net/url"
	"strings"

	"plexlens/utils"
)

// defaultServerURL is assumed when no server is configured at all.
const defaultServerURL = "http://127.0.0.1:32400"

// resolveCandidates expands the configured server addresses into an ordered,
// deduplicated list of normalized base URLs. Unparseable entries are dropped
// silently. For every HTTPS candidate on a private or local host an HTTP
// fallback on the same host is appended right after it: many local media
// servers present a self-signed cert on HTTPS while plain HTTP is the more
// reliable local path.
func resolveCandidates(primary string, extras []string) []string {
	raw := make([]string, 0, len(extras)+1)
	if strings.TrimSpace(primary) != "" {
		raw = append(raw, primary)
	}
	raw = append(raw, extras...)
	if len(raw) == 0 {
		raw = append(raw, defaultServerURL)
	}

	seen := make(map[string]bool)
	var out []string
	add := func(candidate string) {
		if candidate != "" && !seen[candidate] {
			seen[candidate] = true
			out = append(out, candidate)
		}
	}

	for _, entry := range raw {
		normalized, parsed := normalizeBaseURL(entry)
		if normalized == "" {
			continue
		}
		add(normalized)
		if parsed.Scheme == "https" && utils.IsPrivateHost(parsed.Hostname()) {
			fallback := "http" + strings.TrimPrefix(normalized, "https")
			add(fallback)
		}
	}
	return out
}

// normalizeBaseURL rebuilds a candidate as scheme://host[:port] plus path
// with trailing slashes stripped. Returns "" when the entry cannot serve as
// a base URL.
func normalizeBaseURL(raw string) (string, *url.URL) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", nil
	}
	base := parsed.Scheme + "://" + parsed.Host + strings.TrimRight(parsed.EscapedPath(), "/")
	return base, parsed
}
