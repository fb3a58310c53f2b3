package plex

import (
	"context"
	"net/url"
	"regexp"
	"time"
)

// identifierHeader is preferred when present; most servers only carry the
// identifier in the body.
const identifierHeader = "X-Plex-Machine-Identifier"

var (
	machineIDJSONPattern = regexp.MustCompile(`"machineIdentifier"\s*:\s*"([^"]+)"`)
	machineIDAttrPattern = regexp.MustCompile(`machineIdentifier="([^"]+)"`)
)

// machineIdentifier resolves the stable server identifier used for deep
// links. It tries the identity endpoint and then the server root, preferring
// a response header and falling back to scanning the body for JSON-style or
// XML-attribute-style identifiers. Every failure degrades to the configured
// override, then to nil; a missing identifier never aborts a request.
func (c *Client) machineIdentifier(ctx context.Context, baseURL, token, override string, timeout time.Duration) *string {
	for _, path := range []string{"/identity", "/"} {
		resp, err := c.get(ctx, baseURL, path, url.Values{}, token, timeout)
		if err != nil || !resp.ok() {
			continue
		}
		if id := resp.Header.Get(identifierHeader); id != "" {
			return &id
		}
		for _, pattern := range []*regexp.Regexp{machineIDJSONPattern, machineIDAttrPattern} {
			if m := pattern.FindSubmatch(resp.Body); m != nil {
				id := string(m[1])
				return &id
			}
		}
	}
	if override != "" {
		return &override
	}
	return nil
}
