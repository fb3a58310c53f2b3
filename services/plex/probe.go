package plex

import (
	"context"
	"errors"
	"log"
	"net/url"
	"time"
)

// ErrUnreachable is returned when no candidate server answered the sections
// query. Individual candidate failures are deliberately not surfaced to
// avoid disclosing internal topology.
var ErrUnreachable = errors.New("no plex server reachable")

const sectionsPath = "/library/sections"

// probe tries each candidate base URL in order and returns the first one
// that answers the library-sections query with a 2xx JSON response, together
// with the parsed sections container so the caller does not have to repeat
// the call. Failures are swallowed and the next candidate is tried.
func (c *Client) probe(ctx context.Context, candidates []string, token string, timeout time.Duration) (string, *mediaContainer, error) {
	for _, base := range candidates {
		container, err := c.getContainer(ctx, base, sectionsPath, url.Values{}, token, timeout)
		if err != nil {
			log.Printf("[plex-probe] candidate failed: %v", err)
			continue
		}
		return base, container, nil
	}
	return "", nil, ErrUnreachable
}
