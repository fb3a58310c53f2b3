package plex

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Offset pagination parameters understood by Plex-compatible servers.
const (
	containerStartParam = "X-Plex-Container-Start"
	containerSizeParam  = "X-Plex-Container-Size"
)

// fetchAllItems retrieves every item under a library path using offset
// pagination, concatenating pages in server order. Pagination metadata from
// third-party servers is unreliable, so no single signal is trusted alone:
// the loop stops when any of the named termination predicates holds.
//
// A failure on the first page means the path is unfetchable and propagates.
// A failure on a later page also fails the whole fetch rather than silently
// returning a truncated list, so callers can record the section as a partial
// failure instead of under-reporting library contents.
func (c *Client) fetchAllItems(ctx context.Context, baseURL, path, token string, pageSize, maxPages int, timeout time.Duration) ([]metadataItem, error) {
	var all []metadataItem
	start := 0

	for page := 0; page < maxPages; page++ {
		query := url.Values{}
		query.Set(containerStartParam, strconv.Itoa(start))
		query.Set(containerSizeParam, strconv.Itoa(pageSize))

		container, err := c.getContainer(ctx, baseURL, path, query, token, timeout)
		if err != nil {
			if page == 0 {
				return nil, err
			}
			return nil, fmt.Errorf("page at offset %d: %w", start, err)
		}

		items := container.Metadata
		all = append(all, items...)
		next := container.Offset + len(items)

		zeroItems := len(items) == 0
		reachedTotal := container.TotalSize > 0 && next >= container.TotalSize
		shortPage := len(items) < pageSize
		nonAdvancing := next <= start && page > 0 // a static response would repeat forever

		if zeroItems || reachedTotal || shortPage || nonAdvancing {
			break
		}
		start = next
	}

	return all, nil
}
