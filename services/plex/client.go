package plex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// TokenProvider supplies the Plex access token. An empty return value means
// no credentials are configured. The token is a forwarded capability: it is
// never rotated, cached or logged by this package.
type TokenProvider interface {
	PlexAccessToken() string
}

// Client performs authenticated requests against a Plex-compatible server.
// Every call carries an explicit timeout so one unresponsive upstream cannot
// hang a request indefinitely.
type Client struct {
	httpClient *http.Client
	clientID   string
}

// NewClient creates a new Plex API client. Per-call timeouts are applied via
// context, not a global client timeout, because pagination and probing use
// different budgets.
func NewClient(clientID string) *Client {
	return &Client{
		httpClient: &http.Client{},
		clientID:   clientID,
	}
}

// response is the raw result of one upstream call with the body fully read.
type response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *response) ok() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// get issues a GET against baseURL+path with the token appended as a query
// parameter, bounded by timeout.
func (c *Client) get(ctx context.Context, baseURL, path string, query url.Values, token string, timeout time.Duration) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if query == nil {
		query = url.Values{}
	}
	query.Set("X-Plex-Token", token)
	reqURL := fmt.Sprintf("%s%s?%s", baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, redactRequestError(baseURL, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Client-Identifier", c.clientID)
	req.Header.Set("X-Plex-Product", "plexlens")
	req.Header.Set("X-Plex-Version", "1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, redactRequestError(baseURL, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// redactRequestError rebuilds a transport error without the request URL. The
// access token travels in the query string, and *url.Error embeds the full
// URL in its message, so the raw error must never reach a log line.
func redactRequestError(baseURL, path string, err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		err = uerr.Err
	}
	return fmt.Errorf("plex request %s%s: %w", baseURL, path, err)
}

// getContainer issues a GET and decodes the MediaContainer envelope,
// treating non-2xx statuses and undecodable bodies as errors.
func (c *Client) getContainer(ctx context.Context, baseURL, path string, query url.Values, token string, timeout time.Duration) (*mediaContainer, error) {
	resp, err := c.get(ctx, baseURL, path, query, token, timeout)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, fmt.Errorf("plex request failed: status %d", resp.StatusCode)
	}

	var envelope containerEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &envelope.MediaContainer, nil
}
