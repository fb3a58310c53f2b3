package plex

import (
	"bytes"
	"context"
	"log"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetErrorOmitsToken(t *testing.T) {
	c := NewClient("test")
	_, err := c.get(context.Background(), "http://127.0.0.1:1", "/library/sections", url.Values{}, "SECRET-TOKEN-123", testTimeout)
	require.Error(t, err)
	require.NotContains(t, err.Error(), "SECRET-TOKEN-123")
	require.Contains(t, err.Error(), "http://127.0.0.1:1/library/sections")
}

func TestProbeLogOmitsToken(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	c := NewClient("test")
	_, _, err := c.probe(context.Background(), []string{"http://127.0.0.1:1"}, "SECRET-TOKEN-123", testTimeout)
	require.ErrorIs(t, err, ErrUnreachable)
	require.Contains(t, buf.String(), "[plex-probe]")
	require.NotContains(t, buf.String(), "SECRET-TOKEN-123")
}
