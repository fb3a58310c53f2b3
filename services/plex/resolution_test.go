package plex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolutionFromToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{name: "bare height", token: "1080", expected: "1080p"},
		{name: "height with p", token: "1080p", expected: "1080p"},
		{name: "height with uppercase P", token: "1080P", expected: "1080p"},
		{name: "4k token", token: "4k", expected: "4K"},
		{name: "uppercase 4K", token: "4K", expected: "4K"},
		{name: "8k token", token: "8k", expected: "8K"},
		{name: "sd token", token: "sd", expected: "SD"},
		{name: "2160 maps to 4K", token: "2160", expected: "4K"},
		{name: "4320 maps to 8K", token: "4320", expected: "8K"},
		{name: "1440", token: "1440", expected: "1440p"},
		{name: "720", token: "720", expected: "720p"},
		{name: "576", token: "576", expected: "576p"},
		{name: "480", token: "480", expected: "480p"},
		{name: "480 threshold catches 540", token: "540", expected: "480p"},
		{name: "unknown numeric falls back to <n>p", token: "360", expected: "360p"},
		{name: "unknown text is uppercased", token: "fhd", expected: "FHD"},
		{name: "whitespace trimmed", token: " 1080 ", expected: "1080p"},
		{name: "empty", token: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, resolutionFromToken(tt.token))
		})
	}
}

func TestResolutionFromDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		expected      string
	}{
		{name: "full hd", width: 1920, height: 1080, expected: "1080p"},
		{name: "uhd", width: 3840, height: 2160, expected: "4K"},
		{name: "8k", width: 7680, height: 4320, expected: "8K"},
		{name: "qhd", width: 2560, height: 1440, expected: "1440p"},
		{name: "hd", width: 1280, height: 720, expected: "720p"},
		{name: "pal", width: 1024, height: 576, expected: "576p"},
		{name: "ntsc-ish", width: 854, height: 480, expected: "480p"},
		{name: "small clamps to SD", width: 640, height: 480, expected: "SD"},
		{name: "portrait uses larger side", width: 1080, height: 1920, expected: "1080p"},
		{name: "zero clamps to SD", width: 0, height: 0, expected: "SD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, resolutionFromDimensions(tt.width, tt.height))
		})
	}
}

func TestItemResolutionsUnionsVariants(t *testing.T) {
	item := metadataItem{
		Media: []mediaVariant{
			{VideoResolution: "4k", Width: 3840, Height: 2160},
			{VideoResolution: "1080", Width: 1920, Height: 1080},
		},
	}

	got := sortResolutions(itemResolutions(item))
	require.Equal(t, []string{"4K", "1080p"}, got)
}

func TestSortResolutions(t *testing.T) {
	t.Run("canonical order with unknowns last", func(t *testing.T) {
		got := sortResolutions([]string{"720p", "ZETA", "4K", "540p", "1080p", "ALPHA"})
		require.Equal(t, []string{"4K", "1080p", "720p", "540p", "ALPHA", "ZETA"}, got)
	})

	t.Run("deduplicates", func(t *testing.T) {
		got := sortResolutions([]string{"1080p", "1080p", "720p", "720p"})
		require.Equal(t, []string{"1080p", "720p"}, got)
	})

	t.Run("drops empty labels", func(t *testing.T) {
		got := sortResolutions([]string{"", "SD"})
		require.Equal(t, []string{"SD"}, got)
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		require.Empty(t, sortResolutions(nil))
	})
}
