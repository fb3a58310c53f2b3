package plex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMachineIdentifierFromHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Plex-Machine-Identifier", "header-id")
		w.Write([]byte(`{"MediaContainer":{"machineIdentifier":"body-id"}}`))
	}))
	defer srv.Close()

	client := NewClient("test")
	got := client.machineIdentifier(context.Background(), srv.URL, "tok", "", testTimeout)
	require.NotNil(t, got)
	require.Equal(t, "header-id", *got)
}

func TestMachineIdentifierFromJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"MediaContainer":{"machineIdentifier":"json-id","version":"1.40"}}`))
	}))
	defer srv.Close()

	client := NewClient("test")
	got := client.machineIdentifier(context.Background(), srv.URL, "tok", "", testTimeout)
	require.NotNil(t, got)
	require.Equal(t, "json-id", *got)
}

func TestMachineIdentifierFromXMLBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<MediaContainer size="0" machineIdentifier="xml-id" version="1.40"/>`))
	}))
	defer srv.Close()

	client := NewClient("test")
	got := client.machineIdentifier(context.Background(), srv.URL, "tok", "", testTimeout)
	require.NotNil(t, got)
	require.Equal(t, "xml-id", *got)
}

func TestMachineIdentifierRootFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/identity" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"MediaContainer":{"machineIdentifier":"root-id"}}`))
	}))
	defer srv.Close()

	client := NewClient("test")
	got := client.machineIdentifier(context.Background(), srv.URL, "tok", "", testTimeout)
	require.NotNil(t, got)
	require.Equal(t, "root-id", *got)
}

func TestMachineIdentifierOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient("test")

	got := client.machineIdentifier(context.Background(), srv.URL, "tok", "configured-id", testTimeout)
	require.NotNil(t, got)
	require.Equal(t, "configured-id", *got)

	require.Nil(t, client.machineIdentifier(context.Background(), srv.URL, "tok", "", testTimeout))
}
