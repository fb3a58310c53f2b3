package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"plexlens/models"
	plexsvc "plexlens/services/plex"
)

type libraryService interface {
	Library(ctx context.Context, query plexsvc.LibraryQuery) (*models.LibraryResponse, error)
	Status(ctx context.Context) (*models.StatusResponse, error)
}

var _ libraryService = (*plexsvc.Service)(nil)

// libraryCacheControl lets shared caches serve the aggregated library for a
// few minutes; the upstream walk is expensive.
const libraryCacheControl = "public, s-maxage=300, stale-while-revalidate=600"

// LibraryHandler exposes the aggregated Plex library over HTTP.
type LibraryHandler struct {
	Service libraryService
}

func NewLibraryHandler(s libraryService) *LibraryHandler {
	return &LibraryHandler{Service: s}
}

// Register mounts the plex routes on the router.
func (h *LibraryHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/plex/library", h.Library).Methods(http.MethodGet)
	r.HandleFunc("/api/plex/status", h.Status).Methods(http.MethodGet)
}

// Library handles GET /api/plex/library.
func (h *LibraryHandler) Library(w http.ResponseWriter, r *http.Request) {
	query := plexsvc.LibraryQuery{
		SectionKey: strings.TrimSpace(r.URL.Query().Get("section")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			query.MaxItems = limit
		}
	}

	resp, err := h.Service.Library(r.Context(), query)
	if err != nil {
		writeLibraryError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", libraryCacheControl)
	json.NewEncoder(w).Encode(resp)
}

// Status handles GET /api/plex/status.
func (h *LibraryHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.Status(r.Context())
	if err != nil {
		writeLibraryError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// writeLibraryError maps service errors onto the client-facing taxonomy:
// missing credentials and unreachable servers are service-unavailable with a
// short displayable message, everything else is a generic internal error.
// Upstream detail stays in the server log only.
func writeLibraryError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.Is(err, plexsvc.ErrNoToken):
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{
			"available": false,
			"message":   "Plex access token is not configured. Set PLEX_TOKEN and restart.",
		})
	case errors.Is(err, plexsvc.ErrUnreachable):
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{
			"available": false,
			"message":   "No Plex server is reachable right now.",
		})
	default:
		log.Printf("[library-handler] request failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"available": false,
			"error":     "Failed to load Plex library.",
		})
	}
}
