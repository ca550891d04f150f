// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// StatsHandler handles season snapshot requests.
type StatsHandler struct {
	deps Dependencies
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps Dependencies) *StatsHandler {
	return &StatsHandler{deps: deps}
}

// HandleGetStats handles GET /api/stats/{organizationID} requests.
func (h *StatsHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "organizationID")
	if orgID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing organization id"))
		return
	}

	snap, err := h.deps.Snapshot(r.Context(), orgID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleGetThresholds handles GET /api/stats/{organizationID}/thresholds
// requests, exposing the qualification minimums currently in effect.
func (h *StatsHandler) HandleGetThresholds(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "organizationID")
	if orgID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing organization id"))
		return
	}

	thresholds, err := h.deps.Thresholds(r.Context(), orgID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, thresholds)
}
