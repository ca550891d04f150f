// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps Dependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// HandleGetLeaderboard handles
// GET /api/stats/{organizationID}/leaderboards?category=&stat=&limit=N
// requests. When the stat is missing, the known stat names for the
// category are listed instead of a board.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "organizationID")
	if orgID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing organization id"))
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing category"))
		return
	}

	stat := r.URL.Query().Get("stat")
	if stat == "" {
		names, err := h.deps.StatNames(category)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"category": category, "stats": names})
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}

	board, err := h.deps.Leaderboard(r.Context(), orgID, category, stat, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}
