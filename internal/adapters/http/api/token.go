// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// TokenHandler handles runtime token updates.
type TokenHandler struct {
	deps Dependencies
}

// NewTokenHandler creates a new token handler.
func NewTokenHandler(deps Dependencies) *TokenHandler {
	return &TokenHandler{deps: deps}
}

type tokenRequest struct {
	Token string `json:"token"`
}

type tokenResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HandleUpdateToken handles POST /api/token requests. The candidate
// token is verified against the upstream before it replaces the current
// one; a rejected token leaves the service untouched.
func (h *TokenHandler) HandleUpdateToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing token"))
		return
	}

	if err := h.deps.SetToken(r.Context(), req.Token); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Status:  "success",
		Message: "Token updated successfully",
	})
}
