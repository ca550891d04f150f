// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// RootHandler handles the service banner.
type RootHandler struct {
	deps Dependencies
}

// NewRootHandler creates a new root handler.
func NewRootHandler(deps Dependencies) *RootHandler {
	return &RootHandler{deps: deps}
}

type rootResponse struct {
	Message         string `json:"message"`
	ClientAvailable bool   `json:"client_available"`
}

// HandleRoot handles GET / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Message:         "Season Stats API",
		ClientAvailable: h.deps.Ready(),
	})
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps Dependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

type healthResponse struct {
	Status            string `json:"status"`
	ClientInitialized bool   `json:"client_initialized"`
}

// HandleHealth handles GET /api/health requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:            "healthy",
		ClientInitialized: h.deps.Ready(),
	})
}
