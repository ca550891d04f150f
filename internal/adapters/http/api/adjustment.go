// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

// AdjustmentHandler handles scorer-bias adjustment factor requests.
type AdjustmentHandler struct {
	deps Dependencies
}

// NewAdjustmentHandler creates a new adjustment handler.
func NewAdjustmentHandler(deps Dependencies) *AdjustmentHandler {
	return &AdjustmentHandler{deps: deps}
}

type adjustmentPayload struct {
	Factor     float64            `json:"factor"`
	Strictness map[string]float64 `json:"strictness,omitempty"`
}

// adjustmentRequest distinguishes absent fields from zero values, so a
// strictness-only update cannot reset the factor to 0.
type adjustmentRequest struct {
	Factor     *float64           `json:"factor"`
	Strictness map[string]float64 `json:"strictness"`
}

// HandleGetAdjustment handles GET /api/adjustment requests.
func (h *AdjustmentHandler) HandleGetAdjustment(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, adjustmentPayload{
		Factor:     h.deps.AdjustmentFactor(),
		Strictness: h.deps.StrictnessIndex(),
	})
}

// HandleSetAdjustment handles POST /api/adjustment requests. Either or
// both of the factor and the strictness index may be supplied; cached
// raw stats are re-adjusted on the next snapshot read.
func (h *AdjustmentHandler) HandleSetAdjustment(w http.ResponseWriter, r *http.Request) {
	var req adjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("invalid JSON body"))
		return
	}
	if req.Factor == nil && req.Strictness == nil {
		writeError(w, http.StatusBadRequest, "bad_request",
			errors.New("factor or strictness is required"))
		return
	}

	if req.Factor != nil {
		if err := h.deps.SetAdjustmentFactor(r.Context(), *req.Factor); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if req.Strictness != nil {
		if err := h.deps.SetStrictnessIndex(r.Context(), req.Strictness); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, adjustmentPayload{
		Factor:     h.deps.AdjustmentFactor(),
		Strictness: h.deps.StrictnessIndex(),
	})
}
