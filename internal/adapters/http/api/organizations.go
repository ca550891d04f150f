// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// OrganizationHandler handles organization listing requests.
type OrganizationHandler struct {
	deps Dependencies
}

// NewOrganizationHandler creates a new organization handler.
func NewOrganizationHandler(deps Dependencies) *OrganizationHandler {
	return &OrganizationHandler{deps: deps}
}

// HandleGetOrganizations handles GET /api/organizations requests.
func (h *OrganizationHandler) HandleGetOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.deps.Organizations(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}
