// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// IndustriesHandler serves the industry filter values.
type IndustriesHandler struct {
	deps Dependencies
}

// NewIndustriesHandler creates a new industries handler.
func NewIndustriesHandler(deps Dependencies) *IndustriesHandler {
	return &IndustriesHandler{deps: deps}
}

// industriesResponse wraps the list so the payload stays extensible.
type industriesResponse struct {
	Industries []string `json:"industries"`
}

// HandleIndustries handles GET /industries requests.
func (h *IndustriesHandler) HandleIndustries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, industriesResponse{
		Industries: h.deps.Industries(r.Context()),
	})
}
