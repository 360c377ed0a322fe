// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// DirectoryHandler handles engineer directory requests.
type DirectoryHandler struct {
	deps Dependencies
}

// NewDirectoryHandler creates a new directory handler.
func NewDirectoryHandler(deps Dependencies) *DirectoryHandler {
	return &DirectoryHandler{deps: deps}
}

// HandleDirectory handles GET /directory requests.
//
// Query parameters:
//
//	college  exact college name after array cleanup
//	name     case-insensitive name substring
func (h *DirectoryHandler) HandleDirectory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	result, err := h.deps.Directory(r.Context(), q.Get("college"), q.Get("name"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
