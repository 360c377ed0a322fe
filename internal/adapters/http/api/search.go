// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	service "github.com/BriFlake/expert-finder/internal/app"
	"github.com/BriFlake/expert-finder/internal/domain/model"
)

// SearchHandler handles expert search requests.
type SearchHandler struct {
	deps Dependencies
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps Dependencies) *SearchHandler {
	return &SearchHandler{deps: deps}
}

// HandleSearch handles GET /search requests.
//
// Query parameters:
//
//	q                            comma-separated search terms (required)
//	min_skill_level              any|basic|medium|high
//	require_certifications       true to require a matched certification
//	require_manager_endorsement  true to require a manager endorsement
//	recency                      all|6m|1y|2y
//	industries                   comma-separated industry names
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "missing_query", ErrMissingQuery)
		return
	}

	result, err := h.deps.Search(r.Context(), query, parseFilters(r))
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, "missing_query", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func parseFilters(r *http.Request) model.Filters {
	q := r.URL.Query()
	return model.Filters{
		MinSkillLevel:             model.ParseSkillLevel(q.Get("min_skill_level")),
		RequireCertification:      parseBool(q.Get("require_certifications")),
		RequireManagerEndorsement: parseBool(q.Get("require_manager_endorsement")),
		Recency:                   model.ParseRecency(q.Get("recency")),
		Industries:                splitList(q.Get("industries")),
	}
}

// parseBool treats anything but an affirmative value as false; filters fail
// open rather than rejecting the request.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
