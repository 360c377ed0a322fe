// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/BriFlake/expert-finder/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Search answers one expert search with filters applied.
	Search(ctx context.Context, query string, f model.Filters) (model.SearchResult, error)

	// Directory returns the engineer roster, optionally narrowed.
	Directory(ctx context.Context, college, name string) (model.DirectoryResult, error)

	// Industries returns the selectable industry filter values.
	Industries(ctx context.Context) []string
}

// Server wires HTTP routes for the business API.
type Server struct {
	searchHandler     *SearchHandler
	directoryHandler  *DirectoryHandler
	industriesHandler *IndustriesHandler
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		searchHandler:     NewSearchHandler(deps),
		directoryHandler:  NewDirectoryHandler(deps),
		industriesHandler: NewIndustriesHandler(deps),
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/search", RequestIDMiddleware(MetricsMiddleware(s.searchHandler.HandleSearch, "search")))
	mux.HandleFunc("/directory", RequestIDMiddleware(MetricsMiddleware(s.directoryHandler.HandleDirectory, "directory")))
	mux.HandleFunc("/industries", RequestIDMiddleware(MetricsMiddleware(s.industriesHandler.HandleIndustries, "industries")))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
