package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"exlookup/internal/db"
	"exlookup/internal/handlers"
	"exlookup/internal/handlers/api"
)

// RegisterRoutes registers all application routes. database may be nil when
// persisted tallies are disabled.
func (s *Server) RegisterRoutes(searcher handlers.Searcher, database *db.DB) {
	searchHandler := handlers.NewSearchHandler(searcher, s.Cfg)
	lookupHandler := api.NewLookupHandler(searcher)
	probeHandler := handlers.NewProbeHandler(database)

	// Frontend routes
	s.App.Get("/", searchHandler.Index)
	s.App.Get("/search", s.limiter, searchHandler.Search)
	s.App.Get("/error", handlers.ErrorPage(s.Cfg))

	// JSON API
	s.App.Get("/api/exceptions", s.limiter, lookupHandler.Lookup)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
