package api

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"exlookup/internal/insights"
	"exlookup/internal/models"
)

// Searcher runs one exception search for raw operator input.
type Searcher interface {
	Search(ctx context.Context, term string) (insights.Outcome, error)
}

// LookupHandler exposes exception lookups via JSON API.
type LookupHandler struct {
	searcher Searcher
}

// NewLookupHandler creates a new API lookup handler.
func NewLookupHandler(searcher Searcher) *LookupHandler {
	return &LookupHandler{searcher: searcher}
}

// Lookup searches for the id query parameter and returns the outcome.
func (h *LookupHandler) Lookup(c fiber.Ctx) error {
	outcome, err := h.searcher.Search(c.Context(), c.Query("id"))
	if err != nil {
		var te *insights.TransportError
		if errors.As(err, &te) {
			slog.Error("exception lookup failed", "error", err)
			return jsonError(c, fiber.StatusBadGateway, "telemetry service unavailable")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to look up exception")
	}

	return jsonSuccess(c, models.NewLookupResponse(outcome))
}
