package handlers

import (
	"github.com/gofiber/fiber/v3"

	"exlookup/internal/config"
	"exlookup/internal/models"
)

// SearchHandler serves the exception search page.
type SearchHandler struct {
	searcher Searcher
	cfg      *config.Config
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(searcher Searcher, cfg *config.Config) *SearchHandler {
	return &SearchHandler{searcher: searcher, cfg: cfg}
}

// Index redirects to the search page.
func (h *SearchHandler) Index(c fiber.Ctx) error {
	return c.Redirect().To("/search")
}

// Search looks up the idException query parameter and renders the result.
// Transport failures are returned to the app error handler.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	term := c.Query("idException")

	outcome, err := h.searcher.Search(c.Context(), term)
	if err != nil {
		return err
	}

	data := fiber.Map{
		"Title":     pageTitle,
		"SubTitle":  pageSubTitle,
		"Exception": models.NewExceptionView(outcome),
		"Search":    "",
	}
	if outcome.WasSearched() {
		data["Search"] = term
	}

	return c.Render("search", MergeBranding(data, h.cfg))
}
