package handlers

import (
	"context"

	"exlookup/internal/insights"
)

// Searcher runs one exception search for raw operator input.
type Searcher interface {
	Search(ctx context.Context, term string) (insights.Outcome, error)
}

// Page titles shared by the search views.
const (
	pageTitle    = "Application Exception Lookup"
	pageSubTitle = "Search"
)
