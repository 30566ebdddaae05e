package insights

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// Fixed query shape sent to the exceptions endpoint.
const (
	LookbackWindow = "P30D"
	TopCount       = 1
)

// ErrNoIdentifier is returned when a search term is empty after trimming.
var ErrNoIdentifier = errors.New("no identifier supplied")

// QueryParameters is the formatted query for a single exception search.
// Only FormatParameters produces a usable value.
type QueryParameters struct {
	timespan string
	top      int
	term     string
}

// FormatParameters trims the term and composes the query parameters for a
// lookup. Internal whitespace is kept as-is.
func FormatParameters(term string) (QueryParameters, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return QueryParameters{}, ErrNoIdentifier
	}

	return QueryParameters{
		timespan: LookbackWindow,
		top:      TopCount,
		term:     term,
	}, nil
}

// Timespan returns the ISO-8601 lookback window.
func (p QueryParameters) Timespan() string { return p.timespan }

// Top returns the result cap.
func (p QueryParameters) Top() int { return p.top }

// Term returns the trimmed search term.
func (p QueryParameters) Term() string { return p.term }

// String renders the query with the term verbatim.
func (p QueryParameters) String() string {
	return p.render(p.term)
}

// Encode renders the query with the term escaped for use in a URL.
func (p QueryParameters) Encode() string {
	return p.render(url.QueryEscape(p.term))
}

func (p QueryParameters) render(term string) string {
	var b strings.Builder
	b.WriteString("timespan=")
	b.WriteString(p.timespan)
	b.WriteString("&$top=")
	b.WriteString(strconv.Itoa(p.top))
	b.WriteString("&$search=")
	b.WriteString(term)
	return b.String()
}
