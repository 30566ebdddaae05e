package insights

import (
	"context"
	"errors"
	"time"
)

// Lookuper performs the remote part of a search.
type Lookuper interface {
	Lookup(ctx context.Context, params QueryParameters) (Outcome, error)
}

// RecordFunc receives the label and duration of every attempted lookup.
// The label is an OutcomeKind string or "transport_error".
type RecordFunc func(outcome string, elapsed time.Duration)

// OutcomeTransportError labels lookups that failed with a TransportError.
const OutcomeTransportError = "transport_error"

// Service is the entry point used by the web host and the CLI.
type Service struct {
	client Lookuper
	record RecordFunc
}

// NewService wraps a Lookuper. record may be nil.
func NewService(client Lookuper, record RecordFunc) *Service {
	return &Service{client: client, record: record}
}

// Search formats the raw operator input and looks it up. A blank term
// yields NotSearched without touching the network.
func (s *Service) Search(ctx context.Context, term string) (Outcome, error) {
	params, err := FormatParameters(term)
	if errors.Is(err, ErrNoIdentifier) {
		return NotSearched(), nil
	}
	if err != nil {
		return Outcome{}, err
	}

	start := time.Now()
	outcome, err := s.client.Lookup(ctx, params)
	if s.record != nil {
		label := outcome.Kind.String()
		if err != nil {
			label = OutcomeTransportError
		}
		s.record(label, time.Since(start))
	}
	return outcome, err
}
