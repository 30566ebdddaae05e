package insights

// OutcomeKind tags which variant of Outcome is active.
type OutcomeKind int

const (
	KindNotSearched OutcomeKind = iota
	KindFound
	KindNotFound
)

// String returns the label used in logs, metrics and the JSON API.
func (k OutcomeKind) String() string {
	switch k {
	case KindFound:
		return "found"
	case KindNotFound:
		return "not_found"
	default:
		return "not_searched"
	}
}

// Outcome is the classified result of one search.
// Payload is set only for KindFound, Reason only for KindNotFound.
type Outcome struct {
	Kind    OutcomeKind
	Payload string
	Reason  string
}

// NotSearched reports that no identifier was supplied.
func NotSearched() Outcome {
	return Outcome{Kind: KindNotSearched}
}

// Found wraps a non-empty response body.
func Found(payload string) Outcome {
	return Outcome{Kind: KindFound, Payload: payload}
}

// NotFound reports an empty result or a rejected request. Reason is empty
// for an empty success body and carries the server reason phrase otherwise.
func NotFound(reason string) Outcome {
	return Outcome{Kind: KindNotFound, Reason: reason}
}

func (o Outcome) WasSearched() bool { return o.Kind != KindNotSearched }
func (o Outcome) WasFound() bool    { return o.Kind == KindFound }
