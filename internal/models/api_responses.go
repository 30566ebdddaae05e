package models

import (
	"encoding/json"

	"exlookup/internal/insights"
)

// LookupResponse is the JSON API representation of a lookup outcome.
// Payload is embedded as-is when it is valid JSON and as a string otherwise.
type LookupResponse struct {
	Outcome string          `json:"outcome"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Reason  string          `json:"reason,omitempty"`
}

// NewLookupResponse converts an outcome for the JSON API.
func NewLookupResponse(o insights.Outcome) LookupResponse {
	resp := LookupResponse{
		Outcome: o.Kind.String(),
		Reason:  o.Reason,
	}
	if o.Kind != insights.KindFound {
		return resp
	}

	if json.Valid([]byte(o.Payload)) {
		resp.Payload = json.RawMessage(o.Payload)
	} else {
		// Marshalling a string cannot fail.
		b, _ := json.Marshal(o.Payload)
		resp.Payload = b
	}
	return resp
}
