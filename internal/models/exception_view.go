package models

import "exlookup/internal/insights"

// ExceptionView is the display model for the search page.
type ExceptionView struct {
	WasSearched bool
	WasFound    bool
	Description string // Raw payload when found
	Reason      string // Backend reason phrase when the request was rejected
}

// NewExceptionView maps a lookup outcome onto the search page model.
func NewExceptionView(o insights.Outcome) ExceptionView {
	switch o.Kind {
	case insights.KindFound:
		return ExceptionView{WasSearched: true, WasFound: true, Description: o.Payload}
	case insights.KindNotFound:
		return ExceptionView{WasSearched: true, Reason: o.Reason}
	default:
		return ExceptionView{}
	}
}
