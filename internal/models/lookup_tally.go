package models

import "time"

// LookupTally is the persisted count of lookups for one outcome label.
type LookupTally struct {
	Outcome    string
	Count      int64
	LastSeenAt time.Time
}
