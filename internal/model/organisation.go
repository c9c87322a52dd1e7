package model

import "time"

// Organisation carries the per-org settings the sync engine needs, most
// importantly the IANA time zone used when mapping timed events.
type Organisation struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
