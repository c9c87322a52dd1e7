package model

import "time"

// Meeting is an internally-owned scheduling record with a date and a
// start/end time pair. Both times empty means an all-day entry.
type Meeting struct {
	ID              string     `json:"id"`
	OrganisationID  string     `json:"organisation_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Location        string     `json:"location,omitempty"`
	MeetingLink     string     `json:"meeting_link,omitempty"`
	MeetingType     string     `json:"meeting_type,omitempty"`
	Status          string     `json:"status,omitempty"`
	Date            string     `json:"date,omitempty"`
	StartTime       string     `json:"start_time,omitempty"`
	EndTime         string     `json:"end_time,omitempty"`
	ExternalEventID string     `json:"external_event_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// Defaults applied to meetings created by the import direction.
const (
	ImportedMeetingType   = "external"
	ImportedMeetingStatus = "scheduled"
)
