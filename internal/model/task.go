package model

import "time"

// Task is an internally-owned scheduling record with an optional due date/time.
// ExternalEventID is set once the task has been exported to Google Calendar.
type Task struct {
	ID              string     `json:"id"`
	OrganisationID  string     `json:"organisation_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status,omitempty"`
	Priority        string     `json:"priority,omitempty"`
	DueDate         string     `json:"due_date,omitempty"`
	DueTime         string     `json:"due_time,omitempty"`
	ExternalEventID string     `json:"external_event_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// Task priorities recognised by the calendar export.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

const StatusCancelled = "cancelled"
