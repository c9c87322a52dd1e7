package model

// Named defaults for the optional request fields below.
const (
	DefaultCalendarID       = "primary"
	DefaultImportWindowDays = 90
	DefaultDueTime          = "09:00"
)

// EventPayload is the inline record carried by a sync-to-google request.
// Task payloads fill due_date/due_time, meeting payloads date/start_time/
// end_time; both shapes are accepted and normalised by ToSyncRecord.
type EventPayload struct {
	ID             string `json:"id" binding:"required"`
	OrganisationID string `json:"organisation_id"`
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	MeetingLink    string `json:"meeting_link"`
	Priority       string `json:"priority"`

	DueDate string `json:"due_date"`
	DueTime string `json:"due_time"`

	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	ExternalEventID string `json:"external_event_id"`
}

type SyncToGoogleRequest struct {
	Event      EventPayload `json:"event" binding:"required"`
	EventType  RecordType   `json:"event_type" binding:"required,oneof=task meeting"`
	CalendarID string       `json:"calendar_id"`
}

type SyncFromGoogleRequest struct {
	OrganisationID string `json:"org_id" binding:"required"`
	CalendarID     string `json:"calendar_id"`
	TimeMin        string `json:"time_min"`
	TimeMax        string `json:"time_max"`
}

type DeleteEventRequest struct {
	GoogleEventID string `json:"google_event_id"`
	CalendarID    string `json:"calendar_id"`
}

type FullSyncRequest struct {
	OrganisationID string       `json:"org_id" binding:"required"`
	CalendarID     string       `json:"calendar_id"`
	SyncSettings   SyncSettings `json:"sync_settings"`
}

// CalendarResponse is one entry of the list-calendars response.
type CalendarResponse struct {
	ID              string `json:"id"`
	Summary         string `json:"summary"`
	Primary         bool   `json:"primary"`
	BackgroundColor string `json:"background_color,omitempty"`
}
