package model

// RecordType distinguishes the two kinds of local scheduling records.
type RecordType string

const (
	RecordTypeTask    RecordType = "task"
	RecordTypeMeeting RecordType = "meeting"
)

// SyncRecord is the normalised view of a local scheduling record that the
// calendar sync engine operates on. Tasks and meetings are converted to this
// shape before mapping; StartTime empty means an all-day entry.
type SyncRecord struct {
	ID              string     `json:"id"`
	OrganisationID  string     `json:"organisation_id"`
	Type            RecordType `json:"type"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Location        string     `json:"location,omitempty"`
	MeetingLink     string     `json:"meeting_link,omitempty"`
	Priority        string     `json:"priority,omitempty"`
	Date            string     `json:"date,omitempty"`
	StartTime       string     `json:"start_time,omitempty"`
	EndTime         string     `json:"end_time,omitempty"`
	ExternalEventID string     `json:"external_event_id,omitempty"`
}

// ToSyncRecord normalises a task for export. Tasks always export as timed
// events: a task without a due time falls back to DefaultDueTime.
func (t Task) ToSyncRecord() SyncRecord {
	start := t.DueTime
	if start == "" {
		start = DefaultDueTime
	}
	return SyncRecord{
		ID:              t.ID,
		OrganisationID:  t.OrganisationID,
		Type:            RecordTypeTask,
		Title:           t.Title,
		Description:     t.Description,
		Priority:        t.Priority,
		Date:            t.DueDate,
		StartTime:       start,
		ExternalEventID: t.ExternalEventID,
	}
}

// ToSyncRecord normalises a meeting for export. A meeting without a start
// time exports as an all-day event.
func (m Meeting) ToSyncRecord() SyncRecord {
	return SyncRecord{
		ID:              m.ID,
		OrganisationID:  m.OrganisationID,
		Type:            RecordTypeMeeting,
		Title:           m.Title,
		Description:     m.Description,
		Location:        m.Location,
		MeetingLink:     m.MeetingLink,
		Date:            m.Date,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		ExternalEventID: m.ExternalEventID,
	}
}
