package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskToSyncRecord(t *testing.T) {
	task := Task{
		ID:             "T1",
		OrganisationID: "org-1",
		Title:          "Stock count",
		Priority:       PriorityHigh,
		DueDate:        "2024-03-01",
		DueTime:        "14:00",
	}

	rec := task.ToSyncRecord()
	assert.Equal(t, RecordTypeTask, rec.Type)
	assert.Equal(t, "2024-03-01", rec.Date)
	assert.Equal(t, "14:00", rec.StartTime)
	assert.Empty(t, rec.EndTime)
}

func TestTaskToSyncRecord_DefaultsDueTime(t *testing.T) {
	task := Task{ID: "T1", Title: "Stock count", DueDate: "2024-03-01"}

	rec := task.ToSyncRecord()
	assert.Equal(t, DefaultDueTime, rec.StartTime)
}

func TestMeetingToSyncRecord(t *testing.T) {
	meeting := Meeting{
		ID:              "M1",
		Title:           "Supplier call",
		Location:        "HQ",
		MeetingLink:     "https://meet.example.com/abc",
		Date:            "2024-03-05",
		StartTime:       "10:00",
		EndTime:         "11:00",
		ExternalEventID: "gev-1",
	}

	rec := meeting.ToSyncRecord()
	assert.Equal(t, RecordTypeMeeting, rec.Type)
	assert.Equal(t, "10:00", rec.StartTime)
	assert.Equal(t, "11:00", rec.EndTime)
	assert.Equal(t, "gev-1", rec.ExternalEventID)
}

func TestMeetingToSyncRecord_AllDayStaysAllDay(t *testing.T) {
	meeting := Meeting{ID: "M1", Title: "Offsite", Date: "2024-03-05"}

	rec := meeting.ToSyncRecord()
	assert.Empty(t, rec.StartTime, "a meeting without times must stay all-day")
}
