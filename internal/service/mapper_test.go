package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/model"
)

func TestMapRecord_TaskScenario(t *testing.T) {
	rec := model.SyncRecord{
		ID:        "T1",
		Type:      model.RecordTypeTask,
		Title:     "Quarterly stock count",
		Priority:  model.PriorityHigh,
		Date:      "2024-03-01",
		StartTime: "09:00",
	}

	ev, err := MapRecord(rec, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "Quarterly stock count", ev.Summary)
	assert.Equal(t, "2024-03-01T09:00:00", ev.Start.DateTime)
	assert.Equal(t, "2024-03-01T10:00:00", ev.End.DateTime)
	assert.Equal(t, "6", ev.ColorId)

	require.NotNil(t, ev.ExtendedProperties)
	private := ev.ExtendedProperties.Private
	assert.Equal(t, SourceApp, private[PropSourceApp])
	assert.Equal(t, "T1", private[PropSourceID])
	assert.Equal(t, "task", private[PropSourceType])
}

func TestMapRecord_AllDay(t *testing.T) {
	rec := model.SyncRecord{
		ID:    "M1",
		Type:  model.RecordTypeMeeting,
		Title: "Offsite",
		Date:  "2024-03-05",
	}

	ev, err := MapRecord(rec, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-05", ev.Start.Date)
	assert.Empty(t, ev.Start.DateTime)
	assert.Equal(t, "2024-03-05", ev.End.Date)
	assert.Empty(t, ev.End.DateTime)
}

func TestMapRecord_DefaultEndIsOneHourLater(t *testing.T) {
	rec := model.SyncRecord{
		ID:        "M2",
		Type:      model.RecordTypeMeeting,
		Title:     "Standup",
		Date:      "2024-03-05",
		StartTime: "14:30",
	}

	ev, err := MapRecord(rec, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05T15:30:00", ev.End.DateTime)
}

func TestMapRecord_DefaultEndRollsOvernight(t *testing.T) {
	rec := model.SyncRecord{
		ID:        "T2",
		Type:      model.RecordTypeTask,
		Title:     "Close registers",
		Date:      "2024-03-01",
		StartTime: "23:30",
	}

	ev, err := MapRecord(rec, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T23:30:00", ev.Start.DateTime)
	assert.Equal(t, "2024-03-02T00:30:00", ev.End.DateTime)
}

func TestMapRecord_ExplicitEndPastMidnightRollsDate(t *testing.T) {
	rec := model.SyncRecord{
		ID:        "M3",
		Type:      model.RecordTypeMeeting,
		Title:     "Night shift handover",
		Date:      "2024-03-01",
		StartTime: "23:00",
		EndTime:   "00:30",
	}

	ev, err := MapRecord(rec, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02T00:30:00", ev.End.DateTime)
}

func TestMapRecord_UnknownPriorityGetsMediumColor(t *testing.T) {
	rec := model.SyncRecord{
		ID:        "T3",
		Type:      model.RecordTypeTask,
		Title:     "Misc",
		Priority:  "whenever",
		Date:      "2024-03-01",
		StartTime: "09:00",
	}

	ev, err := MapRecord(rec, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, priorityColors[model.PriorityMedium], ev.ColorId)
}

func TestMapRecord_MeetingDecoration(t *testing.T) {
	rec := model.SyncRecord{
		ID:          "M4",
		Type:        model.RecordTypeMeeting,
		Title:       "Supplier call",
		Location:    "HQ, Freetown",
		MeetingLink: "https://meet.example.com/abc",
		Date:        "2024-03-05",
		StartTime:   "10:00",
		EndTime:     "11:00",
	}

	ev, err := MapRecord(rec, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, meetingColorID, ev.ColorId)
	assert.Equal(t, "HQ, Freetown", ev.Location)
	require.NotNil(t, ev.ConferenceData)
	require.Len(t, ev.ConferenceData.EntryPoints, 1)
	assert.Equal(t, "video", ev.ConferenceData.EntryPoints[0].EntryPointType)
	assert.Equal(t, "https://meet.example.com/abc", ev.ConferenceData.EntryPoints[0].Uri)
}

func TestMapRecord_TimeZoneCarried(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Freetown")
	require.NoError(t, err)

	rec := model.SyncRecord{
		ID:        "T4",
		Type:      model.RecordTypeTask,
		Title:     "Payroll cutoff",
		Date:      "2024-03-01",
		StartTime: "09:00",
	}

	ev, err := MapRecord(rec, loc)
	require.NoError(t, err)
	assert.Equal(t, "Africa/Freetown", ev.Start.TimeZone)
	assert.Equal(t, "Africa/Freetown", ev.End.TimeZone)
}

func TestMapRecord_Deterministic(t *testing.T) {
	rec := model.SyncRecord{
		ID:        "T5",
		Type:      model.RecordTypeTask,
		Title:     "Restock shelves",
		Priority:  model.PriorityLow,
		Date:      "2024-04-10",
		StartTime: "08:15",
	}

	first, err := MapRecord(rec, time.UTC)
	require.NoError(t, err)
	second, err := MapRecord(rec, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMapRecord_NoDateIsAnError(t *testing.T) {
	rec := model.SyncRecord{ID: "T6", Type: model.RecordTypeTask, Title: "Dateless"}

	_, err := MapRecord(rec, time.UTC)
	assert.Error(t, err)
}

func TestMapRecord_InvalidStartTimeIsAnError(t *testing.T) {
	rec := model.SyncRecord{
		ID:        "T7",
		Type:      model.RecordTypeTask,
		Title:     "Bad clock",
		Date:      "2024-03-01",
		StartTime: "25:99",
	}

	_, err := MapRecord(rec, time.UTC)
	assert.Error(t, err)
}
