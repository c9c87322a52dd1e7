package utils

import (
	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/model"
	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/service"
)

func ConvertCalendarToResponse(cal service.CalendarInfo) model.CalendarResponse {
	return model.CalendarResponse{
		ID:              cal.ID,
		Summary:         cal.Summary,
		Primary:         cal.Primary,
		BackgroundColor: cal.BackgroundColor,
	}
}

func ConvertCalendarsToResponse(cals []service.CalendarInfo) []model.CalendarResponse {
	resp := make([]model.CalendarResponse, 0, len(cals))
	for _, c := range cals {
		resp = append(resp, ConvertCalendarToResponse(c))
	}
	return resp
}

// PayloadToSyncRecord normalises an inline event payload into a sync
// record. Task payloads carry due_date/due_time; a task without a due time
// falls back to DefaultDueTime, matching Task.ToSyncRecord.
func PayloadToSyncRecord(p model.EventPayload, recordType model.RecordType) model.SyncRecord {
	rec := model.SyncRecord{
		ID:              p.ID,
		OrganisationID:  p.OrganisationID,
		Type:            recordType,
		Title:           p.Title,
		Description:     p.Description,
		Location:        p.Location,
		MeetingLink:     p.MeetingLink,
		Priority:        p.Priority,
		ExternalEventID: p.ExternalEventID,
	}
	if recordType == model.RecordTypeTask {
		rec.Date = p.DueDate
		rec.StartTime = p.DueTime
		if rec.StartTime == "" {
			rec.StartTime = model.DefaultDueTime
		}
		return rec
	}
	rec.Date = p.Date
	rec.StartTime = p.StartTime
	rec.EndTime = p.EndTime
	return rec
}
