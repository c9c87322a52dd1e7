package service

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/model"
)

// SourceApp identifies events created by this system. Every exported event
// carries it in the private extended properties so the import direction can
// tell our events apart from externally-authored ones.
const SourceApp = "bfse-management-suite"

// Private extended property keys stamped on every exported event.
const (
	PropSourceApp  = "source_app"
	PropSourceID   = "source_id"
	PropSourceType = "source_type"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// Google Calendar colorId per task priority, plus the fixed meeting color.
var priorityColors = map[string]string{
	model.PriorityUrgent: "11",
	model.PriorityHigh:   "6",
	model.PriorityMedium: "5",
	model.PriorityLow:    "2",
}

const meetingColorID = "7"

// MapRecord translates a local scheduling record into a Google Calendar
// event body. It is a pure function of its inputs: the same record and zone
// always produce the same event, which is what keeps repeated upserts
// idempotent.
//
// A record without a start time becomes an all-day event ({date} only).
// A record with a start time but no end time gets an end exactly one hour
// later; the addition is done on a full timestamp, so a 23:30 start rolls
// the end over to 00:30 on the following date.
func MapRecord(rec model.SyncRecord, loc *time.Location) (*calendar.Event, error) {
	if rec.Date == "" {
		return nil, fmt.Errorf("record %s has no date to place on a calendar", rec.ID)
	}

	ev := &calendar.Event{
		Summary:     rec.Title,
		Description: rec.Description,
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				PropSourceApp:  SourceApp,
				PropSourceID:   rec.ID,
				PropSourceType: string(rec.Type),
			},
		},
	}

	if rec.StartTime == "" {
		ev.Start = &calendar.EventDateTime{Date: rec.Date}
		ev.End = &calendar.EventDateTime{Date: rec.Date}
	} else {
		start, err := time.ParseInLocation(dateLayout+" "+timeLayout, rec.Date+" "+rec.StartTime, loc)
		if err != nil {
			return nil, fmt.Errorf("record %s has invalid start time %q: %w", rec.ID, rec.StartTime, err)
		}
		var end time.Time
		if rec.EndTime != "" {
			end, err = time.ParseInLocation(dateLayout+" "+timeLayout, rec.Date+" "+rec.EndTime, loc)
			if err != nil {
				return nil, fmt.Errorf("record %s has invalid end time %q: %w", rec.ID, rec.EndTime, err)
			}
			// an end at or before the start means the entry runs past midnight
			if !end.After(start) {
				end = end.AddDate(0, 0, 1)
			}
		} else {
			end = start.Add(time.Hour)
		}
		ev.Start = &calendar.EventDateTime{DateTime: start.Format(dateTimeLayout), TimeZone: loc.String()}
		ev.End = &calendar.EventDateTime{DateTime: end.Format(dateTimeLayout), TimeZone: loc.String()}
	}

	switch rec.Type {
	case model.RecordTypeMeeting:
		ev.ColorId = meetingColorID
		if rec.Location != "" {
			ev.Location = rec.Location
		}
		if rec.MeetingLink != "" {
			ev.ConferenceData = &calendar.ConferenceData{
				EntryPoints: []*calendar.EntryPoint{
					{EntryPointType: "video", Uri: rec.MeetingLink},
				},
			}
		}
	default:
		ev.ColorId = taskColorID(rec.Priority)
	}

	return ev, nil
}

func taskColorID(priority string) string {
	if c, ok := priorityColors[priority]; ok {
		return c
	}
	return priorityColors[model.PriorityMedium]
}
