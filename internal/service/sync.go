package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/calendar/v3"

	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/model"
)

// RecordStore is the slice of the persistence layer the sync engine needs.
// Implemented by repository.PostgresRepo; tests use an in-memory double.
type RecordStore interface {
	ListTasksForSync(ctx context.Context, orgID string, priorities []string) ([]model.Task, error)
	ListMeetingsForSync(ctx context.Context, orgID string, types []string) ([]model.Meeting, error)
	SetTaskExternalEventID(ctx context.Context, taskID, eventID string) error
	SetMeetingExternalEventID(ctx context.Context, meetingID, eventID string) error
	HasRecordForExternalEvent(ctx context.Context, orgID, eventID string) (bool, error)
	CreateImportedMeeting(ctx context.Context, m model.Meeting) error
	GetOrganisationTimezone(ctx context.Context, orgID string) (string, error)
}

// Gateway is the external calendar capability consumed by the sync engine.
// Implemented by GoogleGateway; tests use a fake.
type Gateway interface {
	ListCalendars(ctx context.Context) ([]CalendarInfo, error)
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]*calendar.Event, error)
	UpsertEvent(ctx context.Context, calendarID string, ev *calendar.Event, existingID string) (*calendar.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// ExportResult is the outcome of one SyncToGoogle call.
type ExportResult struct {
	ExternalEventID string `json:"external_event_id"`
	WasUpdate       bool   `json:"was_update"`
}

// SyncService reconciles local scheduling records with Google Calendar.
// All collaborators are injected so each can be replaced by a test double.
type SyncService struct {
	store            RecordStore
	gateway          Gateway
	defaultTimezone  string
	importWindowDays int
	now              func() time.Time
}

func NewSyncService(store RecordStore, gateway Gateway, defaultTimezone string, importWindowDays int) *SyncService {
	if importWindowDays <= 0 {
		importWindowDays = model.DefaultImportWindowDays
	}
	return &SyncService{
		store:            store,
		gateway:          gateway,
		defaultTimezone:  defaultTimezone,
		importWindowDays: importWindowDays,
		now:              time.Now,
	}
}

// ListCalendars passes through to the gateway.
func (s *SyncService) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	return s.gateway.ListCalendars(ctx)
}

// SyncToGoogle upserts one record onto the calendar. A record that already
// owns a Google event is updated in place; an unlinked record is created
// and the assigned event id written back onto it, which is the only local
// mutation the engine performs.
func (s *SyncService) SyncToGoogle(ctx context.Context, rec model.SyncRecord, calendarID string) (*ExportResult, error) {
	if calendarID == "" {
		calendarID = model.DefaultCalendarID
	}
	loc := s.orgLocation(ctx, rec.OrganisationID)
	return s.exportRecord(ctx, rec, calendarID, loc)
}

func (s *SyncService) exportRecord(ctx context.Context, rec model.SyncRecord, calendarID string, loc *time.Location) (*ExportResult, error) {
	ev, err := MapRecord(rec, loc)
	if err != nil {
		return nil, err
	}

	linked := IsLinked(rec)
	existingID := rec.ExternalEventID
	canonical, err := s.gateway.UpsertEvent(ctx, calendarID, ev, existingID)
	if err != nil {
		return nil, err
	}

	if !linked {
		var linkErr error
		switch rec.Type {
		case model.RecordTypeMeeting:
			linkErr = s.store.SetMeetingExternalEventID(ctx, rec.ID, canonical.Id)
		default:
			linkErr = s.store.SetTaskExternalEventID(ctx, rec.ID, canonical.Id)
		}
		if linkErr != nil {
			return nil, linkErr
		}
	}

	return &ExportResult{ExternalEventID: canonical.Id, WasUpdate: linked}, nil
}

// SyncFromGoogle pulls events in [timeMin, timeMax] (defaulting to now and
// now plus the import window) and creates a local meeting for every
// externally-authored event not already linked to a record. Events carrying
// our own provenance stamp are skipped, so exports never echo back in.
func (s *SyncService) SyncFromGoogle(ctx context.Context, orgID, calendarID string, timeMin, timeMax time.Time) (imported, total int, err error) {
	if calendarID == "" {
		calendarID = model.DefaultCalendarID
	}
	if timeMin.IsZero() {
		timeMin = s.now()
	}
	if timeMax.IsZero() {
		timeMax = timeMin.AddDate(0, 0, s.importWindowDays)
	}

	events, err := s.gateway.ListEvents(ctx, calendarID, timeMin, timeMax)
	if err != nil {
		return 0, 0, err
	}
	total = len(events)

	for _, ev := range events {
		if !IsForeignOrigin(ev) {
			continue
		}
		exists, err := s.store.HasRecordForExternalEvent(ctx, orgID, ev.Id)
		if err != nil {
			return imported, total, err
		}
		if exists {
			continue
		}
		if err := s.store.CreateImportedMeeting(ctx, meetingFromEvent(ev, orgID)); err != nil {
			return imported, total, err
		}
		imported++
	}
	return imported, total, nil
}

// DeleteFromGoogle removes the record's Google event. No event id means
// there is nothing to delete, which is already the target state.
func (s *SyncService) DeleteFromGoogle(ctx context.Context, eventID, calendarID string) error {
	if eventID == "" {
		return nil
	}
	if calendarID == "" {
		calendarID = model.DefaultCalendarID
	}
	return s.gateway.DeleteEvent(ctx, calendarID, eventID)
}

// FullSync runs the batch: task exports, then meeting exports, then the
// import pass. Each item's failure is recorded and the batch moves on; one
// bad record never blocks the rest.
func (s *SyncService) FullSync(ctx context.Context, orgID, calendarID string, settings model.SyncSettings) (*model.SyncReport, error) {
	if calendarID == "" {
		calendarID = model.DefaultCalendarID
	}
	report := &model.SyncReport{Errors: []model.SyncError{}}
	loc := s.orgLocation(ctx, orgID)

	if settings.SyncTasks {
		tasks, err := s.store.ListTasksForSync(ctx, orgID, settings.TaskPriorities)
		if err != nil {
			report.Errors = append(report.Errors, model.SyncError{
				RecordID: "tasks", RecordTitle: "task export", Error: err.Error(),
			})
		}
		for _, t := range tasks {
			if t.DueDate == "" {
				continue
			}
			if _, err := s.exportRecord(ctx, t.ToSyncRecord(), calendarID, loc); err != nil {
				report.Errors = append(report.Errors, model.SyncError{
					RecordID: t.ID, RecordTitle: t.Title, Error: err.Error(),
				})
				continue
			}
			report.Exported++
		}
	}

	if settings.SyncMeetings {
		meetings, err := s.store.ListMeetingsForSync(ctx, orgID, settings.MeetingTypes)
		if err != nil {
			report.Errors = append(report.Errors, model.SyncError{
				RecordID: "meetings", RecordTitle: "meeting export", Error: err.Error(),
			})
		}
		for _, m := range meetings {
			if m.Date == "" {
				continue
			}
			if _, err := s.exportRecord(ctx, m.ToSyncRecord(), calendarID, loc); err != nil {
				report.Errors = append(report.Errors, model.SyncError{
					RecordID: m.ID, RecordTitle: m.Title, Error: err.Error(),
				})
				continue
			}
			report.Exported++
		}
	}

	if settings.ImportFromGoogle {
		imported, _, err := s.SyncFromGoogle(ctx, orgID, calendarID, time.Time{}, time.Time{})
		report.Imported = imported
		if err != nil {
			report.Errors = append(report.Errors, model.SyncError{
				RecordID: "import", RecordTitle: "google import", Error: err.Error(),
			})
		}
	}

	return report, nil
}

// orgLocation resolves the organisation's time zone, falling back to the
// configured default and finally UTC.
func (s *SyncService) orgLocation(ctx context.Context, orgID string) *time.Location {
	tz := ""
	if orgID != "" {
		tz, _ = s.store.GetOrganisationTimezone(ctx, orgID)
	}
	if tz == "" {
		tz = s.defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// meetingFromEvent builds the local meeting created for an imported event.
func meetingFromEvent(ev *calendar.Event, orgID string) model.Meeting {
	m := model.Meeting{
		ID:              uuid.NewString(),
		OrganisationID:  orgID,
		Title:           ev.Summary,
		Description:     ev.Description,
		Location:        ev.Location,
		MeetingType:     model.ImportedMeetingType,
		Status:          model.ImportedMeetingStatus,
		ExternalEventID: ev.Id,
	}
	if m.Title == "" {
		m.Title = "(no title)"
	}
	m.Date, m.StartTime = splitEventTime(ev.Start)
	_, m.EndTime = splitEventTime(ev.End)
	return m
}

func splitEventTime(edt *calendar.EventDateTime) (date, clock string) {
	if edt == nil {
		return "", ""
	}
	if edt.Date != "" {
		return edt.Date, ""
	}
	if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
		return t.Format(dateLayout), t.Format(timeLayout)
	}
	return "", ""
}
