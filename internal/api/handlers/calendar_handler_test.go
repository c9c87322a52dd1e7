package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/model"
	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/service"
)

type mockSync struct {
	calendars []service.CalendarInfo
	exportRes *service.ExportResult
	exportErr error
	report    *model.SyncReport

	lastRec        model.SyncRecord
	lastCalendarID string
	deletedID      string
	deleteCalls    int
}

func (m *mockSync) ListCalendars(_ context.Context) ([]service.CalendarInfo, error) {
	return m.calendars, nil
}

func (m *mockSync) SyncToGoogle(_ context.Context, rec model.SyncRecord, calendarID string) (*service.ExportResult, error) {
	m.lastRec = rec
	m.lastCalendarID = calendarID
	return m.exportRes, m.exportErr
}

func (m *mockSync) SyncFromGoogle(_ context.Context, _, _ string, _, _ time.Time) (int, int, error) {
	return 2, 5, nil
}

func (m *mockSync) DeleteFromGoogle(_ context.Context, eventID, _ string) error {
	m.deleteCalls++
	m.deletedID = eventID
	return nil
}

func (m *mockSync) FullSync(_ context.Context, _, _ string, _ model.SyncSettings) (*model.SyncReport, error) {
	return m.report, nil
}

type mockHistory struct {
	statuses []string
	rows     []model.SyncHistory
}

func (m *mockHistory) CreateSyncHistory(_ context.Context, _, status string, _ int64, _ json.RawMessage) error {
	m.statuses = append(m.statuses, status)
	return nil
}

func (m *mockHistory) GetSyncHistory(_ context.Context, _ int) ([]model.SyncHistory, error) {
	return m.rows, nil
}

func newTestRouter(sync *mockSync, history *mockHistory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCalendarHandler(sync, history)
	r := gin.New()
	r.GET("/calendars", h.ListCalendars)
	r.POST("/sync/to-google", h.SyncToGoogle)
	r.POST("/sync/from-google", h.SyncFromGoogle)
	r.POST("/sync/full", h.FullSync)
	r.POST("/events/delete", h.DeleteEvent)
	r.GET("/sync/history", h.GetSyncHistory)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestListCalendars(t *testing.T) {
	sync := &mockSync{calendars: []service.CalendarInfo{{ID: "primary", Summary: "Main", Primary: true}}}
	r := newTestRouter(sync, &mockHistory{})

	w, out := doJSON(t, r, http.MethodGet, "/calendars", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
	cals := out["calendars"].([]interface{})
	require.Len(t, cals, 1)
	assert.Equal(t, "primary", cals[0].(map[string]interface{})["id"])
}

func TestSyncToGoogle_BadBodyIs400(t *testing.T) {
	r := newTestRouter(&mockSync{}, &mockHistory{})

	w, out := doJSON(t, r, http.MethodPost, "/sync/to-google", `{"event_type":"task"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, out, "error")
}

func TestSyncToGoogle_TaskPayloadNormalised(t *testing.T) {
	sync := &mockSync{exportRes: &service.ExportResult{ExternalEventID: "gev-1"}}
	r := newTestRouter(sync, &mockHistory{})

	body := `{"event_type":"task","calendar_id":"cal1","event":{"id":"T1","title":"Stock count","due_date":"2024-03-01"}}`
	w, out := doJSON(t, r, http.MethodPost, "/sync/to-google", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "gev-1", out["google_event_id"])
	assert.Equal(t, "event created", out["message"])

	assert.Equal(t, model.RecordTypeTask, sync.lastRec.Type)
	assert.Equal(t, "2024-03-01", sync.lastRec.Date)
	assert.Equal(t, model.DefaultDueTime, sync.lastRec.StartTime)
	assert.Equal(t, "cal1", sync.lastCalendarID)
}

func TestSyncToGoogle_UpdateMessage(t *testing.T) {
	sync := &mockSync{exportRes: &service.ExportResult{ExternalEventID: "gev-1", WasUpdate: true}}
	r := newTestRouter(sync, &mockHistory{})

	body := `{"event_type":"meeting","event":{"id":"M1","title":"Standup","date":"2024-03-01","start_time":"10:00"}}`
	_, out := doJSON(t, r, http.MethodPost, "/sync/to-google", body)
	assert.Equal(t, "event updated", out["message"])
}

func TestSyncFromGoogle_InvalidTimeIs400(t *testing.T) {
	r := newTestRouter(&mockSync{}, &mockHistory{})

	body := `{"org_id":"org-1","time_min":"not-a-time"}`
	w, _ := doJSON(t, r, http.MethodPost, "/sync/from-google", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncFromGoogle_ReturnsCounts(t *testing.T) {
	r := newTestRouter(&mockSync{}, &mockHistory{})

	w, out := doJSON(t, r, http.MethodPost, "/sync/from-google", `{"org_id":"org-1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), out["imported"])
	assert.Equal(t, float64(5), out["total"])
}

func TestDeleteEvent_MissingIDIsNoOpSuccess(t *testing.T) {
	sync := &mockSync{}
	r := newTestRouter(sync, &mockHistory{})

	w, out := doJSON(t, r, http.MethodPost, "/events/delete", `{}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
	assert.Zero(t, sync.deleteCalls)
}

func TestDeleteEvent_DelegatesToService(t *testing.T) {
	sync := &mockSync{}
	r := newTestRouter(sync, &mockHistory{})

	w, _ := doJSON(t, r, http.MethodPost, "/events/delete", `{"google_event_id":"gev-7"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gev-7", sync.deletedID)
}

func TestFullSync_PartialReportStillSucceeds(t *testing.T) {
	sync := &mockSync{report: &model.SyncReport{
		Exported: 2,
		Errors:   []model.SyncError{{RecordID: "T2", RecordTitle: "doomed", Error: "boom"}},
	}}
	history := &mockHistory{}
	r := newTestRouter(sync, history)

	body := `{"org_id":"org-1","sync_settings":{"sync_tasks":true}}`
	w, out := doJSON(t, r, http.MethodPost, "/sync/full", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
	results := out["results"].(map[string]interface{})
	assert.Equal(t, float64(2), results["exported"])
	assert.Len(t, results["errors"], 1)
	assert.Equal(t, []string{model.SyncStatusPartial}, history.statuses)
}

func TestFullSync_MissingOrgIs400(t *testing.T) {
	r := newTestRouter(&mockSync{}, &mockHistory{})

	w, _ := doJSON(t, r, http.MethodPost, "/sync/full", `{"sync_settings":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSyncHistory(t *testing.T) {
	history := &mockHistory{rows: []model.SyncHistory{{ID: 1, SyncType: "full-sync", Status: "success"}}}
	r := newTestRouter(&mockSync{}, history)

	w, out := doJSON(t, r, http.MethodGet, "/sync/history?limit=5", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["history"], 1)
}

func TestGetSyncHistory_BadLimitIs400(t *testing.T) {
	r := newTestRouter(&mockSync{}, &mockHistory{})

	w, _ := doJSON(t, r, http.MethodGet, "/sync/history?limit=lots", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
