package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/model"
	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/service"
	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/utils"
)

// ISyncService is the calendar sync engine as seen from the HTTP layer.
// It allows the handlers to be tested against a mock.
type ISyncService interface {
	ListCalendars(ctx context.Context) ([]service.CalendarInfo, error)
	SyncToGoogle(ctx context.Context, rec model.SyncRecord, calendarID string) (*service.ExportResult, error)
	SyncFromGoogle(ctx context.Context, orgID, calendarID string, timeMin, timeMax time.Time) (imported, total int, err error)
	DeleteFromGoogle(ctx context.Context, eventID, calendarID string) error
	FullSync(ctx context.Context, orgID, calendarID string, settings model.SyncSettings) (*model.SyncReport, error)
}

// IHistoryStore persists and reads past sync runs.
type IHistoryStore interface {
	CreateSyncHistory(ctx context.Context, syncType, status string, durationMs int64, details json.RawMessage) error
	GetSyncHistory(ctx context.Context, limit int) ([]model.SyncHistory, error)
}

type CalendarHandler struct {
	Sync    ISyncService
	History IHistoryStore
}

func NewCalendarHandler(sync ISyncService, history IHistoryStore) *CalendarHandler {
	return &CalendarHandler{Sync: sync, History: history}
}

// ListCalendars returns the calendars of the connected Google account.
// GET /api/v1/calendar/calendars
func (h *CalendarHandler) ListCalendars(c *gin.Context) {
	cals, err := h.Sync.ListCalendars(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"calendars": utils.ConvertCalendarsToResponse(cals),
	})
}

// SyncToGoogle upserts a single record onto the calendar.
// POST /api/v1/calendar/sync/to-google
func (h *CalendarHandler) SyncToGoogle(c *gin.Context) {
	var req model.SyncToGoogleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	rec := utils.PayloadToSyncRecord(req.Event, req.EventType)
	res, err := h.Sync.SyncToGoogle(c.Request.Context(), rec, req.CalendarID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	msg := "event created"
	if res.WasUpdate {
		msg = "event updated"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"google_event_id": res.ExternalEventID,
		"message":         msg,
	})
}

// SyncFromGoogle imports externally-authored events as local meetings.
// POST /api/v1/calendar/sync/from-google
func (h *CalendarHandler) SyncFromGoogle(c *gin.Context) {
	var req model.SyncFromGoogleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var timeMin, timeMax time.Time
	var err error
	if req.TimeMin != "" {
		if timeMin, err = time.Parse(time.RFC3339, req.TimeMin); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time_min, use RFC3339"})
			return
		}
	}
	if req.TimeMax != "" {
		if timeMax, err = time.Parse(time.RFC3339, req.TimeMax); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time_max, use RFC3339"})
			return
		}
	}

	imported, total, err := h.Sync.SyncFromGoogle(c.Request.Context(), req.OrganisationID, req.CalendarID, timeMin, timeMax)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imported": imported,
		"total":    total,
		"message":  "import completed",
	})
}

// DeleteEvent removes a record's Google event. Missing event id is a no-op
// success, not an error.
// POST /api/v1/calendar/events/delete
func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	var req model.DeleteEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if req.GoogleEventID == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "nothing to delete"})
		return
	}

	if err := h.Sync.DeleteFromGoogle(c.Request.Context(), req.GoogleEventID, req.CalendarID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "event deleted"})
}

// FullSync runs the batch sync and records the run in sync_history. Item
// failures land in results.errors; the call itself still succeeds.
// POST /api/v1/calendar/sync/full
func (h *CalendarHandler) FullSync(c *gin.Context) {
	var req model.FullSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	start := time.Now()
	report, err := h.Sync.FullSync(c.Request.Context(), req.OrganisationID, req.CalendarID, req.SyncSettings)
	durationMs := time.Since(start).Milliseconds()

	if err != nil {
		details, _ := json.Marshal(gin.H{"error": err.Error()})
		if histErr := h.History.CreateSyncHistory(c.Request.Context(), "full-sync", model.SyncStatusFailed, durationMs, details); histErr != nil {
			log.Printf("failed to record sync history: %v", histErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := model.SyncStatusSuccess
	if report.Partial() {
		status = model.SyncStatusPartial
	}
	details, _ := json.Marshal(report)
	if histErr := h.History.CreateSyncHistory(c.Request.Context(), "full-sync", status, durationMs, details); histErr != nil {
		log.Printf("failed to record sync history: %v", histErr)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": report,
		"message": "full sync completed",
	})
}

// GetSyncHistory returns recent sync runs.
// GET /api/v1/calendar/sync/history
func (h *CalendarHandler) GetSyncHistory(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
		return
	}

	history, err := h.History.GetSyncHistory(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get sync history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}
