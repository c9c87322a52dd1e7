package model

import (
	"encoding/json"
	"time"
)

// SyncSettings drives a full sync run. Empty filter slices mean no filtering.
type SyncSettings struct {
	SyncTasks        bool     `json:"sync_tasks"`
	TaskPriorities   []string `json:"task_priorities,omitempty"`
	SyncMeetings     bool     `json:"sync_meetings"`
	MeetingTypes     []string `json:"meeting_types,omitempty"`
	ImportFromGoogle bool     `json:"import_from_google"`
}

// SyncError records one failed item inside a batch; the batch keeps going.
type SyncError struct {
	RecordID    string `json:"record_id"`
	RecordTitle string `json:"record_title"`
	Error       string `json:"error"`
}

// SyncReport aggregates the outcome of one FullSync run.
type SyncReport struct {
	Exported int         `json:"exported"`
	Imported int         `json:"imported"`
	Errors   []SyncError `json:"errors"`
}

// Partial returns true when at least one item failed.
func (r *SyncReport) Partial() bool { return len(r.Errors) > 0 }

// SyncHistory is one persisted row describing a past sync run.
type SyncHistory struct {
	ID         int64           `json:"id"`
	SyncTime   time.Time       `json:"sync_time"`
	SyncType   string          `json:"sync_type"`
	Status     string          `json:"status"`
	DurationMs int64           `json:"duration_ms"`
	Details    json.RawMessage `json:"details,omitempty"`
}

// Sync run statuses recorded in sync_history.
const (
	SyncStatusSuccess = "success"
	SyncStatusPartial = "partial"
	SyncStatusFailed  = "failed"
)
