package service

import (
	"google.golang.org/api/calendar/v3"

	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/model"
)

// IsLinked reports whether the record already owns a Google event.
func IsLinked(rec model.SyncRecord) bool {
	return rec.ExternalEventID != ""
}

// IsForeignOrigin reports whether the event was authored outside this
// system. An event without our provenance stamp is foreign; the import
// direction only ever touches foreign events, so exports can never echo
// back as duplicate local records.
func IsForeignOrigin(ev *calendar.Event) bool {
	if ev.ExtendedProperties == nil || ev.ExtendedProperties.Private == nil {
		return true
	}
	return ev.ExtendedProperties.Private[PropSourceApp] != SourceApp
}
