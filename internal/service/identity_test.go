package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/calendar/v3"

	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/model"
)

func TestIsLinked(t *testing.T) {
	assert.False(t, IsLinked(model.SyncRecord{ID: "T1"}))
	assert.True(t, IsLinked(model.SyncRecord{ID: "T1", ExternalEventID: "gev-1"}))
}

func TestIsForeignOrigin(t *testing.T) {
	ours := &calendar.Event{
		Id: "gev-1",
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{PropSourceApp: SourceApp, PropSourceID: "T1"},
		},
	}
	assert.False(t, IsForeignOrigin(ours))

	otherApp := &calendar.Event{
		Id: "gev-2",
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{PropSourceApp: "some-other-app"},
		},
	}
	assert.True(t, IsForeignOrigin(otherApp))

	assert.True(t, IsForeignOrigin(&calendar.Event{Id: "gev-3"}))
	assert.True(t, IsForeignOrigin(&calendar.Event{
		Id:                 "gev-4",
		ExtendedProperties: &calendar.EventExtendedProperties{},
	}))
}
