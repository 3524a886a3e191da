package actionlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAction_LocaleKey(t *testing.T) {
	assert.Equal(t, "Logs.Actions.TimesheetStatusChanged", ActionTimesheetStatusChanged.LocaleKey())
	assert.Equal(t, "Logs.Actions.SessionSignedIn", ActionSignedIn.LocaleKey())
	assert.Equal(t, "Logs.Actions.JobReferred", ActionCandidateReferred.LocaleKey())
}

func TestAction_Valid(t *testing.T) {
	assert.True(t, ActionLeaveDecided.Valid())
	assert.False(t, Action("leave.deleted").Valid())
	assert.False(t, Action("").Valid())
}

func TestFindParams_Page(t *testing.T) {
	logs := []*ActionLog{
		New("ann", ActionLeaveApplied, "leave application #3", ""),
		New("bob", ActionLeaveDecided, "leave application #2", "Approved"),
		New("Ann", ActionProjectCreated, "project #9", "Portal"),
		New("ann", ActionLeaveApplied, "leave application #1", ""),
	}

	got, total := (&FindParams{Actor: "ann"}).Page(logs)
	assert.Equal(t, int64(3), total)
	assert.Len(t, got, 3)

	got, total = (&FindParams{Actor: "ANN", Action: ActionLeaveApplied, Limit: 1, Offset: 1}).Page(logs)
	assert.Equal(t, int64(2), total)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "leave application #1", got[0].Subject)
	}

	got, total = (&FindParams{Offset: 10}).Page(logs)
	assert.Equal(t, int64(4), total)
	assert.Empty(t, got)

	got, total = (*FindParams)(nil).Page(logs)
	assert.Equal(t, int64(4), total)
	assert.Len(t, got, 4)
}

func TestNew(t *testing.T) {
	l := New("hr-user", ActionHolidaysAdded, "holidays 2025", "2 holidays")
	assert.NotZero(t, l.ID)
	assert.False(t, l.CreatedAt.IsZero())
	assert.Equal(t, ActionHolidaysAdded, l.Action)
}
