package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_Helpers(t *testing.T) {
	assert.Equal(t, "on-hold", Project{Status: "On Hold"}.StatusClass())
	assert.Equal(t, "active", Project{Status: " active"}.StatusClass())
	assert.Equal(t, "", Project{}.End())

	assert.Nil(t, OptionalDate("  "))
	require.NotNil(t, OptionalDate("2024-05-01"))
	assert.Equal(t, "2024-05-01", *OptionalDate(" 2024-05-01 "))
}

func TestNewUpdatedEvent(t *testing.T) {
	end := "2024-12-31"
	before := Project{ID: "3", Name: "Portal", Status: "Active", CreatedAt: "2024-01-01"}
	after := Project{ID: "3", Name: "Portal", Status: "On Hold", EndDate: &end, CreatedAt: "2024-02-02"}

	ev, err := NewUpdatedEvent("hr-user", before, after)
	require.NoError(t, err)
	assert.EqualValues(t, "3", ev.ID)
	assert.ElementsMatch(t, []string{"/end_date", "/status"}, ev.ChangedFields())

	ev, err = NewUpdatedEvent("hr-user", before, before)
	require.NoError(t, err)
	assert.Empty(t, ev.Changes)
}
