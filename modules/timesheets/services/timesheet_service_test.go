package services

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ati-intranet/portal/modules/timesheets/domain/entities/timesheet"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/eventbus"
	"github.com/ati-intranet/portal/pkg/itf"
	"github.com/ati-intranet/portal/pkg/types"
)

func newService(t *testing.T) (*TimesheetService, *itf.Upstream, eventbus.EventBus) {
	t.Helper()
	up := itf.NewUpstream(t)
	c, err := apiclient.New(apiclient.Options{BaseURL: up.URL(), Timeout: time.Second})
	require.NoError(t, err)
	bus := eventbus.NewEventPublisher(nil)
	return NewTimesheetService(c, bus), up, bus
}

func TestTimesheetService_Create(t *testing.T) {
	svc, up, bus := newService(t)
	up.JSON(http.MethodPost, "/timesheets", http.StatusCreated, timesheet.Timesheet{ID: "21", Status: "draft"})
	up.JSON(http.MethodPost, "/timesheets/entries", http.StatusCreated, map[string]int{"id": 1})

	var got *timesheet.CreatedEvent
	bus.Subscribe(func(ev *timesheet.CreatedEvent) { got = ev })

	start := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	grid := timesheet.Grid{{ProjectID: "3", Hours: [timesheet.DaysPerWeek]decimal.Decimal{decimal.Zero, decimal.NewFromInt(8), decimal.NewFromFloat(4.5)}}}
	ts, err := svc.Create(context.Background(), start, grid)
	require.NoError(t, err)
	assert.EqualValues(t, "21", ts.ID)

	var header map[string]string
	up.Last(t, http.MethodPost, "/timesheets").JSON(t, &header)
	assert.Equal(t, map[string]string{"start_date": "2024-06-02", "end_date": "2024-06-08"}, header)

	entries := up.Requests(http.MethodPost, "/timesheets/entries")
	require.Len(t, entries, 2)
	var second map[string]any
	entries[1].JSON(t, &second)
	assert.Equal(t, map[string]any{
		"timesheet_id": float64(21),
		"project_id":   float64(3),
		"entry_date":   "2024-06-04",
		"start_time":   "09:00:00",
		"end_time":     "13:30:00",
		"hours_worked": 4.5,
		"notes":        "",
	}, second)

	require.NotNil(t, got)
	assert.Equal(t, 2, got.Entries)
}

func TestTimesheetService_CreateFailures(t *testing.T) {
	svc, up, _ := newService(t)
	start := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	up.JSON(http.MethodPost, "/timesheets", http.StatusOK, map[string]string{"status": "draft"})
	_, err := svc.Create(context.Background(), start, nil)
	require.ErrorIs(t, err, ErrMissingID)

	up.JSON(http.MethodPost, "/timesheets", http.StatusConflict, map[string]string{"message": "Week already exists"})
	_, err = svc.Create(context.Background(), start, nil)
	require.Error(t, err)
	assert.Equal(t, "Week already exists", apiclient.Message(err, "fallback"))
	assert.Empty(t, up.Requests(http.MethodPost, "/timesheets/entries"))
}

func TestTimesheetService_Transitions(t *testing.T) {
	svc, up, bus := newService(t)
	up.JSON(http.MethodPatch, "/timesheets/5/submit", http.StatusOK, timesheet.Timesheet{ID: "5", Status: "submitted"})

	var got []*timesheet.StatusChangedEvent
	bus.Subscribe(func(ev *timesheet.StatusChangedEvent) { got = append(got, ev) })

	require.NoError(t, svc.Submit(context.Background(), "5"))
	require.Error(t, svc.Approve(context.Background(), "5"))
	require.Len(t, got, 1)
	assert.Equal(t, timesheet.StatusSubmitted, got[0].Status)
}

func TestExport(t *testing.T) {
	ts := timesheet.Timesheet{
		ID:        "5",
		StartDate: "2024-06-02T00:00:00.000Z",
		Entries: []timesheet.Entry{
			{ProjectID: "2", EntryDate: "2024-06-04", StartTime: "09:00:00", EndTime: "13:00:00", HoursWorked: decimal.NewFromInt(4)},
			{ProjectID: "1", EntryDate: "2024-06-03", StartTime: "09:00:00", EndTime: "16:30:00", HoursWorked: decimal.NewFromFloat(7.5), Notes: "release"},
		},
	}
	data, err := Export(ts, map[types.ID]string{"1": "Portal"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Timesheet")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Date", "Project", "Start", "End", "Hours", "Notes"}, rows[0])
	assert.Equal(t, []string{"2024-06-03", "Portal", "09:00:00", "16:30:00", "7.5", "release"}, rows[1])
	assert.Equal(t, "#2", rows[2][1])
	assert.Equal(t, "Total", rows[3][0])
	assert.Equal(t, "11.5", rows[3][4])

	assert.Equal(t, "timesheet-2024-06-02.xlsx", ExportFilename(ts))
	assert.Equal(t, "timesheet-9.xlsx", ExportFilename(timesheet.Timesheet{ID: "9"}))
}
