package timesheet

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ati-intranet/portal/pkg/constants"
	"github.com/ati-intranet/portal/pkg/types"
)

const (
	// EntryStartTime is when every generated entry begins.
	EntryStartTime = "09:00:00"
	MaxDailyHours  = 24
)

// HourStep is the granularity a grid cell accepts.
var HourStep = decimal.NewFromFloat(0.5)

// ValidHours reports whether h fits one grid cell: 0..MaxDailyHours in
// HourStep increments.
func ValidHours(h decimal.Decimal) bool {
	if h.IsNegative() || h.GreaterThan(decimal.NewFromInt(MaxDailyHours)) {
		return false
	}
	return h.Mod(HourStep).IsZero()
}

// Row is one project line of the weekly grid. Hours[0] is Sunday.
type Row struct {
	ProjectID types.ID
	Hours     [DaysPerWeek]decimal.Decimal
}

func (r Row) Total() decimal.Decimal {
	total := decimal.Zero
	for _, h := range r.Hours {
		total = total.Add(h)
	}
	return total
}

type Grid []Row

func (g Grid) DayTotals() [DaysPerWeek]decimal.Decimal {
	var out [DaysPerWeek]decimal.Decimal
	for _, r := range g {
		for d, h := range r.Hours {
			out[d] = out[d].Add(h)
		}
	}
	return out
}

func (g Grid) Total() decimal.Decimal {
	total := decimal.Zero
	for _, r := range g {
		total = total.Add(r.Total())
	}
	return total
}

// EntryRequest is the body of POST /timesheets/entries. Hours go out as a
// JSON number; decimal.Decimal would marshal as a string.
type EntryRequest struct {
	TimesheetID types.ID `json:"timesheet_id"`
	ProjectID   types.ID `json:"project_id"`
	EntryDate   string   `json:"entry_date"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	HoursWorked float64  `json:"hours_worked"`
	Notes       string   `json:"notes"`
}

// EndTime is the clock time hours after EntryStartTime, wrapping past midnight.
func EndTime(hours decimal.Decimal) string {
	start, _ := time.Parse(time.TimeOnly, EntryStartTime)
	seconds := hours.Mul(decimal.NewFromInt(3600)).Round(0).IntPart()
	return start.Add(time.Duration(seconds) * time.Second).Format(time.TimeOnly)
}

// Entries expands the grid into one request per project and day with
// positive hours. Rows without a project are skipped.
func (g Grid) Entries(timesheetID types.ID, start time.Time) []EntryRequest {
	out := make([]EntryRequest, 0)
	for _, r := range g {
		if r.ProjectID.IsZero() {
			continue
		}
		for offset, h := range r.Hours {
			if !h.IsPositive() {
				continue
			}
			out = append(out, EntryRequest{
				TimesheetID: timesheetID,
				ProjectID:   r.ProjectID,
				EntryDate:   start.AddDate(0, 0, offset).Format(constants.DateLayout),
				StartTime:   EntryStartTime,
				EndTime:     EndTime(h),
				HoursWorked: h.InexactFloat64(),
				Notes:       "",
			})
		}
	}
	return out
}
