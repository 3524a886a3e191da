package dtos

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ati-intranet/portal/modules/timesheets/domain/entities/timesheet"
	"github.com/ati-intranet/portal/pkg/constants"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/shared"
	"github.com/ati-intranet/portal/pkg/types"
)

const MaxRows = 20

// RowDTO is one grid line; Hours holds the raw Sunday..Saturday inputs.
type RowDTO struct {
	ProjectID string
	Hours     []string
}

type CreateTimesheetDTO struct {
	WeekStart string `validate:"required,datetime=2006-01-02"`
	Rows      []RowDTO
}

// Resize pads or truncates the grid to n rows (clamped to 1..MaxRows) of
// seven cells each.
func (d *CreateTimesheetDTO) Resize(n int) {
	n = min(max(n, 1), MaxRows)
	if len(d.Rows) > n {
		d.Rows = d.Rows[:n]
	}
	for len(d.Rows) < n {
		d.Rows = append(d.Rows, RowDTO{})
	}
	for i := range d.Rows {
		hours := make([]string, timesheet.DaysPerWeek)
		copy(hours, d.Rows[i].Hours)
		d.Rows[i].Hours = hours
	}
}

func (d *CreateTimesheetDTO) Start() time.Time {
	t, _ := time.Parse(constants.DateLayout, d.WeekStart)
	return t
}

// Grid parses the inputs. Cells that are blank or unparsable count as zero.
func (d *CreateTimesheetDTO) Grid() timesheet.Grid {
	grid, _, _ := d.parse()
	return grid
}

func (d *CreateTimesheetDTO) parse() (grid timesheet.Grid, badHours, missingProject bool) {
	grid = make(timesheet.Grid, 0, len(d.Rows))
	for _, r := range d.Rows {
		row := timesheet.Row{}
		row.ProjectID = types.ID(strings.TrimSpace(r.ProjectID))
		for i := 0; i < timesheet.DaysPerWeek && i < len(r.Hours); i++ {
			v := strings.TrimSpace(r.Hours[i])
			if v == "" {
				continue
			}
			h, err := decimal.NewFromString(v)
			if err != nil || !timesheet.ValidHours(h) {
				badHours = true
				continue
			}
			row.Hours[i] = h
		}
		if row.ProjectID.IsZero() && row.Total().IsPositive() {
			missingProject = true
		}
		grid = append(grid, row)
	}
	return grid, badHours, missingProject
}

func (d *CreateTimesheetDTO) Ok(ctx context.Context) (map[string]string, bool) {
	errorMessages := shared.ValidateStruct(ctx, d, "Timesheets.Fields")
	_, badHours, missingProject := d.parse()
	if badHours {
		errorMessages["Hours"] = intl.T(ctx, "Timesheets.Errors.Hours")
	}
	if missingProject {
		errorMessages["Project"] = intl.T(ctx, "Timesheets.Errors.Project")
	}
	return errorMessages, len(errorMessages) == 0
}
