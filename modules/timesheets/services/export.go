package services

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/ati-intranet/portal/modules/timesheets/domain/entities/timesheet"
	"github.com/ati-intranet/portal/pkg/types"
)

const exportSheet = "Timesheet"

var exportHeader = []interface{}{"Date", "Project", "Start", "End", "Hours", "Notes"}

// Export renders the timesheet entries as an xlsx workbook, grouped by day,
// closing with a total row. projects maps project ids to display names.
func Export(ts timesheet.Timesheet, projects map[types.ID]string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, errors.Wrap(err, "rename sheet")
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, errors.Wrap(err, "write header")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "header style")
	}
	if err := f.SetCellStyle(exportSheet, "A1", "F1", bold); err != nil {
		return nil, errors.Wrap(err, "style header")
	}

	row := 2
	for _, group := range timesheet.GroupByDate(ts.Entries) {
		for _, e := range group.Entries {
			name, ok := projects[e.ProjectID]
			if !ok {
				name = "#" + e.ProjectID.String()
			}
			values := []interface{}{group.Date, name, e.StartTime, e.EndTime, e.HoursWorked.InexactFloat64(), e.Notes}
			if err := f.SetSheetRow(exportSheet, cell(row), &values); err != nil {
				return nil, errors.Wrapf(err, "write row %d", row)
			}
			row++
		}
	}
	total := []interface{}{"Total", "", "", "", timesheet.TotalHours(ts.Entries).InexactFloat64()}
	if err := f.SetSheetRow(exportSheet, cell(row), &total); err != nil {
		return nil, errors.Wrap(err, "write total")
	}
	if err := f.SetCellStyle(exportSheet, cell(row), fmt.Sprintf("E%d", row), bold); err != nil {
		return nil, errors.Wrap(err, "style total")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}

func cell(row int) string {
	return fmt.Sprintf("A%d", row)
}

// ExportFilename names the download after the week.
func ExportFilename(ts timesheet.Timesheet) string {
	start := ts.StartDate
	if len(start) > 10 {
		start = start[:10]
	}
	if start == "" {
		return fmt.Sprintf("timesheet-%s.xlsx", ts.ID)
	}
	return fmt.Sprintf("timesheet-%s.xlsx", start)
}
