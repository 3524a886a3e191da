package pages

import (
	"embed"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	"github.com/ati-intranet/portal/components/layout"
	"github.com/ati-intranet/portal/modules/timesheets/domain/entities/timesheet"
	"github.com/ati-intranet/portal/modules/timesheets/presentation/controllers/dtos"
	"github.com/ati-intranet/portal/pkg/types"
)

//go:embed *.html
var FS embed.FS

var renderer = layout.MustRenderer(FS, "*.html")

// DayNames label the grid columns, Sunday first.
var DayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

type IndexProps struct {
	Timesheets []timesheet.Timesheet
}

type NewProps struct {
	Form     *dtos.CreateTimesheetDTO
	Grid     timesheet.Grid
	Projects []timesheet.ProjectOption
	Days     []string
	// DayDates are the m/d labels under each day name.
	DayDates []string
	Error    string
	Errors   map[string]string
}

func (p *NewProps) RowCount() int {
	return len(p.Form.Rows)
}

type ShowProps struct {
	Timesheet  timesheet.Timesheet
	Groups     []timesheet.DayGroup
	Total      decimal.Decimal
	CanSubmit  bool
	CanApprove bool
	Projects   map[types.ID]string
}

func (p *ShowProps) ProjectName(id types.ID) string {
	if name, ok := p.Projects[id]; ok && name != "" {
		return name
	}
	return "#" + id.String()
}

func Index(props *IndexProps) templ.Component {
	return renderer.Page("index", "Timesheets.Title", props)
}

func New(props *NewProps) templ.Component {
	return renderer.Page("new", "Timesheets.NewTitle", props)
}

func Show(props *ShowProps) templ.Component {
	return renderer.Page("show", "Timesheets.DetailTitle", props)
}
