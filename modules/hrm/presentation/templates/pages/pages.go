package pages

import (
	"embed"

	"github.com/a-h/templ"

	"github.com/ati-intranet/portal/components/layout"
	"github.com/ati-intranet/portal/modules/hrm/domain/entities/employee"
	"github.com/ati-intranet/portal/modules/hrm/presentation/controllers/dtos"
)

//go:embed *.html
var FS embed.FS

var renderer = layout.MustRenderer(FS, "*.html")

type IndexProps struct {
	Query     string
	Employees []employee.Employee
	CanCreate bool
}

type NewProps struct {
	Form   *dtos.CreateEmployeeDTO
	Error  string
	Errors map[string]string
}

type ShowProps struct {
	Employee   employee.Employee
	Form       *dtos.UpdateEmployeeDTO
	CanEdit    bool
	Editing    bool
	Privileged bool
	Saved      bool
	Errors     map[string]string
}

func Index(props *IndexProps) templ.Component {
	return renderer.Page("index", "Employees.Title", props)
}

// EmployeeGrid is the search result swap target.
func EmployeeGrid(props *IndexProps) templ.Component {
	return renderer.Partial("index", "grid", props)
}

func New(props *NewProps) templ.Component {
	return renderer.Page("new", "Employees.NewTitle", props)
}

func Show(props *ShowProps) templ.Component {
	return renderer.Page("show", "Employees.Title", props)
}
