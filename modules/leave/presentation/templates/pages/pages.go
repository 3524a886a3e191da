package pages

import (
	"embed"

	"github.com/a-h/templ"

	"github.com/ati-intranet/portal/components/layout"
	"github.com/ati-intranet/portal/modules/leave/domain/entities/leave"
	"github.com/ati-intranet/portal/modules/leave/presentation/controllers/dtos"
	"github.com/ati-intranet/portal/pkg/types"
)

//go:embed *.html
var FS embed.FS

var renderer = layout.MustRenderer(FS, "*.html")

type IndexProps struct {
	// EmployeeID is set only when an explicit employee_id override is active.
	EmployeeID   types.ID
	HasEmployee  bool
	Balances     []leave.Balance
	Applications []leave.Application
	CanApprove   bool
	ShowApply    bool
	Types        []string
	Form         *dtos.ApplyDTO
	Errors       map[string]string
}

type ApprovalsProps struct {
	Filter       leave.Filter
	Filters      []leave.Filter
	Applications []leave.Application
}

func Index(props *IndexProps) templ.Component {
	return renderer.Page("index", "Leave.Title", props)
}

func Approvals(props *ApprovalsProps) templ.Component {
	return renderer.Page("approvals", "Leave.Approvals.Title", props)
}
