package pages

import (
	"embed"

	"github.com/a-h/templ"

	"github.com/ati-intranet/portal/components/layout"
	"github.com/ati-intranet/portal/modules/holidays/domain/entities/holiday"
	"github.com/ati-intranet/portal/modules/holidays/presentation/controllers/dtos"
)

//go:embed *.html
var FS embed.FS

var renderer = layout.MustRenderer(FS, "*.html")

type IndexProps struct {
	Year      int
	Years     []int
	Client    string
	Clients   []string
	Groups    []holiday.MonthGroup
	CanManage bool
}

func (p *IndexProps) AllClients() bool {
	return p.Client == holiday.AllClients
}

type NewProps struct {
	Form   *dtos.CreateHolidaysDTO
	Years  []int
	Error  string
	Errors map[string]string
}

func (p *NewProps) RowCount() int {
	return len(p.Form.Rows)
}

func Index(props *IndexProps) templ.Component {
	return renderer.Page("index", "Holidays.Title", props)
}

func New(props *NewProps) templ.Component {
	return renderer.Page("new", "Holidays.NewTitle", props)
}
