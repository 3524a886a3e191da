package pages

import (
	"embed"

	"github.com/a-h/templ"

	"github.com/ati-intranet/portal/components/layout"
	"github.com/ati-intranet/portal/modules/jobs/domain/entities/job"
	"github.com/ati-intranet/portal/modules/jobs/presentation/controllers/dtos"
)

//go:embed *.html
var FS embed.FS

var renderer = layout.MustRenderer(FS, "*.html")

type IndexProps struct {
	Openings []job.Opening
}

type ShowProps struct {
	Opening   job.Opening
	ShowRefer bool
	Form      *dtos.ReferralDTO
	Errors    map[string]string
}

type ReferProps struct {
	Openings []job.Opening
	Form     *dtos.ReferralDTO
	Errors   map[string]string
}

func Index(props *IndexProps) templ.Component {
	return renderer.Page("index", "Jobs.Title", props)
}

func Show(props *ShowProps) templ.Component {
	return renderer.Page("show", "Jobs.DetailTitle", props)
}

func Refer(props *ReferProps) templ.Component {
	return renderer.Page("refer", "Jobs.Refer", props)
}
