package pages

import (
	"embed"

	"github.com/a-h/templ"

	"github.com/ati-intranet/portal/components/layout"
	"github.com/ati-intranet/portal/modules/projects/domain/entities/project"
	"github.com/ati-intranet/portal/modules/projects/presentation/controllers/dtos"
)

//go:embed *.html
var FS embed.FS

var renderer = layout.MustRenderer(FS, "*.html")

type IndexProps struct {
	Projects  []project.Project
	CanManage bool
}

type NewProps struct {
	Form     *dtos.CreateProjectDTO
	Statuses []string
	Error    string
	Errors   map[string]string
}

type ShowProps struct {
	Project  project.Project
	Form     *dtos.UpdateProjectDTO
	Statuses []string
	CanEdit  bool
	Editing  bool
	Saved    bool
	Errors   map[string]string
}

func Index(props *IndexProps) templ.Component {
	return renderer.Page("index", "Projects.Title", props)
}

func New(props *NewProps) templ.Component {
	return renderer.Page("new", "Projects.NewTitle", props)
}

func Show(props *ShowProps) templ.Component {
	return renderer.Page("show", "Projects.DetailTitle", props)
}
