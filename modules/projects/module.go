package projects

import (
	"embed"

	"github.com/ati-intranet/portal/modules/projects/presentation/controllers"
	"github.com/ati-intranet/portal/modules/projects/services"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/authz"
	"github.com/ati-intranet/portal/pkg/spotlight"
)

//go:embed presentation/locales/*.toml
var LocaleFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&LocaleFiles)
	app.RegisterServices(services.NewProjectService(app.API(), app.EventPublisher()))
	app.RegisterControllers(
		controllers.NewProjectController(app),
	)
	app.RegisterNavItems(NavItems...)
	app.QuickLinks().Add(
		spotlight.NewQuickLink(ProjectsLink.Icon, ProjectsLink.Name, ProjectsLink.Href),
		spotlight.NewQuickLink(ProjectsLink.Icon, "Projects.NewTitle", "/projects/new").
			RequireAuthz(authz.ObjectProjects, "manage"),
	)
	return nil
}

func (m *Module) Name() string {
	return "projects"
}
