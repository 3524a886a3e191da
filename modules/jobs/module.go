package jobs

import (
	"embed"

	"github.com/ati-intranet/portal/modules/jobs/presentation/controllers"
	"github.com/ati-intranet/portal/modules/jobs/services"
	"github.com/ati-intranet/portal/pkg/application"
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
	app.RegisterServices(services.NewJobService(app.API(), app.EventPublisher()))
	app.RegisterControllers(
		controllers.NewJobController(app),
	)
	app.RegisterNavItems(NavItems...)
	app.QuickLinks().Add(
		spotlight.NewQuickLink(JobsLink.Icon, JobsLink.Name, JobsLink.Href),
		spotlight.NewQuickLink(JobsLink.Icon, "Jobs.Refer", "/jobs/refer"),
	)
	return nil
}

func (m *Module) Name() string {
	return "jobs"
}
