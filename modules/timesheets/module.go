package timesheets

import (
	"embed"

	"github.com/ati-intranet/portal/modules/timesheets/presentation/controllers"
	"github.com/ati-intranet/portal/modules/timesheets/services"
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
	app.RegisterServices(services.NewTimesheetService(app.API(), app.EventPublisher()))
	app.RegisterControllers(
		controllers.NewTimesheetController(app),
	)
	app.RegisterNavItems(NavItems...)
	app.QuickLinks().Add(
		spotlight.NewQuickLink(TimesheetsLink.Icon, TimesheetsLink.Name, TimesheetsLink.Href),
		spotlight.NewQuickLink(TimesheetsLink.Icon, "Timesheets.NewTitle", "/timesheets/new"),
	)
	return nil
}

func (m *Module) Name() string {
	return "timesheets"
}
