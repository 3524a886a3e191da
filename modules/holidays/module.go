package holidays

import (
	"embed"

	"github.com/ati-intranet/portal/modules/holidays/presentation/controllers"
	"github.com/ati-intranet/portal/modules/holidays/services"
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
	app.RegisterServices(services.NewHolidayService(app.API(), app.EventPublisher()))
	app.RegisterControllers(
		controllers.NewHolidayController(app),
	)
	app.RegisterNavItems(NavItems...)
	app.QuickLinks().Add(
		spotlight.NewQuickLink(HolidaysLink.Icon, HolidaysLink.Name, HolidaysLink.Href),
		spotlight.NewQuickLink(HolidaysLink.Icon, "Holidays.NewTitle", "/holidays/new").
			RequireAuthz(authz.ObjectHolidays, "manage"),
	)
	return nil
}

func (m *Module) Name() string {
	return "holidays"
}
