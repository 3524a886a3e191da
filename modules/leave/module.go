package leave

import (
	"embed"

	"github.com/ati-intranet/portal/modules/leave/presentation/controllers"
	"github.com/ati-intranet/portal/modules/leave/services"
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
	app.RegisterServices(services.NewLeaveService(app.API(), app.EventPublisher()))
	app.RegisterControllers(
		controllers.NewLeaveController(app),
	)
	app.RegisterNavItems(NavItems...)
	app.QuickLinks().Add(
		spotlight.NewQuickLink(LeaveLink.Icon, LeaveLink.Name, LeaveLink.Href),
		spotlight.NewQuickLink(LeaveLink.Icon, "Leave.Apply", "/leave?apply=1"),
		spotlight.NewQuickLink(LeaveLink.Icon, ApprovalsLink.Name, ApprovalsLink.Href).
			RequireAuthz(ApprovalsLink.AuthzObject, ApprovalsLink.AuthzAction),
	)
	return nil
}

func (m *Module) Name() string {
	return "leave"
}
