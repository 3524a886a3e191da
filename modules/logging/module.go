package logging

import (
	"embed"

	"github.com/ati-intranet/portal/modules/logging/handlers"
	"github.com/ati-intranet/portal/modules/logging/infrastructure/persistence"
	"github.com/ati-intranet/portal/modules/logging/presentation/controllers"
	"github.com/ati-intranet/portal/modules/logging/services"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/configuration"
	"github.com/ati-intranet/portal/pkg/spotlight"
)

//go:embed presentation/locales/*.toml
var localeFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()
	repo, err := persistence.NewActionLogRepository(conf.AuditLog.Storage, conf.RedisURL, conf.AuditLog.Capacity)
	if err != nil {
		return err
	}
	app.RegisterLocaleFiles(&localeFiles)
	app.RegisterServices(services.NewLogsService(repo))
	app.RegisterControllers(
		controllers.NewLogsController(app),
	)
	app.RegisterNavItems(NavItems...)
	app.QuickLinks().Add(
		spotlight.NewQuickLink(LogsLink.Icon, LogsLink.Name, LogsLink.Href).
			RequireAuthz(LogsLink.AuthzObject, LogsLink.AuthzAction),
	)
	handlers.RegisterEventHandlers(app)
	return nil
}

func (m *Module) Name() string {
	return "logging"
}
