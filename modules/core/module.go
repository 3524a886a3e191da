package core

import (
	"embed"

	icons "github.com/iota-uz/icons/phosphor"

	"github.com/ati-intranet/portal/internal/assets"
	"github.com/ati-intranet/portal/modules/core/presentation/controllers"
	"github.com/ati-intranet/portal/modules/core/services"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/spotlight"
)

//go:embed presentation/locales/*.toml
var LocaleFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&LocaleFiles)
	app.RegisterServices(
		services.NewAuthService(app.API(), app.Profiles()),
		services.NewAnnouncementService(app.API()),
	)

	app.RegisterControllers(
		controllers.NewHealthController(app),
		controllers.NewLoginController(app),
		controllers.NewSignupController(app),
		controllers.NewLogoutController(app),
		controllers.NewAccountController(app),
		controllers.NewSpotlightController(app),
		controllers.NewDashboardController(app),
	)
	app.RegisterHashFsAssets(assets.HashFS)
	app.RegisterNavItems(NavItems...)
	app.QuickLinks().Add(
		spotlight.NewQuickLink(HomeLink.Icon, HomeLink.Name, HomeLink.Href),
		spotlight.NewQuickLink(icons.UserCircle(icons.Props{Size: "20"}), "Home.Cards.Profile", "/profile"),
	)
	return nil
}

func (m *Module) Name() string {
	return "core"
}
