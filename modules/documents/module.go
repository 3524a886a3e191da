package documents

import (
	"embed"

	"github.com/ati-intranet/portal/modules/documents/presentation/controllers"
	"github.com/ati-intranet/portal/modules/documents/services"
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
	app.RegisterServices(services.NewDocumentService(app.API()))
	app.RegisterControllers(
		controllers.NewDocumentController(app),
	)
	app.RegisterNavItems(NavItems...)
	app.QuickLinks().Add(
		spotlight.NewQuickLink(DocumentsLink.Icon, DocumentsLink.Name, DocumentsLink.Href),
	)
	return nil
}

func (m *Module) Name() string {
	return "documents"
}
