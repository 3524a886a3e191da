package hrm

import (
	"embed"

	"github.com/ati-intranet/portal/modules/hrm/presentation/controllers"
	"github.com/ati-intranet/portal/modules/hrm/services"
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
	employeeService := services.NewEmployeeService(app.API(), app.EventPublisher())
	app.RegisterServices(employeeService)
	app.RegisterControllers(
		controllers.NewEmployeeController(app),
	)
	app.RegisterNavItems(NavItems...)
	app.QuickLinks().Add(
		spotlight.NewQuickLink(EmployeesLink.Icon, EmployeesLink.Name, EmployeesLink.Href).
			RequireAuthz(EmployeesLink.AuthzObject, EmployeesLink.AuthzAction),
		spotlight.NewQuickLink(EmployeesLink.Icon, "Employees.NewTitle", "/employees/new").
			RequireAuthz(EmployeesLink.AuthzObject, "create"),
	)
	app.Spotlight().Register(&employeeDataSource{service: employeeService})
	return nil
}

func (m *Module) Name() string {
	return "hrm"
}
