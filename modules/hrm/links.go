package hrm

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/ati-intranet/portal/pkg/authz"
	"github.com/ati-intranet/portal/pkg/types"
)

var EmployeesLink = types.NavigationItem{
	Name:        "NavigationLinks.Employees",
	Icon:        icons.UsersThree(icons.Props{Size: "20"}),
	Href:        "/employees",
	AuthzObject: authz.ObjectEmployees,
	AuthzAction: "list",
}

var ProfileLink = types.NavigationItem{
	Name:        "NavigationLinks.MyProfile",
	Icon:        icons.UserCircle(icons.Props{Size: "20"}),
	Href:        "/profile",
	AuthzObject: authz.ObjectEmployees,
	AuthzAction: "view",
}

var NavItems = []types.NavigationItem{
	EmployeesLink,
	ProfileLink,
}
