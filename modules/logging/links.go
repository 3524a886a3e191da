package logging

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/ati-intranet/portal/pkg/authz"
	"github.com/ati-intranet/portal/pkg/types"
)

var LogsLink = types.NavigationItem{
	Name:        "NavigationLinks.Logs",
	Icon:        icons.List(icons.Props{Size: "20"}),
	Href:        "/logs",
	AuthzObject: authz.ObjectLogs,
	AuthzAction: "view",
}

var NavItems = []types.NavigationItem{
	LogsLink,
}
