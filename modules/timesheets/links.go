package timesheets

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/ati-intranet/portal/pkg/types"
)

var TimesheetsLink = types.NavigationItem{
	Name: "NavigationLinks.Timesheets",
	Icon: icons.TreeStructure(icons.Props{Size: "20"}),
	Href: "/timesheets",
}

var NavItems = []types.NavigationItem{TimesheetsLink}
