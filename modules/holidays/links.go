package holidays

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/ati-intranet/portal/pkg/types"
)

var HolidaysLink = types.NavigationItem{
	Name: "NavigationLinks.Holidays",
	Icon: icons.Users(icons.Props{Size: "20"}),
	Href: "/holidays",
}

var NavItems = []types.NavigationItem{HolidaysLink}
