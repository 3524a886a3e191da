package jobs

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/ati-intranet/portal/pkg/types"
)

var JobsLink = types.NavigationItem{
	Name: "NavigationLinks.Jobs",
	Icon: icons.Buildings(icons.Props{Size: "20"}),
	Href: "/jobs",
}

var NavItems = []types.NavigationItem{JobsLink}
