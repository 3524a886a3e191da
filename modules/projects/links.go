package projects

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/ati-intranet/portal/pkg/types"
)

var ProjectsLink = types.NavigationItem{
	Name: "NavigationLinks.Projects",
	Icon: icons.PuzzlePiece(icons.Props{Size: "20"}),
	Href: "/projects",
}

var NavItems = []types.NavigationItem{ProjectsLink}
