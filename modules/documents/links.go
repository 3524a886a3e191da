package documents

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/ati-intranet/portal/pkg/types"
)

var DocumentsLink = types.NavigationItem{
	Name: "NavigationLinks.Documents",
	Icon: icons.MagnifyingGlass(icons.Props{Size: "20"}),
	Href: "/documents",
}

var NavItems = []types.NavigationItem{DocumentsLink}
