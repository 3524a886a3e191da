package core

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/ati-intranet/portal/pkg/types"
)

var HomeLink = types.NavigationItem{
	Name:     "NavigationLinks.Home",
	Icon:     icons.Gauge(icons.Props{Size: "20"}),
	Href:     "/",
	Children: nil,
}

var NavItems = []types.NavigationItem{
	HomeLink,
}
