package types

import (
	"github.com/a-h/templ"
)

type NavigationItem struct {
	Name     string
	Href     string
	Children []NavigationItem
	Icon     templ.Component
	// AuthzObject/AuthzAction gate visibility; an empty object means every signed-in user sees the item.
	AuthzObject string
	AuthzAction string
}

// Active reports whether path is this item's page or one of its sub pages.
func (n NavigationItem) Active(path string) bool {
	if n.Href == "/" {
		return path == "/"
	}
	if len(path) < len(n.Href) || path[:len(n.Href)] != n.Href {
		return false
	}
	return len(path) == len(n.Href) || path[len(n.Href)] == '/'
}
