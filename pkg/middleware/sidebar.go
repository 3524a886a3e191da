package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/constants"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/types"
)

func filterItems(ctx context.Context, items []types.NavigationItem) []types.NavigationItem {
	filteredItems := make([]types.NavigationItem, 0, len(items))
	for _, item := range items {
		if hasNavigationAccess(ctx, item) {
			filteredItems = append(filteredItems, types.NavigationItem{
				Name:        item.Name,
				Href:        item.Href,
				Children:    filterItems(ctx, item.Children),
				Icon:        item.Icon,
				AuthzObject: item.AuthzObject,
				AuthzAction: item.AuthzAction,
			})
		}
	}
	return filteredItems
}

// getEnabledNavItems drops groups left without children and collapses
// single-child groups into the child itself.
func getEnabledNavItems(items []types.NavigationItem) []types.NavigationItem {
	var out []types.NavigationItem
	for _, item := range items {
		if len(item.Children) == 0 {
			out = append(out, item)
			continue
		}
		children := getEnabledNavItems(item.Children)
		switch len(children) {
		case 0:
			if item.Href != "" {
				item.Children = nil
				out = append(out, item)
			}
		case 1:
			if item.Href != "" {
				item.Children = children
				out = append(out, item)
			} else {
				out = append(out, children[0])
			}
		default:
			item.Children = children
			out = append(out, item)
		}
	}
	return out
}

func hasNavigationAccess(ctx context.Context, item types.NavigationItem) bool {
	if strings.TrimSpace(item.AuthzObject) == "" {
		return true
	}
	action := item.AuthzAction
	if action == "" {
		action = "view"
	}
	return composables.CanAuthz(ctx, item.AuthzObject, action)
}

// NavItems stores the navigation visible to the signed in role.
func NavItems() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				if _, err := composables.UseProfile(r.Context()); err != nil {
					next.ServeHTTP(w, r)
					return
				}
				app := mustApp(r)
				localizer, ok := intl.UseLocalizer(r.Context())
				if !ok {
					panic(intl.ErrNoLocalizer)
				}

				filtered := filterItems(r.Context(), app.NavItems(localizer))
				ctx := context.WithValue(r.Context(), constants.AllNavItemsKey, filtered)
				ctx = context.WithValue(ctx, constants.NavItemsKey, getEnabledNavItems(filtered))
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}
