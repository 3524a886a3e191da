package spotlight

import (
	"context"
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/intl"
)

// Item represents a renderable spotlight entry.
type Item interface {
	templ.Component
}

var linkItemTmpl = template.Must(template.New("item").Parse(
	`<li><a href="{{.Link}}" class="flex items-center gap-3 px-3 py-2 rounded-md hover:bg-gray-100">{{.Icon}}<span>{{.Label}}</span></a></li>`,
))

func renderLink(ctx context.Context, w io.Writer, label, link string, icon templ.Component) error {
	var iconHTML template.HTML
	if icon != nil {
		h, err := templ.ToGoHTML(ctx, icon)
		if err != nil {
			return err
		}
		iconHTML = h
	}
	return linkItemTmpl.Execute(w, struct {
		Label string
		Link  string
		Icon  template.HTML
	}{Label: label, Link: link, Icon: iconHTML})
}

// NewItem creates a simple Item with a static label and link.
func NewItem(icon templ.Component, label, link string) Item {
	return &item{label: label, icon: icon, link: link}
}

type item struct {
	label string
	icon  templ.Component
	link  string
}

func (i *item) Render(ctx context.Context, w io.Writer) error {
	return renderLink(ctx, w, i.label, i.link, i.icon)
}

func NewQuickLink(icon templ.Component, trKey, link string) *QuickLink {
	return &QuickLink{trKey: trKey, icon: icon, link: link}
}

type QuickLink struct {
	trKey       string
	icon        templ.Component
	link        string
	authzObject string
	authzAction string
}

func (i *QuickLink) Render(ctx context.Context, w io.Writer) error {
	return renderLink(ctx, w, intl.T(ctx, i.trKey), i.link, i.icon)
}

func (i *QuickLink) Link() string {
	return i.link
}

// RequireAuthz sets the authz object/action that governs the quick link visibility.
func (i *QuickLink) RequireAuthz(object, action string) *QuickLink {
	i.authzObject = object
	i.authzAction = action
	return i
}

type QuickLinks struct {
	items []*QuickLink
}

func (ql *QuickLinks) Find(ctx context.Context, q string) []Item {
	links := ql.authorizedLinks(ctx)
	if len(links) == 0 {
		return nil
	}
	words := make([]string, len(links))
	for i, it := range links {
		words[i] = intl.T(ctx, it.trKey)
	}
	ranks := fuzzy.RankFindNormalizedFold(strings.TrimSpace(q), words)
	sort.Sort(ranks)

	result := make([]Item, 0, len(ranks))
	for _, rank := range ranks {
		result = append(result, links[rank.OriginalIndex])
	}
	return result
}

func (ql *QuickLinks) Add(links ...*QuickLink) {
	ql.items = append(ql.items, links...)
}

func (ql *QuickLinks) authorizedLinks(ctx context.Context) []*QuickLink {
	if _, err := composables.UseProfile(ctx); err != nil {
		return nil
	}
	filtered := make([]*QuickLink, 0, len(ql.items))
	for _, link := range ql.items {
		if link.authzObject == "" || composables.CanAuthz(ctx, link.authzObject, link.action()) {
			filtered = append(filtered, link)
		}
	}
	return filtered
}

func (i *QuickLink) action() string {
	if i.authzAction == "" {
		return "view"
	}
	return i.authzAction
}
