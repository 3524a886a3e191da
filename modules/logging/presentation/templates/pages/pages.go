package pages

import (
	"embed"
	"fmt"
	"net/url"

	"github.com/a-h/templ"

	"github.com/ati-intranet/portal/components/layout"
	"github.com/ati-intranet/portal/modules/logging/domain/entities/actionlog"
)

//go:embed *.html
var FS embed.FS

var renderer = layout.MustRenderer(FS, "*.html")

type IndexProps struct {
	Logs    []*actionlog.ActionLog
	Total   int64
	Actor   string
	Action  actionlog.Action
	Actions []actionlog.Action
	Page    int
	HasPrev bool
	HasNext bool
}

// PageURL links to page n keeping the current filters.
func (p *IndexProps) PageURL(n int) string {
	q := url.Values{}
	if p.Actor != "" {
		q.Set("actor", p.Actor)
	}
	if p.Action != "" {
		q.Set("action", string(p.Action))
	}
	q.Set("page", fmt.Sprint(n))
	return "/logs?" + q.Encode()
}

func Index(props *IndexProps) templ.Component {
	return renderer.Page("index", "Logs.Title", props)
}
