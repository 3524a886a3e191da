package layout

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/a-h/templ"

	"github.com/ati-intranet/portal/modules/core/domain/entities/profile"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/constants"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/types"
)

// Flash is a one-shot notice carried across a redirect.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (f *Flash) IsError() bool {
	return f != nil && f.Kind == "error"
}

// NavLink is a navigation item resolved against the current path.
type NavLink struct {
	Name     string
	Href     string
	Icon     templ.Component
	Active   bool
	Children []NavLink
}

// View is the data every page template executes against. Page specific data
// lives in Props.
type View struct {
	ctx     context.Context
	Title   string
	Props   any
	Nav     []NavLink
	Profile *profile.Profile
	Flash   *Flash
	Path    string
	Locale  string
}

// T translates key. Template data is either a single map built with dict or
// a flat list of key/value pairs.
func (v *View) T(key string, pairs ...any) string {
	if len(pairs) == 0 {
		return intl.T(v.ctx, key)
	}
	if len(pairs) == 1 {
		if m, ok := pairs[0].(map[string]any); ok {
			return intl.T(v.ctx, key, m)
		}
	}
	data := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		data[fmt.Sprint(pairs[i])] = pairs[i+1]
	}
	return intl.T(v.ctx, key, data)
}

// Can reports whether the signed in user holds object/action.
func (v *View) Can(object, action string) bool {
	return composables.CanAuthz(v.ctx, object, action)
}

func newView(ctx context.Context, titleKey string, props any) *View {
	v := &View{ctx: ctx, Props: props, Locale: "en"}
	if titleKey != "" {
		v.Title = intl.T(ctx, titleKey)
	}
	if tag, ok := intl.UseLocale(ctx); ok {
		v.Locale = tag.String()
	}
	if p, err := composables.UseProfile(ctx); err == nil {
		v.Profile = p
	}
	if f, ok := ctx.Value(constants.FlashKey).(*Flash); ok {
		v.Flash = f
	}
	if params, ok := composables.UseParams(ctx); ok && params.Request != nil {
		v.Path = params.Request.URL.Path
	}
	if items, ok := ctx.Value(constants.NavItemsKey).([]types.NavigationItem); ok {
		v.Nav = navLinks(ctx, items, v.Path)
	}
	return v
}

func navLinks(ctx context.Context, items []types.NavigationItem, current string) []NavLink {
	out := make([]NavLink, 0, len(items))
	for _, it := range items {
		out = append(out, NavLink{
			Name:     it.Name,
			Href:     it.Href,
			Icon:     it.Icon,
			Active:   it.Active(current),
			Children: navLinks(ctx, it.Children, current),
		})
	}
	return out
}

// Renderer owns the parsed page templates of one module. Each page file
// defines a "content" block that Page and Public place inside a shell.
type Renderer struct {
	pages map[string]*template.Template
}

var base = template.Must(template.New("base").Funcs(funcMap()).Parse(`{{define "content"}}{{end}}`))

// NewRenderer parses every file matching patterns in fsys as a page, keyed by
// its base name without extension. Files whose name starts with "_" are not
// pages; their blocks are shared by every page of the renderer.
func NewRenderer(fsys fs.FS, patterns ...string) (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	var partials, pages []string
	for _, pattern := range patterns {
		files, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			if strings.HasPrefix(path.Base(file), "_") {
				partials = append(partials, file)
			} else {
				pages = append(pages, file)
			}
		}
	}
	for _, file := range pages {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(fsys, append([]string{file}, partials...)...); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[strings.TrimSuffix(path.Base(file), path.Ext(file))] = t
	}
	return r, nil
}

func MustRenderer(fsys fs.FS, patterns ...string) *Renderer {
	r, err := NewRenderer(fsys, patterns...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) lookup(page, name string) *template.Template {
	t, ok := r.pages[page]
	if !ok {
		panic(fmt.Sprintf("layout: page %q not registered", page))
	}
	tt := t.Lookup(name)
	if tt == nil {
		panic(fmt.Sprintf("layout: template %q not defined by page %q", name, page))
	}
	return tt
}

// Page renders page inside the authenticated shell (sidebar, user badge).
func (r *Renderer) Page(page, titleKey string, props any) templ.Component {
	return r.shell(page, titleKey, props, Authenticated)
}

// Public renders page inside the bare shell used before sign in.
func (r *Renderer) Public(page, titleKey string, props any) templ.Component {
	return r.shell(page, titleKey, props, Bare)
}

// Partial renders a single block of page without any shell, for htmx swaps.
func (r *Renderer) Partial(page, block string, props any) templ.Component {
	t := r.lookup(page, block)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return templ.FromGoHTML(t, newView(ctx, "", props)).Render(ctx, w)
	})
}

func (r *Renderer) shell(page, titleKey string, props any, frame func(*View) templ.Component) templ.Component {
	t := r.lookup(page, "content")
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		v := newView(ctx, titleKey, props)
		body := templ.FromGoHTML(t, v)
		return frame(v).Render(templ.WithChildren(ctx, body), w)
	})
}

// ErrorProps drive the shared error page.
type ErrorProps struct {
	Status  int
	Heading string
	Message string
	BackURL string
}

// ErrorPage renders a full error page. The sidebar shell is used when a
// profile is bound to ctx, the public shell otherwise.
func ErrorPage(props ErrorProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if props.BackURL == "" {
			props.BackURL = "/"
		}
		v := newView(ctx, "", props)
		frame := Bare
		if v.Profile != nil {
			frame = Authenticated
		}
		return frame(v).Render(templ.WithChildren(ctx, errorContent(v, props)), w)
	})
}
