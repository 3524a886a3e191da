package layout

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/ati-intranet/portal/modules/core/domain/entities/profile"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/constants"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/types"
)

var pagesFS = fstest.MapFS{
	"pages/greeting.html": {Data: []byte(`{{define "content"}}<h1 id="greeting">Hello {{.Props.Name}}</h1><p id="joined">{{date .Props.Joined}}</p>{{end}}
{{define "row"}}<li class="row">{{.Props.Name}}</li>{{end}}`)},
}

func TestRenderer_PageWithShell(t *testing.T) {
	r, err := NewRenderer(pagesFS, "pages/*.html")
	require.NoError(t, err)

	ctx := composables.WithProfile(context.Background(), &profile.Profile{Username: "ann", Role: "HR"})
	ctx = context.WithValue(ctx, constants.NavItemsKey, []types.NavigationItem{
		{Name: "Home", Href: "/"},
		{Name: "Leave", Href: "/leave"},
	})
	ctx = composables.WithParams(ctx, &composables.Params{Request: httptest.NewRequest("GET", "/leave/approvals", nil)})
	ctx = context.WithValue(ctx, constants.FlashKey, &Flash{Kind: "success", Message: "Saved"})

	var buf bytes.Buffer
	require.NoError(t, r.Page("greeting", "", map[string]string{"Name": "Ann", "Joined": "2024-03-01"}).Render(ctx, &buf))

	d, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Hello Ann", d.Find("#greeting").Text())
	assert.Equal(t, "3/1/2024", d.Find("#joined").Text())
	assert.Equal(t, "A", d.Find("aside .rounded-full").First().Text())
	assert.Contains(t, d.Find("[role=alert]").Text(), "Saved")
	assert.True(t, d.Find(`a[href="/leave"]`).HasClass("active"))
	assert.False(t, d.Find(`a[href="/"]`).HasClass("active"))
	assert.Equal(t, 1, d.Find(`form[action="/logout"]`).Length())
}

func TestRenderer_PublicAndPartial(t *testing.T) {
	r := MustRenderer(pagesFS, "pages/*.html")

	var buf bytes.Buffer
	require.NoError(t, r.Public("greeting", "", map[string]string{"Name": "Bo", "Joined": ""}).Render(context.Background(), &buf))
	d, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Find("aside").Length())
	assert.Equal(t, "N/A", d.Find("#joined").Text())

	buf.Reset()
	require.NoError(t, r.Partial("greeting", "row", map[string]string{"Name": "Cy"}).Render(context.Background(), &buf))
	assert.Equal(t, `<li class="row">Cy</li>`, buf.String())
}

func TestView_T(t *testing.T) {
	bundle := i18n.NewBundle(language.English)
	bundle.MustAddMessages(language.English, &i18n.Message{ID: "Greeting", Other: "Hi {{.Name}}"})
	ctx := intl.WithLocalizer(context.Background(), i18n.NewLocalizer(bundle, "en"))
	v := newView(ctx, "", nil)

	assert.Equal(t, "Hi Ann", v.T("Greeting", map[string]any{"Name": "Ann"}))
	assert.Equal(t, "Hi Bo", v.T("Greeting", "Name", "Bo"))
	assert.Equal(t, "Missing", v.T("Missing"))
}

func TestRenderer_UnknownPagePanics(t *testing.T) {
	r := MustRenderer(pagesFS, "pages/*.html")
	assert.Panics(t, func() { r.Page("missing", "", nil) })
}

func TestRenderer_SharedPartials(t *testing.T) {
	fsys := fstest.MapFS{
		"a.html":        {Data: []byte(`{{define "content"}}<div id="a">{{template "badge" .Props}}</div>{{end}}`)},
		"b.html":        {Data: []byte(`{{define "content"}}<div id="b">{{template "badge" .Props}}</div>{{end}}`)},
		"_partial.html": {Data: []byte(`{{define "badge"}}<span>{{.}}</span>{{end}}`)},
	}
	r := MustRenderer(fsys, "*.html")
	assert.Panics(t, func() { r.Partial("_partial", "badge", "x") })

	var buf bytes.Buffer
	require.NoError(t, r.Partial("b", "content", "new").Render(context.Background(), &buf))
	assert.Equal(t, `<div id="b"><span>new</span></div>`, buf.String())
}

func TestErrorPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ErrorPage(ErrorProps{Status: 404, Heading: "Employee not found"}).Render(context.Background(), &buf))
	d, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Employee not found", d.Find("h1").Text())
	assert.Equal(t, "/", d.Find("section a").AttrOr("href", ""))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "3/1/2024", FormatDate("2024-03-01"))
	assert.Equal(t, "12/25/2023", FormatDate("2023-12-25T00:00:00.000Z"))
	assert.Equal(t, "N/A", FormatDate(""))
	assert.Equal(t, "N/A", FormatDate("soon"))
	assert.Equal(t, "2024-03-01", InputDate("2024-03-01T10:00:00Z"))
}

func TestCls(t *testing.T) {
	merged := strings.Fields(cls("px-2 bg-red-500", false, "px-4"))
	assert.ElementsMatch(t, []string{"bg-red-500", "px-4"}, merged)
	assert.NotContains(t, merged, "px-2")
}

func TestOrNA(t *testing.T) {
	assert.Equal(t, "N/A", orNA(""))
	assert.Equal(t, "N/A", orNA(nil))
	assert.Equal(t, "HR", orNA("HR"))
}

func TestAuthenticated_RendersChildren(t *testing.T) {
	v := &View{
		Title:   "Leave",
		Locale:  "zh",
		Profile: &profile.Profile{Username: "bo", Role: "Staff"},
		Flash:   &Flash{Kind: "error", Message: "Denied"},
		Nav: []NavLink{{
			Name:     "Leave",
			Href:     "/leave",
			Icon:     iconComponent("list", ""),
			Active:   true,
			Children: []NavLink{{Name: "Approvals", Href: "/leave/approvals"}},
		}},
	}
	body := templ.Raw(`<h1 id="body">Body</h1>`)

	var buf bytes.Buffer
	require.NoError(t, Authenticated(v).Render(templ.WithChildren(context.Background(), body), &buf))

	d, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "zh", d.Find("html").AttrOr("lang", ""))
	assert.Contains(t, d.Find("title").Text(), "Leave ·")
	assert.Equal(t, "Body", d.Find("main #body").Text())
	alert := d.Find("[role=alert]")
	assert.True(t, alert.HasClass("bg-red-50"))
	assert.False(t, alert.HasClass("bg-green-50"))
	assert.True(t, d.Find(`aside a[href="/leave"]`).HasClass("active"))
	assert.Equal(t, 1, d.Find(`aside a[href="/leave"] svg`).Length())
	assert.Equal(t, "Approvals", d.Find(`aside a[href="/leave/approvals"]`).Text())
	assert.Equal(t, "B", d.Find("aside .rounded-full").Text())
}

func TestBare_NoSidebarOrFlash(t *testing.T) {
	var buf bytes.Buffer
	ctx := templ.WithChildren(context.Background(), templ.Raw(`<form id="login"></form>`))
	require.NoError(t, Bare(&View{Locale: "en"}).Render(ctx, &buf))

	d, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Find("aside").Length())
	assert.Equal(t, 0, d.Find("[role=alert]").Length())
	assert.Equal(t, 1, d.Find("main #login").Length())
}

func TestErrorPage_SignedInUsesSidebar(t *testing.T) {
	ctx := composables.WithProfile(context.Background(), &profile.Profile{Username: "ann", Role: "HR"})

	var buf bytes.Buffer
	require.NoError(t, ErrorPage(ErrorProps{Status: 403, Heading: "Forbidden", Message: "No access", BackURL: "/leave"}).Render(ctx, &buf))
	d, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Find("aside").Length())
	assert.Equal(t, "Forbidden", d.Find("main h1").Text())
	assert.Equal(t, "No access", d.Find("main section p").Text())
	assert.Equal(t, "/leave", d.Find("main section a").AttrOr("href", ""))
	assert.Equal(t, 1, d.Find("main section svg").Length())
}

func TestErrorPage_UnsafeBackURL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ErrorPage(ErrorProps{Heading: "Oops", BackURL: "javascript:alert(1)"}).Render(context.Background(), &buf))
	d, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, string(templ.FailedSanitizationURL), d.Find("section a").AttrOr("href", ""))
}
