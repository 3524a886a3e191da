package itf

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	internalserver "github.com/ati-intranet/portal/internal/server"
	"github.com/ati-intranet/portal/modules/core"
	"github.com/ati-intranet/portal/modules/core/domain/entities/profile"
	"github.com/ati-intranet/portal/modules/core/presentation/controllers"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/configuration"
	"github.com/ati-intranet/portal/pkg/eventbus"
	"github.com/ati-intranet/portal/pkg/session"
)

// Suite drives the full portal router against a fake upstream API.
type Suite struct {
	tb       testing.TB
	Upstream *Upstream
	App      application.Application
	handler  http.Handler
	token    string
}

// HTTP builds a portal with the core module plus modules, wired exactly as
// the server does it.
func HTTP(tb testing.TB, modules ...application.Module) *Suite {
	tb.Helper()
	conf := *configuration.Use()
	conf.RateLimit.Enabled = false
	conf.Prometheus.Enabled = false

	up := NewUpstream(tb)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	api, err := apiclient.New(apiclient.Options{
		BaseURL:         up.URL(),
		Timeout:         5 * time.Second,
		RequestIDHeader: conf.RequestIDHeader,
		Logger:          logger,
	})
	if err != nil {
		tb.Fatal(err)
	}
	app := application.New(&application.ApplicationOptions{
		API:      api,
		Sessions: session.NewManager(conf.TokenCookieKey, time.Hour, false),
		Profiles: session.NewMemoryCache(time.Minute),
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
		Bundle:   application.LoadBundle(),
	})
	for _, m := range append([]application.Module{core.NewModule()}, modules...) {
		if err := m.Register(app); err != nil {
			tb.Fatalf("register %s: %v", m.Name(), err)
		}
	}
	app.RegisterControllers(controllers.NewStaticFilesController(app.HashFsAssets()))

	srv, err := internalserver.Default(&internalserver.DefaultOptions{
		Logger:        logger,
		Configuration: &conf,
		Application:   app,
		Entrypoint:    "server",
	})
	if err != nil {
		tb.Fatal(err)
	}
	return &Suite{tb: tb, Upstream: up, App: app, handler: srv.Router()}
}

// AsUser signs the suite in as p: later requests carry a token cookie and
// the fake API answers /auth/profile with p.
func (s *Suite) AsUser(p *profile.Profile) *Suite {
	s.token = fmt.Sprintf("token-%s", p.Username)
	token := s.token
	s.Upstream.Handle(http.MethodGet, "/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		WriteJSON(w, http.StatusOK, p)
	})
	return s
}

// AsRole signs in as a user with role linked to employee id 7.
func (s *Suite) AsRole(role string) *Suite {
	return s.AsUser(&profile.Profile{
		ID:         "1",
		Username:   strings.ToLower(role) + "-user",
		Email:      strings.ToLower(role) + "@ati.test",
		Role:       role,
		EmployeeID: "7",
	})
}

func (s *Suite) Token() string {
	return s.token
}

func (s *Suite) GET(path string) *Request {
	return s.newRequest(http.MethodGet, path)
}

func (s *Suite) POST(path string) *Request {
	return s.newRequest(http.MethodPost, path)
}

func (s *Suite) newRequest(method, path string) *Request {
	return &Request{suite: s, method: method, path: path, header: http.Header{}}
}

type Request struct {
	suite   *Suite
	method  string
	path    string
	form    url.Values
	header  http.Header
	cookies []*http.Cookie
}

func (r *Request) Form(values url.Values) *Request {
	r.form = values
	return r
}

func (r *Request) HTMX() *Request {
	r.header.Set("Hx-Request", "true")
	return r
}

func (r *Request) Header(key, value string) *Request {
	r.header.Set(key, value)
	return r
}

func (r *Request) Cookie(c *http.Cookie) *Request {
	if c != nil {
		r.cookies = append(r.cookies, c)
	}
	return r
}

func (r *Request) Expect(tb testing.TB) *Response {
	tb.Helper()
	var body io.Reader
	if r.form != nil {
		body = strings.NewReader(r.form.Encode())
	}
	req := httptest.NewRequest(r.method, r.path, body)
	if r.form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, vals := range r.header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	if r.suite.token != "" {
		req.AddCookie(&http.Cookie{Name: r.suite.App.Sessions().CookieName, Value: r.suite.token})
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.suite.handler.ServeHTTP(rec, req)
	return &Response{tb: tb, rec: rec}
}

type Response struct {
	tb  testing.TB
	rec *httptest.ResponseRecorder
	doc *goquery.Document
}

func (r *Response) Status(code int) *Response {
	r.tb.Helper()
	if r.rec.Code != code {
		r.tb.Fatalf("expected status %d, got %d\n%s", code, r.rec.Code, r.Body())
	}
	return r
}

// RedirectTo asserts a 302 Location or an Hx-Redirect to location.
func (r *Response) RedirectTo(location string) *Response {
	r.tb.Helper()
	got := r.rec.Header().Get("Location")
	if hx := r.rec.Header().Get("Hx-Redirect"); hx != "" {
		got = hx
	}
	if got != location {
		r.tb.Fatalf("expected redirect to %q, got %q (status %d)", location, got, r.rec.Code)
	}
	return r
}

func (r *Response) Contains(s string) *Response {
	r.tb.Helper()
	if !strings.Contains(r.Body(), s) {
		r.tb.Fatalf("expected body to contain %q\n%s", s, r.Body())
	}
	return r
}

func (r *Response) NotContains(s string) *Response {
	r.tb.Helper()
	if strings.Contains(r.Body(), s) {
		r.tb.Fatalf("expected body not to contain %q", s)
	}
	return r
}

func (r *Response) Body() string {
	return r.rec.Body.String()
}

func (r *Response) Header(name string) string {
	return r.rec.Header().Get(name)
}

func (r *Response) Code() int {
	return r.rec.Code
}

// Cookie returns the cookie named name set by the response, or nil.
func (r *Response) Cookie(name string) *http.Cookie {
	for _, c := range r.rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// HTML parses the body once for goquery assertions.
func (r *Response) HTML() *goquery.Document {
	r.tb.Helper()
	if r.doc == nil {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.Body()))
		if err != nil {
			r.tb.Fatal(err)
		}
		r.doc = doc
	}
	return r.doc
}
