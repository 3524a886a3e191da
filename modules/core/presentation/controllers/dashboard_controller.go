package controllers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/modules/core/presentation/templates/pages"
	"github.com/ati-intranet/portal/modules/core/services"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/middleware"
)

var homeCards = []pages.QuickCard{
	{Icon: "user-circle", TitleKey: "Home.Cards.Profile", SubtitleKey: "Home.Cards.ProfileHint", Href: "/profile"},
	{Icon: "buildings", TitleKey: "Home.Cards.Leave", SubtitleKey: "Home.Cards.LeaveHint", Href: "/leave"},
	{Icon: "list", TitleKey: "Home.Cards.Timesheets", SubtitleKey: "Home.Cards.TimesheetsHint", Href: "/timesheets"},
	{Icon: "users", TitleKey: "Home.Cards.Jobs", SubtitleKey: "Home.Cards.JobsHint", Href: "/jobs"},
}

func NewDashboardController(app application.Application) application.Controller {
	return &DashboardController{
		app:                 app,
		announcementService: app.Service(services.AnnouncementService{}).(*services.AnnouncementService),
	}
}

type DashboardController struct {
	app                 application.Application
	announcementService *services.AnnouncementService
}

func (c *DashboardController) Key() string {
	return "/"
}

func (c *DashboardController) Register(r *mux.Router) {
	router := r.PathPrefix("/").Subrouter()
	router.Use(
		middleware.Authorize(),
		middleware.RedirectNotAuthenticated(),
		middleware.ProvideLocalizer(c.app),
		middleware.ProvideProfile(),
		middleware.ProvideFlash(),
		middleware.NavItems(),
		middleware.WithPageContext(),
	)
	router.HandleFunc("/", c.Get).Methods(http.MethodGet)
}

func (c *DashboardController) Get(w http.ResponseWriter, r *http.Request) {
	items, err := c.announcementService.Latest(r.Context())
	if err != nil {
		if middleware.IsUnauthorized(err) {
			middleware.UpstreamError(w, r, err, "")
			return
		}
		// The feed is decorative; the page still renders without it.
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to load announcements")
	}
	p, _ := composables.UseProfile(r.Context())
	props := &pages.HomeProps{
		Cards:         homeCards,
		Announcements: items,
	}
	if p != nil {
		props.Username = p.Username
	}
	templ.Handler(pages.Home(props), templ.WithStreaming()).ServeHTTP(w, r)
}
