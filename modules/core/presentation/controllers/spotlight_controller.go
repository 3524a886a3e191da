package controllers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/modules/core/presentation/templates/pages"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/middleware"
)

const spotlightLimit = 8

func NewSpotlightController(app application.Application) application.Controller {
	return &SpotlightController{app: app}
}

type SpotlightController struct {
	app application.Application
}

func (c *SpotlightController) Key() string {
	return "/spotlight"
}

func (c *SpotlightController) Register(r *mux.Router) {
	router := r.PathPrefix("/spotlight").Subrouter()
	router.Use(
		middleware.Authorize(),
		middleware.RedirectNotAuthenticated(),
		middleware.ProvideLocalizer(c.app),
		middleware.ProvideProfile(),
	)
	router.HandleFunc("/search", c.Get).Methods(http.MethodGet)
}

func (c *SpotlightController) Get(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if q == "" {
		return
	}
	items := c.app.Spotlight().Find(r.Context(), q)
	if len(items) == 0 {
		if err := pages.SpotlightEmpty().Render(r.Context(), w); err != nil {
			composables.UseLogger(r.Context()).WithError(err).Error("failed to render spotlight")
		}
		return
	}
	if len(items) > spotlightLimit {
		items = items[:spotlightLimit]
	}
	for _, item := range items {
		if err := item.Render(r.Context(), w); err != nil {
			composables.UseLogger(r.Context()).WithError(err).Error("failed to render spotlight item")
			return
		}
	}
}
