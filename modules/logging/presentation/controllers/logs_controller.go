package controllers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/components/layout"
	"github.com/ati-intranet/portal/modules/logging/domain/entities/actionlog"
	"github.com/ati-intranet/portal/modules/logging/presentation/templates/pages"
	"github.com/ati-intranet/portal/modules/logging/services"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/authz"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/middleware"
)

const pageSize = 25

type LogsController struct {
	app         application.Application
	logsService *services.LogsService
	basePath    string
}

func NewLogsController(app application.Application) application.Controller {
	return &LogsController{
		app:         app,
		logsService: app.Service(services.LogsService{}).(*services.LogsService),
		basePath:    "/logs",
	}
}

func (c *LogsController) Key() string {
	return c.basePath
}

func (c *LogsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(
		middleware.Authorize(),
		middleware.RedirectNotAuthenticated(),
		middleware.ProvideLocalizer(c.app),
		middleware.ProvideProfile(),
		middleware.ProvideFlash(),
		middleware.NavItems(),
		middleware.WithPageContext(),
	)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
}

func filtersFromQuery(q url.Values) (*actionlog.FindParams, int) {
	params := &actionlog.FindParams{
		Actor: strings.TrimSpace(q.Get("actor")),
		Limit: pageSize,
	}
	if a := actionlog.Action(q.Get("action")); a.Valid() {
		params.Action = a
	}
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	params.Offset = (page - 1) * pageSize
	return params, page
}

func (c *LogsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !composables.CanAuthz(ctx, authz.ObjectLogs, "view") {
		middleware.Forbidden(w, r)
		return
	}
	params, page := filtersFromQuery(r.URL.Query())
	logs, total, err := c.logsService.List(ctx, params)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Error("failed to list action logs")
		middleware.RenderError(w, r, layout.ErrorProps{
			Status:  http.StatusInternalServerError,
			Heading: intl.T(ctx, "Errors.Internal"),
			BackURL: "/",
		})
		return
	}
	props := &pages.IndexProps{
		Logs:    logs,
		Total:   total,
		Actor:   params.Actor,
		Action:  params.Action,
		Actions: actionlog.Actions,
		Page:    page,
		HasPrev: page > 1,
		HasNext: int64(params.Offset+len(logs)) < total,
	}
	templ.Handler(pages.Index(props), templ.WithStreaming()).ServeHTTP(w, r)
}
