package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/modules/timesheets/domain/entities/timesheet"
	"github.com/ati-intranet/portal/modules/timesheets/presentation/controllers/dtos"
	"github.com/ati-intranet/portal/modules/timesheets/presentation/templates/pages"
	"github.com/ati-intranet/portal/modules/timesheets/services"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/authz"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/constants"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/middleware"
	"github.com/ati-intranet/portal/pkg/shared"
	"github.com/ati-intranet/portal/pkg/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TimesheetController struct {
	app              application.Application
	timesheetService *services.TimesheetService
	basePath         string
	now              func() time.Time
}

func NewTimesheetController(app application.Application) application.Controller {
	return &TimesheetController{
		app:              app,
		timesheetService: app.Service(services.TimesheetService{}).(*services.TimesheetService),
		basePath:         "/timesheets",
		now:              time.Now,
	}
}

func (c *TimesheetController) Key() string {
	return c.basePath
}

func (c *TimesheetController) Register(r *mux.Router) {
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
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/new", c.GetNew).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.GetShow).Methods(http.MethodGet)
	router.HandleFunc("/{id}/submit", c.Submit).Methods(http.MethodPost)
	router.HandleFunc("/{id}/approve", c.Approve).Methods(http.MethodPost)
	router.HandleFunc("/{id}/export.xlsx", c.Export).Methods(http.MethodGet)
}

func (c *TimesheetController) List(w http.ResponseWriter, r *http.Request) {
	list, err := c.timesheetService.GetAll(r.Context())
	if err != nil {
		middleware.UpstreamError(w, r, err, "")
		return
	}
	templ.Handler(pages.Index(&pages.IndexProps{Timesheets: list}), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *TimesheetController) newProps(ctx context.Context, dto *dtos.CreateTimesheetDTO) (*pages.NewProps, error) {
	projects, err := c.timesheetService.Projects(ctx)
	if err != nil {
		return nil, err
	}
	start := dto.Start()
	if start.IsZero() {
		start = timesheet.WeekStart(c.now())
	}
	dates := make([]string, timesheet.DaysPerWeek)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i).Format("1/2")
	}
	return &pages.NewProps{
		Form:     dto,
		Grid:     dto.Grid(),
		Projects: projects,
		Days:     pages.DayNames,
		DayDates: dates,
		Errors:   map[string]string{},
	}, nil
}

// GetNew also serves the add/remove row buttons, which resubmit the grid
// here with a new rows count.
func (c *TimesheetController) GetNew(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseForm(&dtos.CreateTimesheetDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.WeekStart == "" {
		dto.WeekStart = timesheet.WeekStart(c.now()).Format(constants.DateLayout)
	}
	rows := len(dto.Rows)
	if n, err := strconv.Atoi(r.URL.Query().Get("rows")); err == nil {
		rows = n
	}
	dto.Resize(rows)
	props, err := c.newProps(r.Context(), dto)
	if err != nil {
		middleware.UpstreamError(w, r, err, "")
		return
	}
	templ.Handler(pages.New(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *TimesheetController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dto, err := composables.UseForm(&dtos.CreateTimesheetDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.Resize(len(dto.Rows))
	if errorsMap, ok := dto.Ok(ctx); !ok {
		props, err := c.newProps(ctx, dto)
		if err != nil {
			middleware.UpstreamError(w, r, err, "")
			return
		}
		props.Errors = errorsMap
		w.WriteHeader(http.StatusUnprocessableEntity)
		templ.Handler(pages.New(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	created, err := c.timesheetService.Create(ctx, dto.Start(), dto.Grid())
	if err != nil {
		if middleware.IsUnauthorized(err) {
			middleware.UpstreamError(w, r, err, "")
			return
		}
		logger := composables.UseLogger(ctx).WithError(err)
		if !created.ID.IsZero() {
			logger.WithField("timesheet_id", created.ID).Warn("timesheet entries failed")
			shared.FlashError(w, intl.T(ctx, "Timesheets.Errors.EntriesFailed"))
			shared.Redirect(w, r, c.basePath+"/"+created.ID.PathSegment())
			return
		}
		logger.Warn("create timesheet failed")
		props, perr := c.newProps(ctx, dto)
		if perr != nil {
			middleware.UpstreamError(w, r, perr, "")
			return
		}
		props.Error = apiclient.Message(err, intl.T(ctx, "Timesheets.Errors.CreateFailed"))
		w.WriteHeader(http.StatusBadGateway)
		templ.Handler(pages.New(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	shared.FlashSuccess(w, intl.T(ctx, "Timesheets.Created"))
	shared.Redirect(w, r, c.basePath)
}

func (c *TimesheetController) load(w http.ResponseWriter, r *http.Request) (timesheet.Timesheet, bool) {
	id, err := shared.ParseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return timesheet.Timesheet{}, false
	}
	ts, err := c.timesheetService.GetByID(r.Context(), id)
	if err != nil {
		middleware.UpstreamError(w, r, err, intl.T(r.Context(), "Timesheets.NotFound"))
		return timesheet.Timesheet{}, false
	}
	if ts.ID.IsZero() {
		ts.ID = id
	}
	return ts, true
}

// projectNames is best effort: entries fall back to their project id.
func (c *TimesheetController) projectNames(ctx context.Context) map[types.ID]string {
	out := map[types.ID]string{}
	projects, err := c.timesheetService.Projects(ctx)
	if err != nil {
		if logger, lerr := composables.TryUseLogger(ctx); lerr == nil {
			logger.WithError(err).Debug("timesheet project names unavailable")
		}
		return out
	}
	for _, p := range projects {
		out[p.ID] = p.Name
	}
	return out
}

func (c *TimesheetController) GetShow(w http.ResponseWriter, r *http.Request) {
	ts, ok := c.load(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	props := &pages.ShowProps{
		Timesheet:  ts,
		Groups:     timesheet.GroupByDate(ts.Entries),
		Total:      timesheet.TotalHours(ts.Entries),
		CanSubmit:  ts.IsDraft(),
		CanApprove: ts.IsSubmitted() && composables.CanAuthz(ctx, authz.ObjectTimesheets, "approve"),
		Projects:   c.projectNames(ctx),
	}
	templ.Handler(pages.Show(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *TimesheetController) Submit(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.timesheetService.Submit, "Timesheets.SubmittedFlash", "Timesheets.Errors.SubmitFailed")
}

func (c *TimesheetController) Approve(w http.ResponseWriter, r *http.Request) {
	if !composables.CanAuthz(r.Context(), authz.ObjectTimesheets, "approve") {
		middleware.Forbidden(w, r)
		return
	}
	c.transition(w, r, c.timesheetService.Approve, "Timesheets.ApprovedFlash", "Timesheets.Errors.ApproveFailed")
}

func (c *TimesheetController) transition(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context, id types.ID) error,
	successKey, failureKey string,
) {
	ctx := r.Context()
	id, err := shared.ParseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	back := c.basePath + "/" + id.PathSegment()
	if err := action(ctx, id); err != nil {
		if middleware.IsUnauthorized(err) {
			middleware.UpstreamError(w, r, err, "")
			return
		}
		composables.UseLogger(ctx).WithError(err).WithField("timesheet_id", id).Warn("timesheet transition failed")
		shared.FlashError(w, apiclient.Message(err, intl.T(ctx, failureKey)))
		shared.Redirect(w, r, back)
		return
	}
	shared.FlashSuccess(w, intl.T(ctx, successKey))
	shared.Redirect(w, r, back)
}

func (c *TimesheetController) Export(w http.ResponseWriter, r *http.Request) {
	ts, ok := c.load(w, r)
	if !ok {
		return
	}
	data, err := services.Export(ts, c.projectNames(r.Context()))
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("timesheet export failed")
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ExportFilename(ts)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
