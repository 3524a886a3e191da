package controllers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/modules/jobs/presentation/controllers/dtos"
	"github.com/ati-intranet/portal/modules/jobs/presentation/templates/pages"
	"github.com/ati-intranet/portal/modules/jobs/services"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/middleware"
	"github.com/ati-intranet/portal/pkg/shared"
	"github.com/ati-intranet/portal/pkg/types"
)

type JobController struct {
	app        application.Application
	jobService *services.JobService
	basePath   string
}

func NewJobController(app application.Application) application.Controller {
	return &JobController{
		app:        app,
		jobService: app.Service(services.JobService{}).(*services.JobService),
		basePath:   "/jobs",
	}
}

func (c *JobController) Key() string {
	return c.basePath
}

func (c *JobController) Register(r *mux.Router) {
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
	router.HandleFunc("/refer", c.GetRefer).Methods(http.MethodGet)
	router.HandleFunc("/refer", c.Refer).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
}

func (c *JobController) List(w http.ResponseWriter, r *http.Request) {
	openings, err := c.jobService.Openings(r.Context())
	if err != nil {
		middleware.UpstreamError(w, r, err, "")
		return
	}
	templ.Handler(pages.Index(&pages.IndexProps{Openings: openings}), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *JobController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	opening, err := c.jobService.GetByID(r.Context(), id)
	if err != nil {
		middleware.UpstreamError(w, r, err, intl.T(r.Context(), "Jobs.NotFound"))
		return
	}
	if opening.ID.IsZero() {
		opening.ID = id
	}
	props := &pages.ShowProps{
		Opening:   opening,
		ShowRefer: r.URL.Query().Get("refer") != "",
		Form:      &dtos.ReferralDTO{JobOpeningID: opening.ID},
		Errors:    map[string]string{},
	}
	templ.Handler(pages.Show(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *JobController) referPage(w http.ResponseWriter, r *http.Request, status int, props *pages.ReferProps) {
	openings, err := c.jobService.Openings(r.Context())
	if err != nil {
		middleware.UpstreamError(w, r, err, "")
		return
	}
	props.Openings = openings
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templ.Handler(pages.Refer(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *JobController) GetRefer(w http.ResponseWriter, r *http.Request) {
	form := &dtos.ReferralDTO{}
	if v, err := types.ParseID(r.URL.Query().Get("opening")); err == nil {
		form.JobOpeningID = v
	}
	c.referPage(w, r, http.StatusOK, &pages.ReferProps{Form: form, Errors: map[string]string{}})
}

func (c *JobController) Refer(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseForm(&dtos.ReferralDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		c.referPage(w, r, http.StatusUnprocessableEntity, &pages.ReferProps{Form: dto, Errors: errorsMap})
		return
	}
	detail := c.basePath + "/" + dto.JobOpeningID.PathSegment()
	if err := c.jobService.Refer(r.Context(), dto.ToEntity()); err != nil {
		if middleware.IsUnauthorized(err) {
			middleware.UpstreamError(w, r, err, "")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).WithField("job_opening_id", dto.JobOpeningID).Warn("submit referral failed")
		shared.FlashError(w, intl.T(r.Context(), "Jobs.Errors.ReferFailed"))
		shared.Redirect(w, r, detail+"?refer=1")
		return
	}
	shared.FlashSuccess(w, intl.T(r.Context(), "Jobs.Referred"))
	shared.Redirect(w, r, detail)
}
