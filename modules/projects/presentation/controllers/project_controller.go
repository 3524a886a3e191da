package controllers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/modules/projects/domain/entities/project"
	"github.com/ati-intranet/portal/modules/projects/presentation/controllers/dtos"
	"github.com/ati-intranet/portal/modules/projects/presentation/templates/pages"
	"github.com/ati-intranet/portal/modules/projects/services"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/authz"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/middleware"
	"github.com/ati-intranet/portal/pkg/shared"
)

type ProjectController struct {
	app            application.Application
	projectService *services.ProjectService
	basePath       string
}

func NewProjectController(app application.Application) application.Controller {
	return &ProjectController{
		app:            app,
		projectService: app.Service(services.ProjectService{}).(*services.ProjectService),
		basePath:       "/projects",
	}
}

func (c *ProjectController) Key() string {
	return c.basePath
}

func (c *ProjectController) Register(r *mux.Router) {
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
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPost)
}

func canManage(r *http.Request) bool {
	return composables.CanAuthz(r.Context(), authz.ObjectProjects, "manage")
}

func (c *ProjectController) List(w http.ResponseWriter, r *http.Request) {
	list, err := c.projectService.GetAll(r.Context())
	if err != nil {
		middleware.UpstreamError(w, r, err, "")
		return
	}
	props := &pages.IndexProps{Projects: list, CanManage: canManage(r)}
	templ.Handler(pages.Index(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *ProjectController) GetNew(w http.ResponseWriter, r *http.Request) {
	if !canManage(r) {
		middleware.Forbidden(w, r)
		return
	}
	props := &pages.NewProps{
		Form:     &dtos.CreateProjectDTO{Status: project.CreateStatuses[0]},
		Statuses: project.CreateStatuses,
		Errors:   map[string]string{},
	}
	templ.Handler(pages.New(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *ProjectController) Create(w http.ResponseWriter, r *http.Request) {
	if !canManage(r) {
		middleware.Forbidden(w, r)
		return
	}
	dto, err := composables.UseForm(&dtos.CreateProjectDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	props := &pages.NewProps{Form: dto, Statuses: project.CreateStatuses, Errors: map[string]string{}}
	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		props.Errors = errorsMap
		w.WriteHeader(http.StatusUnprocessableEntity)
		templ.Handler(pages.New(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	if _, err := c.projectService.Create(r.Context(), dto.ToEntity()); err != nil {
		if middleware.IsUnauthorized(err) {
			middleware.UpstreamError(w, r, err, "")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Warn("create project failed")
		props.Error = apiclient.Message(err, intl.T(r.Context(), "Projects.Errors.CreateFailed"))
		w.WriteHeader(http.StatusBadGateway)
		templ.Handler(pages.New(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	shared.FlashSuccess(w, intl.T(r.Context(), "Projects.Created"))
	shared.Redirect(w, r, c.basePath)
}

func (c *ProjectController) load(w http.ResponseWriter, r *http.Request) (project.Project, bool) {
	id, err := shared.ParseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return project.Project{}, false
	}
	p, err := c.projectService.GetByID(r.Context(), id)
	if err != nil {
		middleware.UpstreamError(w, r, err, intl.T(r.Context(), "Projects.NotFound"))
		return project.Project{}, false
	}
	if p.ID.IsZero() {
		p.ID = id
	}
	return p, true
}

func (c *ProjectController) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := c.load(w, r)
	if !ok {
		return
	}
	manage := canManage(r)
	props := &pages.ShowProps{
		Project:  p,
		CanEdit:  manage,
		Editing:  manage && r.URL.Query().Get("edit") != "",
		Form:     dtos.FromEntity(p),
		Statuses: project.EditStatuses,
		Errors:   map[string]string{},
	}
	templ.Handler(pages.Show(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *ProjectController) Update(w http.ResponseWriter, r *http.Request) {
	if !canManage(r) {
		middleware.Forbidden(w, r)
		return
	}
	current, ok := c.load(w, r)
	if !ok {
		return
	}
	dto, err := composables.UseForm(&dtos.UpdateProjectDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	props := &pages.ShowProps{
		Project:  current,
		CanEdit:  true,
		Editing:  true,
		Form:     dto,
		Statuses: project.EditStatuses,
		Errors:   map[string]string{},
	}
	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		props.Errors = errorsMap
		w.WriteHeader(http.StatusUnprocessableEntity)
		templ.Handler(pages.Show(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	updated, err := c.projectService.Update(r.Context(), current, dto.ToEntity())
	if err != nil {
		if middleware.IsUnauthorized(err) {
			middleware.UpstreamError(w, r, err, "")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).WithField("project_id", current.ID).Warn("update project failed")
		shared.FlashError(w, apiclient.Message(err, intl.T(r.Context(), "Projects.Errors.UpdateFailed")))
		shared.Redirect(w, r, c.basePath+"/"+current.ID.PathSegment()+"?edit=1")
		return
	}
	props.Project = updated
	props.Editing = false
	props.Saved = true
	props.Form = dtos.FromEntity(updated)
	templ.Handler(pages.Show(props), templ.WithStreaming()).ServeHTTP(w, r)
}
