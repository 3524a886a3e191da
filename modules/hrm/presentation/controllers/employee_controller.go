package controllers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/modules/hrm/domain/entities/employee"
	"github.com/ati-intranet/portal/modules/hrm/presentation/controllers/dtos"
	"github.com/ati-intranet/portal/modules/hrm/presentation/templates/pages"
	"github.com/ati-intranet/portal/modules/hrm/services"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/authz"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/htmx"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/middleware"
	"github.com/ati-intranet/portal/pkg/shared"
	"github.com/ati-intranet/portal/pkg/types"
)

type EmployeeController struct {
	app             application.Application
	employeeService *services.EmployeeService
	basePath        string
}

func NewEmployeeController(app application.Application) application.Controller {
	return &EmployeeController{
		app:             app,
		employeeService: app.Service(services.EmployeeService{}).(*services.EmployeeService),
		basePath:        "/employees",
	}
}

func (c *EmployeeController) Key() string {
	return c.basePath
}

func (c *EmployeeController) Register(r *mux.Router) {
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

// canEdit: HR and Admin edit anyone, everybody else only their own record.
func canEdit(r *http.Request, id types.ID) bool {
	ctx := r.Context()
	if composables.CanAuthz(ctx, authz.ObjectEmployees, "update") {
		return true
	}
	p, err := composables.UseProfile(ctx)
	return err == nil && p.OwnsEmployee(id) && composables.CanAuthz(ctx, authz.ObjectEmployees, "update_self")
}

func (c *EmployeeController) List(w http.ResponseWriter, r *http.Request) {
	if !composables.CanAuthz(r.Context(), authz.ObjectEmployees, "list") {
		middleware.Forbidden(w, r)
		return
	}
	q := r.URL.Query().Get("q")
	list, err := c.employeeService.Search(r.Context(), q)
	if err != nil {
		middleware.UpstreamError(w, r, err, "")
		return
	}
	props := &pages.IndexProps{
		Query:     q,
		Employees: list,
		CanCreate: composables.CanAuthz(r.Context(), authz.ObjectEmployees, "create"),
	}
	if htmx.IsHxRequest(r) {
		templ.Handler(pages.EmployeeGrid(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	templ.Handler(pages.Index(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *EmployeeController) GetNew(w http.ResponseWriter, r *http.Request) {
	if !composables.CanAuthz(r.Context(), authz.ObjectEmployees, "create") {
		middleware.Forbidden(w, r)
		return
	}
	props := &pages.NewProps{
		Form:   &dtos.CreateEmployeeDTO{IsActive: "true"},
		Errors: map[string]string{},
	}
	templ.Handler(pages.New(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *EmployeeController) Create(w http.ResponseWriter, r *http.Request) {
	if !composables.CanAuthz(r.Context(), authz.ObjectEmployees, "create") {
		middleware.Forbidden(w, r)
		return
	}
	dto, err := composables.UseForm(&dtos.CreateEmployeeDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	props := &pages.NewProps{Form: dto, Errors: map[string]string{}}
	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		props.Errors = errorsMap
		w.WriteHeader(http.StatusUnprocessableEntity)
		templ.Handler(pages.New(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	if err := c.employeeService.Create(r.Context(), dto.ToEntity()); err != nil {
		if middleware.IsUnauthorized(err) {
			middleware.UpstreamError(w, r, err, "")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Warn("create employee failed")
		props.Error = apiclient.Message(err, intl.T(r.Context(), "Employees.Errors.CreateFailed"))
		w.WriteHeader(http.StatusBadGateway)
		templ.Handler(pages.New(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	shared.FlashSuccess(w, intl.T(r.Context(), "Employees.Created"))
	shared.Redirect(w, r, c.basePath)
}

func (c *EmployeeController) load(w http.ResponseWriter, r *http.Request) (employee.Employee, bool) {
	id, err := shared.ParseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return employee.Employee{}, false
	}
	if !composables.CanAuthz(r.Context(), authz.ObjectEmployees, "view") {
		middleware.Forbidden(w, r)
		return employee.Employee{}, false
	}
	e, err := c.employeeService.GetByID(r.Context(), id)
	if err != nil {
		middleware.UpstreamError(w, r, err, intl.T(r.Context(), "Employees.NotFound"))
		return employee.Employee{}, false
	}
	if e.ID.IsZero() {
		e.ID = id
	}
	return e, true
}

func (c *EmployeeController) Get(w http.ResponseWriter, r *http.Request) {
	e, ok := c.load(w, r)
	if !ok {
		return
	}
	editable := canEdit(r, e.ID)
	props := &pages.ShowProps{
		Employee:   e,
		CanEdit:    editable,
		Editing:    editable && r.URL.Query().Get("edit") != "",
		Privileged: composables.CanAuthz(r.Context(), authz.ObjectEmployees, "update"),
		Form:       dtos.FromEntity(e),
		Errors:     map[string]string{},
	}
	templ.Handler(pages.Show(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *EmployeeController) Update(w http.ResponseWriter, r *http.Request) {
	current, ok := c.load(w, r)
	if !ok {
		return
	}
	if !canEdit(r, current.ID) {
		middleware.Forbidden(w, r)
		return
	}
	dto, err := composables.UseForm(&dtos.UpdateEmployeeDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	privileged := composables.CanAuthz(r.Context(), authz.ObjectEmployees, "update")
	props := &pages.ShowProps{
		Employee:   current,
		CanEdit:    true,
		Editing:    true,
		Privileged: privileged,
		Form:       dto,
		Errors:     map[string]string{},
	}
	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		props.Errors = errorsMap
		w.WriteHeader(http.StatusUnprocessableEntity)
		templ.Handler(pages.Show(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}

	updated, err := c.employeeService.Update(r.Context(), current, dto.Apply(current, privileged))
	if err != nil {
		if middleware.IsUnauthorized(err) {
			middleware.UpstreamError(w, r, err, "")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).WithField("employee_id", current.ID).Warn("update employee failed")
		shared.FlashError(w, intl.T(r.Context(), "Employees.Errors.UpdateFailed"))
		shared.Redirect(w, r, c.basePath+"/"+current.ID.PathSegment()+"?edit=1")
		return
	}
	props.Employee = updated
	props.Editing = false
	props.Saved = true
	props.Form = dtos.FromEntity(updated)
	templ.Handler(pages.Show(props), templ.WithStreaming()).ServeHTTP(w, r)
}
