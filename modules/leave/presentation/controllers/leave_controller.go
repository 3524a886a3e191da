package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/modules/leave/domain/entities/leave"
	"github.com/ati-intranet/portal/modules/leave/presentation/controllers/dtos"
	"github.com/ati-intranet/portal/modules/leave/presentation/templates/pages"
	"github.com/ati-intranet/portal/modules/leave/services"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/authz"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/middleware"
	"github.com/ati-intranet/portal/pkg/shared"
	"github.com/ati-intranet/portal/pkg/types"
)

type LeaveController struct {
	app          application.Application
	leaveService *services.LeaveService
	basePath     string
}

func NewLeaveController(app application.Application) application.Controller {
	return &LeaveController{
		app:          app,
		leaveService: app.Service(services.LeaveService{}).(*services.LeaveService),
		basePath:     "/leave",
	}
}

func (c *LeaveController) Key() string {
	return c.basePath
}

func (c *LeaveController) Register(r *mux.Router) {
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
	router.HandleFunc("", c.Index).Methods(http.MethodGet)
	router.HandleFunc("/apply", c.Apply).Methods(http.MethodPost)
	router.HandleFunc("/approvals", c.Approvals).Methods(http.MethodGet)
	router.HandleFunc("/{id}/approve", c.Approve).Methods(http.MethodPost)
	router.HandleFunc("/{id}/reject", c.Reject).Methods(http.MethodPost)
}

// employeeID is the employee whose leave is shown: the profile's own record,
// or an explicit employee_id when the user may see everybody's leave.
func employeeID(r *http.Request) (types.ID, bool, bool) {
	ctx := r.Context()
	if v := r.FormValue("employee_id"); v != "" && composables.CanAuthz(ctx, authz.ObjectLeaveApplications, "list_all") {
		if id, err := types.ParseID(v); err == nil && !id.IsZero() {
			return id, true, true
		}
	}
	p, err := composables.UseProfile(ctx)
	if err != nil || !p.HasEmployee() {
		return "", false, false
	}
	return p.EmployeeID, true, false
}

func (c *LeaveController) indexProps(r *http.Request) (*pages.IndexProps, error) {
	ctx := r.Context()
	id, ok, override := employeeID(r)
	all := composables.CanAuthz(ctx, authz.ObjectLeaveApplications, "list_all")
	props := &pages.IndexProps{
		HasEmployee:  ok,
		CanApprove:   composables.CanAuthz(ctx, authz.ObjectLeaveApprovals, "manage"),
		ShowApply:    r.URL.Query().Get("apply") != "",
		Form:         &dtos.ApplyDTO{LeaveType: leave.TypeEarned},
		Errors:       map[string]string{},
		Types:        leave.Types,
		Balances:     []leave.Balance{},
		Applications: []leave.Application{},
	}
	if override {
		props.EmployeeID = id
	}
	if ok {
		balances, err := c.leaveService.Balances(ctx, id)
		if err != nil {
			return nil, err
		}
		props.Balances = balances
	}
	if all || ok {
		apps, err := c.leaveService.Applications(ctx, id, all)
		if err != nil {
			return nil, err
		}
		props.Applications = apps
	}
	return props, nil
}

func (c *LeaveController) Index(w http.ResponseWriter, r *http.Request) {
	props, err := c.indexProps(r)
	if err != nil {
		middleware.UpstreamError(w, r, err, "")
		return
	}
	templ.Handler(pages.Index(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *LeaveController) Apply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dto, err := composables.UseForm(&dtos.ApplyDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, ok, override := employeeID(r)
	back := c.basePath
	if override {
		back = c.basePath + "?" + url.Values{"employee_id": {id.String()}}.Encode()
	}
	if !ok {
		shared.FlashError(w, intl.T(ctx, "Leave.Errors.NoEmployee"))
		shared.Redirect(w, r, back)
		return
	}
	if errorsMap, valid := dto.Ok(ctx); !valid {
		props, err := c.indexProps(r)
		if err != nil {
			middleware.UpstreamError(w, r, err, "")
			return
		}
		props.ShowApply = true
		props.Form = dto
		props.Errors = errorsMap
		w.WriteHeader(http.StatusUnprocessableEntity)
		templ.Handler(pages.Index(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	if _, err := c.leaveService.Apply(ctx, dto.ToEntity(id)); err != nil {
		if middleware.IsUnauthorized(err) {
			middleware.UpstreamError(w, r, err, "")
			return
		}
		composables.UseLogger(ctx).WithError(err).Warn("leave application failed")
		shared.FlashError(w, intl.T(ctx, "Leave.Errors.ApplyFailed"))
		shared.Redirect(w, r, back)
		return
	}
	shared.FlashSuccess(w, intl.T(ctx, "Leave.Applied"))
	shared.Redirect(w, r, back)
}

func (c *LeaveController) Approvals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !composables.CanAuthz(ctx, authz.ObjectLeaveApprovals, "manage") {
		shared.Redirect(w, r, c.basePath)
		return
	}
	filter := leave.ParseFilter(r.URL.Query().Get("filter"))
	apps, err := c.leaveService.Applications(ctx, "", true)
	if err != nil {
		middleware.UpstreamError(w, r, err, "")
		return
	}
	props := &pages.ApprovalsProps{
		Filter:       filter,
		Filters:      leave.Filters,
		Applications: filter.Apply(apps),
	}
	templ.Handler(pages.Approvals(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *LeaveController) Approve(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, c.leaveService.Approve)
}

func (c *LeaveController) Reject(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, c.leaveService.Reject)
}

func (c *LeaveController) decide(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id types.ID) error) {
	ctx := r.Context()
	if !composables.CanAuthz(ctx, authz.ObjectLeaveApprovals, "manage") {
		middleware.Forbidden(w, r)
		return
	}
	id, err := shared.ParseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	filter := leave.ParseFilter(r.FormValue("filter"))
	back := fmt.Sprintf("%s/approvals?%s", c.basePath, url.Values{"filter": {string(filter)}}.Encode())
	if err := action(ctx, id); err != nil {
		if middleware.IsUnauthorized(err) {
			middleware.UpstreamError(w, r, err, "")
			return
		}
		composables.UseLogger(ctx).WithError(err).WithField("leave_id", id).Warn("leave decision failed")
		shared.FlashError(w, intl.T(ctx, "Leave.Errors.DecisionFailed"))
	}
	shared.Redirect(w, r, back)
}
