package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/middleware"
	"github.com/ati-intranet/portal/pkg/shared"
)

func NewAccountController(app application.Application) application.Controller {
	return &AccountController{app: app}
}

// AccountController sends "Edit Profile" to the employee record linked to
// the signed in user.
type AccountController struct {
	app application.Application
}

func (c *AccountController) Key() string {
	return "/profile"
}

func (c *AccountController) Register(r *mux.Router) {
	router := r.PathPrefix("/profile").Subrouter()
	router.Use(
		middleware.Authorize(),
		middleware.RedirectNotAuthenticated(),
		middleware.ProvideLocalizer(c.app),
		middleware.ProvideProfile(),
	)
	router.HandleFunc("", c.Get).Methods(http.MethodGet)
}

func (c *AccountController) Get(w http.ResponseWriter, r *http.Request) {
	p, err := composables.UseProfile(r.Context())
	if err != nil || !p.HasEmployee() {
		shared.FlashError(w, intl.T(r.Context(), "Home.ProfileUnavailable"))
		shared.Redirect(w, r, "/")
		return
	}
	shared.Redirect(w, r, "/employees/"+p.EmployeeID.PathSegment())
}
