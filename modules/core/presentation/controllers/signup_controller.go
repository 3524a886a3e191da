package controllers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/modules/core/presentation/controllers/dtos"
	"github.com/ati-intranet/portal/modules/core/presentation/templates/pages"
	"github.com/ati-intranet/portal/modules/core/services"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/middleware"
	"github.com/ati-intranet/portal/pkg/shared"
)

func NewSignupController(app application.Application) application.Controller {
	return &SignupController{
		app:         app,
		authService: app.Service(services.AuthService{}).(*services.AuthService),
	}
}

type SignupController struct {
	app         application.Application
	authService *services.AuthService
}

func (c *SignupController) Key() string {
	return "/signup"
}

func (c *SignupController) Register(r *mux.Router) {
	router := r.PathPrefix("/signup").Subrouter()
	router.Use(
		middleware.ProvideLocalizer(c.app),
		middleware.WithPageContext(),
	)
	router.HandleFunc("", c.Get).Methods(http.MethodGet)
	router.HandleFunc("", c.Post).Methods(http.MethodPost)
}

func (c *SignupController) Get(w http.ResponseWriter, r *http.Request) {
	props := &pages.SignupProps{Errors: map[string]string{}}
	templ.Handler(pages.Signup(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *SignupController) Post(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseForm(&dtos.SignupDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	props := &pages.SignupProps{
		Username:  dto.Username,
		Email:     dto.Email,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Errors:    map[string]string{},
	}
	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		props.Errors = errorsMap
		w.WriteHeader(http.StatusUnprocessableEntity)
		templ.Handler(pages.Signup(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	if err := c.authService.Signup(r.Context(), dto.ToEntity()); err != nil {
		composables.UseLogger(r.Context()).WithError(err).WithField("username", dto.Username).Warn("signup failed")
		props.Error = intl.T(r.Context(), "Signup.Errors.Failed")
		w.WriteHeader(http.StatusBadGateway)
		templ.Handler(pages.Signup(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	shared.FlashSuccess(w, intl.T(r.Context(), "Signup.Success"))
	shared.Redirect(w, r, "/login")
}
