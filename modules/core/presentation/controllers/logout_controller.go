package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/middleware"
	"github.com/ati-intranet/portal/pkg/shared"
)

func NewLogoutController(app application.Application) application.Controller {
	return &LogoutController{app: app}
}

type LogoutController struct {
	app application.Application
}

func (c *LogoutController) Key() string {
	return "/logout"
}

func (c *LogoutController) Register(r *mux.Router) {
	router := r.PathPrefix("/logout").Subrouter()
	router.Use(middleware.Authorize())
	router.HandleFunc("", c.Logout).Methods(http.MethodPost, http.MethodGet)
}

func (c *LogoutController) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.EndSession(w, r)
	shared.Redirect(w, r, "/login")
}
