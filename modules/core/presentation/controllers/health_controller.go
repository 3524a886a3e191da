package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/httpapi"
)

type HealthResponse struct {
	Status     string `json:"status"`
	API        string `json:"api,omitempty"`
	APILatency string `json:"api_latency,omitempty"`
}

func NewHealthController(app application.Application) application.Controller {
	return &HealthController{app: app}
}

type HealthController struct {
	app application.Application
}

func (c *HealthController) Key() string {
	return "/health"
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc("/health", c.Get).Methods(http.MethodGet)
}

// Get answers liveness; with ?deep=1 it also checks that the HR API is reachable.
func (c *HealthController) Get(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if r.URL.Query().Get("deep") == "" || c.app.API() == nil {
		_ = httpapi.WriteJSON(w, http.StatusOK, resp)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	took, err := c.app.API().Ping(ctx)
	if err != nil {
		resp.Status = "degraded"
		resp.API = "down"
		_ = httpapi.WriteJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	resp.API = "up"
	resp.APILatency = took.String()
	_ = httpapi.WriteJSON(w, http.StatusOK, resp)
}
