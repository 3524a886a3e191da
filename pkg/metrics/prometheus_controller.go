package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ati-intranet/portal/pkg/application"
)

const defaultMetricsPath = "/debug/prometheus"

// MetricsController exposes the default registry, which holds the portal
// page and upstream API collectors next to the Go runtime ones.
type MetricsController struct {
	path    string
	handler http.Handler
}

func NewPrometheusController(path string) application.Controller {
	if path == "" {
		path = defaultMetricsPath
	}
	return &MetricsController{
		path: path,
		handler: promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		}),
	}
}

func (c *MetricsController) Key() string {
	return "metrics:" + c.path
}

func (c *MetricsController) Register(r *mux.Router) {
	r.Handle(c.path, c.handler).Methods(http.MethodGet)
}
