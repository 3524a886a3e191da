package apiclient

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Requests sent to the HR API by method, route and status class.",
	}, []string{"method", "route", "status_class"})

	upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portal",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Latency of requests sent to the HR API.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "route"})
)

var idSegment = regexp.MustCompile(`^(\d+|[0-9a-fA-F-]{36})$`)

// routeLabel collapses identifiers so metric cardinality stays bounded.
func routeLabel(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if idSegment.MatchString(p) {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

func statusClass(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}

func observe(method, path string, status int, took time.Duration) {
	route := routeLabel(path)
	upstreamRequests.WithLabelValues(method, route, statusClass(status)).Inc()
	upstreamLatency.WithLabelValues(method, route).Observe(took.Seconds())
}
