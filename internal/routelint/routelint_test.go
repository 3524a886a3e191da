package routelint

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalserver "github.com/ati-intranet/portal/internal/server"
	"github.com/ati-intranet/portal/modules"
	corecontrollers "github.com/ati-intranet/portal/modules/core/presentation/controllers"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/configuration"
	"github.com/ati-intranet/portal/pkg/eventbus"
	"github.com/ati-intranet/portal/pkg/metrics"
	"github.com/ati-intranet/portal/pkg/middleware"
	"github.com/ati-intranet/portal/pkg/routing"
	pkgserver "github.com/ati-intranet/portal/pkg/server"
	"github.com/ati-intranet/portal/pkg/session"
)

// Every page the portal serves. A new module must add its prefix here.
var uiPrefixes = []string{
	"/profile",
	"/employees",
	"/leave",
	"/timesheets",
	"/projects",
	"/jobs",
	"/holidays",
	"/documents",
	"/logs",
}

func TestServerRoutes_NoAPIExceptAllowlist(t *testing.T) {
	router := buildServer(t).Router()

	rules, err := routing.LoadAllowlist("", "server")
	require.NoError(t, err)
	classifier := routing.NewClassifier(rules)

	var offending []string
	for _, p := range collectRoutePaths(t, router) {
		if !routing.HasPathPrefixOnBoundary(p, "/api") {
			continue
		}
		if class, ok := classifier.MatchAllowlist(p); ok && class == routing.RouteClassAPI {
			continue
		}
		offending = append(offending, p)
	}
	assert.Empty(t, offending, "the portal talks to the HR API server side and must not expose /api routes")
}

func TestServerRoutes_TopLevelPrefixesAreKnown(t *testing.T) {
	router := buildServer(t).Router()

	rules, err := routing.LoadAllowlist("", "server")
	require.NoError(t, err)
	classifier := routing.NewClassifier(rules)

	offendingSet := map[string]struct{}{}
	for _, p := range collectRoutePaths(t, router) {
		if strings.TrimSpace(p) == "" || p == "/" {
			continue
		}
		if isUIPage(p) {
			continue
		}
		if _, ok := classifier.MatchAllowlist(p); ok {
			continue
		}
		offendingSet[p] = struct{}{}
	}
	offending := make([]string, 0, len(offendingSet))
	for p := range offendingSet {
		offending = append(offending, p)
	}
	sort.Strings(offending)
	assert.Empty(t, offending, "routes outside the known pages must be registered in config/routing/allowlist.yaml")
}

func TestServerRoutes_EveryPageIsRegistered(t *testing.T) {
	paths := collectRoutePaths(t, buildServer(t).Router())
	for _, prefix := range uiPrefixes {
		found := false
		for _, p := range paths {
			if routing.HasPathPrefixOnBoundary(p, prefix) {
				found = true
				break
			}
		}
		assert.True(t, found, "no route serves %s", prefix)
	}
}

func TestErrorContracts_JSONForAPIClass(t *testing.T) {
	app := application.New(&application.ApplicationOptions{Bundle: application.LoadBundle()})
	opts := corecontrollers.ErrorHandlersOptions{Entrypoint: "server"}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://example.com/spotlight/__nonexistent__", nil)
	corecontrollers.NotFound(app, opts)(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var payload apiError
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
	assert.Equal(t, "NOT_FOUND", payload.Code)
	assert.Equal(t, "/spotlight/__nonexistent__", payload.Meta["path"])

	r := mux.NewRouter()
	r.MethodNotAllowedHandler = corecontrollers.MethodNotAllowed(app, opts)
	r.HandleFunc("/spotlight/search", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "http://example.com/spotlight/search", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
	assert.Equal(t, "METHOD_NOT_ALLOWED", payload.Code)
	assert.Equal(t, http.MethodPost, payload.Meta["method"])
}

func TestErrorContracts_PanicRecovery(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	opts := middleware.DefaultLoggerOptions()
	opts.Entrypoint = "server"

	h := middleware.WithLogger(logger, opts)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://example.com/spotlight/search", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var payload apiError
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", payload.Code)
	assert.NotEmpty(t, payload.Meta["request_id"])

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://example.com/leave", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
}

type apiError struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta"`
}

func isUIPage(p string) bool {
	for _, prefix := range uiPrefixes {
		if routing.HasPathPrefixOnBoundary(p, prefix) {
			return true
		}
	}
	return false
}

func collectRoutePaths(t *testing.T, router *mux.Router) []string {
	t.Helper()

	var paths []string
	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		p := routePath(route)
		if strings.TrimSpace(p) != "" {
			paths = append(paths, p)
		}
		return nil
	})
	require.NoError(t, err)

	sort.Strings(paths)
	return paths
}

func routePath(route *mux.Route) string {
	if route == nil {
		return ""
	}
	if tmpl, err := route.GetPathTemplate(); err == nil {
		return tmpl
	}
	regexp, err := route.GetPathRegexp()
	if err != nil {
		return ""
	}
	result := strings.TrimPrefix(regexp, "^")
	return strings.TrimSuffix(result, "$")
}

// buildServer wires the portal the way cmd/server does. The API is never
// called while walking routes.
func buildServer(t *testing.T) *pkgserver.HTTPServer {
	t.Helper()

	conf := *configuration.Use()
	conf.Prometheus.Enabled = true
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	api, err := apiclient.New(apiclient.Options{BaseURL: "http://127.0.0.1:1", Timeout: time.Second, Logger: logger})
	require.NoError(t, err)

	app := application.New(&application.ApplicationOptions{
		API:      api,
		Sessions: session.NewManager(conf.TokenCookieKey, time.Hour, false),
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
		Bundle:   application.LoadBundle(),
	})
	require.NoError(t, modules.Load(app, modules.BuiltInModules...))
	app.RegisterControllers(
		corecontrollers.NewStaticFilesController(app.HashFsAssets()),
		metrics.NewPrometheusController(conf.Prometheus.Path),
	)

	srv, err := internalserver.Default(&internalserver.DefaultOptions{
		Logger:        logger,
		Configuration: &conf,
		Application:   app,
		Entrypoint:    "server",
	})
	require.NoError(t, err)
	return srv
}
