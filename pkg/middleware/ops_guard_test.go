package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ati-intranet/portal/pkg/configuration"
)

func guarded(conf *configuration.Configuration) http.Handler {
	return OpsGuard(conf, "server")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestOpsGuard(t *testing.T) {
	conf := *configuration.Use()
	conf.GoAppEnvironment = configuration.Production
	conf.OpsGuardEnabled = true
	conf.OpsGuardCIDRs = "10.0.0.0/8; bogus"
	conf.OpsGuardToken = "s3cret"
	conf.OpsGuardBasicAuthUser = ""
	conf.OpsGuardBasicAuthPass = ""
	conf.RealIPHeader = "X-Real-IP"
	h := guarded(&conf)

	tests := []struct {
		name   string
		path   string
		setup  func(r *http.Request)
		status int
	}{
		{"ui route untouched", "/leave", func(*http.Request) {}, http.StatusOK},
		{"ops route hidden", "/health", func(*http.Request) {}, http.StatusNotFound},
		{"ops token header", "/health", func(r *http.Request) { r.Header.Set("X-Ops-Token", "s3cret") }, http.StatusOK},
		{"bearer token", "/debug/prometheus", func(r *http.Request) { r.Header.Set("Authorization", "Bearer s3cret") }, http.StatusOK},
		{"wrong token", "/health", func(r *http.Request) { r.Header.Set("X-Ops-Token", "nope") }, http.StatusNotFound},
		{"allowed cidr via header", "/health", func(r *http.Request) { r.Header.Set("X-Real-IP", "10.1.2.3, 192.168.0.1") }, http.StatusOK},
		{"allowed cidr via remote addr", "/health", func(r *http.Request) { r.RemoteAddr = "10.9.9.9:5555" }, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			r.RemoteAddr = "203.0.113.7:1234"
			tt.setup(r)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestOpsGuard_BasicAuth(t *testing.T) {
	conf := *configuration.Use()
	conf.GoAppEnvironment = configuration.Production
	conf.OpsGuardEnabled = true
	conf.OpsGuardCIDRs = ""
	conf.OpsGuardToken = ""
	conf.OpsGuardBasicAuthUser = "ops"
	conf.OpsGuardBasicAuthPass = "pw"
	h := guarded(&conf)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.SetBasicAuth("ops", "pw")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	r = httptest.NewRequest(http.MethodGet, "/health", nil)
	r.SetBasicAuth("ops", "wrong")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOpsGuard_OffOutsideProduction(t *testing.T) {
	conf := *configuration.Use()
	conf.GoAppEnvironment = "development"
	w := httptest.NewRecorder()
	guarded(&conf).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
