package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/routing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCollectTrUsages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "modules", "leave", "controller.go"), `package leave

func handler(ctx context.Context, v View) {
	_ = intl.MustT(ctx, "Leave.Errors.Overlap")
	_ = v.T("Leave.Title")
	_ = &i18n.LocalizeConfig{MessageID: "Leave.Meta.Title"}
}
`)
	writeFile(t, filepath.Join(root, "modules", "leave", "controller_test.go"), `package leave

var _ = intl.MustT(ctx, "Test.Only")
`)
	writeFile(t, filepath.Join(root, "modules", "leave", "pages", "index.html"),
		"<h1>{{ .T \"Leave.Title\" }}</h1>\n<p>{{ .T \"Leave.Empty\" (dict) }}</p>\n")
	writeFile(t, filepath.Join(root, "_examples", "x.html"), `{{ .T "Skipped.Key" }}`)

	usages, err := collectTrUsages(root)
	require.NoError(t, err)

	keys := make(map[string]int)
	for _, u := range usages {
		keys[u.Key]++
	}
	assert.Equal(t, map[string]int{
		"Leave.Errors.Overlap": 1,
		"Leave.Title":          2,
		"Leave.Meta.Title":     1,
		"Leave.Empty":          1,
	}, keys)
}

func TestCollectRoutes(t *testing.T) {
	r := mux.NewRouter()
	noop := func(http.ResponseWriter, *http.Request) {}
	r.HandleFunc("/leave", noop).Methods(http.MethodGet)
	r.HandleFunc("/leave", noop).Methods(http.MethodPost)
	r.HandleFunc("/health", noop).Methods(http.MethodGet)
	r.PathPrefix("/assets/").Handler(http.NotFoundHandler())

	rules, err := routing.ParseAllowlist([]byte(`version: 1
entrypoints:
  server:
    - prefix: /health
      class: ops
`), "server")
	require.NoError(t, err)

	rows, err := collectRoutes(r, routing.NewClassifier(rules))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "/health", rows[0].Path)
	assert.Equal(t, routing.RouteClassOps, rows[0].Class)
	assert.Equal(t, "GET", rows[1].Methods)
	assert.Equal(t, "POST", rows[2].Methods)
	assert.Equal(t, routing.RouteClassUI, rows[2].Class)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	api, err := apiclient.New(apiclient.Options{BaseURL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, ping(context.Background(), &out, api))
	assert.Contains(t, out.String(), "is up")

	down, err := apiclient.New(apiclient.Options{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	require.NoError(t, err)
	err = ping(context.Background(), &out, down)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}
