package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ati-intranet/portal/pkg/composables"
)

type employee struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Options{BaseURL: srv.URL + "/", Timeout: 2 * time.Second, RequestIDHeader: "X-Request-ID"})
	require.NoError(t, err)
	return c
}

func TestNew_RejectsNonHTTP(t *testing.T) {
	_, err := New(Options{BaseURL: "ftp://example.com"})
	require.Error(t, err)
}

func TestDo_SendsTokenAndRequestID(t *testing.T) {
	var gotAuth, gotReqID, gotType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		gotType = r.Header.Get("Content-Type")
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		assert.Equal(t, "Sick", in["leave_type"])
		w.WriteHeader(http.StatusCreated)
	})

	ctx := composables.WithToken(context.Background(), "abc.def")
	ctx = composables.WithRequestID(ctx, "req-1")
	err := c.Post(ctx, "/leave/apply", map[string]any{"leave_type": "Sick"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc.def", gotAuth)
	assert.Equal(t, "req-1", gotReqID)
	assert.Equal(t, "application/json", gotType)
}

func TestDo_NoTokenNoAuthorizationHeader(t *testing.T) {
	var gotAuth, gotReqID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"access_token":"t"}`))
	})

	var out struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, c.Post(context.Background(), "/auth/login", map[string]string{"username": "a"}, &out))
	assert.Equal(t, "t", out.AccessToken)
	assert.Empty(t, gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestDo_StatusErrors(t *testing.T) {
	tests := []struct {
		status int
		body   string
		target error
		msg    string
	}{
		{status: http.StatusUnauthorized, body: `{"message":"Unauthorized"}`, target: ErrUnauthorized, msg: "Unauthorized"},
		{status: http.StatusForbidden, body: `{"error":"nope"}`, target: ErrForbidden, msg: "nope"},
		{status: http.StatusNotFound, body: ``, target: ErrNotFound, msg: ""},
		{status: http.StatusBadRequest, body: `{"message":["a","b"]}`, msg: "a; b"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			err := c.Get(context.Background(), "/employees/7", nil, nil)
			require.Error(t, err)

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.Status)
			assert.Equal(t, tt.msg, se.Message())
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestDo_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(Options{BaseURL: base, Timeout: time.Second})
	require.NoError(t, err)
	err = c.Get(context.Background(), "/employees", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "Cannot connect to server. Please ensure the API is running.", Message(err, "fallback"))
}

func TestDo_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Get(ctx, "/employees", nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestGetList(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "5", r.URL.Query().Get("employeeId"))
			_, _ = w.Write([]byte(`[{"id":1,"first_name":"Ann"},{"id":2,"first_name":"Bo"}]`))
		})
		list, err := GetList[employee](context.Background(), c, "/leave/applications", url.Values{"employeeId": {"5"}})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Bo", list[1].FirstName)
	})

	t.Run("non array is empty", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":[]}`))
		})
		list, err := GetList[employee](context.Background(), c, "/employees", nil)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("empty body is empty", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
		list, err := GetList[employee](context.Background(), c, "/documents", nil)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/employees/:id", routeLabel("/employees/42"))
	assert.Equal(t, "/leave/:id/approve", routeLabel("/leave/3/approve"))
	assert.Equal(t, "/timesheets/projects/all", routeLabel("/timesheets/projects/all"))
}

func TestMessageFallback(t *testing.T) {
	assert.Equal(t, "Failed", Message(context.Canceled, "Failed"))
}

func TestPing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := c.Ping(context.Background())
	require.NoError(t, err)

	down, err := New(Options{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	require.NoError(t, err)
	_, err = down.Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
