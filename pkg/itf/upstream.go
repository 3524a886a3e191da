package itf

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecordedRequest is one call the portal made to the fake API.
type RecordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          []byte
}

// JSON decodes the recorded body into v.
func (r RecordedRequest) JSON(tb testing.TB, v any) {
	tb.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		tb.Fatalf("decode %s %s body: %v", r.Method, r.Path, err)
	}
}

// Upstream is a fake HR API. Routes are matched on method and exact path;
// anything unregistered answers 404.
type Upstream struct {
	server   *httptest.Server
	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []RecordedRequest
}

func NewUpstream(tb testing.TB) *Upstream {
	tb.Helper()
	u := &Upstream{routes: map[string]http.HandlerFunc{}}
	u.server = httptest.NewServer(http.HandlerFunc(u.serve))
	tb.Cleanup(u.server.Close)
	return u
}

func (u *Upstream) URL() string {
	return u.server.URL
}

// Close stops the server early, turning every later call into a transport failure.
func (u *Upstream) Close() {
	u.server.Close()
}

func (u *Upstream) Handle(method, path string, h http.HandlerFunc) *Upstream {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.routes[method+" "+path] = h
	return u
}

// JSON registers a canned JSON response.
func (u *Upstream) JSON(method, path string, status int, body any) *Upstream {
	return u.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Requests returns the recorded calls to method and path.
func (u *Upstream) Requests(method, path string) []RecordedRequest {
	u.mu.Lock()
	defer u.mu.Unlock()
	var out []RecordedRequest
	for _, r := range u.requests {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Last returns the most recent call to method and path.
func (u *Upstream) Last(tb testing.TB, method, path string) RecordedRequest {
	tb.Helper()
	reqs := u.Requests(method, path)
	if len(reqs) == 0 {
		tb.Fatalf("no %s %s request was made", method, path)
	}
	return reqs[len(reqs)-1]
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))
	u.mu.Lock()
	u.requests = append(u.requests, RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		Body:          body,
	})
	h, ok := u.routes[r.Method+" "+r.URL.Path]
	u.mu.Unlock()
	if !ok {
		WriteJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		return
	}
	h(w, r)
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// DecodeJSON reads the JSON body of a request received by a Handle func.
func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
