package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/ati-intranet/portal/pkg/composables"
)

const tracerName = "github.com/ati-intranet/portal/pkg/apiclient"

// maxErrorBody bounds how much of a failed response is kept on StatusError.
const maxErrorBody = 64 << 10

type Options struct {
	BaseURL         string
	Timeout         time.Duration
	RequestIDHeader string
	Logger          *logrus.Logger
	HTTPClient      *http.Client
}

// Client talks JSON to the HR API. The bearer token is taken from the
// request context, so one Client is shared by every request.
type Client struct {
	baseURL         *url.URL
	requestIDHeader string
	httpClient      *http.Client
	logger          *logrus.Entry
	propagator      propagation.TextMapPropagator
}

func New(opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("base url must be http(s), got %q", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Client{
		baseURL:         u,
		requestIDHeader: opts.RequestIDHeader,
		httpClient:      httpClient,
		logger:          logger.WithField("component", "apiclient"),
		propagator:      propagation.TraceContext{},
	}, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

// Do sends one request. A non-2xx response yields a *StatusError; a transport
// failure wraps ErrUnavailable. Cancellation errors are returned as is.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, reqBody, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return errors.Wrap(err, "marshal request")
		}
		body = bytes.NewReader(b)
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, method+" "+routeLabel(path),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, err := composables.UseToken(ctx); err == nil {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.requestIDHeader != "" {
		id := composables.UseRequestID(ctx)
		if id == "" {
			id = uuid.NewString()
		}
		req.Header.Set(c.requestIDHeader, id)
	}
	c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	logger := c.loggerFor(ctx).WithFields(logrus.Fields{
		"method": method,
		"path":   path,
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observe(method, path, 0, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logger.WithError(err).Warn("upstream unreachable")
		return errors.Wrap(ErrUnavailable.WithTemplateData(map[string]string{"Cause": err.Error()}), err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	took := time.Since(start)
	observe(method, path, resp.StatusCode, took)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		span.SetStatus(codes.Error, resp.Status)
		logger.WithFields(logrus.Fields{
			"status":   resp.StatusCode,
			"duration": took,
		}).Info("upstream returned error status")
		return &StatusError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(raw)),
		}
	}

	logger.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": took,
	}).Debug("upstream request")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "decode %s %s", method, path)
	}
	return nil
}

// Ping reports whether the API answers at all. Any HTTP status counts as
// reachable; only transport failures are returned.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	err := c.Do(ctx, http.MethodGet, "/", nil, nil, nil)
	var se *StatusError
	if err != nil && !errors.As(err, &se) {
		return 0, err
	}
	return time.Since(start), nil
}

func (c *Client) loggerFor(ctx context.Context) *logrus.Entry {
	if l, err := composables.TryUseLogger(ctx); err == nil {
		return l.WithField("component", "apiclient")
	}
	return c.logger
}

// GetList fetches a JSON array. Any other JSON shape decodes to an empty list.
func GetList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var raw json.RawMessage
	if err := c.Get(ctx, path, query, &raw); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		c.loggerFor(ctx).WithField("path", path).Warn("expected a JSON array, treating response as empty")
		return []T{}, nil
	}
	out := []T{}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, errors.Wrapf(err, "decode list %s", path)
	}
	return out, nil
}

// Message returns the text to show a user for err: the upstream message when
// the API supplied one, otherwise fallback.
func Message(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) {
		if msg := se.Message(); msg != "" {
			return msg
		}
	}
	if errors.Is(err, ErrUnavailable) {
		return ErrUnavailable.Message
	}
	return fallback
}
