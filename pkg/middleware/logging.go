package middleware

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/configuration"
	"github.com/ati-intranet/portal/pkg/routing"
)

type LoggerOptions struct {
	LogRequestBody bool
	MaxBodyLength  int

	Entrypoint    string
	AllowlistPath string
	Repanic       bool
}

func DefaultLoggerOptions() LoggerOptions {
	return LoggerOptions{
		LogRequestBody: true,
		MaxBodyLength:  512,
	}
}

// Form fields never written to the log.
var redactedFields = map[string]struct{}{
	"password":         {},
	"confirm_password": {},
	"token":            {},
	"access_token":     {},
}

type responseCaptureWriter struct {
	http.ResponseWriter
	statusCode    int
	statusWritten bool
	bytesWritten  int
}

func (w *responseCaptureWriter) WriteHeader(code int) {
	if !w.statusWritten {
		w.statusCode = code
		w.statusWritten = true
		w.ResponseWriter.WriteHeader(code)
	}
}

// Status returns the HTTP status code
func (w *responseCaptureWriter) Status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}

func (w *responseCaptureWriter) Write(b []byte) (int, error) {
	if !w.statusWritten {
		w.statusCode = http.StatusOK
		w.statusWritten = true
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += n
	return n, err
}

func (w *responseCaptureWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *responseCaptureWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not implement http.Hijacker")
}

func getRealIP(r *http.Request, conf *configuration.Configuration) string {
	if ip, ok := realIP(r, conf.RealIPHeader); ok {
		return ip
	}
	return r.RemoteAddr
}

func getRequestID(r *http.Request, conf *configuration.Configuration) string {
	if id := strings.TrimSpace(r.Header.Get(conf.RequestIDHeader)); id != "" {
		return id
	}
	return uuid.New().String()
}

var tracer = otel.Tracer("github.com/ati-intranet/portal/pkg/middleware")

func TracedMiddleware(name string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(
				r.Context(),
				"middleware."+name,
				trace.WithAttributes(attribute.String("middleware.name", name)),
			)
			defer span.End()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func formatFormValues(f url.Values, maxLen int) map[string]string {
	out := make(map[string]string, len(f))
	for key, values := range f {
		if _, secret := redactedFields[strings.ToLower(key)]; secret {
			out[key] = "[redacted]"
			continue
		}
		v := strings.Join(values, ",")
		if maxLen > 0 && len(v) > maxLen {
			v = v[:maxLen] + "..."
		}
		out[key] = v
	}
	return out
}

// WithLogger opens the root span of a request, binds a request scoped logger
// and request id to the context and recovers panics from the handler chain.
func WithLogger(logger *logrus.Logger, opts LoggerOptions) mux.MiddlewareFunc {
	conf := configuration.Use()
	rules, err := routing.LoadAllowlistOrDefault(opts.AllowlistPath, opts.Entrypoint)
	if err != nil {
		logger.WithError(err).Warn("routing allowlist unavailable, treating every path as ui")
		rules = nil
	}
	classifier := routing.NewClassifier(rules)
	propagator := propagation.TraceContext{}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				requestID := getRequestID(r, conf)
				ip := getRealIP(r, conf)

				ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
				ctx, span := tracer.Start(
					ctx,
					"http.request",
					trace.WithSpanKind(trace.SpanKindServer),
					trace.WithAttributes(
						attribute.String("http.request.method", r.Method),
						attribute.String("url.path", r.URL.Path),
						attribute.String("user_agent.original", r.UserAgent()),
						attribute.String("http.request_id", requestID),
						attribute.String("client.address", ip),
					),
				)
				defer span.End()

				fieldsLogger := logger.WithFields(logrus.Fields{
					"request-id": requestID,
					"path":       r.URL.Path,
					"method":     r.Method,
				})
				if sc := span.SpanContext(); sc.HasTraceID() {
					w.Header().Set("X-Trace-Id", sc.TraceID().String())
					fieldsLogger = fieldsLogger.WithFields(logrus.Fields{
						"trace-id": sc.TraceID().String(),
						"span-id":  sc.SpanID().String(),
					})
				}
				w.Header().Set("X-Request-Id", requestID)

				fieldsLogger.WithFields(logrus.Fields{
					"host":       r.Host,
					"ip":         ip,
					"user-agent": r.UserAgent(),
				}).Debug("request started")

				if opts.LogRequestBody && r.Method != http.MethodGet &&
					strings.Contains(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
					if err := r.ParseForm(); err == nil {
						fieldsLogger.WithField("form", formatFormValues(r.PostForm, opts.MaxBodyLength)).Debug("form submitted")
					}
				}

				ctx = composables.WithLogger(ctx, fieldsLogger)
				ctx = composables.WithRequestID(ctx, requestID)
				ctx = contextWithStart(ctx, start)

				wrapped := &responseCaptureWriter{ResponseWriter: w}

				defer func() {
					recovered := recover()
					if recovered == nil {
						return
					}
					panicFields := logrus.Fields{
						"panic":    recovered,
						"stack":    string(debug.Stack()),
						"ip":       ip,
						"duration": time.Since(start),
					}
					if r.URL.RawQuery != "" {
						panicFields["query"] = r.URL.RawQuery
					}
					fieldsLogger.WithFields(panicFields).Error("panic recovered in request handler")
					span.SetAttributes(attribute.Bool("panic", true))

					if !wrapped.statusWritten {
						if classifier.ClassifyPath(r.URL.Path) == routing.RouteClassAPI {
							wrapped.Header().Set("Content-Type", "application/json")
							wrapped.WriteHeader(http.StatusInternalServerError)
							_ = json.NewEncoder(wrapped).Encode(map[string]any{
								"code":    "INTERNAL_SERVER_ERROR",
								"message": "internal server error",
								"meta": map[string]string{
									"request_id": requestID,
									"path":       r.URL.Path,
								},
							})
						} else {
							http.Error(wrapped, "Internal Server Error", http.StatusInternalServerError)
						}
					}
					if opts.Repanic {
						panic(recovered)
					}
				}()

				next.ServeHTTP(wrapped, r.WithContext(ctx))

				status := wrapped.Status()
				duration := time.Since(start)
				entry := fieldsLogger.WithFields(logrus.Fields{
					"duration":     duration,
					"status-code":  status,
					"status-class": status / 100,
					"bytes":        wrapped.bytesWritten,
				})
				if status >= http.StatusInternalServerError {
					entry.Warn("request completed")
				} else {
					entry.Info("request completed")
				}
				span.SetAttributes(
					attribute.Int("http.response.status_code", status),
					attribute.Int64("http.request_duration_ms", duration.Milliseconds()),
				)
			},
		)
	}
}
