package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/configuration"
	"github.com/ati-intranet/portal/pkg/constants"
)

func contextWithStart(ctx context.Context, start time.Time) context.Context {
	return context.WithValue(ctx, constants.RequestStart, start)
}

// Provide binds value to key on every request context.
func Provide(k constants.ContextKey, v any) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), k, v)))
		})
	}
}

func Cors(allowOrigins ...string) mux.MiddlewareFunc {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "Hx-Request", "Hx-Current-Url", "Hx-Target", "Hx-Trigger"},
		ExposedHeaders:   []string{"Hx-Redirect", "Hx-Push-Url", "Hx-Trigger", "X-Request-Id"},
		AllowCredentials: true,
	})
	return c.Handler
}

// RequestParams records per request facts (ip, user agent, whether a token
// cookie is present) for handlers and templates.
func RequestParams() mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := r.Cookie(conf.TokenCookieKey)
			params := &composables.Params{
				IP:            getRealIP(r, conf),
				UserAgent:     r.UserAgent(),
				Authenticated: err == nil,
				Request:       r,
				Writer:        w,
			}
			next.ServeHTTP(w, r.WithContext(composables.WithParams(r.Context(), params)))
		})
	}
}
