package middleware

import (
	"net/http"
	"net/url"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/modules/core/services"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/authz"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/htmx"
)

func mustApp(r *http.Request) application.Application {
	app, ok := application.UseApp(r.Context())
	if !ok {
		panic("application not found in context")
	}
	return app
}

// LoginURL is the sign in page that returns to the current page afterwards.
func LoginURL(r *http.Request) string {
	next := r.URL.RequestURI()
	if htmx.IsHxRequest(r) {
		if u, err := url.Parse(r.Header.Get(htmx.HeaderCurrentURL)); err == nil && u.Path != "" {
			next = u.RequestURI()
		}
	}
	if next == "" || next == "/" {
		return "/login"
	}
	return "/login?" + url.Values{"next": {next}}.Encode()
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := LoginURL(r)
	if htmx.IsHxRequest(r) {
		htmx.Redirect(w, target)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// Authorize binds the token cookie, when present and unexpired, to the request context.
func Authorize() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			app := mustApp(r)
			token, ok := app.Sessions().Get(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithToken(r.Context(), token)))
		})
	}
}

func RedirectNotAuthenticated() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := composables.UseToken(r.Context()); err != nil {
				mustApp(r).Sessions().Clear(w)
				redirectToLogin(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ProvideProfile resolves the signed in profile (cached per token) and the
// authz view state for its role.
func ProvideProfile() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := composables.UseToken(r.Context())
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			app := mustApp(r)
			authService := app.Service(services.AuthService{}).(*services.AuthService)
			p, err := authService.Profile(r.Context(), token)
			if err != nil {
				UpstreamError(w, r, errors.Wrap(err, "load profile"), "")
				return
			}
			ctx := composables.WithProfile(r.Context(), p)
			ctx = composables.WithAuthzViewState(ctx, authz.NewViewState(p.Role))
			if logger, err := composables.TryUseLogger(ctx); err == nil {
				ctx = composables.WithLogger(ctx, logger.WithField("username", p.Username))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EndSession clears the token cookie and the cached profile of the request.
func EndSession(w http.ResponseWriter, r *http.Request) {
	app := mustApp(r)
	if token, err := composables.UseToken(r.Context()); err == nil {
		app.Service(services.AuthService{}).(*services.AuthService).Forget(r.Context(), token)
	} else if token, ok := app.Sessions().Get(r); ok {
		app.Service(services.AuthService{}).(*services.AuthService).Forget(r.Context(), token)
	}
	app.Sessions().Clear(w)
}

// IsUnauthorized reports whether err means the session is no longer valid.
func IsUnauthorized(err error) bool {
	return errors.Is(err, apiclient.ErrUnauthorized) || errors.Is(err, composables.ErrNoToken)
}
