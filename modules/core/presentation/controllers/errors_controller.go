package controllers

import (
	"net/http"

	"github.com/ati-intranet/portal/components/layout"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/httpapi"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/middleware"
	"github.com/ati-intranet/portal/pkg/routing"
)

type ErrorHandlersOptions struct {
	Entrypoint    string
	AllowlistPath string
}

func classifier(opts []ErrorHandlersOptions) *routing.Classifier {
	var resolvedOpts ErrorHandlersOptions
	if len(opts) > 0 {
		resolvedOpts = opts[0]
	}
	rules, err := routing.LoadAllowlistOrDefault(resolvedOpts.AllowlistPath, resolvedOpts.Entrypoint)
	if err != nil {
		rules = nil
	}
	return routing.NewClassifier(rules)
}

func jsonError(w http.ResponseWriter, r *http.Request, status int, message string) {
	meta := map[string]string{
		"method": r.Method,
		"path":   r.URL.Path,
	}
	if requestID := composables.UseRequestID(r.Context()); requestID != "" {
		meta["request_id"] = requestID
	}
	_ = httpapi.WriteError(w, status, message, meta)
}

func handler404(w http.ResponseWriter, r *http.Request) {
	middleware.RenderError(w, r, layout.ErrorProps{
		Status:  http.StatusNotFound,
		Heading: intl.T(r.Context(), "Errors.PageNotFound"),
		Message: intl.T(r.Context(), "Errors.PageNotFoundMessage"),
	})
}

// NotFound renders the 404 page in the layout; api-class routes get JSON.
// A valid token cookie brings the sidebar along.
func NotFound(app application.Application, opts ...ErrorHandlersOptions) http.HandlerFunc {
	c := classifier(opts)
	page := middleware.Authorize()(
		middleware.ProvideLocalizer(app)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, err := composables.UseToken(r.Context()); err != nil {
					handler404(w, r)
					return
				}
				middleware.ProvideProfile()(middleware.NavItems()(http.HandlerFunc(handler404))).ServeHTTP(w, r)
			}),
		),
	)
	return func(w http.ResponseWriter, r *http.Request) {
		if c.ClassifyPath(r.URL.Path) == routing.RouteClassAPI {
			jsonError(w, r, http.StatusNotFound, "not found")
			return
		}
		page.ServeHTTP(w, r)
	}
}

func MethodNotAllowed(app application.Application, opts ...ErrorHandlersOptions) http.HandlerFunc {
	c := classifier(opts)
	page := middleware.ProvideLocalizer(app)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.RenderError(w, r, layout.ErrorProps{
			Status:  http.StatusMethodNotAllowed,
			Heading: intl.T(r.Context(), "Errors.MethodNotAllowed"),
		})
	}))
	return func(w http.ResponseWriter, r *http.Request) {
		if c.ClassifyPath(r.URL.Path) == routing.RouteClassAPI {
			jsonError(w, r, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		page.ServeHTTP(w, r)
	}
}
