package middleware

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-faster/errors"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/ati-intranet/portal/components/layout"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/htmx"
	"github.com/ati-intranet/portal/pkg/intl"
)

// UpstreamError turns an API failure into the page the user sees:
// 401 ends the session and goes to /login, 403 renders Access Denied,
// 404 renders notFound (or a generic heading), a transport failure renders
// 502 and anything else 500.
func UpstreamError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	ctx := r.Context()
	if errors.Is(err, context.Canceled) {
		return
	}
	if IsUnauthorized(err) {
		EndSession(w, r)
		redirectToLogin(w, r)
		return
	}

	logger, _ := composables.TryUseLogger(ctx)
	props := layout.ErrorProps{}
	switch {
	case errors.Is(err, apiclient.ErrForbidden):
		props.Status = http.StatusForbidden
		props.Heading = intl.T(ctx, "Errors.AccessDenied")
		props.Message = intl.T(ctx, "Errors.AccessDeniedMessage")
	case errors.Is(err, apiclient.ErrNotFound):
		props.Status = http.StatusNotFound
		props.Heading = notFound
		if props.Heading == "" {
			props.Heading = intl.T(ctx, "Errors.NotFound")
		}
	case errors.Is(err, apiclient.ErrUnavailable):
		props.Status = http.StatusBadGateway
		props.Heading = intl.T(ctx, "Errors.UnavailableTitle")
		props.Message = apiclient.ErrUnavailable.Localize(localizer(ctx))
	default:
		props.Status = http.StatusInternalServerError
		props.Heading = intl.T(ctx, "Errors.Internal")
		props.Message = intl.T(ctx, "Errors.RequestID", map[string]interface{}{"ID": composables.UseRequestID(ctx)})
	}
	if logger != nil {
		entry := logger.WithError(err).WithField("status", props.Status)
		if props.Status >= http.StatusInternalServerError {
			entry.Error("upstream request failed")
		} else {
			entry.Info("upstream request rejected")
		}
	}
	RenderError(w, r, props)
}

// Forbidden renders the Access Denied page for a role that lacks object/action.
func Forbidden(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	RenderError(w, r, layout.ErrorProps{
		Status:  http.StatusForbidden,
		Heading: intl.T(ctx, "Errors.AccessDenied"),
		Message: intl.T(ctx, "Errors.AccessDeniedMessage"),
	})
}

func RenderError(w http.ResponseWriter, r *http.Request, props layout.ErrorProps) {
	if htmx.IsHxRequest(r) {
		htmx.Retarget(w, "body")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(props.Status)
	templ.Handler(layout.ErrorPage(props)).ServeHTTP(w, r)
}

func localizer(ctx context.Context) *i18n.Localizer {
	l, _ := intl.UseLocalizer(ctx)
	return l
}
