package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/components/layout"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/constants"
	"github.com/ati-intranet/portal/pkg/shared"
)

// ProvideFlash moves a pending flash notice from its cookie into the request context.
func ProvideFlash() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := composables.UseFlash(w, r, shared.FlashCookie)
			if err != nil || len(raw) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			var f layout.Flash
			if err := json.Unmarshal(raw, &f); err != nil || f.Message == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), constants.FlashKey, &f)))
		})
	}
}
