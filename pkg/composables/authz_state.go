package composables

import (
	"context"

	"github.com/ati-intranet/portal/pkg/authz"
)

// UseAuthzViewState returns the authz.ViewState stored in the context, when available.
func UseAuthzViewState(ctx context.Context) *authz.ViewState {
	return authz.ViewStateFromContext(ctx)
}

// WithAuthzViewState attaches an authz.ViewState to the context.
func WithAuthzViewState(ctx context.Context, state *authz.ViewState) context.Context {
	return authz.WithViewState(ctx, state)
}

// CanAuthz resolves object/action for the signed-in profile. It is false when
// no profile or view state is bound to ctx.
func CanAuthz(ctx context.Context, object, action string) bool {
	state := authz.ViewStateFromContext(ctx)
	if state == nil {
		return false
	}
	return state.Resolve(ctx, authz.Use(), object, action)
}
