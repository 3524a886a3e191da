package authz

import (
	"context"
	"strings"
	"sync"
)

// ViewState records the capabilities resolved for the current request so
// templates can branch on them without re-running the enforcer.
type ViewState struct {
	Subject      string
	Role         string
	mu           sync.RWMutex
	capabilities map[string]bool
}

// NewViewState builds a ViewState for a profile role.
func NewViewState(role string) *ViewState {
	return &ViewState{
		Subject:      SubjectForRole(role),
		Role:         role,
		capabilities: map[string]bool{},
	}
}

// SetCapability stores a boolean flag (e.g. "employees.list") for later template use.
func (v *ViewState) SetCapability(name string, allowed bool) {
	if v == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.capabilities[normalizeCapabilityKey(name)] = allowed
}

// Capability reports whether a capability was previously recorded as allowed.
func (v *ViewState) Capability(name string) bool {
	allowed, ok := v.CapabilityValue(name)
	return ok && allowed
}

// CapabilityValue returns the stored capability flag and whether it exists.
func (v *ViewState) CapabilityValue(name string) (bool, bool) {
	if v == nil {
		return false, false
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	allowed, ok := v.capabilities[normalizeCapabilityKey(name)]
	return allowed, ok
}

// Resolve evaluates object/action with svc once and memoizes the result.
func (v *ViewState) Resolve(ctx context.Context, svc *Service, object, action string) bool {
	if v == nil || svc == nil {
		return false
	}
	key := CapabilityKey(object, action)
	if allowed, ok := v.CapabilityValue(key); ok {
		return allowed
	}
	allowed := svc.Can(ctx, v.Role, object, action)
	v.SetCapability(key, allowed)
	return allowed
}

func normalizeCapabilityKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type viewStateContextKey struct{}

// WithViewState stores the provided ViewState in the context.
func WithViewState(ctx context.Context, state *ViewState) context.Context {
	if state == nil {
		return ctx
	}
	return context.WithValue(ctx, viewStateContextKey{}, state)
}

// ViewStateFromContext retrieves the ViewState if present.
func ViewStateFromContext(ctx context.Context) *ViewState {
	if ctx == nil {
		return nil
	}
	if state, ok := ctx.Value(viewStateContextKey{}).(*ViewState); ok {
		return state
	}
	return nil
}
