package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewStateResolveMemoizes(t *testing.T) {
	svc := newTestService(t, ModeEnforce)
	state := NewViewState(RoleHR)
	ctx := WithViewState(context.Background(), state)

	assert.Same(t, state, ViewStateFromContext(ctx))
	assert.True(t, state.Resolve(ctx, svc, ObjectEmployees, "list"))
	assert.False(t, state.Resolve(ctx, svc, ObjectTimesheets, "approve"))

	allowed, ok := state.CapabilityValue("employees.list")
	assert.True(t, ok)
	assert.True(t, allowed)
	assert.True(t, state.Capability("EMPLOYEES.LIST"))
}

func TestViewStateNil(t *testing.T) {
	var state *ViewState
	state.SetCapability("x.y", true)
	assert.False(t, state.Capability("x.y"))
	assert.Nil(t, ViewStateFromContext(context.Background()))
}
