package authz

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, mode Mode) *Service {
	t.Helper()
	svc, err := NewService(Config{FlagProvider: StaticFlags(mode)})
	require.NoError(t, err)
	return svc
}

func TestServiceRoleMatrix(t *testing.T) {
	svc := newTestService(t, ModeEnforce)
	ctx := context.Background()

	tests := []struct {
		role   string
		object string
		action string
		want   bool
	}{
		{RoleEmployee, ObjectPortal, "view", true},
		{RoleEmployee, ObjectEmployees, "list", false},
		{RoleEmployee, ObjectEmployees, "view", true},
		{RoleEmployee, ObjectLeaveApprovals, "manage", false},
		{RoleEmployee, ObjectTimesheets, "approve", false},
		{RoleHR, ObjectEmployees, "list", true},
		{RoleHR, ObjectEmployees, "create", true},
		{RoleHR, ObjectLeaveApplications, "list_all", true},
		{RoleHR, ObjectLeaveApprovals, "manage", true},
		{RoleHR, ObjectProjects, "manage", true},
		{RoleHR, ObjectHolidays, "manage", true},
		{RoleHR, ObjectTimesheets, "approve", false},
		{RoleHR, ObjectPortal, "view", true},
		{RoleAdmin, ObjectTimesheets, "approve", true},
		{RoleAdmin, ObjectEmployees, "list", true},
		{"Contractor", ObjectHolidays, "manage", false},
	}
	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.object+"/"+tt.action, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Can(ctx, tt.role, tt.object, tt.action))
		})
	}
}

func TestServiceAuthorizeDenied(t *testing.T) {
	svc := newTestService(t, ModeEnforce)
	err := svc.Authorize(context.Background(), NewRequest(SubjectForRole(RoleEmployee), ObjectProjects, "manage"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestServiceAuthorizeShadowMode(t *testing.T) {
	svc := newTestService(t, ModeShadow)
	require.NoError(t, svc.Authorize(context.Background(), NewRequest(SubjectForRole(RoleEmployee), ObjectProjects, "manage")))
}

func TestServiceMode(t *testing.T) {
	svc := newTestService(t, ModeDisabled)
	assert.Equal(t, ModeDisabled, svc.Mode())
	assert.True(t, svc.Can(context.Background(), RoleEmployee, ObjectTimesheets, "approve"))
}

func TestFileFlagProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.yaml")

	provider := NewFileFlagProvider(path, ModeEnforce)
	assert.Equal(t, ModeEnforce, provider.Mode())

	require.NoError(t, os.WriteFile(path, []byte("mode: shadow\n"), 0o644))
	assert.Equal(t, ModeShadow, provider.Mode())

	require.NoError(t, os.Remove(path))
	assert.Equal(t, ModeShadow, provider.Mode(), "last known mode survives a missing file")
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeShadow, ParseMode(" Shadow "))
	assert.Equal(t, ModeDisabled, ParseMode("disabled"))
	assert.Equal(t, ModeEnforce, ParseMode("strict"))
	assert.Equal(t, ModeEnforce, ParseMode(""))
}
