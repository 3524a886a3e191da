package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ati-intranet/portal/modules/core/domain/entities/profile"
	"github.com/ati-intranet/portal/modules/hrm/domain/entities/employee"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/eventbus"
	"github.com/ati-intranet/portal/pkg/itf"
)

func newService(t *testing.T) (*EmployeeService, *itf.Upstream, eventbus.EventBus) {
	t.Helper()
	up := itf.NewUpstream(t)
	c, err := apiclient.New(apiclient.Options{BaseURL: up.URL(), Timeout: time.Second})
	require.NoError(t, err)
	bus := eventbus.NewEventPublisher(nil)
	return NewEmployeeService(c, bus), up, bus
}

func TestEmployeeService_Search(t *testing.T) {
	svc, up, _ := newService(t)
	up.JSON(http.MethodGet, "/employees", http.StatusOK, []employee.Employee{
		{ID: "1", FirstName: "Ada", LastName: "Lovelace", EmailID: "ada@ati.test"},
		{ID: "2", FirstName: "Alan", LastName: "Turing", EmailID: "alan@ati.test"},
	})

	found, err := svc.Search(context.Background(), "turing")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.EqualValues(t, "2", found[0].ID)

	limited, err := svc.Lookup(context.Background(), "ati", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestEmployeeService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.GetByID(context.Background(), "99")
	assert.ErrorIs(t, err, apiclient.ErrNotFound)
}

func TestEmployeeService_UpdatePublishesDiff(t *testing.T) {
	svc, up, bus := newService(t)
	before := employee.Employee{ID: "3", FirstName: "Ada", LastName: "Lovelace", Role: "Engineer", IsActive: true}
	after := before
	after.Role = "Lead"
	up.JSON(http.MethodPut, "/employees/3", http.StatusOK, after)

	var got *employee.UpdatedEvent
	bus.Subscribe(func(ev *employee.UpdatedEvent) { got = ev })

	ctx := composables.WithProfile(context.Background(), &profile.Profile{Username: "hr-user", Role: "HR"})
	updated, err := svc.Update(ctx, before, after)
	require.NoError(t, err)
	assert.Equal(t, "Lead", updated.Role)

	require.NotNil(t, got)
	assert.Equal(t, "hr-user", got.Actor)
	assert.Equal(t, []string{"/role"}, got.ChangedFields())

	var sent employee.Employee
	up.Last(t, http.MethodPut, "/employees/3").JSON(t, &sent)
	assert.Equal(t, after, sent)
}

func TestEmployeeService_UpdateFailure(t *testing.T) {
	svc, up, bus := newService(t)
	up.JSON(http.MethodPut, "/employees/3", http.StatusBadRequest, map[string]string{"message": "bad"})
	bus.Subscribe(func(ev *employee.UpdatedEvent) { t.Error("no event expected") })

	_, err := svc.Update(context.Background(), employee.Employee{ID: "3"}, employee.Employee{ID: "3", Role: "x"})
	require.Error(t, err)
}
