package services

import (
	"context"
	"strings"

	"github.com/go-faster/errors"

	"github.com/ati-intranet/portal/modules/hrm/domain/entities/employee"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/eventbus"
	"github.com/ati-intranet/portal/pkg/types"
)

// CreateDTO is the JSON body of POST /employees.
type CreateDTO struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DateOfBirth   string `json:"date_of_birth"`
	EmailID       string `json:"email_id"`
	PhoneNumber   string `json:"phone_number"`
	Role          string `json:"role"`
	DateOfJoining string `json:"date_of_joining"`
	IsActive      bool   `json:"is_active"`
}

type EmployeeService struct {
	api       *apiclient.Client
	publisher eventbus.EventBus
}

func NewEmployeeService(api *apiclient.Client, publisher eventbus.EventBus) *EmployeeService {
	return &EmployeeService{api: api, publisher: publisher}
}

func (s *EmployeeService) GetAll(ctx context.Context) ([]employee.Employee, error) {
	return apiclient.GetList[employee.Employee](ctx, s.api, "/employees", nil)
}

// Search lists employees matching q; see employee.Search.
func (s *EmployeeService) Search(ctx context.Context, q string) ([]employee.Employee, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return employee.Search(all, q), nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id types.ID) (employee.Employee, error) {
	var e employee.Employee
	if err := s.api.Get(ctx, "/employees/"+id.PathSegment(), nil, &e); err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

func (s *EmployeeService) Create(ctx context.Context, data *CreateDTO) error {
	var created employee.Employee
	if err := s.api.Post(ctx, "/employees", data, &created); err != nil {
		return errors.Wrap(err, "create employee")
	}
	s.publish(&employee.CreatedEvent{Actor: actor(ctx), Result: created})
	return nil
}

// Update replaces the record with after and returns what the API stored.
// The difference to before is published as an employee.UpdatedEvent.
func (s *EmployeeService) Update(ctx context.Context, before, after employee.Employee) (employee.Employee, error) {
	var updated employee.Employee
	if err := s.api.Put(ctx, "/employees/"+before.ID.PathSegment(), after, &updated); err != nil {
		return employee.Employee{}, errors.Wrap(err, "update employee")
	}
	if updated.ID.IsZero() {
		updated = after
	}
	ev, err := employee.NewUpdatedEvent(actor(ctx), before, updated)
	if err != nil {
		if logger, lerr := composables.TryUseLogger(ctx); lerr == nil {
			logger.WithError(err).Warn("failed to diff employee update")
		}
		return updated, nil
	}
	if len(ev.Changes) > 0 {
		s.publish(ev)
	}
	return updated, nil
}

func (s *EmployeeService) publish(ev any) {
	if s.publisher != nil {
		s.publisher.Publish(ev)
	}
}

func actor(ctx context.Context) string {
	if p, err := composables.UseProfile(ctx); err == nil {
		return p.Username
	}
	return ""
}

// Lookup finds employees for the spotlight by name or email.
func (s *EmployeeService) Lookup(ctx context.Context, q string, limit int) ([]employee.Employee, error) {
	if strings.TrimSpace(q) == "" {
		return nil, nil
	}
	found, err := s.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}
