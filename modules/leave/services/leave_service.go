package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/go-faster/errors"

	"github.com/ati-intranet/portal/modules/leave/domain/entities/leave"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/eventbus"
	"github.com/ati-intranet/portal/pkg/types"
)

// ApplyDTO is the JSON body of POST /leave/apply.
type ApplyDTO struct {
	EmployeeID types.ID `json:"employee_id"`
	LeaveType  string   `json:"leave_type"`
	FromDate   string   `json:"from_date"`
	ToDate     string   `json:"to_date"`
	Comment    string   `json:"comment"`
}

type LeaveService struct {
	api       *apiclient.Client
	publisher eventbus.EventBus
}

func NewLeaveService(api *apiclient.Client, publisher eventbus.EventBus) *LeaveService {
	return &LeaveService{api: api, publisher: publisher}
}

func (s *LeaveService) Balances(ctx context.Context, employeeID types.ID) ([]leave.Balance, error) {
	return apiclient.GetList[leave.Balance](ctx, s.api, "/leave/balance/"+employeeID.PathSegment(), nil)
}

// Applications lists every application when all is set, otherwise only
// those of employeeID.
func (s *LeaveService) Applications(ctx context.Context, employeeID types.ID, all bool) ([]leave.Application, error) {
	var query url.Values
	if !all {
		query = url.Values{"employeeId": {employeeID.String()}}
	}
	return apiclient.GetList[leave.Application](ctx, s.api, "/leave/applications", query)
}

func (s *LeaveService) Apply(ctx context.Context, dto *ApplyDTO) (leave.Application, error) {
	var raw json.RawMessage
	if err := s.api.Post(ctx, "/leave/apply", dto, &raw); err != nil {
		return leave.Application{}, errors.Wrap(err, "apply for leave")
	}
	// The body only feeds the event; an unexpected shape is not a failure.
	var created leave.Application
	_ = json.Unmarshal(raw, &created)
	s.publish(&leave.AppliedEvent{Actor: actor(ctx), Result: created})
	return created, nil
}

func (s *LeaveService) Approve(ctx context.Context, id types.ID) error {
	return s.decide(ctx, id, "approve", leave.StatusApproved)
}

func (s *LeaveService) Reject(ctx context.Context, id types.ID) error {
	return s.decide(ctx, id, "reject", leave.StatusRejected)
}

func (s *LeaveService) decide(ctx context.Context, id types.ID, verb, status string) error {
	if err := s.api.Patch(ctx, fmt.Sprintf("/leave/%s/%s", id.PathSegment(), verb), nil, nil); err != nil {
		return errors.Wrapf(err, "%s leave %s", verb, id)
	}
	s.publish(&leave.DecidedEvent{Actor: actor(ctx), ID: id, Status: status})
	return nil
}

func (s *LeaveService) publish(ev any) {
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
