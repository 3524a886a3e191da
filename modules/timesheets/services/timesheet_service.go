package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"

	"github.com/ati-intranet/portal/modules/timesheets/domain/entities/timesheet"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/constants"
	"github.com/ati-intranet/portal/pkg/eventbus"
	"github.com/ati-intranet/portal/pkg/types"
)

var ErrMissingID = errors.New("created timesheet has no id")

type createRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type TimesheetService struct {
	api       *apiclient.Client
	publisher eventbus.EventBus
}

func NewTimesheetService(api *apiclient.Client, publisher eventbus.EventBus) *TimesheetService {
	return &TimesheetService{api: api, publisher: publisher}
}

func (s *TimesheetService) GetAll(ctx context.Context) ([]timesheet.Timesheet, error) {
	return apiclient.GetList[timesheet.Timesheet](ctx, s.api, "/timesheets", nil)
}

func (s *TimesheetService) Projects(ctx context.Context) ([]timesheet.ProjectOption, error) {
	return apiclient.GetList[timesheet.ProjectOption](ctx, s.api, "/timesheets/projects/all", nil)
}

func (s *TimesheetService) GetByID(ctx context.Context, id types.ID) (timesheet.Timesheet, error) {
	var ts timesheet.Timesheet
	if err := s.api.Get(ctx, "/timesheets/"+id.PathSegment(), nil, &ts); err != nil {
		return timesheet.Timesheet{}, errors.Wrapf(err, "get timesheet %s", id)
	}
	return ts, nil
}

// Create opens the week starting at start and books the grid into it, one
// entry call per project and day. Entries are posted in order and the first
// failure stops the rest.
func (s *TimesheetService) Create(ctx context.Context, start time.Time, grid timesheet.Grid) (timesheet.Timesheet, error) {
	body := createRequest{
		StartDate: start.Format(constants.DateLayout),
		EndDate:   timesheet.WeekEnd(start).Format(constants.DateLayout),
	}
	var created timesheet.Timesheet
	if err := s.api.Post(ctx, "/timesheets", body, &created); err != nil {
		return timesheet.Timesheet{}, errors.Wrap(err, "create timesheet")
	}
	if created.ID.IsZero() {
		return timesheet.Timesheet{}, ErrMissingID
	}
	entries := grid.Entries(created.ID, start)
	for _, e := range entries {
		if err := s.api.Post(ctx, "/timesheets/entries", e, nil); err != nil {
			return created, errors.Wrapf(err, "add entry for %s", e.EntryDate)
		}
	}
	s.publish(&timesheet.CreatedEvent{Actor: actor(ctx), Result: created, Entries: len(entries)})
	return created, nil
}

func (s *TimesheetService) Submit(ctx context.Context, id types.ID) error {
	return s.transition(ctx, id, "submit", timesheet.StatusSubmitted)
}

func (s *TimesheetService) Approve(ctx context.Context, id types.ID) error {
	return s.transition(ctx, id, "approve", timesheet.StatusApproved)
}

func (s *TimesheetService) transition(ctx context.Context, id types.ID, verb, status string) error {
	if err := s.api.Patch(ctx, fmt.Sprintf("/timesheets/%s/%s", id.PathSegment(), verb), nil, nil); err != nil {
		return errors.Wrapf(err, "%s timesheet %s", verb, id)
	}
	s.publish(&timesheet.StatusChangedEvent{Actor: actor(ctx), ID: id, Status: status})
	return nil
}

func (s *TimesheetService) publish(ev any) {
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
