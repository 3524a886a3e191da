package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/ati-intranet/portal/modules/projects/domain/entities/project"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/eventbus"
	"github.com/ati-intranet/portal/pkg/types"
)

// SaveDTO is the JSON body of POST /projects and PUT /projects/{id}.
type SaveDTO struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Status      string  `json:"status"`
}

type ProjectService struct {
	api       *apiclient.Client
	publisher eventbus.EventBus
}

func NewProjectService(api *apiclient.Client, publisher eventbus.EventBus) *ProjectService {
	return &ProjectService{api: api, publisher: publisher}
}

func (s *ProjectService) GetAll(ctx context.Context) ([]project.Project, error) {
	return apiclient.GetList[project.Project](ctx, s.api, "/projects", nil)
}

func (s *ProjectService) GetByID(ctx context.Context, id types.ID) (project.Project, error) {
	var p project.Project
	if err := s.api.Get(ctx, "/projects/"+id.PathSegment(), nil, &p); err != nil {
		return project.Project{}, errors.Wrapf(err, "get project %s", id)
	}
	return p, nil
}

func (s *ProjectService) Create(ctx context.Context, data *SaveDTO) (project.Project, error) {
	var created project.Project
	if err := s.api.Post(ctx, "/projects", data, &created); err != nil {
		return project.Project{}, errors.Wrap(err, "create project")
	}
	s.publish(&project.CreatedEvent{Actor: actor(ctx), Result: created})
	return created, nil
}

// Update stores data over before and publishes the resulting diff.
func (s *ProjectService) Update(ctx context.Context, before project.Project, data *SaveDTO) (project.Project, error) {
	var updated project.Project
	if err := s.api.Put(ctx, "/projects/"+before.ID.PathSegment(), data, &updated); err != nil {
		return project.Project{}, errors.Wrapf(err, "update project %s", before.ID)
	}
	if updated.ID.IsZero() {
		updated = before
		updated.Name = data.Name
		updated.Description = data.Description
		updated.StartDate = data.StartDate
		updated.EndDate = data.EndDate
		updated.Status = data.Status
	}
	ev, err := project.NewUpdatedEvent(actor(ctx), before, updated)
	if err != nil {
		if logger, lerr := composables.TryUseLogger(ctx); lerr == nil {
			logger.WithError(err).Warn("failed to diff project update")
		}
		return updated, nil
	}
	if len(ev.Changes) > 0 {
		s.publish(ev)
	}
	return updated, nil
}

func (s *ProjectService) publish(ev any) {
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
