package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/ati-intranet/portal/modules/jobs/domain/entities/job"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/eventbus"
	"github.com/ati-intranet/portal/pkg/types"
)

type JobService struct {
	api       *apiclient.Client
	publisher eventbus.EventBus
}

func NewJobService(api *apiclient.Client, publisher eventbus.EventBus) *JobService {
	return &JobService{api: api, publisher: publisher}
}

func (s *JobService) Openings(ctx context.Context) ([]job.Opening, error) {
	return apiclient.GetList[job.Opening](ctx, s.api, "/jobs/openings", nil)
}

func (s *JobService) GetByID(ctx context.Context, id types.ID) (job.Opening, error) {
	var o job.Opening
	if err := s.api.Get(ctx, "/jobs/"+id.PathSegment(), nil, &o); err != nil {
		return job.Opening{}, errors.Wrapf(err, "get job opening %s", id)
	}
	return o, nil
}

// Refer submits a candidate. The response body is ignored.
func (s *JobService) Refer(ctx context.Context, r *job.Referral) error {
	if err := s.api.Post(ctx, "/jobs/refer", r, nil); err != nil {
		return errors.Wrap(err, "submit referral")
	}
	if s.publisher != nil {
		ev := &job.ReferredEvent{Referral: *r}
		if p, err := composables.UseProfile(ctx); err == nil {
			ev.Actor = p.Username
		}
		s.publisher.Publish(ev)
	}
	return nil
}
