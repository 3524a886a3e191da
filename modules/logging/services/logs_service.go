package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/ati-intranet/portal/modules/logging/domain/entities/actionlog"
)

type LogsService struct {
	repo actionlog.Repository
}

func NewLogsService(repo actionlog.Repository) *LogsService {
	return &LogsService{repo: repo}
}

// List returns one page of entries, newest first, and the number of entries
// matching params overall.
func (s *LogsService) List(ctx context.Context, params *actionlog.FindParams) ([]*actionlog.ActionLog, int64, error) {
	if params == nil {
		params = &actionlog.FindParams{}
	}
	logs, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list action logs")
	}
	count, err := s.repo.Count(ctx, params)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count action logs")
	}
	return logs, count, nil
}

func (s *LogsService) Record(ctx context.Context, log *actionlog.ActionLog) error {
	if log == nil {
		return errors.New("action log payload is required")
	}
	if !log.Action.Valid() {
		return errors.Errorf("unknown action %q", log.Action)
	}
	return s.repo.Create(ctx, log)
}
