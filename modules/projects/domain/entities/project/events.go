package project

import (
	"github.com/go-faster/errors"
	"github.com/wI2L/jsondiff"

	"github.com/ati-intranet/portal/pkg/types"
)

type CreatedEvent struct {
	Actor  string
	Result Project
}

// UpdatedEvent carries the JSON patch an edit applied to a project.
type UpdatedEvent struct {
	Actor   string
	ID      types.ID
	Changes jsondiff.Patch
}

func NewUpdatedEvent(actor string, before, after Project) (*UpdatedEvent, error) {
	patch, err := jsondiff.Compare(before, after, jsondiff.Ignores("/created_at"))
	if err != nil {
		return nil, errors.Wrap(err, "diff project")
	}
	return &UpdatedEvent{Actor: actor, ID: after.ID, Changes: patch}, nil
}

func (e *UpdatedEvent) ChangedFields() []string {
	out := make([]string, 0, len(e.Changes))
	for _, op := range e.Changes {
		out = append(out, op.Path)
	}
	return out
}
