package employee

import (
	"github.com/go-faster/errors"
	"github.com/wI2L/jsondiff"

	"github.com/ati-intranet/portal/pkg/types"
)

// CreatedEvent is published after the API accepted a new employee.
type CreatedEvent struct {
	Actor  string
	Result Employee
}

// UpdatedEvent carries the JSON patch between the record before and after an update.
type UpdatedEvent struct {
	Actor   string
	ID      types.ID
	Changes jsondiff.Patch
}

func NewUpdatedEvent(actor string, before, after Employee) (*UpdatedEvent, error) {
	patch, err := jsondiff.Compare(before, after)
	if err != nil {
		return nil, errors.Wrap(err, "diff employee")
	}
	return &UpdatedEvent{Actor: actor, ID: after.ID, Changes: patch}, nil
}

// ChangedFields lists the JSON pointers the update touched.
func (e *UpdatedEvent) ChangedFields() []string {
	out := make([]string, 0, len(e.Changes))
	for _, op := range e.Changes {
		out = append(out, op.Path)
	}
	return out
}
