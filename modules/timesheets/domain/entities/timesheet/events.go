package timesheet

import "github.com/ati-intranet/portal/pkg/types"

type CreatedEvent struct {
	Actor   string
	Result  Timesheet
	Entries int
}

// StatusChangedEvent follows a submit or approve call.
type StatusChangedEvent struct {
	Actor  string
	ID     types.ID
	Status string
}
