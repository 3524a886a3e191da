package leave

import "github.com/ati-intranet/portal/pkg/types"

// DecidedEvent is published when an approver approves or rejects an application.
type DecidedEvent struct {
	Actor  string
	ID     types.ID
	Status string
}

// AppliedEvent is published after an application was accepted by the API.
type AppliedEvent struct {
	Actor  string
	Result Application
}
