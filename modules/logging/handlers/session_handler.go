package handlers

import (
	"github.com/ati-intranet/portal/modules/core/domain/entities/session"
	"github.com/ati-intranet/portal/modules/logging/domain/entities/actionlog"
)

func (h *AuditHandler) onSignedIn(ev *session.SignedInEvent) {
	l := actionlog.New(ev.Username, actionlog.ActionSignedIn, ev.Username, ev.UserAgent)
	l.IP = ev.IP
	if !ev.At.IsZero() {
		l.CreatedAt = ev.At
	}
	h.record(l)
}
