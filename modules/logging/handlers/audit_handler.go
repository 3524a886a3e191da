package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ati-intranet/portal/modules/holidays/domain/entities/holiday"
	"github.com/ati-intranet/portal/modules/hrm/domain/entities/employee"
	"github.com/ati-intranet/portal/modules/jobs/domain/entities/job"
	"github.com/ati-intranet/portal/modules/leave/domain/entities/leave"
	"github.com/ati-intranet/portal/modules/logging/domain/entities/actionlog"
	"github.com/ati-intranet/portal/modules/logging/services"
	"github.com/ati-intranet/portal/modules/projects/domain/entities/project"
	"github.com/ati-intranet/portal/modules/timesheets/domain/entities/timesheet"
	"github.com/ati-intranet/portal/pkg/application"
)

const recordTimeout = 2 * time.Second

// AuditHandler turns domain events of the other modules into action log entries.
type AuditHandler struct {
	service *services.LogsService
	logger  *logrus.Logger
}

func NewAuditHandler(service *services.LogsService, logger *logrus.Logger) *AuditHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AuditHandler{service: service, logger: logger}
}

// RegisterEventHandlers subscribes the audit handler to app's event bus.
func RegisterEventHandlers(app application.Application) *AuditHandler {
	h := NewAuditHandler(app.Service(services.LogsService{}).(*services.LogsService), app.Logger())
	bus := app.EventPublisher()
	bus.Subscribe(h.onSignedIn)
	bus.Subscribe(h.onEmployeeCreated)
	bus.Subscribe(h.onEmployeeUpdated)
	bus.Subscribe(h.onLeaveApplied)
	bus.Subscribe(h.onLeaveDecided)
	bus.Subscribe(h.onTimesheetCreated)
	bus.Subscribe(h.onTimesheetStatusChanged)
	bus.Subscribe(h.onProjectCreated)
	bus.Subscribe(h.onProjectUpdated)
	bus.Subscribe(h.onCandidateReferred)
	bus.Subscribe(h.onHolidaysAdded)
	return h
}

func (h *AuditHandler) record(l *actionlog.ActionLog) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := h.service.Record(ctx, l); err != nil {
		h.logger.WithError(err).
			WithField("action", l.Action).
			WithField("actor", l.Actor).
			Warn("failed to persist action log")
	}
}

// changed renders JSON pointers such as "/end_date" as "end_date, status".
func changed(paths []string) string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, strings.TrimPrefix(p, "/"))
	}
	return strings.Join(out, ", ")
}

func (h *AuditHandler) onEmployeeCreated(ev *employee.CreatedEvent) {
	h.record(actionlog.New(ev.Actor, actionlog.ActionEmployeeCreated,
		fmt.Sprintf("employee #%s", ev.Result.ID), ev.Result.FullName()))
}

func (h *AuditHandler) onEmployeeUpdated(ev *employee.UpdatedEvent) {
	h.record(actionlog.New(ev.Actor, actionlog.ActionEmployeeUpdated,
		fmt.Sprintf("employee #%s", ev.ID), changed(ev.ChangedFields())))
}

func (h *AuditHandler) onLeaveApplied(ev *leave.AppliedEvent) {
	a := ev.Result
	h.record(actionlog.New(ev.Actor, actionlog.ActionLeaveApplied,
		fmt.Sprintf("leave application #%s", a.ID),
		fmt.Sprintf("%s leave from %s to %s", a.LeaveType, a.FromDate, a.ToDate)))
}

func (h *AuditHandler) onLeaveDecided(ev *leave.DecidedEvent) {
	h.record(actionlog.New(ev.Actor, actionlog.ActionLeaveDecided,
		fmt.Sprintf("leave application #%s", ev.ID), ev.Status))
}

func (h *AuditHandler) onTimesheetCreated(ev *timesheet.CreatedEvent) {
	ts := ev.Result
	h.record(actionlog.New(ev.Actor, actionlog.ActionTimesheetCreated,
		fmt.Sprintf("timesheet #%s", ts.ID),
		fmt.Sprintf("week %s to %s, %d entries", ts.StartDate, ts.EndDate, ev.Entries)))
}

func (h *AuditHandler) onTimesheetStatusChanged(ev *timesheet.StatusChangedEvent) {
	h.record(actionlog.New(ev.Actor, actionlog.ActionTimesheetStatusChanged,
		fmt.Sprintf("timesheet #%s", ev.ID), ev.Status))
}

func (h *AuditHandler) onProjectCreated(ev *project.CreatedEvent) {
	h.record(actionlog.New(ev.Actor, actionlog.ActionProjectCreated,
		fmt.Sprintf("project #%s", ev.Result.ID), ev.Result.Name))
}

func (h *AuditHandler) onProjectUpdated(ev *project.UpdatedEvent) {
	h.record(actionlog.New(ev.Actor, actionlog.ActionProjectUpdated,
		fmt.Sprintf("project #%s", ev.ID), changed(ev.ChangedFields())))
}

func (h *AuditHandler) onCandidateReferred(ev *job.ReferredEvent) {
	r := ev.Referral
	h.record(actionlog.New(ev.Actor, actionlog.ActionCandidateReferred,
		fmt.Sprintf("job opening #%s", r.JobOpeningID),
		fmt.Sprintf("%s <%s>", r.CandidateName, r.CandidateEmail)))
}

func (h *AuditHandler) onHolidaysAdded(ev *holiday.AddedEvent) {
	h.record(actionlog.New(ev.Actor, actionlog.ActionHolidaysAdded,
		fmt.Sprintf("holidays %d", ev.Year), fmt.Sprintf("%d holidays", len(ev.Holidays))))
}
