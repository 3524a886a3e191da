package actionlog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Action names a portal operation worth auditing, e.g. "leave.decided".
type Action string

const (
	ActionSignedIn               Action = "session.signed_in"
	ActionEmployeeCreated        Action = "employee.created"
	ActionEmployeeUpdated        Action = "employee.updated"
	ActionLeaveApplied           Action = "leave.applied"
	ActionLeaveDecided           Action = "leave.decided"
	ActionTimesheetCreated       Action = "timesheet.created"
	ActionTimesheetStatusChanged Action = "timesheet.status_changed"
	ActionProjectCreated         Action = "project.created"
	ActionProjectUpdated         Action = "project.updated"
	ActionCandidateReferred      Action = "job.referred"
	ActionHolidaysAdded          Action = "holidays.added"
)

// Actions lists every known action in the order the filter offers them.
var Actions = []Action{
	ActionSignedIn,
	ActionEmployeeCreated,
	ActionEmployeeUpdated,
	ActionLeaveApplied,
	ActionLeaveDecided,
	ActionTimesheetCreated,
	ActionTimesheetStatusChanged,
	ActionProjectCreated,
	ActionProjectUpdated,
	ActionCandidateReferred,
	ActionHolidaysAdded,
}

func (a Action) Valid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

// LocaleKey maps "timesheet.status_changed" to "Logs.Actions.TimesheetStatusChanged".
func (a Action) LocaleKey() string {
	parts := strings.FieldsFunc(string(a), func(r rune) bool { return r == '.' || r == '_' })
	var b strings.Builder
	b.WriteString("Logs.Actions.")
	for _, p := range parts {
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return b.String()
}

type ActionLog struct {
	ID        uuid.UUID `json:"id"`
	Actor     string    `json:"actor"`
	Action    Action    `json:"action"`
	Subject   string    `json:"subject"`
	Details   string    `json:"details,omitempty"`
	IP        string    `json:"ip,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func New(actor string, action Action, subject, details string) *ActionLog {
	return &ActionLog{
		ID:        uuid.New(),
		Actor:     actor,
		Action:    action,
		Subject:   subject,
		Details:   details,
		CreatedAt: time.Now(),
	}
}

type FindParams struct {
	Actor  string
	Action Action
	Limit  int
	Offset int
}

// Matches reports whether l passes the actor and action filters of p.
// Actor matching ignores case.
func (p *FindParams) Matches(l *ActionLog) bool {
	if p == nil {
		return true
	}
	if p.Actor != "" && !strings.EqualFold(strings.TrimSpace(p.Actor), l.Actor) {
		return false
	}
	if p.Action != "" && p.Action != l.Action {
		return false
	}
	return true
}

// Page filters logs, which must be ordered newest first, and applies
// p's offset and limit. The total number of matches is returned alongside.
func (p *FindParams) Page(logs []*ActionLog) ([]*ActionLog, int64) {
	matched := make([]*ActionLog, 0, len(logs))
	for _, l := range logs {
		if p.Matches(l) {
			matched = append(matched, l)
		}
	}
	total := int64(len(matched))
	if p == nil {
		return matched, total
	}
	if p.Offset > 0 {
		if p.Offset >= len(matched) {
			return []*ActionLog{}, total
		}
		matched = matched[p.Offset:]
	}
	if p.Limit > 0 && p.Limit < len(matched) {
		matched = matched[:p.Limit]
	}
	return matched, total
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*ActionLog, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	Create(ctx context.Context, log *ActionLog) error
}
