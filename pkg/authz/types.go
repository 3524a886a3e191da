package authz

import (
	"strings"
)

const (
	rolePrefix            = "role"
	objectSeparator       = "."
	subjectSeparator      = ":"
	defaultActionWildcard = "*"
)

// Roles as reported by the upstream profile endpoint.
const (
	RoleAdmin    = "Admin"
	RoleHR       = "HR"
	RoleEmployee = "Employee"
)

// Objects guarded by the portal.
const (
	ObjectPortal            = "portal"
	ObjectEmployees         = "employees"
	ObjectLeaveApplications = "leave.applications"
	ObjectLeaveApprovals    = "leave.approvals"
	ObjectProjects          = "projects"
	ObjectHolidays          = "holidays"
	ObjectTimesheets        = "timesheets"
	ObjectLogs              = "logging.logs"
)

// Request encapsulates all parameters required to evaluate a Casbin rule.
type Request struct {
	Subject string
	Object  string
	Action  string
}

// NewRequest constructs a Request with normalized object and action.
func NewRequest(subject, object, action string) Request {
	return Request{
		Subject: subject,
		Object:  strings.ToLower(strings.TrimSpace(object)),
		Action:  NormalizeAction(action),
	}
}

// SubjectForRole returns the canonical subject for a profile role.
// Roles other than Admin and HR are treated as plain employees.
func SubjectForRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case strings.ToLower(RoleAdmin):
		return rolePrefix + subjectSeparator + "admin"
	case strings.ToLower(RoleHR):
		return rolePrefix + subjectSeparator + "hr"
	default:
		return rolePrefix + subjectSeparator + "employee"
	}
}

// ObjectName returns the canonical module.resource string, lowercased.
func ObjectName(module, resource string) string {
	module = strings.ToLower(strings.TrimSpace(module))
	resource = strings.ToLower(strings.TrimSpace(resource))
	if module == "" {
		module = "global"
	}
	if resource == "" {
		return module
	}
	return module + objectSeparator + resource
}

// NormalizeAction returns a normalized action string.
func NormalizeAction(action string) string {
	action = strings.ToLower(strings.TrimSpace(action))
	if action == "" {
		return defaultActionWildcard
	}
	return action
}

// CapabilityKey is the ViewState key for an object/action pair.
func CapabilityKey(object, action string) string {
	object = strings.ToLower(strings.TrimSpace(object))
	if object == "" {
		object = "global"
	}
	return object + objectSeparator + NormalizeAction(action)
}
