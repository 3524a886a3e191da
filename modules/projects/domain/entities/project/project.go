package project

import (
	"strings"

	"github.com/ati-intranet/portal/pkg/types"
)

// Statuses offered when a project is created. Editing uses EditStatuses,
// which is what the API stores once a project exists.
var (
	CreateStatuses = []string{"active", "completed"}
	EditStatuses   = []string{"Active", "Completed", "On Hold"}
)

type Project struct {
	ID          types.ID `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	StartDate   string   `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// End is the end date, or "" for an ongoing project.
func (p Project) End() string {
	if p.EndDate == nil {
		return ""
	}
	return strings.TrimSpace(*p.EndDate)
}

// StatusClass is the status as a css class: "On Hold" becomes "on-hold".
func (p Project) StatusClass() string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(p.Status)), " ", "-")
}

// OptionalDate maps a blank form date to a JSON null.
func OptionalDate(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
