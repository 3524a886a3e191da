package leave

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ati-intranet/portal/pkg/types"
)

// Leave types accepted by POST /leave/apply.
const (
	TypeEarned  = "Earned"
	TypeHoliday = "Holiday"
	TypeUnpaid  = "UnPaid"
)

var Types = []string{TypeEarned, TypeHoliday, TypeUnpaid}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Balance struct {
	LeaveType    string          `json:"leave_type"`
	LeaveBalance decimal.Decimal `json:"leave_balance"`
}

type Application struct {
	ID          types.ID `json:"id"`
	EmployeeID  types.ID `json:"employee_id"`
	LeaveType   string   `json:"leave_type"`
	FromDate    string   `json:"from_date"`
	ToDate      string   `json:"to_date"`
	Status      string   `json:"status"`
	Comment     string   `json:"comment"`
	AppliedDate string   `json:"applied_date"`
}

func (a Application) StatusKey() string {
	return strings.ToLower(strings.TrimSpace(a.Status))
}

func (a Application) IsPending() bool {
	return a.StatusKey() == StatusPending
}

// Filter selects applications on the approvals page.
type Filter string

const (
	FilterPending  Filter = StatusPending
	FilterApproved Filter = StatusApproved
	FilterRejected Filter = StatusRejected
	FilterAll      Filter = "all"
)

var Filters = []Filter{FilterPending, FilterApproved, FilterRejected, FilterAll}

// ParseFilter maps a query value to a Filter; anything unknown is pending.
func ParseFilter(v string) Filter {
	f := Filter(strings.ToLower(strings.TrimSpace(v)))
	for _, known := range Filters {
		if f == known {
			return f
		}
	}
	return FilterPending
}

func (f Filter) Matches(a Application) bool {
	return f == FilterAll || a.StatusKey() == string(f)
}

func (f Filter) Apply(list []Application) []Application {
	out := make([]Application, 0, len(list))
	for _, a := range list {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}
