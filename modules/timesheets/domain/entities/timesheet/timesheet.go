package timesheet

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ati-intranet/portal/pkg/constants"
	"github.com/ati-intranet/portal/pkg/types"
)

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
)

// DaysPerWeek is the width of the hours grid, Sunday first.
const DaysPerWeek = 7

var Weekdays = [DaysPerWeek]time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday,
}

type Timesheet struct {
	ID             types.ID `json:"id"`
	EmployeeID     types.ID `json:"employee_id"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Status         string   `json:"status"`
	SubmissionDate *string  `json:"submission_date"`
	Entries        []Entry  `json:"entries"`
}

func (t Timesheet) StatusKey() string {
	return strings.ToLower(strings.TrimSpace(t.Status))
}

func (t Timesheet) IsDraft() bool {
	return t.StatusKey() == StatusDraft
}

func (t Timesheet) IsSubmitted() bool {
	return t.StatusKey() == StatusSubmitted
}

// Submitted is the submission date, or "" while the timesheet is unsent.
func (t Timesheet) Submitted() string {
	if t.SubmissionDate == nil {
		return ""
	}
	return *t.SubmissionDate
}

type Entry struct {
	ID          types.ID        `json:"id"`
	ProjectID   types.ID        `json:"project_id"`
	EntryDate   string          `json:"entry_date"`
	StartTime   string          `json:"start_time"`
	EndTime     string          `json:"end_time"`
	HoursWorked decimal.Decimal `json:"hours_worked"`
	Notes       string          `json:"notes"`
}

// Day is the yyyy-mm-dd part of the entry date.
func (e Entry) Day() string {
	d := strings.TrimSpace(e.EntryDate)
	if len(d) > len(constants.DateLayout) {
		return d[:len(constants.DateLayout)]
	}
	return d
}

// ProjectOption is an entry of /timesheets/projects/all.
type ProjectOption struct {
	ID   types.ID `json:"id"`
	Name string   `json:"name"`
}

// WeekStart returns the Sunday starting the week of t, at midnight.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// WeekEnd is the last day of the week starting at start.
func WeekEnd(start time.Time) time.Time {
	return start.AddDate(0, 0, DaysPerWeek-1)
}

// DayGroup holds the entries booked on one date.
type DayGroup struct {
	Date    string
	Entries []Entry
	Total   decimal.Decimal
}

// GroupByDate buckets entries by date, dates ascending, keeping the API
// order inside a day.
func GroupByDate(entries []Entry) []DayGroup {
	index := map[string]int{}
	groups := make([]DayGroup, 0)
	for _, e := range entries {
		i, ok := index[e.Day()]
		if !ok {
			i = len(groups)
			index[e.Day()] = i
			groups = append(groups, DayGroup{Date: e.Day(), Total: decimal.Zero})
		}
		groups[i].Entries = append(groups[i].Entries, e)
		groups[i].Total = groups[i].Total.Add(e.HoursWorked)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Date < groups[j].Date })
	return groups
}

func TotalHours(entries []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.HoursWorked)
	}
	return total
}
