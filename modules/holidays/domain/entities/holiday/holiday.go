package holiday

import (
	"sort"
	"strings"
	"time"

	"github.com/ati-intranet/portal/pkg/constants"
	"github.com/ati-intranet/portal/pkg/types"
)

// AllClients selects every client in the calendar filter.
const AllClients = "all"

type Holiday struct {
	ID       types.ID `json:"id,omitempty"`
	Year     int      `json:"year"`
	Client   string   `json:"client"`
	Date     string   `json:"date"`
	Occasion string   `json:"occasion"`
}

// Day parses the calendar date, ignoring any time part the API appends.
func (h Holiday) Day() (time.Time, bool) {
	v := strings.TrimSpace(h.Date)
	if len(v) > len(constants.DateLayout) {
		v = v[:len(constants.DateLayout)]
	}
	t, err := time.Parse(constants.DateLayout, v)
	return t, err == nil
}

// Clients returns the distinct non-blank clients, sorted.
func Clients(list []Holiday) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, h := range list {
		if h.Client == "" || seen[h.Client] {
			continue
		}
		seen[h.Client] = true
		out = append(out, h.Client)
	}
	sort.Strings(out)
	return out
}

// ByClient keeps the holidays of client. AllClients and "" keep everything.
func ByClient(list []Holiday, client string) []Holiday {
	if client == "" || client == AllClients {
		return list
	}
	out := make([]Holiday, 0, len(list))
	for _, h := range list {
		if h.Client == client {
			out = append(out, h)
		}
	}
	return out
}

type Entry struct {
	Holiday
	On time.Time
}

type MonthGroup struct {
	Month   time.Month
	Entries []Entry
}

// GroupByMonth buckets holidays by month in calendar order, each month
// sorted by day. Holidays with an unreadable date are left out.
func GroupByMonth(list []Holiday) []MonthGroup {
	byMonth := map[time.Month][]Entry{}
	for _, h := range list {
		d, ok := h.Day()
		if !ok {
			continue
		}
		byMonth[d.Month()] = append(byMonth[d.Month()], Entry{Holiday: h, On: d})
	}
	out := make([]MonthGroup, 0, len(byMonth))
	for m := time.January; m <= time.December; m++ {
		entries, ok := byMonth[m]
		if !ok {
			continue
		}
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].On.Before(entries[j].On) })
		out = append(out, MonthGroup{Month: m, Entries: entries})
	}
	return out
}

// Years lists the years offered by the calendar and bulk-add selectors.
func Years(current int) []int {
	out := make([]int, 0, 5)
	for y := current - 1; y <= current+3; y++ {
		out = append(out, y)
	}
	return out
}

// AddedEvent is published after a batch of holidays was stored.
type AddedEvent struct {
	Actor    string
	Year     int
	Holidays []Holiday
}

// Weekday is the short English weekday name, e.g. "Thu".
func (e Entry) Weekday() string {
	return e.On.Weekday().String()[:3]
}
