package layout

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/ati-intranet/portal/internal/assets"
	"github.com/ati-intranet/portal/pkg/constants"
)

var iconSet = map[string]func(icons.Props) templ.Component{
	"gauge":            icons.Gauge,
	"users":            icons.Users,
	"users-three":      icons.UsersThree,
	"user-circle":      icons.UserCircle,
	"buildings":        icons.Buildings,
	"list":             icons.List,
	"warning":          icons.Warning,
	"plus-circle":      icons.PlusCircle,
	"magnifying-glass": icons.MagnifyingGlass,
	"tree-structure":   icons.TreeStructure,
	"puzzle-piece":     icons.PuzzlePiece,
}

func iconComponent(name, size string) templ.Component {
	ctor, ok := iconSet[name]
	if !ok {
		return templ.NopComponent
	}
	if size == "" {
		size = "20"
	}
	return ctor(icons.Props{Size: size})
}

// Icon renders a named icon for use inside html/template pages.
func Icon(name string, size ...string) template.HTML {
	s := ""
	if len(size) > 0 {
		s = size[0]
	}
	h, err := templ.ToGoHTML(context.Background(), iconComponent(name, s))
	if err != nil {
		return ""
	}
	return h
}

// FormatDate renders an API date ("2024-03-01" or RFC 3339) as 3/1/2024.
// Blank or unparsable input renders as "N/A".
func FormatDate(v string) string {
	t, ok := ParseDate(v)
	if !ok {
		return "N/A"
	}
	return t.Format(constants.DisplayDateLayout)
}

// ParseDate accepts the date shapes the HR API emits.
func ParseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", constants.DateLayout} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	if len(v) >= 10 {
		if t, err := time.Parse(constants.DateLayout, v[:10]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// InputDate renders an API date for an <input type="date">.
func InputDate(v string) string {
	t, ok := ParseDate(v)
	if !ok {
		return ""
	}
	return t.Format(constants.DateLayout)
}

func orNA(v any) string {
	s := strings.TrimSpace(fmt.Sprint(v))
	if v == nil || s == "" || s == "<nil>" {
		return "N/A"
	}
	return s
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		out[k] = pairs[i+1]
	}
	return out, nil
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// cls merges tailwind class lists; non-string arguments (the false of a
// failed {{and}}) are skipped.
func cls(classes ...any) string {
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		if s, ok := c.(string); ok && s != "" {
			parts = append(parts, s)
		}
	}
	return twmerge.Merge(parts...)
}

func activeClass(active bool) string {
	if active {
		return "active"
	}
	return ""
}

func flashClass(f *Flash) string {
	if f.IsError() {
		return cls("flash mb-4 rounded-md px-4 py-3 text-sm", "bg-red-50 text-red-700 border border-red-200")
	}
	return cls("flash mb-4 rounded-md px-4 py-3 text-sm", "bg-green-50 text-green-700 border border-green-200")
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"cls":       cls,
		"icon":      Icon,
		"date":      FormatDate,
		"inputDate": InputDate,
		"orNA":      orNA,
		"asset":     assets.Path,
		"dict":      dict,
		"seq":       seq,
		"add":       func(a, b int) int { return a + b },
		"lower":     strings.ToLower,
		"upper":     strings.ToUpper,
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
	}
}
