package employee

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ati-intranet/portal/pkg/types"
)

// Employee mirrors the /employees resource of the HR API.
type Employee struct {
	ID            types.ID `json:"id"`
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	Role          string   `json:"role"`
	EmailID       string   `json:"email_id"`
	PhoneNumber   string   `json:"phone_number"`
	DateOfBirth   string   `json:"date_of_birth"`
	DateOfJoining string   `json:"date_of_joining"`
	IsActive      bool     `json:"is_active"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Initials is the first letter of the first and last name.
func (e Employee) Initials() string {
	return firstRune(e.FirstName) + firstRune(e.LastName)
}

func firstRune(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r))
}

// Searchable reports whether the record has the fields search runs over.
func (e Employee) Searchable() bool {
	return e.FirstName != "" && e.LastName != "" && e.EmailID != ""
}

// Matches is a case-insensitive substring match of q over "first last email".
func (e Employee) Matches(q string) bool {
	if !e.Searchable() {
		return false
	}
	haystack := strings.ToLower(e.FirstName + " " + e.LastName + " " + e.EmailID)
	return strings.Contains(haystack, strings.ToLower(q))
}

// Search filters list by q. Records missing a first name, last name or email
// never match, even for an empty query.
func Search(list []Employee, q string) []Employee {
	q = strings.TrimSpace(q)
	out := make([]Employee, 0, len(list))
	for _, e := range list {
		if e.Matches(q) {
			out = append(out, e)
		}
	}
	return out
}
