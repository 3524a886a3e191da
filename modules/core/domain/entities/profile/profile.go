package profile

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ati-intranet/portal/pkg/types"
)

// Profile is the signed-in user as reported by GET /auth/profile.
type Profile struct {
	ID         types.ID `json:"id"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	Role       string   `json:"role"`
	EmployeeID types.ID `json:"employee_id"`
}

// Initial is the upper-cased first letter of the username, used for the avatar badge.
func (p *Profile) Initial() string {
	name := strings.TrimSpace(p.Username)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

func (p *Profile) HasEmployee() bool {
	return !p.EmployeeID.IsZero()
}

// IsPrivileged reports whether the role is Admin or HR.
func (p *Profile) IsPrivileged() bool {
	return strings.EqualFold(p.Role, "Admin") || strings.EqualFold(p.Role, "HR")
}

func (p *Profile) IsAdmin() bool {
	return strings.EqualFold(p.Role, "Admin")
}

// OwnsEmployee reports whether id is the employee record linked to this profile.
func (p *Profile) OwnsEmployee(id types.ID) bool {
	return p.HasEmployee() && p.EmployeeID == id
}
