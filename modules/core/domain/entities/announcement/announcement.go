package announcement

import (
	"strings"

	"github.com/ati-intranet/portal/pkg/types"
)

type Announcement struct {
	ID        types.ID `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	Priority  string   `json:"priority"`
	CreatedAt string   `json:"created_at"`
}

// PriorityClass is the lower-cased priority, used to tint the card.
func (a Announcement) PriorityClass() string {
	return strings.ToLower(strings.TrimSpace(a.Priority))
}
