package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigationItemActive(t *testing.T) {
	home := NavigationItem{Href: "/"}
	leave := NavigationItem{Href: "/leave"}

	assert.True(t, home.Active("/"))
	assert.False(t, home.Active("/leave"))
	assert.True(t, leave.Active("/leave"))
	assert.True(t, leave.Active("/leave/approvals"))
	assert.False(t, leave.Active("/leaves"))
	assert.False(t, leave.Active("/"))
}
