package leave

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/ati-intranet/portal/pkg/authz"
	"github.com/ati-intranet/portal/pkg/types"
)

var ApprovalsLink = types.NavigationItem{
	Name:        "NavigationLinks.LeaveApprovals",
	Href:        "/leave/approvals",
	AuthzObject: authz.ObjectLeaveApprovals,
	AuthzAction: "manage",
}

var LeaveLink = types.NavigationItem{
	Name:     "NavigationLinks.Leave",
	Icon:     icons.List(icons.Props{Size: "20"}),
	Href:     "/leave",
	Children: []types.NavigationItem{ApprovalsLink},
}

var NavItems = []types.NavigationItem{LeaveLink}
