package hrm

import (
	"context"

	icons "github.com/iota-uz/icons/phosphor"

	"github.com/ati-intranet/portal/modules/hrm/services"
	"github.com/ati-intranet/portal/pkg/authz"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/spotlight"
)

const spotlightEmployees = 5

// employeeDataSource offers matching employee records in the spotlight to
// users who may list employees.
type employeeDataSource struct {
	service *services.EmployeeService
}

func (d *employeeDataSource) Find(ctx context.Context, q string) []spotlight.Item {
	if !composables.CanAuthz(ctx, authz.ObjectEmployees, "list") {
		return nil
	}
	found, err := d.service.Lookup(ctx, q, spotlightEmployees)
	if err != nil {
		if logger, lerr := composables.TryUseLogger(ctx); lerr == nil {
			logger.WithError(err).Warn("spotlight employee lookup failed")
		}
		return nil
	}
	items := make([]spotlight.Item, 0, len(found))
	for _, e := range found {
		items = append(items, spotlight.NewItem(
			icons.UserCircle(icons.Props{Size: "20"}),
			e.FullName(),
			"/employees/"+e.ID.PathSegment(),
		))
	}
	return items
}
