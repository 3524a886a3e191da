package modules

import (
	"github.com/ati-intranet/portal/modules/core"
	"github.com/ati-intranet/portal/modules/documents"
	"github.com/ati-intranet/portal/modules/holidays"
	"github.com/ati-intranet/portal/modules/hrm"
	"github.com/ati-intranet/portal/modules/jobs"
	"github.com/ati-intranet/portal/modules/leave"
	"github.com/ati-intranet/portal/modules/logging"
	"github.com/ati-intranet/portal/modules/projects"
	"github.com/ati-intranet/portal/modules/timesheets"
	"github.com/ati-intranet/portal/pkg/application"
)

// BuiltInModules in sidebar order. Every module registers its own navigation.
var BuiltInModules = []application.Module{
	core.NewModule(),
	hrm.NewModule(),
	leave.NewModule(),
	timesheets.NewModule(),
	projects.NewModule(),
	jobs.NewModule(),
	holidays.NewModule(),
	documents.NewModule(),
	logging.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
