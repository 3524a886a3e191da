package dtos

import (
	"context"
	"strings"
	"time"

	"github.com/ati-intranet/portal/modules/leave/domain/entities/leave"
	"github.com/ati-intranet/portal/modules/leave/services"
	"github.com/ati-intranet/portal/pkg/constants"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/shared"
	"github.com/ati-intranet/portal/pkg/types"
)

type ApplyDTO struct {
	LeaveType string `validate:"omitempty,oneof=Earned Holiday UnPaid"`
	FromDate  string `validate:"required,datetime=2006-01-02"`
	ToDate    string `validate:"required,datetime=2006-01-02"`
	Comment   string
}

// Ok validates the form. The validator's field comparisons do not order
// date strings, so to >= from is checked here.
func (d *ApplyDTO) Ok(ctx context.Context) (map[string]string, bool) {
	errorMessages := shared.ValidateStruct(ctx, d, "Leave.Fields")
	if _, ok := errorMessages["FromDate"]; !ok {
		if _, ok := errorMessages["ToDate"]; !ok {
			from, _ := time.Parse(constants.DateLayout, d.FromDate)
			to, _ := time.Parse(constants.DateLayout, d.ToDate)
			if to.Before(from) {
				errorMessages["ToDate"] = intl.T(ctx, "Leave.Errors.DateOrder")
			}
		}
	}
	return errorMessages, len(errorMessages) == 0
}

func (d *ApplyDTO) ToEntity(employeeID types.ID) *services.ApplyDTO {
	leaveType := d.LeaveType
	if leaveType == "" {
		leaveType = leave.TypeEarned
	}
	return &services.ApplyDTO{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		FromDate:   d.FromDate,
		ToDate:     d.ToDate,
		Comment:    strings.TrimSpace(d.Comment),
	}
}

type DecisionDTO struct {
	Filter string
}
