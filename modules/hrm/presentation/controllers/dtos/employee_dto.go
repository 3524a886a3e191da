package dtos

import (
	"context"
	"strings"

	"github.com/ati-intranet/portal/modules/hrm/domain/entities/employee"
	"github.com/ati-intranet/portal/modules/hrm/services"
	"github.com/ati-intranet/portal/pkg/shared"
)

type CreateEmployeeDTO struct {
	FirstName     string `validate:"required"`
	LastName      string `validate:"required"`
	DateOfBirth   string `validate:"required,datetime=2006-01-02"`
	EmailID       string `validate:"required,email"`
	PhoneNumber   string `validate:"required"`
	Role          string `validate:"required"`
	DateOfJoining string `validate:"required,datetime=2006-01-02"`
	IsActive      string `validate:"omitempty,oneof=true false"`
}

func (d *CreateEmployeeDTO) Ok(ctx context.Context) (map[string]string, bool) {
	errorMessages := shared.ValidateStruct(ctx, d, "Employees.Fields")
	return errorMessages, len(errorMessages) == 0
}

// ToEntity builds the API body; a blank IsActive means active.
func (d *CreateEmployeeDTO) ToEntity() *services.CreateDTO {
	return &services.CreateDTO{
		FirstName:     strings.TrimSpace(d.FirstName),
		LastName:      strings.TrimSpace(d.LastName),
		DateOfBirth:   d.DateOfBirth,
		EmailID:       strings.TrimSpace(d.EmailID),
		PhoneNumber:   strings.TrimSpace(d.PhoneNumber),
		Role:          strings.TrimSpace(d.Role),
		DateOfJoining: d.DateOfJoining,
		IsActive:      d.IsActive != "false",
	}
}

type UpdateEmployeeDTO struct {
	FirstName     string `validate:"required"`
	LastName      string `validate:"required"`
	EmailID       string `validate:"omitempty,email"`
	PhoneNumber   string
	Role          string
	DateOfBirth   string `validate:"omitempty,datetime=2006-01-02"`
	DateOfJoining string `validate:"omitempty,datetime=2006-01-02"`
	IsActive      string `validate:"omitempty,oneof=true false"`
}

func (d *UpdateEmployeeDTO) Ok(ctx context.Context) (map[string]string, bool) {
	errorMessages := shared.ValidateStruct(ctx, d, "Employees.Fields")
	return errorMessages, len(errorMessages) == 0
}

// Apply overlays the form onto current. Role and status only change when
// privileged is set; people editing their own record keep them.
func (d *UpdateEmployeeDTO) Apply(current employee.Employee, privileged bool) employee.Employee {
	out := current
	out.FirstName = strings.TrimSpace(d.FirstName)
	out.LastName = strings.TrimSpace(d.LastName)
	out.EmailID = strings.TrimSpace(d.EmailID)
	out.PhoneNumber = strings.TrimSpace(d.PhoneNumber)
	out.DateOfBirth = d.DateOfBirth
	out.DateOfJoining = d.DateOfJoining
	if privileged {
		out.Role = strings.TrimSpace(d.Role)
		if d.IsActive != "" {
			out.IsActive = d.IsActive == "true"
		}
	}
	return out
}

// FromEntity pre-fills the edit form.
func FromEntity(e employee.Employee) *UpdateEmployeeDTO {
	active := "false"
	if e.IsActive {
		active = "true"
	}
	return &UpdateEmployeeDTO{
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		EmailID:       e.EmailID,
		PhoneNumber:   e.PhoneNumber,
		Role:          e.Role,
		DateOfBirth:   inputDate(e.DateOfBirth),
		DateOfJoining: inputDate(e.DateOfJoining),
		IsActive:      active,
	}
}

func inputDate(v string) string {
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}
