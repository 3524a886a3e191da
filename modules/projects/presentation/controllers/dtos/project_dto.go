package dtos

import (
	"context"
	"strings"

	"github.com/ati-intranet/portal/modules/projects/domain/entities/project"
	"github.com/ati-intranet/portal/modules/projects/services"
	"github.com/ati-intranet/portal/pkg/shared"
)

type CreateProjectDTO struct {
	Name        string `validate:"required"`
	Description string `validate:"required" label:"DescriptionLabel"`
	StartDate   string `validate:"required,datetime=2006-01-02"`
	EndDate     string `validate:"omitempty,datetime=2006-01-02"`
	Status      string `validate:"required,oneof=active completed"`
}

func (d *CreateProjectDTO) Ok(ctx context.Context) (map[string]string, bool) {
	errorMessages := shared.ValidateStruct(ctx, d, "Projects.Fields")
	return errorMessages, len(errorMessages) == 0
}

func (d *CreateProjectDTO) ToEntity() *services.SaveDTO {
	return &services.SaveDTO{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		StartDate:   d.StartDate,
		EndDate:     project.OptionalDate(d.EndDate),
		Status:      d.Status,
	}
}

type UpdateProjectDTO struct {
	Name        string `validate:"required"`
	Description string `label:"DescriptionLabel"`
	StartDate   string `validate:"required,datetime=2006-01-02"`
	EndDate     string `validate:"omitempty,datetime=2006-01-02"`
	Status      string `validate:"required,oneof=Active Completed 'On Hold'"`
}

func (d *UpdateProjectDTO) Ok(ctx context.Context) (map[string]string, bool) {
	errorMessages := shared.ValidateStruct(ctx, d, "Projects.Fields")
	return errorMessages, len(errorMessages) == 0
}

func (d *UpdateProjectDTO) ToEntity() *services.SaveDTO {
	return &services.SaveDTO{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		StartDate:   d.StartDate,
		EndDate:     project.OptionalDate(d.EndDate),
		Status:      d.Status,
	}
}

// FromEntity pre-fills the edit form. Statuses saved by the create form
// ("active") are mapped onto the edit options ("Active").
func FromEntity(p project.Project) *UpdateProjectDTO {
	status := p.Status
	for _, s := range project.EditStatuses {
		if strings.EqualFold(s, p.Status) {
			status = s
		}
	}
	return &UpdateProjectDTO{
		Name:        p.Name,
		Description: p.Description,
		StartDate:   inputDate(p.StartDate),
		EndDate:     inputDate(p.End()),
		Status:      status,
	}
}

func inputDate(v string) string {
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}
