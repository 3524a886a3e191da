package dtos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ati-intranet/portal/modules/projects/domain/entities/project"
)

func TestCreateProjectDTO(t *testing.T) {
	d := &CreateProjectDTO{Name: " Portal ", Description: "Intranet", StartDate: "2024-01-01", Status: "active"}
	errs, ok := d.Ok(context.Background())
	require.True(t, ok, errs)

	body := d.ToEntity()
	assert.Equal(t, "Portal", body.Name)
	assert.Nil(t, body.EndDate)

	d.EndDate = "2024-12-31"
	require.NotNil(t, d.ToEntity().EndDate)
	assert.Equal(t, "2024-12-31", *d.ToEntity().EndDate)

	d.Status = "On Hold"
	errs, ok = d.Ok(context.Background())
	assert.False(t, ok)
	assert.Contains(t, errs, "Status")
}

func TestUpdateProjectDTO(t *testing.T) {
	end := "2025-03-01T00:00:00.000Z"
	d := FromEntity(project.Project{Name: "Portal", StartDate: "2024-01-01T00:00:00.000Z", EndDate: &end, Status: "active"})
	assert.Equal(t, "Active", d.Status)
	assert.Equal(t, "2024-01-01", d.StartDate)
	assert.Equal(t, "2025-03-01", d.EndDate)

	d.Status = "On Hold"
	_, ok := d.Ok(context.Background())
	assert.True(t, ok)

	d.Status = "active"
	errs, ok := d.Ok(context.Background())
	assert.False(t, ok)
	assert.Contains(t, errs, "Status")

	assert.Empty(t, FromEntity(project.Project{Name: "x"}).EndDate)
}
