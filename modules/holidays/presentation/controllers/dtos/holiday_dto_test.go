package dtos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHolidaysDTO_Resize(t *testing.T) {
	d := &CreateHolidaysDTO{Rows: []RowDTO{{Date: "2025-01-01"}}}
	d.Resize(3)
	require.Len(t, d.Rows, 3)
	assert.Equal(t, "2025-01-01", d.Rows[0].Date)
	d.Resize(0)
	assert.Len(t, d.Rows, 1)
	d.Resize(500)
	assert.Len(t, d.Rows, MaxRows)
}

func TestCreateHolidaysDTO_Holidays(t *testing.T) {
	d := &CreateHolidaysDTO{Year: 2025, Client: " Acme ", Rows: []RowDTO{
		{Date: "2025-01-26", Occasion: "Republic Day"},
		{Date: "2025-12-25", Occasion: "Christmas", Client: "Globex"},
		{Date: "2025-08-15"},
		{Occasion: "No date"},
		{},
	}}
	got := d.Holidays()
	require.Len(t, got, 2)
	assert.Equal(t, "Acme", got[0].Client)
	assert.Equal(t, 2025, got[0].Year)
	assert.Equal(t, "Globex", got[1].Client)
}

func TestCreateHolidaysDTO_Ok(t *testing.T) {
	ctx := context.Background()

	errs, ok := (&CreateHolidaysDTO{Year: 2025, Rows: []RowDTO{{}}}).Ok(ctx)
	assert.False(t, ok)
	assert.Equal(t, "Holidays.Errors.NoRows", errs["Rows"])

	errs, ok = (&CreateHolidaysDTO{Year: 2025, Rows: []RowDTO{{Date: "2025-01-26", Occasion: "Republic Day"}}}).Ok(ctx)
	assert.False(t, ok)
	assert.Equal(t, "Holidays.Errors.Client", errs["Client"])

	errs, ok = (&CreateHolidaysDTO{Year: 2025, Client: "Acme", Rows: []RowDTO{{Date: "26/01/2025", Occasion: "Republic Day"}}}).Ok(ctx)
	assert.False(t, ok)
	assert.Equal(t, "Holidays.Errors.Date", errs["Rows"])

	errs, ok = (&CreateHolidaysDTO{Client: "Acme", Rows: []RowDTO{{Date: "2025-01-26", Occasion: "x"}}}).Ok(ctx)
	assert.False(t, ok)
	assert.Contains(t, errs, "Year")

	_, ok = (&CreateHolidaysDTO{Year: 2025, Client: "Acme", Rows: []RowDTO{{Date: "2025-01-26", Occasion: "x"}, {}}}).Ok(ctx)
	assert.True(t, ok)
}
