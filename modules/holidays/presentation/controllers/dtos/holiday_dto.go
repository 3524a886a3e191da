package dtos

import (
	"context"
	"strings"
	"time"

	"github.com/ati-intranet/portal/modules/holidays/domain/entities/holiday"
	"github.com/ati-intranet/portal/pkg/constants"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/shared"
)

const MaxRows = 50

type RowDTO struct {
	Date     string
	Occasion string
	Client   string
}

func (r RowDTO) blank() bool {
	return strings.TrimSpace(r.Date) == "" && strings.TrimSpace(r.Occasion) == "" && strings.TrimSpace(r.Client) == ""
}

type CreateHolidaysDTO struct {
	Year   int `validate:"required,gte=1900,lte=2999"`
	Client string
	Rows   []RowDTO
}

// Resize pads or truncates the rows to n, clamped to 1..MaxRows.
func (d *CreateHolidaysDTO) Resize(n int) {
	n = min(max(n, 1), MaxRows)
	if len(d.Rows) > n {
		d.Rows = d.Rows[:n]
	}
	for len(d.Rows) < n {
		d.Rows = append(d.Rows, RowDTO{})
	}
}

// Holidays returns the rows that have a date, an occasion and a client,
// the row's own client winning over the default one.
func (d *CreateHolidaysDTO) Holidays() []holiday.Holiday {
	out := []holiday.Holiday{}
	def := strings.TrimSpace(d.Client)
	for _, r := range d.Rows {
		date := strings.TrimSpace(r.Date)
		occasion := strings.TrimSpace(r.Occasion)
		client := strings.TrimSpace(r.Client)
		if client == "" {
			client = def
		}
		if date == "" || occasion == "" || client == "" {
			continue
		}
		if _, err := time.Parse(constants.DateLayout, date); err != nil {
			continue
		}
		out = append(out, holiday.Holiday{Year: d.Year, Client: client, Date: date, Occasion: occasion})
	}
	return out
}

func (d *CreateHolidaysDTO) Ok(ctx context.Context) (map[string]string, bool) {
	errorMessages := shared.ValidateStruct(ctx, d, "Holidays.Fields")
	def := strings.TrimSpace(d.Client)
	for _, r := range d.Rows {
		if r.blank() {
			continue
		}
		if v := strings.TrimSpace(r.Date); v != "" {
			if _, err := time.Parse(constants.DateLayout, v); err != nil {
				errorMessages["Rows"] = intl.T(ctx, "Holidays.Errors.Date")
			}
		}
		if def == "" && strings.TrimSpace(r.Client) == "" && strings.TrimSpace(r.Date) != "" && strings.TrimSpace(r.Occasion) != "" {
			errorMessages["Client"] = intl.T(ctx, "Holidays.Errors.Client")
		}
	}
	if len(errorMessages) == 0 && len(d.Holidays()) == 0 {
		errorMessages["Rows"] = intl.T(ctx, "Holidays.Errors.NoRows")
	}
	return errorMessages, len(errorMessages) == 0
}
